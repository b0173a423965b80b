package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EntryKind discriminates income entries from expense entries. It always
// matches the type of the referenced item.
type EntryKind int

const (
	EntryKindIncome  EntryKind = 1
	EntryKindExpense EntryKind = 2
)

func (k EntryKind) IsValid() bool {
	return k == EntryKindIncome || k == EntryKindExpense
}

func (k EntryKind) String() string {
	switch k {
	case EntryKindIncome:
		return "income"
	case EntryKindExpense:
		return "expense"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// ItemType returns the item type an entry of this kind must reference.
func (k EntryKind) ItemType() ItemType {
	return ItemType(k)
}

// ParseEntryKind maps the wire names back to an EntryKind.
func ParseEntryKind(s string) (EntryKind, error) {
	switch s {
	case "income":
		return EntryKindIncome, nil
	case "expense":
		return EntryKindExpense, nil
	default:
		return 0, fmt.Errorf("invalid entry kind: %q", s)
	}
}

// Entry is a single dated income or expense amount booked against an item.
type Entry struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Kind      EntryKind       `gorm:"not null;index" json:"kind"`
	Date      time.Time       `gorm:"type:date;not null;index" json:"date"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Note      string          `gorm:"type:varchar(500)" json:"note"`
	ItemID    int64           `gorm:"not null;index" json:"item_id"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`

	Item Item `gorm:"foreignKey:ItemID" json:"-"`
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (e *Entry) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = now
	}
	return e.Validate()
}

func (e *Entry) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}
	return e.Validate()
}

func (e *Entry) Validate() error {
	if !e.Kind.IsValid() {
		return fmt.Errorf("invalid entry kind: %d", e.Kind)
	}

	if e.Date.IsZero() {
		return errors.New("date is required")
	}

	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("amount must be positive")
	}

	if len(e.Note) > 500 {
		return errors.New("note must be at most 500 characters")
	}

	if e.ItemID == 0 {
		return errors.New("item ID is required")
	}

	if e.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	return nil
}

func (e *Entry) TableName() string {
	return "entries"
}
