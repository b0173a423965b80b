package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemType discriminates income items from expense items.
type ItemType int

const (
	ItemTypeIncome  ItemType = 1
	ItemTypeExpense ItemType = 2
)

func (t ItemType) IsValid() bool {
	return t == ItemTypeIncome || t == ItemTypeExpense
}

func (t ItemType) String() string {
	switch t {
	case ItemTypeIncome:
		return "income"
	case ItemTypeExpense:
		return "expense"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// ParseItemType maps the wire names back to an ItemType.
func ParseItemType(s string) (ItemType, error) {
	switch s {
	case "income":
		return ItemTypeIncome, nil
	case "expense":
		return ItemTypeExpense, nil
	default:
		return 0, fmt.Errorf("invalid item type: %q", s)
	}
}

// Item is a user-defined category that incomes and expenses reference.
type Item struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string         `gorm:"type:varchar(100);not null;index:idx_items_user_name,unique,where:deleted_at IS NULL" json:"name"`
	Type      ItemType       `gorm:"not null;index" json:"type"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_items_user_name,unique,where:deleted_at IS NULL" json:"user_id"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	User    User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Entries []Entry `gorm:"foreignKey:ItemID" json:"-"`
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if i.CreatedAt.IsZero() {
		i.CreatedAt = now
	}
	if i.UpdatedAt.IsZero() {
		i.UpdatedAt = now
	}
	return i.Validate()
}

func (i *Item) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}
	return i.Validate()
}

func (i *Item) Validate() error {
	if i.Name == "" {
		return errors.New("name is required")
	}

	if len(i.Name) > 100 {
		return errors.New("name must be at most 100 characters")
	}

	if !i.Type.IsValid() {
		return fmt.Errorf("invalid item type: %d", i.Type)
	}

	if i.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	return nil
}

func (i *Item) TableName() string {
	return "items"
}
