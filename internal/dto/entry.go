package dto

// EntryRequest contains the mutable fields of an income or expense entry,
// for create and update. Date and amount arrive as strings the way the
// grid's forms carry them.
type EntryRequest struct {
	Date   string `json:"date" validate:"required,iso_date"`
	Amount string `json:"amount" validate:"required,money_amount"`
	Note   string `json:"note" validate:"max=500"`
	ItemID int64  `json:"item_id" validate:"required,gt=0"`
}
