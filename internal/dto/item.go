package dto

// ItemRow is one datatable row of the items table
type ItemRow struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type int    `json:"type"`
}

// ItemRequest contains the mutable fields of an item, for create and update
type ItemRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
	Type int    `json:"type" validate:"required,item_type"`
}
