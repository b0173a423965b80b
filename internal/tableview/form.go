package tableview

import "strconv"

// Option is a selectable item reference in the autocomplete.
type Option struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FindOption looks up an option by its string-typed ID as rows carry it.
// Returns nil when the ID does not parse or no option matches; a stale
// reference opens the edit dialog with an empty selector instead of failing.
func FindOption(options []Option, id string) *Option {
	parsed, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil
	}
	for i := range options {
		if options[i].ID == parsed {
			return &options[i]
		}
	}
	return nil
}

// FormMode distinguishes the add dialog from the edit dialog.
type FormMode int

const (
	ModeCreate FormMode = iota
	ModeEdit
)

// EntryForm holds the in-progress field values of the income/expense
// add/edit dialog. It is transient: blanked on "new", populated from a row
// on "edit", discarded on close or submit.
type EntryForm struct {
	Mode     FormMode
	EntryID  int64
	Date     string
	Amount   string
	Note     string
	Selected *Option
}

// OpenForCreate blanks every field and switches to create mode.
func (f *EntryForm) OpenForCreate() {
	*f = EntryForm{Mode: ModeCreate}
}

// OpenForEdit copies a row's scalar fields verbatim and resolves its item
// reference against the loaded options. An item ID with no matching option
// leaves the selector empty rather than erroring.
func (f *EntryForm) OpenForEdit(id int64, date, amount, note, itemID string, options []Option) {
	*f = EntryForm{
		Mode:     ModeEdit,
		EntryID:  id,
		Date:     date,
		Amount:   amount,
		Note:     note,
		Selected: FindOption(options, itemID),
	}
}

// Reset discards the draft.
func (f *EntryForm) Reset() {
	*f = EntryForm{}
}

// ItemForm holds the draft of the item add/edit dialog.
type ItemForm struct {
	Mode   FormMode
	ItemID int64
	Name   string
	Type   int
}

// OpenForCreate blanks every field and switches to create mode.
func (f *ItemForm) OpenForCreate() {
	*f = ItemForm{Mode: ModeCreate}
}

// OpenForEdit copies a row's fields into the draft.
func (f *ItemForm) OpenForEdit(id int64, name string, itemType int) {
	*f = ItemForm{
		Mode:   ModeEdit,
		ItemID: id,
		Name:   name,
		Type:   itemType,
	}
}

// Reset discards the draft.
func (f *ItemForm) Reset() {
	*f = ItemForm{}
}
