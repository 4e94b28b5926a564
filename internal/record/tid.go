package record

import "fmt"

// TID (Tuple ID) locates a record on disk:
// PageID: page logic ID
// Slot  : slot index of page
type TID struct {
	PageID uint32
	Slot   uint16
}

func (id TID) String() string { return fmt.Sprintf("(%d,%d)", id.PageID, id.Slot) }
