package models

import "strings"

// Record is implemented by every entity the API persists. The zero ID means
// the record has not been saved yet.
type Record interface {
	RecordID() uint
}

// Ref is the {"id": n} shape used to point at another record on the wire.
// An id of 0 means no reference.
type Ref struct {
	ID uint `json:"id"`
}

func joinName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}
