package models

import "fmt"

// Room represents a consultation room (consultorio) of the clinic
type Room struct {
	ID     uint   `gorm:"primaryKey" json:"id,omitempty"`
	Number string `gorm:"column:numero;size:50;not null" json:"numero" binding:"required"`
	Floor  int    `gorm:"column:piso;default:0" json:"piso"`
}

// TableName specifies the table name for Room model
func (Room) TableName() string {
	return "consultorios"
}

func (r Room) RecordID() uint {
	return r.ID
}

// Label renders the room as "<numero> - Piso <piso>".
func (r Room) Label() string {
	return fmt.Sprintf("%s - Piso %d", r.Number, r.Floor)
}

func (r Room) Clone() Room {
	return r
}
