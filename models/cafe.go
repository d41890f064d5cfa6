package models

import "time"

// SeatBuckets is the fixed set of seating-capacity ranges a cafe may declare
var SeatBuckets = []string{"0-10", "10-20", "20-30", "30-40", "40-50", "50+"}

// Cafe represents a single directory entry. Name and Location are stored
// title-cased and CoffeePrice is stored as a currency-prefixed string
// (e.g. "£2.5"); normalization happens in the service layer. The unique
// index on Name is the second line of defense behind the service
// pre-check.
type Cafe struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:250;uniqueIndex;not null"`
	MapURL       string `gorm:"size:500;not null"`
	ImgURL       string `gorm:"size:500;not null"`
	Location     string `gorm:"size:250;not null"`
	Seats        string `gorm:"size:250;not null"`
	HasToilet    bool   `gorm:"not null"`
	HasWifi      bool   `gorm:"not null"`
	HasSockets   bool   `gorm:"not null"`
	CanTakeCalls bool   `gorm:"not null"`
	CoffeePrice  string `gorm:"size:250"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for the Cafe model
func (Cafe) TableName() string {
	return "cafes"
}
