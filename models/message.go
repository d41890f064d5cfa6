package models

import "time"

// Message is a contact-form submission. Messages are created by
// anonymous visitors, carry a server-assigned timestamp and are
// immutable once stored except for deletion.
type Message struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:50;not null"`
	Email     string `gorm:"size:250;not null"`
	Phone     string `gorm:"size:50"`
	Body      string `gorm:"size:500;not null"`
	CreatedAt time.Time
}

// TableName returns the table name for the Message model
func (Message) TableName() string {
	return "messages"
}
