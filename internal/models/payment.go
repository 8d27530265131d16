package models

import "time"

// Payment is the receipt of a class purchase. It also carries the denormalised
// enrollment counter for the class, updated last-writer-wins.
type Payment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ClassID       uint      `gorm:"not null;index" json:"classId"`
	StudentID     uint      `gorm:"not null;index" json:"studentId"`
	StudentEmail  string    `gorm:"size:255;not null;index" json:"studentEmail"`
	TransactionID string    `gorm:"size:255;not null" json:"transactionId"`
	Amount        float64   `json:"amount"`
	TotalEnrolled int       `gorm:"not null;default:0" json:"totalEnrolled"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Class         Class     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
