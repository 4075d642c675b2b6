package models

import "time"

const (
	InquiryStatusPending = "pending"
	InquiryStatusSent    = "sent"
	InquiryStatusFailed  = "failed"
)

// BookingInquiry is a guest's request for a stay. It reserves nothing; the
// host answers by mail.
type BookingInquiry struct {
	ID            uint   `gorm:"primaryKey"`
	PublicID      string `gorm:"uniqueIndex;not null"`
	Reference     string `gorm:"uniqueIndex;not null"`
	Name          string `gorm:"not null"`
	Email         string `gorm:"not null"`
	Phone         string
	Checkin       string `gorm:"not null"`
	Checkout      string `gorm:"not null"`
	Nights        int    `gorm:"not null"`
	Guests        int    `gorm:"not null"`
	Message       string
	Language      string `gorm:"not null;default:de"`
	NightlyRate   int    `gorm:"not null;default:0"`
	Accommodation int    `gorm:"not null;default:0"`
	LinenFee      int    `gorm:"not null;default:0"`
	CleaningFee   int    `gorm:"not null;default:0"`
	Total         int    `gorm:"not null;default:0"`
	Status        string `gorm:"not null;default:pending;index"`
	Attempts      int    `gorm:"not null;default:0"`
	LastError     string
	RemoteIP      string
	SentAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
