package db

import "gorm.io/gorm"

type Repositories struct {
	Inquiries *InquiryRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Inquiries: NewInquiryRepository(database),
	}
}
