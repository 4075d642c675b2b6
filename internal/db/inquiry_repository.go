package db

import (
	"time"

	"github.com/terraincognita07/milla/internal/models"
	"gorm.io/gorm"
)

type InquiryRepository struct {
	database *gorm.DB
}

func NewInquiryRepository(database *gorm.DB) *InquiryRepository {
	return &InquiryRepository{database: database}
}

func (repo *InquiryRepository) Create(inquiry *models.BookingInquiry) error {
	return repo.database.Create(inquiry).Error
}

func (repo *InquiryRepository) FindByPublicID(publicID string) (models.BookingInquiry, error) {
	var inquiry models.BookingInquiry
	if err := repo.database.Where("public_id = ?", publicID).First(&inquiry).Error; err != nil {
		return models.BookingInquiry{}, err
	}
	return inquiry, nil
}

// ListRecent returns inquiries newest first. A limit <= 0 means no limit.
func (repo *InquiryRepository) ListRecent(limit int) ([]models.BookingInquiry, error) {
	inquiries := make([]models.BookingInquiry, 0)
	query := repo.database.Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&inquiries).Error; err != nil {
		return nil, err
	}
	return inquiries, nil
}

// ListPending returns the outbox in submission order.
func (repo *InquiryRepository) ListPending(limit int) ([]models.BookingInquiry, error) {
	inquiries := make([]models.BookingInquiry, 0)
	query := repo.database.Where("status = ?", models.InquiryStatusPending).Order("created_at ASC, id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&inquiries).Error; err != nil {
		return nil, err
	}
	return inquiries, nil
}

func (repo *InquiryRepository) CountCreatedSince(remoteIP string, since time.Time) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.BookingInquiry{}).
		Where("remote_ip = ? AND created_at >= ?", remoteIP, since).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *InquiryRepository) MarkSent(id uint, sentAt time.Time) error {
	return repo.database.Model(&models.BookingInquiry{}).Where("id = ?", id).Updates(map[string]any{
		"status":     models.InquiryStatusSent,
		"sent_at":    sentAt,
		"last_error": "",
	}).Error
}

// RecordFailure counts a failed delivery. The inquiry stays pending until
// attempts reaches maxAttempts.
func (repo *InquiryRepository) RecordFailure(id uint, deliveryErr string, maxAttempts int) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		var inquiry models.BookingInquiry
		if err := tx.First(&inquiry, id).Error; err != nil {
			return err
		}

		attempts := inquiry.Attempts + 1
		status := models.InquiryStatusPending
		if attempts >= maxAttempts {
			status = models.InquiryStatusFailed
		}
		return tx.Model(&models.BookingInquiry{}).Where("id = ?", id).Updates(map[string]any{
			"attempts":   attempts,
			"status":     status,
			"last_error": deliveryErr,
		}).Error
	})
}

// Requeue puts an inquiry back into the outbox with a fresh attempt budget.
func (repo *InquiryRepository) Requeue(publicID string) (bool, error) {
	result := repo.database.Model(&models.BookingInquiry{}).
		Where("public_id = ? AND status <> ?", publicID, models.InquiryStatusPending).
		Updates(map[string]any{
			"status":     models.InquiryStatusPending,
			"attempts":   0,
			"last_error": "",
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
