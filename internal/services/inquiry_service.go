package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/terraincognita07/milla/internal/availability"
	"github.com/terraincognita07/milla/internal/models"
	"github.com/terraincognita07/milla/internal/pricing"
	"github.com/terraincognita07/milla/internal/security"
)

const DefaultInquiriesPerHour = 5

var (
	ErrInquiryInvalid     = errors.New("inquiry input invalid")
	ErrInquiryRangeNeeded = errors.New("inquiry needs checkin and checkout")
	ErrInquiryRateLimited = errors.New("too many inquiries")
	ErrInquiryNotFound    = errors.New("inquiry not found")
)

type InquiryRepository interface {
	Create(inquiry *models.BookingInquiry) error
	FindByPublicID(publicID string) (models.BookingInquiry, error)
	ListRecent(limit int) ([]models.BookingInquiry, error)
	CountCreatedSince(remoteIP string, since time.Time) (int64, error)
	Requeue(publicID string) (bool, error)
}

// InquiryInput is a submitted booking form. Dates are DD.MM.YYYY.
type InquiryInput struct {
	Name     string `json:"name" form:"name" validate:"required,max=120"`
	Email    string `json:"email" form:"email" validate:"required,email,max=254"`
	Phone    string `json:"phone" form:"phone" validate:"omitempty,max=40"`
	Checkin  string `json:"checkin" form:"checkin" validate:"required"`
	Checkout string `json:"checkout" form:"checkout" validate:"required"`
	Guests   int    `json:"guests" form:"guests" validate:"required,min=1,max=5"`
	Message  string `json:"message" form:"message" validate:"max=4000"`
	Language string `json:"-" form:"-"`
	RemoteIP string `json:"-" form:"-"`
}

// ValidationError lists the form fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (err *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInquiryInvalid, strings.Join(err.Fields, ", "))
}

func (err *ValidationError) Unwrap() error {
	return ErrInquiryInvalid
}

type InquiryService struct {
	inquiries InquiryRepository
	calendar  *availability.Calendar
	validate  *validator.Validate
	perHour   int
	now       func() time.Time
}

func NewInquiryService(inquiries InquiryRepository, calendar *availability.Calendar) *InquiryService {
	return &InquiryService{
		inquiries: inquiries,
		calendar:  calendar,
		validate:  validator.New(),
		perHour:   DefaultInquiriesPerHour,
		now:       time.Now,
	}
}

func (service *InquiryService) SetHourlyLimit(limit int) {
	service.perHour = limit
}

func (service *InquiryService) SetNow(now func() time.Time) {
	if now != nil {
		service.now = now
	}
}

// Submit re-validates the requested stay, prices it and stores it for the
// notifier. The cost is always recomputed here.
func (service *InquiryService) Submit(input InquiryInput) (models.BookingInquiry, error) {
	input = normalizeInquiryInput(input)
	if err := service.validate.Struct(input); err != nil {
		return models.BookingInquiry{}, toValidationError(err)
	}

	selection, nights, err := service.calendar.ValidateText(input.Checkin, input.Checkout, service.calendar.Today())
	if err != nil {
		return models.BookingInquiry{}, err
	}
	if !selection.IsComplete() {
		return models.BookingInquiry{}, ErrInquiryRangeNeeded
	}

	if service.perHour > 0 && input.RemoteIP != "" {
		recent, err := service.inquiries.CountCreatedSince(input.RemoteIP, service.now().Add(-time.Hour))
		if err != nil {
			return models.BookingInquiry{}, err
		}
		if recent >= int64(service.perHour) {
			return models.BookingInquiry{}, ErrInquiryRateLimited
		}
	}

	breakdown, _ := pricing.Estimate(nights, input.Guests)
	reference, err := NewInquiryReference()
	if err != nil {
		return models.BookingInquiry{}, err
	}

	inquiry := models.BookingInquiry{
		PublicID:      uuid.NewString(),
		Reference:     reference,
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		Checkin:       selection.Start.String(),
		Checkout:      selection.End.String(),
		Nights:        nights,
		Guests:        input.Guests,
		Message:       input.Message,
		Language:      input.Language,
		NightlyRate:   breakdown.NightlyRate,
		Accommodation: breakdown.Accommodation,
		LinenFee:      breakdown.LinenFee,
		CleaningFee:   breakdown.CleaningFee,
		Total:         breakdown.Total,
		Status:        models.InquiryStatusPending,
		RemoteIP:      input.RemoteIP,
		CreatedAt:     service.now().UTC(),
	}
	if err := service.inquiries.Create(&inquiry); err != nil {
		return models.BookingInquiry{}, err
	}
	return inquiry, nil
}

func (service *InquiryService) List(limit int) ([]models.BookingInquiry, error) {
	return service.inquiries.ListRecent(limit)
}

// Resend puts a delivered or failed inquiry back into the outbox.
func (service *InquiryService) Resend(publicID string) error {
	if _, err := uuid.Parse(publicID); err != nil {
		return ErrInquiryNotFound
	}
	requeued, err := service.inquiries.Requeue(publicID)
	if err != nil {
		return err
	}
	if !requeued {
		return ErrInquiryNotFound
	}
	return nil
}

// NewInquiryReference returns a code like MILLA-7K2M-Q9XD for guests to
// quote in replies.
func NewInquiryReference() (string, error) {
	return security.GroupedCode("MILLA", 2, 4)
}

func normalizeInquiryInput(input InquiryInput) InquiryInput {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Phone = strings.TrimSpace(input.Phone)
	input.Checkin = strings.TrimSpace(input.Checkin)
	input.Checkout = strings.TrimSpace(input.Checkout)
	input.Message = strings.TrimSpace(input.Message)
	input.Language = strings.ToLower(strings.TrimSpace(input.Language))
	if input.Language == "" {
		input.Language = "de"
	}
	return input
}

func toValidationError(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("%w: %v", ErrInquiryInvalid, err)
	}
	fields := make([]string, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		fields = append(fields, strings.ToLower(fieldError.Field()))
	}
	return &ValidationError{Fields: fields}
}
