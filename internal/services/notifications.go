package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/terraincognita07/milla/internal/availability"
	"github.com/terraincognita07/milla/internal/models"
	"github.com/terraincognita07/milla/internal/pricing"
)

const notifierBatchSize = 20

type OutboxRepository interface {
	ListPending(limit int) ([]models.BookingInquiry, error)
	MarkSent(id uint, sentAt time.Time) error
	RecordFailure(id uint, deliveryErr string, maxAttempts int) error
}

var inquiryMailTemplate = template.Must(template.New("inquiry").Funcs(template.FuncMap{
	"amount":  pricing.FormatAmount,
	"display": displayDate,
}).Parse(`<h2>Neue Buchungsanfrage {{.Reference}}</h2>
<p><strong>Name:</strong> {{.Name}}<br>
<strong>E-Mail:</strong> {{.Email}}<br>
<strong>Telefon:</strong> {{.Phone}}</p>
<p><strong>Anreise:</strong> {{display .Checkin}}<br>
<strong>Abreise:</strong> {{display .Checkout}}<br>
<strong>Nächte:</strong> {{.Nights}}<br>
<strong>Gäste:</strong> {{.Guests}}</p>
<table>
<tr><td>Übernachtung ({{.Nights}} × {{amount .NightlyRate}})</td><td>{{amount .Accommodation}}</td></tr>
<tr><td>Bettwäsche</td><td>{{amount .LinenFee}}</td></tr>
<tr><td>Endreinigung</td><td>{{amount .CleaningFee}}</td></tr>
<tr><td><strong>Gesamt</strong></td><td><strong>{{amount .Total}}</strong></td></tr>
</table>
{{if .Message}}<p><strong>Nachricht:</strong><br>{{.Message}}</p>{{end}}`))

// InquiryNotifier drains the inquiry outbox on a cron schedule and mails
// each inquiry to the host.
type InquiryNotifier struct {
	outbox      OutboxRepository
	mailer      Mailer
	from        string
	to          string
	maxAttempts int
	schedule    string
	logger      zerolog.Logger
	now         func() time.Time
	mu          sync.Mutex
}

func NewInquiryNotifier(outbox OutboxRepository, mailer Mailer, from string, to string, maxAttempts int, schedule string, logger zerolog.Logger) *InquiryNotifier {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return &InquiryNotifier{
		outbox:      outbox,
		mailer:      mailer,
		from:        from,
		to:          to,
		maxAttempts: maxAttempts,
		schedule:    schedule,
		logger:      logger,
		now:         time.Now,
	}
}

// Start registers the drain job and stops the scheduler when ctx ends.
func (notifier *InquiryNotifier) Start(ctx context.Context) error {
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(notifier.schedule, func() {
		notifier.RunOnce(ctx)
	}); err != nil {
		return fmt.Errorf("notifier schedule %q: %w", notifier.schedule, err)
	}
	scheduler.Start()

	go func() {
		<-ctx.Done()
		<-scheduler.Stop().Done()
	}()
	notifier.logger.Info().Str("schedule", notifier.schedule).Msg("inquiry notifier started")
	return nil
}

// RunOnce sends one batch of pending inquiries. Overlapping runs are
// skipped.
func (notifier *InquiryNotifier) RunOnce(ctx context.Context) (sent int, failed int) {
	if !notifier.mu.TryLock() {
		return 0, 0
	}
	defer notifier.mu.Unlock()

	pending, err := notifier.outbox.ListPending(notifierBatchSize)
	if err != nil {
		notifier.logger.Error().Err(err).Msg("load pending inquiries failed")
		return 0, 0
	}

	for _, inquiry := range pending {
		if ctx.Err() != nil {
			return sent, failed
		}

		message, err := notifier.buildMessage(inquiry)
		if err == nil {
			err = notifier.mailer.Send(ctx, message)
		}
		if err != nil {
			failed++
			notifier.logger.Warn().Err(err).Str("reference", inquiry.Reference).Int("attempt", inquiry.Attempts+1).Msg("inquiry delivery failed")
			if recordErr := notifier.outbox.RecordFailure(inquiry.ID, err.Error(), notifier.maxAttempts); recordErr != nil {
				notifier.logger.Error().Err(recordErr).Str("reference", inquiry.Reference).Msg("record delivery failure failed")
			}
			continue
		}

		if err := notifier.outbox.MarkSent(inquiry.ID, notifier.now().UTC()); err != nil {
			notifier.logger.Error().Err(err).Str("reference", inquiry.Reference).Msg("mark inquiry sent failed")
			continue
		}
		sent++
		notifier.logger.Info().Str("reference", inquiry.Reference).Msg("inquiry delivered")
	}
	return sent, failed
}

func (notifier *InquiryNotifier) buildMessage(inquiry models.BookingInquiry) (MailMessage, error) {
	var body bytes.Buffer
	if err := inquiryMailTemplate.Execute(&body, inquiry); err != nil {
		return MailMessage{}, err
	}
	return MailMessage{
		From:     notifier.from,
		To:       notifier.to,
		ReplyTo:  inquiry.Email,
		Subject:  fmt.Sprintf("Buchungsanfrage %s: %s bis %s", inquiry.Reference, displayDate(inquiry.Checkin), displayDate(inquiry.Checkout)),
		HTMLBody: body.String(),
	}, nil
}

func displayDate(iso string) string {
	day, err := availability.ParseISO(iso)
	if err != nil {
		return iso
	}
	return availability.FormatDisplay(day)
}
