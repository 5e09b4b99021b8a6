package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus is the delivery state of a queued notification.
type EmailStatus string

const (
	EmailStatusPending    EmailStatus = "pending"
	EmailStatusProcessing EmailStatus = "processing"
	EmailStatusSent       EmailStatus = "sent"
	EmailStatusFailed     EmailStatus = "failed"
)

// EmailTemplateType names the template a notification is rendered with.
type EmailTemplateType string

const (
	TemplateSettlementReceipt EmailTemplateType = "settlement_receipt"
	TemplateShortageNotice    EmailTemplateType = "shortage_notice"
)

const (
	// DefaultEmailMaxAttempts bounds delivery attempts for a notification.
	DefaultEmailMaxAttempts = 3

	emailRetryBase = time.Minute
	emailRetryMax  = 15 * time.Minute
)

// EmailJob is a settlement notification waiting in the outbox.
type EmailJob struct {
	ID                uuid.UUID
	TemplateType      EmailTemplateType
	RecipientEmail    string
	RecipientName     string
	Subject           string
	TemplateData      map[string]any
	Status            EmailStatus
	Attempts          int
	MaxAttempts       int
	LastError         string
	ProviderMessageID string
	CreatedAt         time.Time
	ScheduledAt       time.Time
	ProcessedAt       *time.Time
}

// NewEmailJob queues a notification for immediate delivery.
func NewEmailJob(templateType EmailTemplateType, recipientEmail, recipientName, subject string, data map[string]any) *EmailJob {
	now := time.Now().UTC()
	if data == nil {
		data = make(map[string]any)
	}
	return &EmailJob{
		ID:             uuid.New(),
		TemplateType:   templateType,
		RecipientEmail: recipientEmail,
		RecipientName:  recipientName,
		Subject:        subject,
		TemplateData:   data,
		Status:         EmailStatusPending,
		MaxAttempts:    DefaultEmailMaxAttempts,
		CreatedAt:      now,
		ScheduledAt:    now,
	}
}

// Claim takes the job for delivery. If the claimant disappears, the job
// becomes due again once the lease expires.
func (e *EmailJob) Claim(leaseUntil time.Time) {
	e.Status = EmailStatusProcessing
	e.ScheduledAt = leaseUntil
}

// Delivered records a successful hand-off to the provider.
func (e *EmailJob) Delivered(providerMessageID string, at time.Time) {
	e.Status = EmailStatusSent
	e.ProviderMessageID = providerMessageID
	e.ProcessedAt = &at
}

// Bounce records a failed attempt. A permanent failure or the last allowed
// attempt fails the job; otherwise it is rescheduled with exponential backoff
// and Bounce returns true.
func (e *EmailJob) Bounce(err error, permanent bool, at time.Time) bool {
	e.Attempts++
	e.LastError = err.Error()

	if permanent || e.Attempts >= e.MaxAttempts {
		e.Status = EmailStatusFailed
		e.ProcessedAt = &at
		return false
	}

	delay := emailRetryBase << (e.Attempts - 1)
	if delay > emailRetryMax {
		delay = emailRetryMax
	}
	e.Status = EmailStatusPending
	e.ScheduledAt = at.Add(delay)
	return true
}

// Due reports whether the job is waiting, or its claim has lapsed, at now.
func (e *EmailJob) Due(now time.Time) bool {
	switch e.Status {
	case EmailStatusPending, EmailStatusProcessing:
		return !now.Before(e.ScheduledAt)
	}
	return false
}
