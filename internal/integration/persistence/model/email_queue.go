package model

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/receipt-split/backend/internal/domain/entity"
)

// EmailQueueModel is the outbox row of a settlement notification.
type EmailQueueModel struct {
	ID                uuid.UUID    `gorm:"type:uuid;primaryKey"`
	TemplateType      string       `gorm:"type:varchar(50);not null"`
	RecipientEmail    string       `gorm:"type:varchar(255);not null;index"`
	RecipientName     string       `gorm:"type:varchar(255)"`
	Subject           string       `gorm:"type:varchar(500);not null"`
	Payload           string       `gorm:"type:jsonb;not null;default:'{}'"`
	Status            string       `gorm:"type:varchar(20);not null;default:'pending';index:idx_email_queue_due,priority:1"`
	Attempts          int          `gorm:"not null;default:0"`
	MaxAttempts       int          `gorm:"not null;default:3"`
	LastError         string       `gorm:"type:text"`
	ProviderMessageID string       `gorm:"type:varchar(100)"`
	CreatedAt         time.Time    `gorm:"not null"`
	ScheduledAt       time.Time    `gorm:"not null;index:idx_email_queue_due,priority:2"`
	ProcessedAt       sql.NullTime `gorm:"type:timestamptz"`
}

// TableName returns the table name for the EmailQueueModel.
func (EmailQueueModel) TableName() string {
	return "email_queue"
}

// ToEntity converts the row into an EmailJob. A payload that is not valid
// JSON yields an error so the worker can fail the job instead of sending a
// blank notification.
func (m *EmailQueueModel) ToEntity() (*entity.EmailJob, error) {
	data := make(map[string]any)
	if m.Payload != "" {
		if err := json.Unmarshal([]byte(m.Payload), &data); err != nil {
			return nil, fmt.Errorf("email job %s: decode payload: %w", m.ID, err)
		}
	}

	job := &entity.EmailJob{
		ID:                m.ID,
		TemplateType:      entity.EmailTemplateType(m.TemplateType),
		RecipientEmail:    m.RecipientEmail,
		RecipientName:     m.RecipientName,
		Subject:           m.Subject,
		TemplateData:      data,
		Status:            entity.EmailStatus(m.Status),
		Attempts:          m.Attempts,
		MaxAttempts:       m.MaxAttempts,
		LastError:         m.LastError,
		ProviderMessageID: m.ProviderMessageID,
		CreatedAt:         m.CreatedAt,
		ScheduledAt:       m.ScheduledAt,
	}
	if m.ProcessedAt.Valid {
		processedAt := m.ProcessedAt.Time
		job.ProcessedAt = &processedAt
	}
	return job, nil
}

// EmailQueueModelFromEntity converts an EmailJob into its row.
func EmailQueueModelFromEntity(job *entity.EmailJob) (*EmailQueueModel, error) {
	payload, err := json.Marshal(job.TemplateData)
	if err != nil {
		return nil, fmt.Errorf("email job %s: encode payload: %w", job.ID, err)
	}

	m := &EmailQueueModel{
		ID:                job.ID,
		TemplateType:      string(job.TemplateType),
		RecipientEmail:    job.RecipientEmail,
		RecipientName:     job.RecipientName,
		Subject:           job.Subject,
		Payload:           string(payload),
		Status:            string(job.Status),
		Attempts:          job.Attempts,
		MaxAttempts:       job.MaxAttempts,
		LastError:         job.LastError,
		ProviderMessageID: job.ProviderMessageID,
		CreatedAt:         job.CreatedAt,
		ScheduledAt:       job.ScheduledAt,
	}
	if job.ProcessedAt != nil {
		m.ProcessedAt = sql.NullTime{Time: *job.ProcessedAt, Valid: true}
	}
	return m, nil
}
