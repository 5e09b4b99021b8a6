// Package email queues and delivers settlement notifications.
package email

import (
	"context"
	"fmt"

	"github.com/receipt-split/backend/internal/application/adapter"
	"github.com/receipt-split/backend/internal/domain/entity"
	domainerror "github.com/receipt-split/backend/internal/domain/error"
	"github.com/receipt-split/backend/internal/integration/email/templates"
)

// Service writes notifications to the outbox; the Worker delivers them.
type Service struct {
	queue adapter.EmailQueueRepository
}

func NewService(queue adapter.EmailQueueRepository) *Service {
	return &Service{queue: queue}
}

func (s *Service) QueueSettlementReceipt(ctx context.Context, input adapter.QueueSettlementReceiptInput) error {
	return s.enqueue(ctx, entity.TemplateSettlementReceipt, input.UserEmail, input.UserName,
		fmt.Sprintf("Your share of receipt %s has been settled", shortID(input.ReceiptID)),
		templates.SettlementReceiptData{
			UserName:    input.UserName,
			ReceiptID:   input.ReceiptID,
			AmountPaid:  input.AmountPaid,
			DepositUsed: input.DepositUsed,
			CashPaid:    input.CashPaid,
			Balance:     input.Balance,
		})
}

func (s *Service) QueueShortageNotice(ctx context.Context, input adapter.QueueShortageNoticeInput) error {
	return s.enqueue(ctx, entity.TemplateShortageNotice, input.UserEmail, input.UserName,
		fmt.Sprintf("Top up needed for receipt %s", shortID(input.ReceiptID)),
		templates.ShortageNoticeData{
			UserName:  input.UserName,
			ReceiptID: input.ReceiptID,
			Owed:      input.Owed,
			Balance:   input.Balance,
			Shortage:  input.Shortage,
		})
}

func (s *Service) enqueue(ctx context.Context, kind entity.EmailTemplateType, to, name, subject string, data any) error {
	payload, err := templates.Payload(data)
	if err != nil {
		return domainerror.NewEmailError(domainerror.ErrCodeEmailQueueFailed, "failed to encode "+string(kind)+" email", err)
	}

	job := entity.NewEmailJob(kind, to, name, subject, payload)
	if err := s.queue.Enqueue(ctx, job); err != nil {
		return domainerror.NewEmailError(domainerror.ErrCodeEmailQueueFailed, "failed to queue "+string(kind)+" email", err)
	}
	return nil
}

// shortID returns the first block of a UUID.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

var _ adapter.EmailService = (*Service)(nil)
