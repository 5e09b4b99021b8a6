package adapter

import "context"

// SendEmailInput is one rendered message for one recipient.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult identifies the message at the provider.
type SendEmailResult struct {
	MessageID string
}

// EmailSender hands a rendered message to an email provider.
// Errors carry an EmailError code telling permanent from temporary failures.
type EmailSender interface {
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// EmailService queues the notifications produced by a settlement.
type EmailService interface {
	QueueSettlementReceipt(ctx context.Context, input QueueSettlementReceiptInput) error
	QueueShortageNotice(ctx context.Context, input QueueShortageNoticeInput) error
}

// QueueSettlementReceiptInput describes one user's successful payment.
type QueueSettlementReceiptInput struct {
	UserEmail   string
	UserName    string
	ReceiptID   string
	AmountPaid  string
	DepositUsed string
	CashPaid    string
	Balance     string
}

// QueueShortageNoticeInput describes a user whose balance did not cover their share.
type QueueShortageNoticeInput struct {
	UserEmail string
	UserName  string
	ReceiptID string
	Owed      string
	Balance   string
	Shortage  string
}
