package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/receipt-split/backend/internal/application/adapter"
	"github.com/receipt-split/backend/internal/domain/entity"
	domainerror "github.com/receipt-split/backend/internal/domain/error"
	"github.com/receipt-split/backend/internal/integration/email/templates"
)

// DeliveryObserver is told the final state of every delivery attempt.
type DeliveryObserver interface {
	ObserveEmail(template entity.EmailTemplateType, status entity.EmailStatus)
}

// WorkerConfig tunes the outbox polling.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
	// Lease is how long a claimed job stays invisible to other workers.
	Lease time.Duration
}

// DefaultWorkerConfig returns the settings used when none are configured.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 5 * time.Second,
		BatchSize:    10,
		Lease:        5 * time.Minute,
	}
}

// BatchReport counts what happened to the jobs of one poll.
type BatchReport struct {
	Sent     int
	Retrying int
	Failed   int
}

// Worker drains the notification outbox into an EmailSender.
type Worker struct {
	queue    adapter.EmailQueueRepository
	sender   adapter.EmailSender
	renderer *templates.Renderer
	observer DeliveryObserver
	cfg      WorkerConfig
	now      func() time.Time
}

// NewWorker creates a worker. observer may be nil.
func NewWorker(queue adapter.EmailQueueRepository, sender adapter.EmailSender, renderer *templates.Renderer, observer DeliveryObserver, cfg WorkerConfig) *Worker {
	defaults := DefaultWorkerConfig()
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaults.PollInterval
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaults.BatchSize
	}
	if cfg.Lease <= 0 {
		cfg.Lease = defaults.Lease
	}

	return &Worker{
		queue:    queue,
		sender:   sender,
		renderer: renderer,
		observer: observer,
		cfg:      cfg,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Start polls the outbox until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("email worker started", "poll_interval", w.cfg.PollInterval, "batch_size", w.cfg.BatchSize)
	defer slog.Info("email worker stopped")

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if report := w.ProcessNow(ctx); report != (BatchReport{}) {
			slog.Debug("email batch processed", "sent", report.Sent, "retrying", report.Retrying, "failed", report.Failed)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// ProcessNow claims and delivers one batch of due jobs.
func (w *Worker) ProcessNow(ctx context.Context) BatchReport {
	var report BatchReport

	now := w.now()
	jobs, err := w.queue.ClaimDue(ctx, now, now.Add(w.cfg.Lease), w.cfg.BatchSize)
	if err != nil {
		slog.Error("failed to claim email jobs", "error", err)
		return report
	}

	for _, job := range jobs {
		if ctx.Err() != nil {
			break
		}

		switch w.deliver(ctx, job) {
		case entity.EmailStatusSent:
			report.Sent++
		case entity.EmailStatusPending:
			report.Retrying++
		case entity.EmailStatusFailed:
			report.Failed++
		}
	}
	return report
}

// deliver sends one claimed job and persists its new state.
func (w *Worker) deliver(ctx context.Context, job *entity.EmailJob) entity.EmailStatus {
	logger := slog.With("job_id", job.ID, "template", job.TemplateType)

	result, err := w.send(ctx, job)
	if err != nil {
		if job.Bounce(err, domainerror.IsPermanentEmailFailure(err), w.now()) {
			logger.Warn("email delivery failed, will retry", "attempts", job.Attempts, "retry_at", job.ScheduledAt, "error", err)
		} else {
			logger.Error("email delivery failed", "attempts", job.Attempts, "error", err)
		}
	} else {
		job.Delivered(result.MessageID, w.now())
		logger.Info("email sent", "provider_message_id", result.MessageID)
	}

	if err := w.queue.Save(ctx, job); err != nil {
		// The lease expires and the job is claimed again.
		logger.Error("failed to save email job", "status", job.Status, "error", err)
	}

	if w.observer != nil {
		w.observer.ObserveEmail(job.TemplateType, job.Status)
	}
	return job.Status
}

func (w *Worker) send(ctx context.Context, job *entity.EmailJob) (*adapter.SendEmailResult, error) {
	data, err := templates.Decode(job.TemplateType, job.TemplateData)
	if err != nil {
		return nil, domainerror.NewEmailError(domainerror.ErrCodeInvalidTemplate, "cannot build email", err)
	}

	msg, err := w.renderer.Render(string(job.TemplateType), data)
	if err != nil {
		return nil, domainerror.NewEmailError(domainerror.ErrCodeInvalidTemplate, "cannot render email", err)
	}

	return w.sender.Send(ctx, adapter.SendEmailInput{
		To:      job.RecipientEmail,
		Name:    job.RecipientName,
		Subject: job.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
	})
}
