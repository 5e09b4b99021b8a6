package email

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/resend/resend-go/v2"

	"github.com/receipt-split/backend/internal/application/adapter"
	domainerror "github.com/receipt-split/backend/internal/domain/error"
)

const resendTimeout = 10 * time.Second

// ResendClient sends notifications through the Resend API.
type ResendClient struct {
	client *resend.Client
	from   string
}

func NewResendClient(apiKey, fromName, fromEmail string) *ResendClient {
	httpClient := &http.Client{
		Timeout:   resendTimeout,
		Transport: statusRecorder{next: http.DefaultTransport},
	}
	return &ResendClient{
		client: resend.NewCustomClient(httpClient, apiKey),
		from:   fmt.Sprintf("%s <%s>", fromName, fromEmail),
	}
}

func (c *ResendClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	var status int
	ctx = context.WithValue(ctx, statusKey{}, &status)

	resp, err := c.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{input.To},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
	})
	if err != nil {
		return nil, classifySendError(status, err)
	}
	return &adapter.SendEmailResult{MessageID: resp.Id}, nil
}

// classifySendError maps a failed call to a coded error. Client errors other
// than rate limiting will fail again on retry; everything else, including a
// transport failure with no status, is temporary.
func classifySendError(status int, err error) error {
	if status >= 400 && status < 500 && status != http.StatusTooManyRequests {
		return domainerror.NewEmailError(
			domainerror.ErrCodePermanentEmailFailure,
			fmt.Sprintf("resend rejected the email (%d)", status),
			fmt.Errorf("%w: %w", domainerror.ErrEmailRejected, err),
		)
	}
	return domainerror.NewEmailError(
		domainerror.ErrCodeTemporaryEmailFailure,
		"resend is unavailable",
		fmt.Errorf("%w: %w", domainerror.ErrEmailUnavailable, err),
	)
}

type statusKey struct{}

// statusRecorder stores the response status in the *int a request's context
// carries under statusKey, since the Resend client only returns the message.
type statusRecorder struct {
	next http.RoundTripper
}

func (s statusRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := s.next.RoundTrip(req)
	if status, ok := req.Context().Value(statusKey{}).(*int); ok && resp != nil {
		*status = resp.StatusCode
	}
	return resp, err
}

// MockEmailSender keeps messages in memory. It stands in for Resend when no
// API key is configured.
type MockEmailSender struct {
	mu        sync.Mutex
	sent      []adapter.SendEmailInput
	failWith  error
	permanent bool
}

func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{}
}

func (m *MockEmailSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		code := domainerror.ErrCodeTemporaryEmailFailure
		if m.permanent {
			code = domainerror.ErrCodePermanentEmailFailure
		}
		return nil, domainerror.NewEmailError(code, "mock delivery failure", m.failWith)
	}

	m.sent = append(m.sent, input)
	return &adapter.SendEmailResult{MessageID: fmt.Sprintf("mock-%d", len(m.sent))}, nil
}

// SetFailure makes every following Send fail with err.
func (m *MockEmailSender) SetFailure(err error, permanent bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
	m.permanent = permanent
}

// Sent returns the messages accepted so far.
func (m *MockEmailSender) Sent() []adapter.SendEmailInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]adapter.SendEmailInput(nil), m.sent...)
}

var (
	_ adapter.EmailSender = (*ResendClient)(nil)
	_ adapter.EmailSender = (*MockEmailSender)(nil)
)
