package email

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/receipt-split/backend/internal/application/adapter"
	domainerror "github.com/receipt-split/backend/internal/domain/error"
	"github.com/receipt-split/backend/internal/infra/testutil"
)

func newTestResendClient(t *testing.T, api *testutil.ApiMock) *ResendClient {
	t.Helper()
	rc := NewResendClient("re_test_key", "Receipt Split", "noreply@example.com")
	base, err := url.Parse(api.GetUrl() + "/")
	require.NoError(t, err)
	rc.client.BaseURL = base
	return rc
}

func TestResendClient_Send(t *testing.T) {
	api := testutil.NewApiServer()
	api.Start()
	defer api.Close()

	input := adapter.SendEmailInput{
		To:      "jiwoo@example.com",
		Name:    "지우",
		Subject: "Top up needed for receipt 3f2b8c1e",
		HTML:    "<p>hi</p>",
		Text:    "hi",
	}

	t.Run("success", func(t *testing.T) {
		api.SetResponse(http.MethodPost, "/emails", http.StatusOK, map[string]any{"id": "email_123"})

		result, err := newTestResendClient(t, api).Send(context.Background(), input)

		require.NoError(t, err)
		assert.Equal(t, "email_123", result.MessageID)
		body := api.GetRequestBody(http.MethodPost, "/emails", 0)
		assert.Equal(t, "Receipt Split <noreply@example.com>", body["from"])
		assert.Equal(t, []any{"jiwoo@example.com"}, body["to"])
		assert.Equal(t, "Bearer re_test_key", api.GetRequestHeaders(http.MethodPost, "/emails", 0).Get("Authorization"))
	})

	tests := []struct {
		name         string
		status       int
		message      string
		expectedCode domainerror.EmailErrorCode
	}{
		{"validation error is permanent", http.StatusUnprocessableEntity, "Invalid `to` field", domainerror.ErrCodePermanentEmailFailure},
		{"rate limit is temporary", http.StatusTooManyRequests, "Too many requests", domainerror.ErrCodeTemporaryEmailFailure},
		{"server error is temporary", http.StatusInternalServerError, "Something went wrong on our end", domainerror.ErrCodeTemporaryEmailFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api.SetResponse(http.MethodPost, "/emails", tt.status, map[string]any{
				"statusCode": tt.status,
				"name":       "error",
				"message":    tt.message,
			})

			_, err := newTestResendClient(t, api).Send(context.Background(), input)

			var emailErr *domainerror.EmailError
			require.ErrorAs(t, err, &emailErr)
			assert.Equal(t, tt.expectedCode, emailErr.Code)
		})
	}
}

func TestClassifySendError(t *testing.T) {
	cause := errors.New("[ERROR]: boom")

	tests := []struct {
		name      string
		status    int
		permanent bool
		sentinel  error
	}{
		{"unauthorized", http.StatusUnauthorized, true, domainerror.ErrEmailRejected},
		{"validation", http.StatusUnprocessableEntity, true, domainerror.ErrEmailRejected},
		{"rate limited", http.StatusTooManyRequests, false, domainerror.ErrEmailUnavailable},
		{"bad gateway", http.StatusBadGateway, false, domainerror.ErrEmailUnavailable},
		{"no response", 0, false, domainerror.ErrEmailUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifySendError(tt.status, cause)

			assert.Equal(t, tt.permanent, domainerror.IsPermanentEmailFailure(err))
			assert.ErrorIs(t, err, tt.sentinel)
			assert.ErrorIs(t, err, cause)
		})
	}
}
