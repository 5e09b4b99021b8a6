package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/receipt-split/backend/internal/domain/entity"
	domainerror "github.com/receipt-split/backend/internal/domain/error"
)

func TestRenderer_Render(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	t.Run("shortage notice", func(t *testing.T) {
		msg, err := renderer.Render(string(entity.TemplateShortageNotice), ShortageNoticeData{
			UserName:  "영희",
			ReceiptID: "3f2b8c1e",
			Owed:      "7833",
			Balance:   "2000",
			Shortage:  "5833",
		})

		require.NoError(t, err)
		assert.Contains(t, msg.HTML, "영희")
		assert.Contains(t, msg.Text, "Missing:         5833")
	})

	t.Run("html escapes user input", func(t *testing.T) {
		msg, err := renderer.Render(string(entity.TemplateSettlementReceipt), SettlementReceiptData{UserName: "<b>철수</b>"})

		require.NoError(t, err)
		assert.NotContains(t, msg.HTML, "<b>철수</b>")
		assert.Contains(t, msg.Text, "<b>철수</b>")
	})

	t.Run("unknown template", func(t *testing.T) {
		_, err := renderer.Render("password_reset", nil)
		assert.Error(t, err)
	})
}

func TestDecode(t *testing.T) {
	payload, err := Payload(SettlementReceiptData{UserName: "민수", AmountPaid: "9333"})
	require.NoError(t, err)
	assert.Equal(t, "9333", payload["amount_paid"])

	data, err := Decode(entity.TemplateSettlementReceipt, payload)
	require.NoError(t, err)
	assert.Equal(t, &SettlementReceiptData{UserName: "민수", AmountPaid: "9333"}, data)

	_, err = Decode("password_reset", payload)
	assert.ErrorIs(t, err, domainerror.ErrUnknownTemplate)
}
