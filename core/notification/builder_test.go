package notification

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"retro_notify/core/push"
)

// TestBuilderBuild kiểm tra payload được dựng đúng từ thông tin đơn hàng
func TestBuilderBuild(t *testing.T) {
	builder := NewBuilder("https://retro-fifty.web.app", push.ModeData)

	t.Run("Đầy đủ thông tin khách hàng", func(t *testing.T) {
		payload := builder.Build(OrderInfo{
			OrderID:      "A1",
			CustomerName: "Jane",
			InstaHandle:  "@jane",
		})

		assert.Equal(t, "New Order Received", payload.Title)
		assert.Equal(t, "A1", payload.Data["orderId"])
		assert.Equal(t, "Jane", payload.Data["customerName"])
		assert.Equal(t, "@jane", payload.Data["instaHandle"])
		assert.Equal(t, "https://retro-fifty.web.app", payload.Data["click_action"])
		assert.Equal(t, push.ModeData, payload.Mode)

		// Body có dòng divider và từng field trên dòng riêng
		lines := strings.Split(payload.Body, "\n")
		assert.Len(t, lines, 5)
		assert.Equal(t, "-------------------------", lines[0])
		assert.Equal(t, "Order ID: #A1", lines[1])
		assert.Equal(t, "Name: Jane", lines[2])
		assert.Equal(t, "Insta: @jane", lines[3])
		assert.Equal(t, "-------------------------", lines[4])

		// Data.body và Body phải giống nhau để client nào render cũng ra một nội dung
		assert.Equal(t, payload.Body, payload.Data["body"])
		assert.Equal(t, payload.Title, payload.Data["title"])
	})

	t.Run("Thiếu tên và insta dùng giá trị fallback", func(t *testing.T) {
		payload := builder.Build(OrderInfo{OrderID: "B2"})

		assert.Equal(t, "Unknown", payload.Data["customerName"])
		assert.Equal(t, "N/A", payload.Data["instaHandle"])
		assert.Contains(t, payload.Body, "Name: Unknown")
		assert.Contains(t, payload.Body, "Insta: N/A")
	})

	t.Run("Build thuần túy - cùng input cho ra cùng payload", func(t *testing.T) {
		info := OrderInfo{OrderID: "C3", CustomerName: "Minh", InstaHandle: "@minh"}

		first := builder.Build(info)
		second := builder.Build(info)

		assert.Equal(t, first, second)
	})
}

// TestBuilderMode kiểm tra mode được truyền nguyên vẹn vào payload
func TestBuilderMode(t *testing.T) {
	for _, mode := range []push.Mode{push.ModeData, push.ModeNotification, push.ModeBoth} {
		builder := NewBuilder("https://example.com", mode)
		payload := builder.Build(OrderInfo{OrderID: "D4"})
		assert.Equal(t, mode, payload.Mode)
	}
}
