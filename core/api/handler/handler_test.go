package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retro_notify/core/common"
	"retro_notify/core/notification"
	"retro_notify/core/push"
)

// stubNotifier giả lập pipeline notify, trả về kết quả theo kịch bản
type stubNotifier struct {
	calls  int
	info   notification.OrderInfo
	force  bool
	result *push.DispatchResult
	err    error
}

func (s *stubNotifier) NotifyOrderPaid(ctx context.Context, info notification.OrderInfo, force bool) (*push.DispatchResult, error) {
	s.calls++
	s.info = info
	s.force = force
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

// stubMailer ghi lại email được gửi
type stubMailer struct {
	recipient string
	subject   string
	htmlBody  string
	err       error
}

func (s *stubMailer) Send(recipient, subject, htmlBody string) error {
	s.recipient = recipient
	s.subject = subject
	s.htmlBody = htmlBody
	return s.err
}

func newNotificationApp(notifier OrderNotifier) *fiber.App {
	app := fiber.New()
	app.Post("/send-order-notification", NewNotificationHandler(notifier).HandleSendOrderNotification)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp, result
}

// TestSendOrderNotificationSuccess - happy path trả về 200 kèm summary
func TestSendOrderNotificationSuccess(t *testing.T) {
	notifier := &stubNotifier{result: &push.DispatchResult{SuccessCount: 2}}
	app := newNotificationApp(notifier)

	resp, result := postJSON(t, app, "/send-order-notification", map[string]interface{}{
		"orderId":      "A1",
		"customerName": "Jane",
		"instaHandle":  "@jane",
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, result["success"])
	assert.Equal(t, "Notification sent successfully", result["message"])

	response, ok := result["response"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), response["successCount"])

	// Thông tin đơn hàng được truyền nguyên vẹn vào pipeline
	assert.Equal(t, "A1", notifier.info.OrderID)
	assert.Equal(t, "Jane", notifier.info.CustomerName)
	assert.Equal(t, "@jane", notifier.info.InstaHandle)
	assert.False(t, notifier.force)
}

// TestSendOrderNotificationMissingFields - thiếu field bắt buộc trả về 400 trước khi chạm pipeline
func TestSendOrderNotificationMissingFields(t *testing.T) {
	notifier := &stubNotifier{}
	app := newNotificationApp(notifier)

	resp, result := postJSON(t, app, "/send-order-notification", map[string]interface{}{
		"orderId": "A1",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, result["success"])
	assert.Equal(t, "Missing required fields", result["error"])
	assert.Equal(t, 0, notifier.calls)
}

// TestSendOrderNotificationNoTokens - tập token rỗng trả về 400
func TestSendOrderNotificationNoTokens(t *testing.T) {
	notifier := &stubNotifier{err: notification.ErrNoAdminTokens}
	app := newNotificationApp(notifier)

	resp, result := postJSON(t, app, "/send-order-notification", map[string]interface{}{
		"orderId":      "A1",
		"customerName": "Jane",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, result["success"])
	assert.Equal(t, common.ErrCodeNotifEmptyTokens.Code, result["code"])
	assert.NotEmpty(t, result["error"])
}

// TestSendOrderNotificationDuplicate - đơn hàng đã notify trả về 409
func TestSendOrderNotificationDuplicate(t *testing.T) {
	notifier := &stubNotifier{err: notification.ErrAlreadyNotified}
	app := newNotificationApp(notifier)

	resp, result := postJSON(t, app, "/send-order-notification", map[string]interface{}{
		"orderId":      "A1",
		"customerName": "Jane",
	})

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, common.ErrCodeNotifDuplicate.Code, result["code"])
}

// TestSendOrderNotificationGatewayFailure - dispatch thất bại toàn phần trả về 500 với error non-empty
func TestSendOrderNotificationGatewayFailure(t *testing.T) {
	notifier := &stubNotifier{err: common.NewError(
		common.ErrCodeNotifGateway,
		"connection refused",
		common.StatusInternalServerError,
		nil,
	)}
	app := newNotificationApp(notifier)

	resp, result := postJSON(t, app, "/send-order-notification", map[string]interface{}{
		"orderId":      "A1",
		"customerName": "Jane",
	})

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, false, result["success"])
	assert.Equal(t, common.ErrCodeNotifGateway.Code, result["code"])
	assert.NotEmpty(t, result["error"])
}

// TestSendOrderNotificationBadJSON - body không phải JSON trả về 400 format error
func TestSendOrderNotificationBadJSON(t *testing.T) {
	notifier := &stubNotifier{}
	app := newNotificationApp(notifier)

	req := httptest.NewRequest(http.MethodPost, "/send-order-notification", bytes.NewReader([]byte("not-json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 0, notifier.calls)
}

// TestSendOrderNotificationForce - force được truyền xuống pipeline
func TestSendOrderNotificationForce(t *testing.T) {
	notifier := &stubNotifier{result: &push.DispatchResult{SuccessCount: 1}}
	app := newNotificationApp(notifier)

	resp, _ := postJSON(t, app, "/send-order-notification", map[string]interface{}{
		"orderId":      "A1",
		"customerName": "Jane",
		"force":        true,
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, notifier.force)
}

func newEmailApp(mailer Mailer) *fiber.App {
	app := fiber.New()
	app.Post("/send-email", NewEmailHandler(mailer).HandleSendEmail)
	return app
}

func validEmailPayload() map[string]interface{} {
	return map[string]interface{}{
		"to":           "jane@example.com",
		"customerName": "Jane",
		"orderId":      "A1",
		"total":        "1500",
		"trackingId":   "TRK-123",
		"items": []map[string]interface{}{
			{"name": "Vintage Tee", "quantity": 1, "price": "1500"},
		},
	}
}

// TestSendEmailSuccess - email render từ template và gửi qua mailer
func TestSendEmailSuccess(t *testing.T) {
	mailer := &stubMailer{}
	app := newEmailApp(mailer)

	resp, result := postJSON(t, app, "/send-email", validEmailPayload())

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, result["success"])
	assert.Equal(t, "Email sent successfully", result["message"])

	assert.Equal(t, "jane@example.com", mailer.recipient)
	assert.Equal(t, "Your Order Has Been Shipped!", mailer.subject)
	assert.Contains(t, mailer.htmlBody, "Jane")
	assert.Contains(t, mailer.htmlBody, "TRK-123")
}

// TestSendEmailMissingFields - thiếu field bắt buộc trả về 400, mailer không được gọi
func TestSendEmailMissingFields(t *testing.T) {
	mailer := &stubMailer{}
	app := newEmailApp(mailer)

	payload := validEmailPayload()
	delete(payload, "trackingId")

	resp, result := postJSON(t, app, "/send-email", payload)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing required fields", result["error"])
	assert.Empty(t, mailer.recipient)
}

// TestSendEmailInvalidAddress - email không hợp lệ bị validator chặn
func TestSendEmailInvalidAddress(t *testing.T) {
	mailer := &stubMailer{}
	app := newEmailApp(mailer)

	payload := validEmailPayload()
	payload["to"] = "not-an-email"

	resp, _ := postJSON(t, app, "/send-email", payload)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, mailer.recipient)
}

// TestSendEmailTransportFailure - SMTP lỗi trả về 500 MAIL_001
func TestSendEmailTransportFailure(t *testing.T) {
	mailer := &stubMailer{err: errors.New("smtp: connection refused")}
	app := newEmailApp(mailer)

	resp, result := postJSON(t, app, "/send-email", validEmailPayload())

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, common.ErrCodeMailTransport.Code, result["code"])
}

// TestHandleHealth - health check trả về status ok
func TestHandleHealth(t *testing.T) {
	app := fiber.New()
	app.Get("/health", NewSystemHandler().HandleHealth)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "ok", result["status"])
	assert.NotEmpty(t, result["uptime"])
}
