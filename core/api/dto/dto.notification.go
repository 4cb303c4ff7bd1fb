package dto

// SendOrderNotificationInput dùng cho trigger push notification trực tiếp (tầng transport).
// orderId và customerName bắt buộc; instaHandle và force optional.
type SendOrderNotificationInput struct {
	OrderID      string `json:"orderId" validate:"required"`
	CustomerName string `json:"customerName" validate:"required"`
	InstaHandle  string `json:"instaHandle,omitempty"`
	Force        bool   `json:"force,omitempty"` // Bỏ qua marker idempotency (re-send có chủ đích)
}
