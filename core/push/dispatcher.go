package push

import (
	"context"

	"firebase.google.com/go/v4/messaging"

	"retro_notify/core/common"
	"retro_notify/core/logger"
)

// fcmBatchLimit là số token tối đa FCM chấp nhận trong một multicast request
const fcmBatchLimit = 500

// MulticastSender là phần của FCM messaging client mà dispatcher cần.
// *messaging.Client thỏa interface này; test dùng fake.
type MulticastSender interface {
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

// TokenError - một token bị gateway từ chối kèm lý do
type TokenError struct {
	Token  string `json:"token"`
	Reason string `json:"reason"`
}

// DispatchResult - kết quả một lần dispatch, chỉ log chứ không persist
type DispatchResult struct {
	SuccessCount int          `json:"successCount"`
	FailureCount int          `json:"failureCount"`
	Failures     []TokenError `json:"failures,omitempty"`
}

// Dispatcher gửi payload tới toàn bộ token set trong một lần multicast logic.
// Partial failure (một số token bị từ chối) không phải error; chỉ lỗi
// transport/auth toàn phần với gateway mới trả về error.
type Dispatcher struct {
	sender MulticastSender
}

// NewDispatcher tạo Dispatcher trên messaging client được inject
func NewDispatcher(sender MulticastSender) *Dispatcher {
	return &Dispatcher{sender: sender}
}

// Dispatch gửi payload tới tất cả tokens.
// Precondition: tokens không rỗng (caller đã short-circuit trường hợp rỗng).
// Token lỗi không được retry ở tầng này.
func (d *Dispatcher) Dispatch(ctx context.Context, payload Payload, tokens []string) (*DispatchResult, error) {
	log := logger.GetAppLogger()

	if len(tokens) == 0 {
		return nil, common.NewError(
			common.ErrCodeNotifEmptyTokens,
			"no admin tokens found",
			common.StatusBadRequest,
			nil,
		)
	}

	result := &DispatchResult{}

	// FCM giới hạn 500 token một request, chia batch nếu vượt
	for start := 0; start < len(tokens); start += fcmBatchLimit {
		end := start + fcmBatchLimit
		if end > len(tokens) {
			end = len(tokens)
		}
		batch := tokens[start:end]

		resp, err := d.sender.SendEachForMulticast(ctx, d.buildMessage(payload, batch))
		if err != nil {
			// Lỗi toàn phần: gateway không truy cập được / auth fail / payload sai
			log.WithError(err).WithFields(map[string]interface{}{
				"tokens": len(batch),
			}).Error("🔔 [PUSH] Gửi multicast thất bại toàn phần")
			return nil, common.NewError(
				common.ErrCodeNotifGateway,
				err.Error(),
				common.StatusInternalServerError,
				err,
			)
		}

		result.SuccessCount += resp.SuccessCount
		result.FailureCount += resp.FailureCount
		for i, sr := range resp.Responses {
			if sr.Success {
				continue
			}
			reason := "unknown"
			if sr.Error != nil {
				reason = sr.Error.Error()
			}
			result.Failures = append(result.Failures, TokenError{
				Token:  batch[i],
				Reason: reason,
			})
		}
	}

	log.WithFields(map[string]interface{}{
		"successCount": result.SuccessCount,
		"failureCount": result.FailureCount,
	}).Info("🔔 [PUSH] Đã gửi push notifications")

	// Partial failure: report từng token, không retry, không escalate
	for _, f := range result.Failures {
		log.WithFields(map[string]interface{}{
			"token":  f.Token,
			"reason": f.Reason,
		}).Warn("🔔 [PUSH] Token bị gateway từ chối")
	}

	return result, nil
}

// UnavailableDispatcher được dùng khi Firebase messaging client không khởi tạo được.
// Mọi dispatch đều fail có kiểm soát với mã NOTIF_003 thay vì panic giữa request.
type UnavailableDispatcher struct{}

// NewUnavailableDispatcher tạo dispatcher luôn báo gateway không khả dụng
func NewUnavailableDispatcher() *UnavailableDispatcher {
	return &UnavailableDispatcher{}
}

// Dispatch luôn trả về lỗi gateway
func (d *UnavailableDispatcher) Dispatch(ctx context.Context, payload Payload, tokens []string) (*DispatchResult, error) {
	return nil, common.NewError(
		common.ErrCodeNotifGateway,
		"push gateway is not configured",
		common.StatusServiceUnavailable,
		nil,
	)
}

// buildMessage dựng MulticastMessage theo Mode của payload
func (d *Dispatcher) buildMessage(payload Payload, tokens []string) *messaging.MulticastMessage {
	msg := &messaging.MulticastMessage{
		Tokens: tokens,
	}

	if payload.Mode == ModeData || payload.Mode == ModeBoth {
		msg.Data = payload.Data
	}

	if payload.Mode == ModeNotification || payload.Mode == ModeBoth {
		msg.Notification = &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Body,
		}
		if payload.ClickAction != "" {
			// Admin nhận push trên browser, click mở trang quản lý
			msg.Webpush = &messaging.WebpushConfig{
				FCMOptions: &messaging.WebpushFCMOptions{
					Link: payload.ClickAction,
				},
			}
		}
	}

	return msg
}
