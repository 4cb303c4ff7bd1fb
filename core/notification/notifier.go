package notification

import (
	"context"

	"retro_notify/core/common"
	"retro_notify/core/logger"
	"retro_notify/core/push"
)

// Các error variants để caller branch theo category thay vì string-match message
var (
	// ErrNoAdminTokens - không có gì để gửi, không phải lỗi hệ thống
	ErrNoAdminTokens = common.NewError(
		common.ErrCodeNotifEmptyTokens,
		"no admin tokens found",
		common.StatusBadRequest,
		nil,
	)

	// ErrAlreadyNotified - đơn hàng đã được notify, marker idempotency chặn lại
	ErrAlreadyNotified = common.NewError(
		common.ErrCodeNotifDuplicate,
		"order already notified",
		common.StatusConflict,
		nil,
	)
)

// TokenLister đọc tập admin token hiện tại
type TokenLister interface {
	ListTokens(ctx context.Context) ([]string, error)
}

// DispatchMarker là marker idempotency cho dispatch
type DispatchMarker interface {
	MarkIfFirst(ctx context.Context, orderID string) (bool, error)
	Unmark(ctx context.Context, orderID string) error
	RecordResult(ctx context.Context, orderID string, successCount, failureCount int) error
}

// Dispatcher gửi payload tới token set
type Dispatcher interface {
	Dispatch(ctx context.Context, payload push.Payload, tokens []string) (*push.DispatchResult, error)
}

// Notifier điều phối một lần dispatch: đọc tokens -> mark -> build -> gửi.
// Change stream và HTTP trigger đều đi qua đây, nên hai entry point
// chia sẻ cùng logic và cùng marker idempotency.
type Notifier struct {
	tokens     TokenLister
	marker     DispatchMarker
	builder    *Builder
	dispatcher Dispatcher
}

// NewNotifier tạo Notifier với các collaborator được inject
func NewNotifier(tokens TokenLister, marker DispatchMarker, builder *Builder, dispatcher Dispatcher) *Notifier {
	return &Notifier{
		tokens:     tokens,
		marker:     marker,
		builder:    builder,
		dispatcher: dispatcher,
	}
}

// NotifyOrderPaid chạy pipeline dispatch cho một đơn hàng vừa paid.
// Token set được đọc tại một thời điểm duy nhất; token thêm/xóa sau đó
// không được gửi trong lần dispatch này.
//
// force=true bỏ qua marker idempotency (re-send có chủ đích từ admin).
func (n *Notifier) NotifyOrderPaid(ctx context.Context, info OrderInfo, force bool) (*push.DispatchResult, error) {
	log := logger.GetAppLogger()

	tokens, err := n.tokens.ListTokens(ctx)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		// Tập rỗng là empty-result condition, caller short-circuit chứ không coi là lỗi hệ thống
		return nil, ErrNoAdminTokens
	}

	if !force {
		first, err := n.marker.MarkIfFirst(ctx, info.OrderID)
		if err != nil {
			return nil, err
		}
		if !first {
			log.WithField("orderId", info.OrderID).Info("🔔 [NOTIFY] Đơn hàng đã được notify, bỏ qua")
			return nil, ErrAlreadyNotified
		}
	}

	payload := n.builder.Build(info)

	result, err := n.dispatcher.Dispatch(ctx, payload, tokens)
	if err != nil {
		// Dispatch thất bại toàn phần: gỡ marker để retry sau không bị chặn
		if !force {
			if unmarkErr := n.marker.Unmark(ctx, info.OrderID); unmarkErr != nil {
				log.WithError(unmarkErr).WithField("orderId", info.OrderID).
					Warn("🔔 [NOTIFY] Không gỡ được marker sau khi dispatch thất bại")
			}
		}
		return nil, err
	}

	if !force {
		if recordErr := n.marker.RecordResult(ctx, info.OrderID, result.SuccessCount, result.FailureCount); recordErr != nil {
			// Chỉ mất số liệu quan sát, dispatch vẫn thành công
			log.WithError(recordErr).WithField("orderId", info.OrderID).
				Warn("🔔 [NOTIFY] Không lưu được kết quả dispatch vào marker")
		}
	}

	return result, nil
}
