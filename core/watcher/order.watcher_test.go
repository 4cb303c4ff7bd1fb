package watcher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "retro_notify/core/api/models/mongodb"
	"retro_notify/core/notification"
	"retro_notify/core/push"
)

// stubNotifier ghi lại các lần được gọi
type stubNotifier struct {
	calls []notification.OrderInfo
	err   error
}

func (s *stubNotifier) NotifyOrderPaid(ctx context.Context, info notification.OrderInfo, force bool) (*push.DispatchResult, error) {
	s.calls = append(s.calls, info)
	if s.err != nil {
		return nil, s.err
	}
	return &push.DispatchResult{SuccessCount: 1}, nil
}

// TestHandleEventPaidOrder - event có fullDocument paid kích hoạt notifier với thông tin đơn hàng
func TestHandleEventPaidOrder(t *testing.T) {
	notifier := &stubNotifier{}
	w := NewOrderWatcher(nil, notifier)

	orderID := primitive.NewObjectID()
	w.handleEvent(context.Background(), orderChangeEvent{
		OperationType: "update",
		FullDocument: &models.Order{
			ID:     orderID,
			Status: models.OrderStatusPaid,
			Address: models.OrderAddress{
				Name:  "Jane",
				Insta: "@jane",
			},
		},
	})

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, orderID.Hex(), notifier.calls[0].OrderID)
	assert.Equal(t, "Jane", notifier.calls[0].CustomerName)
	assert.Equal(t, "@jane", notifier.calls[0].InstaHandle)
}

// TestHandleEventAlreadyNotified - replay event bị marker chặn không phải lỗi
func TestHandleEventAlreadyNotified(t *testing.T) {
	notifier := &stubNotifier{err: notification.ErrAlreadyNotified}
	w := NewOrderWatcher(nil, notifier)

	// Không panic, không retry
	w.handleEvent(context.Background(), orderChangeEvent{
		OperationType: "insert",
		FullDocument: &models.Order{
			ID:     primitive.NewObjectID(),
			Status: models.OrderStatusPaid,
		},
	})

	assert.Len(t, notifier.calls, 1)
}

// TestHandleEventInvalidDocumentKey - thiếu fullDocument và documentKey không hợp lệ thì bỏ qua
func TestHandleEventInvalidDocumentKey(t *testing.T) {
	notifier := &stubNotifier{}
	w := NewOrderWatcher(nil, notifier)

	ev := orderChangeEvent{OperationType: "update"}
	ev.DocumentKey.ID = "not-an-object-id"

	w.handleEvent(context.Background(), ev)

	assert.Empty(t, notifier.calls)
}

// TestPipelineFilter kiểm tra pipeline chỉ match thay đổi đưa đơn hàng vào paid
func TestPipelineFilter(t *testing.T) {
	w := NewOrderWatcher(nil, &stubNotifier{})

	p := w.pipeline()
	require.Len(t, p, 1)

	match, ok := p[0][0].Value.(bson.M)
	require.True(t, ok)
	assert.Equal(t, models.OrderStatusPaid, match["fullDocument.status"])

	opTypes, ok := match["operationType"].(bson.M)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"insert", "update", "replace"}, opTypes["$in"])
}
