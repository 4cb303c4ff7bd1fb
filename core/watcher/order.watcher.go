// Package watcher theo dõi collection orders qua MongoDB change stream
// và kích hoạt push notification khi một đơn hàng chuyển sang "paid".
package watcher

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	models "retro_notify/core/api/models/mongodb"
	"retro_notify/core/api/services"
	"retro_notify/core/logger"
	"retro_notify/core/notification"
	"retro_notify/core/push"
)

// Backoff khi stream đứt: 1s tăng dần gấp đôi, trần 30s
const (
	minBackoff = 1 * time.Second
	maxBackoff = 30 * time.Second
)

// OrderNotifier là phần của notification.Notifier mà watcher cần
type OrderNotifier interface {
	NotifyOrderPaid(ctx context.Context, info notification.OrderInfo, force bool) (*push.DispatchResult, error)
}

// orderChangeEvent là một change event đã decode từ change stream
type orderChangeEvent struct {
	OperationType string        `bson:"operationType"`
	FullDocument  *models.Order `bson:"fullDocument"`
	DocumentKey   struct {
		ID interface{} `bson:"_id"`
	} `bson:"documentKey"`
}

// OrderWatcher mở change stream trên orders, filter theo status "paid",
// và gọi notifier cho mỗi event match. Delivery là at-least-once
// (stream restart có thể replay event), notifier dedup bằng marker.
type OrderWatcher struct {
	orders   *services.OrderService
	notifier OrderNotifier
}

// NewOrderWatcher tạo OrderWatcher với các collaborator được inject
func NewOrderWatcher(orders *services.OrderService, notifier OrderNotifier) *OrderWatcher {
	return &OrderWatcher{
		orders:   orders,
		notifier: notifier,
	}
}

// pipeline chỉ match các thay đổi đưa đơn hàng vào trạng thái "paid".
// Insert thẳng với status paid và update chuyển sang paid đều match;
// modification/removal khác bị bỏ qua ngay trong server.
func (w *OrderWatcher) pipeline() mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"operationType":       bson.M{"$in": []string{"insert", "update", "replace"}},
			"fullDocument.status": models.OrderStatusPaid,
		}}},
	}
}

// Run chạy vòng watch cho đến khi ctx bị cancel.
// Stream đứt được mở lại với resume token và backoff tăng dần;
// không có caller nào để trả lời nên mọi kết quả chỉ được log.
//
// Khác với snapshot listener của Firestore, change stream của MongoDB
// không replay các document đã tồn tại khi mở stream mới - khởi động lại
// process không tự bắn lại notification cho các đơn paid cũ.
func (w *OrderWatcher) Run(ctx context.Context) {
	log := logger.GetAppLogger()
	backoff := minBackoff

	var resumeToken bson.Raw

	for {
		if ctx.Err() != nil {
			log.Info("👀 [WATCHER] Order watcher stopped")
			return
		}

		opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
		if resumeToken != nil {
			opts = opts.SetResumeAfter(resumeToken)
		}

		stream, err := w.orders.Collection().Watch(ctx, w.pipeline(), opts)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			log.WithError(err).WithField("backoff", backoff.String()).
				Error("👀 [WATCHER] Không mở được change stream, thử lại sau backoff")
			// Resume token có thể đã rớt khỏi oplog, mở lại từ hiện tại
			resumeToken = nil

			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			continue
		}

		log.Info("👀 [WATCHER] Đang theo dõi đơn hàng paid qua change stream")
		backoff = minBackoff

		for stream.Next(ctx) {
			var ev orderChangeEvent
			if err := stream.Decode(&ev); err != nil {
				log.WithError(err).Error("👀 [WATCHER] Không decode được change event, bỏ qua")
				continue
			}

			resumeToken = stream.ResumeToken()
			w.handleEvent(ctx, ev)
		}

		streamErr := stream.Err()
		stream.Close(context.Background())

		if ctx.Err() != nil {
			log.Info("👀 [WATCHER] Order watcher stopped")
			return
		}
		if streamErr != nil {
			log.WithError(streamErr).Error("👀 [WATCHER] Change stream bị đứt, mở lại")
		}
	}
}

// handleEvent xử lý một change event đã match filter
func (w *OrderWatcher) handleEvent(ctx context.Context, ev orderChangeEvent) {
	log := logger.GetAppLogger()

	order := ev.FullDocument
	if order == nil {
		// fullDocument có thể vắng nếu document bị xóa giữa update và lookup;
		// thử point read theo documentKey
		fetched, ok := w.fetchOrder(ctx, ev)
		if !ok {
			return
		}
		order = &fetched
	}

	info := notification.OrderInfo{
		OrderID:      order.ID.Hex(),
		CustomerName: order.Address.Name,
		InstaHandle:  order.Address.Insta,
	}

	log.WithField("orderId", info.OrderID).Info("👀 [WATCHER] New order placed")

	result, err := w.notifier.NotifyOrderPaid(ctx, info, false)
	if err != nil {
		if errors.Is(err, notification.ErrAlreadyNotified) {
			// Replay sau restart hoặc HTTP trigger đã gửi trước, không phải lỗi
			return
		}
		if errors.Is(err, notification.ErrNoAdminTokens) {
			log.WithField("orderId", info.OrderID).Warn("👀 [WATCHER] Không có admin token nào, bỏ qua dispatch")
			return
		}
		log.WithError(err).WithField("orderId", info.OrderID).Error("👀 [WATCHER] Dispatch thất bại")
		return
	}

	log.WithFields(map[string]interface{}{
		"orderId":      info.OrderID,
		"successCount": result.SuccessCount,
		"failureCount": result.FailureCount,
	}).Info("👀 [WATCHER] Đã notify đơn hàng mới")
}

// fetchOrder point read đơn hàng theo documentKey của event
func (w *OrderWatcher) fetchOrder(ctx context.Context, ev orderChangeEvent) (models.Order, bool) {
	log := logger.GetAppLogger()

	oid, ok := ev.DocumentKey.ID.(primitive.ObjectID)
	if !ok {
		log.Warn("👀 [WATCHER] Change event không có documentKey hợp lệ, bỏ qua")
		return models.Order{}, false
	}

	order, err := w.orders.FindById(ctx, oid)
	if err != nil {
		log.WithError(err).Warn("👀 [WATCHER] Không đọc được đơn hàng từ documentKey, bỏ qua")
		return models.Order{}, false
	}
	if order.Status != models.OrderStatusPaid {
		return models.Order{}, false
	}
	return order, true
}
