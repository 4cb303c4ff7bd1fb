package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	models "retro_notify/core/api/models/mongodb"
	"retro_notify/core/common"
)

// NotifiedOrderService quản lý marker idempotency cho dispatch.
// Cả change stream và HTTP trigger đều đi qua marker này trước khi gửi push,
// nên một đơn hàng không bao giờ bị notify hai lần.
type NotifiedOrderService struct {
	*BaseServiceMongoImpl[models.NotifiedOrder]
}

// NewNotifiedOrderService tạo mới NotifiedOrderService trên collection được inject
func NewNotifiedOrderService(collection *mongo.Collection) *NotifiedOrderService {
	return &NotifiedOrderService{
		BaseServiceMongoImpl: NewBaseServiceMongo[models.NotifiedOrder](collection),
	}
}

// MarkIfFirst chèn marker cho orderID.
// Trả về true nếu đây là lần đầu (được phép dispatch),
// false nếu đơn hàng đã có marker (đã notify trước đó).
func (s *NotifiedOrderService) MarkIfFirst(ctx context.Context, orderID string) (bool, error) {
	now := time.Now()
	_, err := s.InsertOne(ctx, models.NotifiedOrder{
		OrderID:    orderID,
		NotifiedAt: now.Unix(),
		CreatedAt:  primitive.NewDateTimeFromTime(now),
	})
	if err != nil {
		// Duplicate key từ unique index orderId nghĩa là đã notify
		var customErr *common.Error
		if errors.As(err, &customErr) && customErr.StatusCode == common.StatusConflict {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Unmark xóa marker của orderID.
// Dùng khi dispatch thất bại toàn phần sau khi đã mark, để lần retry sau không bị chặn.
func (s *NotifiedOrderService) Unmark(ctx context.Context, orderID string) error {
	return s.DeleteOne(ctx, bson.M{"orderId": orderID})
}

// RecordResult lưu lại kết quả dispatch vào marker (chỉ để quan sát, không dùng cho logic)
func (s *NotifiedOrderService) RecordResult(ctx context.Context, orderID string, successCount, failureCount int) error {
	return s.UpdateOne(ctx,
		bson.M{"orderId": orderID},
		bson.M{"$set": bson.M{
			"successCount": successCount,
			"failureCount": failureCount,
		}},
		nil,
	)
}
