package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotifiedOrder - marker idempotency: mỗi đơn hàng chỉ được notify một lần,
// dù event đến từ change stream hay từ HTTP trigger (hoặc cả hai).
// Unique index trên orderId đảm bảo điều này ở tầng database.
type NotifiedOrder struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OrderID      string             `json:"orderId" bson:"orderId"` // ID đơn hàng đã notify
	NotifiedAt   int64              `json:"notifiedAt" bson:"notifiedAt"`
	SuccessCount int                `json:"successCount" bson:"successCount"` // Số token gửi thành công
	FailureCount int                `json:"failureCount" bson:"failureCount"` // Số token gửi thất bại
	CreatedAt    primitive.DateTime `json:"createdAt" bson:"createdAt"`       // Dùng cho TTL index
}
