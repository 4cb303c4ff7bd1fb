// Package models chứa các model MongoDB của hệ thống notify đơn hàng.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tên các collection trong database.
// Orders và AdminTokens thuộc sở hữu của hệ thống order/đăng ký thiết bị,
// pipeline này chỉ đọc. NotifiedOrders là marker idempotency của riêng pipeline.
const (
	CollectionOrders         = "orders"
	CollectionAdminTokens    = "adminTokens"
	CollectionNotifiedOrders = "notifiedOrders"
)

// OrderStatusPaid là giá trị status kích hoạt notify
const OrderStatusPaid = "paid"

// OrderAddress - thông tin địa chỉ/người nhận trong đơn hàng
type OrderAddress struct {
	Name  string `json:"name,omitempty" bson:"name,omitempty"`   // Tên hiển thị của khách hàng
	Insta string `json:"insta,omitempty" bson:"insta,omitempty"` // Instagram handle (optional)
}

// Order - đơn hàng do hệ thống order bên ngoài tạo và cập nhật.
// Pipeline này chỉ đọc các field cần cho notification, không bao giờ ghi.
type Order struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Status    string             `json:"status" bson:"status"` // Giá trị quan tâm: "paid"
	Address   OrderAddress       `json:"address,omitempty" bson:"address,omitempty"`
	CreatedAt int64              `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt int64              `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}
