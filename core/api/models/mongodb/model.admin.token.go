package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminToken - một device token FCM của admin đã đăng ký nhận push.
// Mỗi document một token; flow đăng ký/xoay token thuộc hệ thống khác,
// pipeline này chỉ đọc toàn bộ tập token mỗi lần dispatch.
type AdminToken struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Token     string             `json:"token" bson:"token"`                         // Token FCM (opaque string)
	Platform  string             `json:"platform,omitempty" bson:"platform,omitempty"` // "web" | "android" | "ios" (optional)
	CreatedAt int64              `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
}
