package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	models "retro_notify/core/api/models/mongodb"
)

// OrderService là cấu trúc chứa các phương thức đọc đơn hàng.
// Collection orders thuộc sở hữu của hệ thống order, service này chỉ đọc.
type OrderService struct {
	*BaseServiceMongoImpl[models.Order]
}

// NewOrderService tạo mới OrderService trên collection được inject
func NewOrderService(collection *mongo.Collection) *OrderService {
	return &OrderService{
		BaseServiceMongoImpl: NewBaseServiceMongo[models.Order](collection),
	}
}

// FindById đọc một đơn hàng theo id (point read duy nhất của pipeline)
func (s *OrderService) FindById(ctx context.Context, id primitive.ObjectID) (models.Order, error) {
	return s.FindOneById(ctx, id)
}
