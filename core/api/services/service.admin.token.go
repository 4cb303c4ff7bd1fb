package services

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	models "retro_notify/core/api/models/mongodb"
)

// AdminTokenService là cấu trúc chứa các phương thức đọc admin device tokens
type AdminTokenService struct {
	*BaseServiceMongoImpl[models.AdminToken]
}

// NewAdminTokenService tạo mới AdminTokenService trên collection được inject
func NewAdminTokenService(collection *mongo.Collection) *AdminTokenService {
	return &AdminTokenService{
		BaseServiceMongoImpl: NewBaseServiceMongo[models.AdminToken](collection),
	}
}

// ListTokens đọc toàn bộ tập token tại một thời điểm và project field token.
// Tập rỗng trả về slice rỗng, không phải error - caller tự short-circuit.
// Thứ tự là thứ tự store trả về, không mang ý nghĩa.
func (s *AdminTokenService) ListTokens(ctx context.Context) ([]string, error) {
	docs, err := s.Find(ctx, nil, nil)
	if err != nil {
		return nil, err
	}

	tokens := make([]string, 0, len(docs))
	for _, doc := range docs {
		// Bỏ qua document có token rỗng (dữ liệu đăng ký lỗi)
		if doc.Token == "" {
			continue
		}
		tokens = append(tokens, doc.Token)
	}

	return tokens, nil
}
