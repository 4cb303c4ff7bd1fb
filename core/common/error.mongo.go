package common

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// ConvertMongoError dịch lỗi của mongo driver sang *Error của hệ thống.
// Raw transport error không bao giờ được trả thẳng ra handler.
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}

	if mongo.IsDuplicateKeyError(err) {
		return NewError(ErrCodeDatabaseQuery, "Dữ liệu đã tồn tại", StatusConflict, err)
	}

	if mongo.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return NewError(ErrCodeDatabaseConnection, "Truy vấn cơ sở dữ liệu quá thời gian", StatusServiceUnavailable, err)
	}

	if mongo.IsNetworkError(err) {
		return NewError(ErrCodeDatabaseConnection, "Không kết nối được cơ sở dữ liệu", StatusServiceUnavailable, err)
	}

	return NewError(ErrCodeDatabase, err.Error(), StatusInternalServerError, err)
}
