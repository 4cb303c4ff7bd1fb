package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	models "retro_notify/core/api/models/mongodb"
	"retro_notify/core/logger"
)

// notifiedOrderTTL: marker idempotency tự hết hạn sau 30 ngày.
// Đơn hàng chỉ chuyển sang "paid" một lần nên marker cũ không còn giá trị.
const notifiedOrderTTL = 30 * 24 * time.Hour

// EnsureCollectionsAndIndexes đảm bảo các collection và index cần thiết tồn tại.
// Orders và adminTokens do hệ thống ngoài ghi, nhưng vẫn tạo để deployment mới
// chạy được ngay; index chỉ phục vụ các truy vấn đọc của pipeline này.
func EnsureCollectionsAndIndexes(client *mongo.Client, dbName string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := client.Database(dbName)

	collections := []string{
		models.CollectionOrders,
		models.CollectionAdminTokens,
		models.CollectionNotifiedOrders,
	}

	collList, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	for _, collectionName := range collections {
		exists := false
		for _, existingColl := range collList {
			if existingColl == collectionName {
				exists = true
				break
			}
		}
		if !exists {
			logger.GetAppLogger().Infof("Collection %s chưa tồn tại, tạo mới.", collectionName)
			if err := db.CreateCollection(ctx, collectionName); err != nil {
				return fmt.Errorf("failed to create collection %s: %w", collectionName, err)
			}
		}
	}

	// Index cho change stream filter và point read theo status
	_, err = db.Collection(models.CollectionOrders).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "status", Value: 1}},
		Options: options.Index().SetName("status_single"),
	})
	if err != nil {
		return fmt.Errorf("failed to create index on %s: %w", models.CollectionOrders, err)
	}

	// Token là opaque string duy nhất cho một thiết bị
	_, err = db.Collection(models.CollectionAdminTokens).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "token", Value: 1}},
		Options: options.Index().SetName("token_unique").SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create index on %s: %w", models.CollectionAdminTokens, err)
	}

	// Unique index trên orderId là chốt chặn double-notify giữa hai entry point
	_, err = db.Collection(models.CollectionNotifiedOrders).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "orderId", Value: 1}},
		Options: options.Index().SetName("orderId_unique").SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create index on %s: %w", models.CollectionNotifiedOrders, err)
	}

	_, err = db.Collection(models.CollectionNotifiedOrders).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: 1}},
		Options: options.Index().SetName("createdAt_ttl").SetExpireAfterSeconds(int32(notifiedOrderTTL.Seconds())),
	})
	if err != nil {
		return fmt.Errorf("failed to create TTL index on %s: %w", models.CollectionNotifiedOrders, err)
	}

	logger.GetAppLogger().Infof("Database and collections are ensured in database: %s", dbName)
	return nil
}
