package main

import (
	"context"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"google.golang.org/api/option"

	"retro_notify/config"
	"retro_notify/core/api/handler"
	models "retro_notify/core/api/models/mongodb"
	"retro_notify/core/api/router"
	"retro_notify/core/api/services"
	"retro_notify/core/database"
	"retro_notify/core/delivery/channels"
	"retro_notify/core/notification"
	"retro_notify/core/push"
	"retro_notify/core/watcher"
)

// Các singleton của ứng dụng. Tất cả được khởi tạo một lần trong main
// và inject vào service/handler qua constructor, không dùng registry toàn cục.
var (
	serverConfig    *config.Configuration
	mongoClient     *mongo.Client
	messagingClient *messaging.Client

	orderNotifier *notification.Notifier
	orderWatcher  *watcher.OrderWatcher
	routeHandlers router.Handlers
)

// initConfig khởi tạo cấu hình server từ file env
func initConfig() {
	serverConfig = config.NewConfig()
	if serverConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

// initDatabase khởi tạo kết nối MongoDB và đảm bảo collections/indexes tồn tại
func initDatabase() {
	var err error
	mongoClient, err = database.GetInstance(serverConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")

	if err := database.EnsureCollectionsAndIndexes(mongoClient, serverConfig.MongoDB_DBName); err != nil {
		logrus.Fatalf("Failed to ensure collections and indexes: %v", err)
	}
	logrus.Info("Ensured collections and indexes")
}

// initFirebase khởi tạo Firebase Admin SDK và messaging client.
// Trả về nil nếu config không đầy đủ, caller quyết định có fatal hay không.
func initFirebase() {
	if serverConfig.FirebaseCredentialsPath == "" {
		logrus.Warn("Firebase config không đầy đủ, bỏ qua khởi tạo Firebase")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := []option.ClientOption{option.WithCredentialsFile(serverConfig.FirebaseCredentialsPath)}
	fbCfg := &firebase.Config{}
	if serverConfig.FirebaseProjectID != "" {
		fbCfg.ProjectID = serverConfig.FirebaseProjectID
	}

	app, err := firebase.NewApp(ctx, fbCfg, opts...)
	if err != nil {
		logrus.Errorf("Failed to initialize Firebase app: %v", err)
		return
	}

	messagingClient, err = app.Messaging(ctx)
	if err != nil {
		logrus.Errorf("Failed to initialize Firebase messaging client: %v", err)
		return
	}

	logrus.Info("Firebase messaging initialized successfully")
}

// initServices lắp ráp toàn bộ pipeline: services -> builder -> dispatcher -> notifier -> watcher -> handlers.
// Mỗi service nhận collection riêng của nó qua constructor để test có thể thay bằng fake.
func initServices() {
	db := mongoClient.Database(serverConfig.MongoDB_DBName)

	orderService := services.NewOrderService(db.Collection(models.CollectionOrders))
	tokenService := services.NewAdminTokenService(db.Collection(models.CollectionAdminTokens))
	notifiedService := services.NewNotifiedOrderService(db.Collection(models.CollectionNotifiedOrders))

	builder := notification.NewBuilder(serverConfig.PushClickAction, push.ParseMode(serverConfig.PushMode))

	var dispatcher notification.Dispatcher
	if messagingClient != nil {
		dispatcher = push.NewDispatcher(messagingClient)
	} else {
		// Không có messaging client thì mọi request notify sẽ fail có kiểm soát
		// thay vì panic giữa chừng
		dispatcher = push.NewUnavailableDispatcher()
	}

	orderNotifier = notification.NewNotifier(tokenService, notifiedService, builder, dispatcher)
	orderWatcher = watcher.NewOrderWatcher(orderService, orderNotifier)

	mailer := channels.NewEmailSender(channels.SMTPConfig{
		Host:      serverConfig.SMTPHost,
		Port:      serverConfig.SMTPPort,
		Username:  serverConfig.SMTPUsername,
		Password:  serverConfig.SMTPPassword,
		FromEmail: serverConfig.FromEmail,
		FromName:  serverConfig.FromName,
	})

	routeHandlers = router.Handlers{
		Notification: handler.NewNotificationHandler(orderNotifier),
		Email:        handler.NewEmailHandler(mailer),
		System:       handler.NewSystemHandler(),
	}

	logrus.Info("Initialized services and handlers")
}
