package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"retro_notify/core/api/router"
	"retro_notify/core/database"
	"retro_notify/core/logger"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	// Logger tự đọc environment variables để cấu hình level/format/rotation
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	log := logger.GetAppLogger()
	log.Info("Logger system initialized successfully")
}

// Hàm main
func main() {
	// Khởi tạo logger trước để các bước sau log được
	initLogger()

	// Khởi tạo theo thứ tự: config -> database -> firebase -> services
	initConfig()
	initDatabase()
	initFirebase()
	initServices()

	log := logger.GetAppLogger()

	// Context gốc của watcher, cancel khi shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Chạy order watcher trong goroutine riêng (nếu được bật).
	// Watcher tự xử lý reconnect, goroutine chỉ kết thúc khi context cancel.
	if serverConfig.WatcherEnabled {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(map[string]interface{}{
						"panic": r,
					}).Error("👀 [WATCHER] Watcher goroutine panic")
				}
			}()

			log.Info("👀 [WATCHER] Starting order watcher...")
			orderWatcher.Run(ctx)
			log.Warn("👀 [WATCHER] Watcher đã dừng")
		}()
	} else {
		log.Info("👀 [WATCHER] Watcher disabled by config")
	}

	// Khởi tạo Fiber app và đăng ký routes
	app := InitFiberApp(serverConfig)
	router.Register(app, routeHandlers)

	// Bắt tín hiệu SIGINT/SIGTERM để shutdown có trật tự
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		log.WithFields(map[string]interface{}{
			"signal": sig.String(),
		}).Info("Nhận tín hiệu shutdown, đang dừng server...")

		// Dừng watcher trước, sau đó drain các request đang chạy
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.WithError(err).Error("Lỗi khi shutdown Fiber app")
		}
	}()

	log.WithFields(map[string]interface{}{
		"address": serverConfig.Address,
	}).Info("Starting Fiber server...")

	if err := app.Listen(serverConfig.Address); err != nil {
		log.Fatalf("Error in Fiber Listen: %v", err)
	}

	// Listen đã return nghĩa là app.Shutdown hoàn tất, đóng kết nối database
	if err := database.CloseInstance(mongoClient); err != nil {
		log.WithError(err).Error("Lỗi khi đóng kết nối MongoDB")
	}

	log.Info("Server stopped")
}
