package main

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/dharani18p/task-management-Web-App/configs"
	v1 "github.com/dharani18p/task-management-Web-App/internal/api/v1"
	"github.com/dharani18p/task-management-Web-App/internal/api/v1/handlers"
	"github.com/dharani18p/task-management-Web-App/internal/cache"
	"github.com/dharani18p/task-management-Web-App/internal/middleware"
	"github.com/dharani18p/task-management-Web-App/internal/repository"
	"github.com/dharani18p/task-management-Web-App/internal/store"
	ws "github.com/dharani18p/task-management-Web-App/internal/websocket"
	"github.com/dharani18p/task-management-Web-App/pkg/database"
	"github.com/dharani18p/task-management-Web-App/pkg/logger"
)

func main() {
	logger.InitLoggers()
	defer logger.SyncLoggers()
	logger.SystemLogger.Info("Starting application", zap.String("time", time.Now().Format(time.RFC3339)))

	cfg := configs.LoadConfig()

	db := database.ConnectDB(cfg)
	defer db.Close()
	logger.SystemLogger.Info("Database connected")

	repository.CreateTableIfNotExists(db)

	redisClient := database.ConnectRedis(cfg)
	defer redisClient.Close()
	logger.SystemLogger.Info("Redis connected")

	secret := []byte(cfg.JWTSecret)
	hub := ws.NewHub()
	go hub.Run()

	h := handlers.New(
		store.NewUserStore(db),
		store.NewTaskStore(db),
		cache.New(redisClient, 5*time.Minute),
		hub,
		secret,
	)

	app := fiber.New()

	app.Use(middleware.ErrorHandler())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
	}))

	v1.RegisterRoutes(app, h, secret)

	// Task event feed for the dashboard.
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", middleware.CookieAuth(secret), websocket.New(func(conn *websocket.Conn) {
		client := &ws.Client{Conn: conn}
		hub.Register <- client
		defer func() {
			hub.Unregister <- client
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}))

	addr := fmt.Sprintf(":%d", cfg.AppPort)
	logger.SystemLogger.Info("Application ready", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		logger.ErrorLogger.Error("Application failed to start", zap.Error(err))
	}
}
