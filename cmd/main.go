package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quickmatch/backend/internal/api/handler"
	"quickmatch/backend/internal/config"
	"quickmatch/backend/internal/models"
	"quickmatch/backend/internal/storage"
	"quickmatch/backend/internal/token"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	// 1. PostgreSQL (існуюче з'єднання через lib/pq)
	conn, err := sql.Open("postgres", cfg.PostgresURL)
	if err != nil {
		log.Fatalf("Failed to open PostgreSQL connection: %v", err)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	// 2. Redis
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	// Перевірка з'єднання Redis
	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	// 3. Міграції (Створення таблиць)
	if err := db.AutoMigrate(&models.Room{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func setupRouter(h *handler.Handler, allowOrigin string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())

	// Будь-яка неперехоплена паніка перетворюється на загальну 500.
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("ERROR: Recovered from panic: %v", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong!"})
	}))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{allowOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/health", h.Health)

	r.GET("/api/rooms", h.MatchRoom)
	r.POST("/api/rooms", h.CreateRoom)
	r.PUT("/api/rooms/:roomId", h.ReleaseRoom)

	return r
}

func main() {
	log.Println("Starting QuickMatch Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 1. Ініціалізація залежностей
	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)
	issuer := token.NewIssuer(cfg.AgoraAppID, cfg.AgoraAppCert)

	// 2. Налаштування Gin та роутингу
	h := handler.NewHandler(s, issuer)
	r := setupRouter(h, cfg.AllowOrigin)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()
	log.Printf("Server running on http://localhost:%s", cfg.Port)

	// 3. Очікування сигналу зупинки
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-done

	log.Println("Server is shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("ERROR: Server shutdown failed: %v", err)
	}
	if err := s.Close(); err != nil {
		log.Printf("ERROR: Closing storage connections failed: %v", err)
	}
}
