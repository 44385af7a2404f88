package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/intent-parser/app/config"
	"github.com/intent-parser/app/controllers"
	"github.com/intent-parser/app/services"
	"github.com/intent-parser/internal/external"
	"github.com/intent-parser/internal/gazetteer"
	"github.com/intent-parser/internal/location"
	"github.com/intent-parser/routes"
)

func main() {
	// 1. Load configuration
	cfg := config.Load()

	// 2. Khởi tạo logger
	logger := initLogger(cfg.Server.Env)
	defer logger.Sync()

	logger.Info("Starting Search Intent Parser Service")

	// 3. Kết nối MongoDB
	mongoDB := initMongoDB(cfg, logger)
	defer func() {
		if err := mongoDB.Client().Disconnect(context.Background()); err != nil {
			logger.Error("Error disconnecting MongoDB", zap.Error(err))
		}
	}()

	// 4. Gazetteer tỉnh/thành: bảng tĩnh nhúng sẵn, Meilisearch nếu được cấu hình
	staticGazetteer, err := gazetteer.NewStaticGazetteer(logger)
	if err != nil {
		logger.Fatal("Failed to load embedded province gazetteer", zap.Error(err))
	}

	var provinceLookup gazetteer.ProvinceLookup = staticGazetteer
	var meiliGazetteer *gazetteer.MeiliGazetteer
	if cfg.Meili.Host != "" {
		meiliGazetteer, err = gazetteer.NewMeiliGazetteer(gazetteer.MeiliConfig{
			Host:      cfg.Meili.Host,
			APIKey:    cfg.Meili.MasterKey,
			IndexName: cfg.Meili.IndexName,
			Timeout:   cfg.Meili.Timeout,
		}, staticGazetteer, logger)
		if err != nil {
			logger.Warn("Meilisearch không sẵn sàng, dùng gazetteer tĩnh", zap.Error(err))
		} else {
			provinceLookup = meiliGazetteer
			logger.Info("Meilisearch gazetteer enabled", zap.String("host", cfg.Meili.Host))
		}
	}

	// 5. Location detector (tỉnh/thành + quận/huyện)
	detector, err := location.NewDetector(provinceLookup, logger)
	if err != nil {
		logger.Fatal("Failed to load district alias table", zap.Error(err))
	}

	// 6. Khởi tạo cache services (Redis L1 + MongoDB L2)
	mongoCache, err := services.NewMongoCacheService(mongoDB, cfg.Mongo.L1Size, cfg.RulesetVersion, cfg.Mongo.TTL, logger)
	if err != nil {
		logger.Fatal("Failed to initialize MongoDB cache", zap.Error(err))
	}

	var cacheService services.ICacheService = mongoCache
	redisCache, err := services.NewRedisCacheService(cfg.Redis.URL, cfg.Redis.TTL, logger)
	if err != nil {
		logger.Warn("Redis không sẵn sàng, chỉ dùng MongoDB cache", zap.Error(err))
	} else {
		cacheService = services.NewHybridCacheService(redisCache, mongoCache, logger)
	}

	// 7. Warm up cache từ MongoDB
	if err := mongoCache.WarmUp(context.Background(), cfg.Mongo.L1Size/2); err != nil {
		logger.Warn("Failed to warm up cache", zap.Error(err))
	}

	// 8. Reconciler với dịch vụ chat-completion (tùy chọn)
	var reconciler *services.Reconciler
	if cfg.ModelEnabled() {
		chatClient, err := external.NewOpenAIChatClient(external.ChatConfig{
			BaseURL:     cfg.OpenAI.BaseURL,
			APIKey:      cfg.OpenAI.APIKey,
			Model:       cfg.OpenAI.Model,
			Temperature: cfg.OpenAI.Temperature,
			Timeout:     cfg.OpenAI.Timeout,
		}, logger)
		if err != nil {
			logger.Warn("Không khởi tạo được chat client, chạy thuần heuristic", zap.Error(err))
		} else {
			reconciler = services.NewReconciler(chatClient, cfg.OpenAI.MaxTokens, logger)
			logger.Info("Model reconciler enabled", zap.String("model", cfg.OpenAI.Model))
		}
	} else {
		logger.Info("Chat-completion chưa cấu hình, chạy thuần heuristic")
	}

	// 9. Khởi tạo services và controllers
	intentService := services.NewIntentService(detector, reconciler, cacheService, logger)
	intentController := controllers.NewIntentController(intentService, logger)

	var reloader controllers.GazetteerReloader
	if meiliGazetteer != nil {
		reloader = meiliGazetteer
	}
	adminController := controllers.NewAdminController(cacheService, reloader, logger)

	// 10. Khởi tạo Gin router và routes
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	routes.SetupAllRoutes(router, intentController, adminController, cfg.AdminToken)

	// 11. Khởi động server
	logger.Info("Search Intent Parser Service starting", zap.String("port", cfg.Server.Port))

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// initLogger khởi tạo structured logger
func initLogger(env string) *zap.Logger {
	var config zap.Config
	if env == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	logger, err := config.Build()
	if err != nil {
		log.Fatal("Cannot initialize logger:", err)
	}

	return logger
}

// initMongoDB khởi tạo kết nối MongoDB
func initMongoDB(cfg *config.Config, logger *zap.Logger) *mongo.Database {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.Mongo.URL))
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal("Failed to ping MongoDB", zap.Error(err))
	}

	db := client.Database(cfg.Mongo.Database)
	logger.Info("Connected to MongoDB", zap.String("database", cfg.Mongo.Database))

	return db
}
