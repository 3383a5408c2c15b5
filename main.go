package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pitchbook/config"
	"pitchbook/database"
	pitchRepo "pitchbook/database/repository/pitch"
	productRepo "pitchbook/database/repository/product"
	"pitchbook/handlers"
	"pitchbook/middleware"
	"pitchbook/routes"
	"pitchbook/services/chat"
	"pitchbook/services/weather"
	"pitchbook/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitChatContextCache()
	utils.StartHealthMonitor(utils.GetCacheClient(), utils.GetChatContextCacheClient(), database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	products := productRepo.NewMongoProductRepo()
	pitches := pitchRepo.NewMongoPitchRepo()

	// chat subsystem.
	shopClassifier, err := chat.NewShopClassifier(config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize shop classifier: %v", err)
	}
	bookingClassifier, err := chat.NewBookingClassifier(config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize booking classifier: %v", err)
	}
	imageTagger, err := chat.NewImageTagger(config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize image tagger: %v", err)
	}

	ctxStore := chat.NewRedisContextStore(
		utils.GetChatContextCacheClient(),
		time.Duration(config.AppConfig.ChatContextTTLMin)*time.Minute,
	)
	weatherSvc := weather.NewOpenWeatherService(config.AppConfig.OpenWeatherAPIKey)
	dispatcher := chat.NewDispatcher(products, ctxStore, weatherSvc, config.AppConfig.DefaultCity)
	rules := chat.NewRuleEngine(products, pitches)
	chatSvc := chat.NewDefaultChatService(shopClassifier, bookingClassifier, imageTagger, dispatcher, rules)

	// handlers.
	hb := &routes.HandlerBundle{
		Chat:    handlers.NewChatHandler(chatSvc),
		Catalog: handlers.NewCatalogHandler(products, pitches),
	}
	routes.RegisterRoutes(router, hb)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
