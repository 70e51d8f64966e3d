package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gulu-app/restock-service/internal/events"
	"github.com/gulu-app/restock-service/internal/handler"
	"github.com/gulu-app/restock-service/internal/repository"
	"github.com/gulu-app/restock-service/internal/service"
	"github.com/gulu-app/restock-service/pkg/config"
	"github.com/gulu-app/restock-service/pkg/middleware"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	db, err := repository.OpenDB(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer db.Close()

	listRepo := repository.NewListRepository(db)

	publisher := events.NewPublisher(logger)
	publisher.Subscribe(func(e events.Event) {
		logger.Info("State changed", zap.String("event", e.EventName()))
	})

	listService := service.NewListService(context.Background(), listRepo, publisher, logger, cfg.SeedData)
	listHandler := handler.NewListHandler(listService, logger)
	productHandler := handler.NewProductHandler(listService, logger)
	shareHandler := handler.NewShareHandler(listService, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/lists", listHandler.CreateList)
		v1.GET("/lists", listHandler.GetLists)
		v1.GET("/lists/:id", listHandler.GetList)
		v1.DELETE("/lists/:id", listHandler.DeleteList)
		v1.POST("/lists/:id/reset", listHandler.ResetList)

		v1.GET("/lists/:id/products", listHandler.GetProducts)
		v1.POST("/lists/:id/products", productHandler.AddProduct)
		v1.PATCH("/lists/:id/products/:productId", productHandler.UpdateProduct)
		v1.DELETE("/lists/:id/products/:productId", productHandler.DeleteProduct)
		v1.POST("/lists/:id/products/:productId/toggle-completion", productHandler.ToggleCompletion)
		v1.POST("/lists/:id/products/:productId/toggle-out-of-stock", productHandler.ToggleOutOfStock)
		v1.POST("/lists/:id/products/:productId/adjust", productHandler.AdjustQuantity)
		v1.POST("/lists/:id/products/:productId/reset", productHandler.ResetQuantity)

		v1.GET("/lists/:id/share", shareHandler.ShareList)
		v1.POST("/lists/import", shareHandler.ImportShareCode)
		v1.POST("/lists/import/csv", shareHandler.ImportCSV)

		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "healthy"})
		})
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}
