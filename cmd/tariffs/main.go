package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/accesslogistics-ai/ocean-route-finder/internal/api/handlers"
	"github.com/accesslogistics-ai/ocean-route-finder/internal/api/middleware"
	"github.com/accesslogistics-ai/ocean-route-finder/internal/api/responses"
	"github.com/accesslogistics-ai/ocean-route-finder/internal/config"
	"github.com/accesslogistics-ai/ocean-route-finder/internal/core/accounts"
	"github.com/accesslogistics-ai/ocean-route-finder/internal/core/auth"
	"github.com/accesslogistics-ai/ocean-route-finder/internal/core/monitoring"
	"github.com/accesslogistics-ai/ocean-route-finder/internal/core/tariffs"
	"github.com/accesslogistics-ai/ocean-route-finder/internal/database"
)

func loadEnv() {
	file, err := os.Open(".env")
	if err != nil {
		if os.IsNotExist(err) {
			log.Print("Arquivo .env não encontrado, prosseguindo com variáveis de ambiente")
		} else {
			log.Printf("Erro ao carregar .env: %v", err)
		}
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if _, exists := os.LookupEnv(key); !exists {
			os.Setenv(key, value)
		}
	}
	log.Print("Variáveis de ambiente carregadas de .env")
}

func main() {
	loadEnv()

	cfg, err := config.Load("config.toml")
	if err != nil {
		log.Fatalf("FATAL: configuração inválida: %v", err)
	}

	logger, err := zap.NewProduction()
	if cfg.Server.DevMode {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("FATAL: erro ao iniciar logger: %v", err)
	}
	defer logger.Sync()
	responses.InitLogger(logger)

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatal("erro ao abrir banco de dados", zap.Error(err))
	}
	defer db.Close()

	hub := auth.NewHub(db, logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	authService := auth.NewService(db, logger, []byte(cfg.Auth.JWTSecret))
	accountsService := accounts.NewService(db, logger)
	tariffService := tariffs.NewService(db, logger)
	monitoringService := monitoring.NewService(db)

	authHandler := handlers.NewAuthHandler(authService, accountsService, hub)
	tariffHandler := handlers.NewTariffHandler(tariffService)
	importHandler := handlers.NewImportHandler(tariffService)
	adminHandler := handlers.NewAdminHandler(accountsService, monitoringService)

	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/login", authHandler.Login)
		apiV1.POST("/register", authHandler.Register)
		apiV1.POST("/password-reset", authHandler.RequestPasswordReset)
		apiV1.POST("/password-reset/confirm", authHandler.ConfirmPasswordReset)

		authed := apiV1.Group("", middleware.Authenticate(authService, db))
		{
			authed.GET("/me", authHandler.Me)
			authed.POST("/logout", authHandler.Logout)

			authed.GET("/tariffs", tariffHandler.Search)
			authed.GET("/tariffs/compare", tariffHandler.Compare)
			authed.GET("/tariffs/export/csv", tariffHandler.ExportCSV)
			authed.GET("/tariffs/export/xlsx", tariffHandler.ExportXLSX)
			authed.GET("/tariffs/export/print", tariffHandler.ExportPrint)

			authed.GET("/lookups/carriers", tariffHandler.Carriers)
			authed.GET("/lookups/pols", tariffHandler.POLs)
			authed.GET("/lookups/pods", tariffHandler.PODs)
			authed.GET("/lookups/countries", tariffHandler.Countries)
			authed.GET("/lookups/destinations", tariffHandler.Destinations)

			admin := authed.Group("/admin", middleware.RequireAdmin())
			{
				admin.POST("/imports/:flow", importHandler.Import)

				admin.GET("/users", adminHandler.ListUsers)
				admin.POST("/users", adminHandler.CreateUser)
				admin.DELETE("/users/:id", adminHandler.DeleteUser)

				admin.GET("/whitelist", adminHandler.ListWhitelist)
				admin.POST("/whitelist", adminHandler.AddWhitelist)
				admin.POST("/whitelist/:id/renew", adminHandler.RenewWhitelist)
				admin.DELETE("/whitelist/:id", adminHandler.RemoveWhitelist)

				admin.GET("/monitoring/activity", adminHandler.Activity)
			}
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP", "service": "tariff-service"})
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("serviço de tarifas iniciado", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Fatal("falha ao iniciar o servidor", zap.Error(err))
	}
}
