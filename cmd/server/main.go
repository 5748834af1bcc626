package main

import (
	"net/http"
	"strings"
	"time"

	"cafe_backend/internal/database"
	"cafe_backend/internal/router"
	"cafe_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	utils.InitLogger()

	// .env is optional; real deployments pass config through the environment.
	if err := godotenv.Load(); err != nil {
		utils.LogDebug("no .env file found, relying on environment variables")
	}

	dbHost := utils.Getenv("DB_HOST", "localhost")
	dbPort := utils.Getenv("DB_PORT", "5432")
	dbUser := utils.Getenv("DB_USER", "postgres")
	dbPassword := utils.Getenv("DB_PASSWORD", "postgres")
	dbName := utils.Getenv("DB_NAME", "cafe_management")
	dbSSLMode := utils.Getenv("DB_SSLMODE", "disable")

	db, err := database.Connect(dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	if schemaPath := utils.Getenv("DB_SCHEMA_PATH", ""); schemaPath != "" {
		if err := database.ApplySchema(db, schemaPath); err != nil {
			log.Fatal().Err(err).Msg("schema application failed")
		}
	}

	jwtSecret := utils.Getenv("JWT_SECRET", "")
	if jwtSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}
	jwtExpiration := time.Duration(utils.GetenvInt("JWT_EXPIRATION_HOURS", 24)) * time.Hour
	tokenManager := utils.NewTokenManager(jwtSecret, jwtExpiration)

	uploadDir := utils.Getenv("UPLOAD_DIR", "uploads/menu")

	gin.SetMode(utils.Getenv("GIN_MODE", gin.ReleaseMode))
	engine := gin.New()
	engine.Use(utils.GinLogger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(utils.Getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"), ",")
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	engine.Use(cors.New(corsConfig))

	engine.Static("/uploads/menu", uploadDir)

	engine.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "cafe-management-backend"})
	})

	router.Setup(engine, db, tokenManager, uploadDir)

	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("starting server", map[string]interface{}{"port": port})
	if err := engine.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
