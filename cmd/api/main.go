package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Clssp/New-Radas-Local/internal/admin"
	"github.com/Clssp/New-Radas-Local/internal/analysis"
	"github.com/Clssp/New-Radas-Local/internal/auth"
	"github.com/Clssp/New-Radas-Local/internal/db"
	"github.com/Clssp/New-Radas-Local/internal/llm"
	"github.com/Clssp/New-Radas-Local/internal/market"
	"github.com/Clssp/New-Radas-Local/internal/middleware"
	"github.com/Clssp/New-Radas-Local/internal/places"
	"github.com/Clssp/New-Radas-Local/internal/quota"
	"github.com/Clssp/New-Radas-Local/internal/report"
	"github.com/Clssp/New-Radas-Local/internal/settings"
	"github.com/Clssp/New-Radas-Local/internal/snapshot"
	"github.com/Clssp/New-Radas-Local/internal/storage"
	"github.com/Clssp/New-Radas-Local/internal/trends"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"DATABASE_URL",
		"MAPS_API_KEY",
		"OPENAI_API_KEY",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	redisClient := db.ConnectRedis()

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── STORAGE ─────────────────────────
	r2Client, err := storage.NewR2Client(context.Background())
	if err != nil {
		log.Fatal("❌ R2 init failed:", err)
	}
	if r2Client == nil {
		log.Println("[STORAGE] R2_ENDPOINT unset, report archival disabled")
	}

	// ───────────────────────── AUTH ─────────────────────────
	userRepo := auth.NewPostgresUserRepository(pgDB)
	authService := auth.NewService(userRepo)
	authHandler := auth.NewHandler(authService)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// ───────────────────────── CORE REPOS ─────────────────────────
	marketRepo := market.NewPostgresRepository(pgDB)
	snapshotRepo := snapshot.NewPostgresRepository(pgDB)
	quotaRepo := quota.NewPostgresRepository(pgDB)
	settingsRepo := settings.NewPostgresRepository(pgDB)
	adminRepo := admin.NewPostgresRepository(pgDB)

	// ───────────────────────── SERVICES (ORDER MATTERS) ─────────────────────────
	settingsService := settings.NewService(settingsRepo, redisClient)
	quotaService := quota.NewService(quotaRepo, settingsService)
	marketService := market.NewService(marketRepo)
	snapshotService := snapshot.NewService(snapshotRepo)

	collector := places.NewCollector(places.NewGoogleClient())
	synthesizer := llm.NewSynthesizer(llm.NewOpenAIClient())
	trendsService := trends.NewService(trends.NewHTTPClient(), redisClient)

	analysisService := analysis.NewService(
		marketService,
		snapshotService,
		quotaService,
		collector,
		synthesizer,
		trendsService,
	)

	// ───────────────────────── HANDLERS ─────────────────────────
	analysisHandler := analysis.NewHandler(analysisService)
	marketHandler := market.NewHandler(marketService, snapshotService)
	quotaHandler := quota.NewHandler(quotaService)
	adminHandler := admin.NewHandler(adminRepo, settingsService)

	var archive report.Uploader
	if r2Client != nil {
		archive = r2Client
	}
	reportHandler := report.NewHandler(marketService, snapshotService, archive)

	// ───────────────────────── MARKET ROUTES ─────────────────────────
	markets := r.Group("/markets")
	markets.Use(middleware.AuthMiddleware())
	{
		markets.POST("/analyze", analysisHandler.Analyze)
		markets.GET("", marketHandler.List)
		markets.GET("/:id", marketHandler.Get)
		markets.GET("/:id/history", marketHandler.History)
		markets.GET("/:id/report", reportHandler.Download)
		markets.POST("/:id/swot", analysisHandler.SWOT)
		markets.DELETE("/:id", marketHandler.Delete)
	}

	// ───────────────────────── ME ROUTES ─────────────────────────
	me := r.Group("/me")
	me.Use(middleware.AuthMiddleware())
	{
		me.GET("/usage", quotaHandler.Usage)
	}

	// ───────────────────────── ADMIN ROUTES ─────────────────────────
	adminGroup := r.Group("/admin")
	adminGroup.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole("ADMIN"),
	)
	{
		adminGroup.GET("/stats", adminHandler.Stats)
		adminGroup.GET("/users", adminHandler.ListUsers)
		adminGroup.PATCH("/users/:id", adminHandler.UpdateUser)
		adminGroup.PUT("/settings/:name", adminHandler.UpdateSetting)
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── START ─────────────────────────
	log.Println("🚀 API running at http://localhost:8000")
	r.Run(":8000")
}
