package main

import (
	"database/sql"
	stdlog "log"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joystie/graph-telemetry-api/internal/cache"
	"github.com/joystie/graph-telemetry-api/internal/config"
	"github.com/joystie/graph-telemetry-api/internal/database"
	"github.com/joystie/graph-telemetry-api/internal/graph"
	"github.com/joystie/graph-telemetry-api/internal/handler"
	"github.com/joystie/graph-telemetry-api/internal/logger"
	"github.com/joystie/graph-telemetry-api/internal/middleware"
	"github.com/joystie/graph-telemetry-api/internal/migration"
	"github.com/joystie/graph-telemetry-api/internal/ocr"
	"github.com/joystie/graph-telemetry-api/internal/repository"
	"github.com/joystie/graph-telemetry-api/internal/service"
	"github.com/joystie/graph-telemetry-api/internal/websocket"
)

const Version = "1.2.0"

// dayLabelsFallback é o texto usado pelo reconhecedor estático em
// desenvolvimento, com os rótulos típicos de um screenshot de tempo de tela
const dayLabelsFallback = "Sun Mon Tue Wed Thu Fri Sat\n6 h\n0 h"

func main() {
	// Carrega configurações
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("Erro ao carregar configurações: %v", err)
	}

	// Inicializa logger estruturado
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	log := logger.Global()
	log.Info().
		Str("version", Version).
		Str("port", cfg.Port).
		Str("log_level", cfg.LogLevel).
		Bool("ocr_remote", cfg.OCRAPIKey != "").
		Bool("database", cfg.DatabaseURL != "").
		Msg("Graph Telemetry API iniciando")

	// Banco de dados opcional (histórico e relatórios)
	var db *sql.DB
	var analysisRepo *repository.AnalysisRepository
	if cfg.DatabaseURL != "" {
		db, err = database.Connect(database.Config{URL: cfg.DatabaseURL})
		if err != nil {
			log.Fatal().Err(err).Msg("Erro ao conectar ao banco")
		}
		if err := migration.NewMigrator(db).Run(); err != nil {
			log.Fatal().Err(err).Msg("Erro ao executar migrações")
		}
		analysisRepo = repository.NewAnalysisRepository(db)
	} else {
		log.Warn().Msg("DATABASE_URL ausente, histórico e relatórios desativados")
	}

	// Reconhecedor de texto: remoto com chave, estático sem
	var recognizer graph.TextRecognizer
	if cfg.OCRAPIKey != "" && cfg.OCREndpoint != "" {
		recognizer = ocr.NewClient(cfg.OCREndpoint, cfg.OCRAPIKey)
	} else {
		log.Warn().Msg("OCR remoto não configurado, usando reconhecedor estático")
		recognizer = &ocr.StaticRecognizer{Text: dayLabelsFallback}
	}

	// Hub de progresso via WebSocket
	hub := websocket.NewHub()
	go hub.Run()

	// Serviços
	resultCache := cache.NewResultCache(15 * time.Minute)
	analyzeService := service.NewAnalyzeService(recognizer, resultCache, analysisRepo, hub, cfg.DefaultMaxHours)
	webhookService := service.NewWebhookService()
	weeklyExporter := service.NewWeeklyExporter(analysisRepo)

	// Handlers
	analyzeHandler := handler.NewAnalyzeHandler(analyzeService, webhookService)
	historyHandler := handler.NewHistoryHandler(analysisRepo)
	exportHandler := handler.NewExportHandler(weeklyExporter)
	healthHandler := handler.NewHealthHandler(db)

	// Configura modo do Gin
	gin.SetMode(cfg.GinMode)

	// Inicializa router
	r := gin.New()
	r.Use(middleware.RequestID()) // Request ID + logging estruturado
	r.Use(gin.Recovery())

	// Health check (público)
	r.GET("/health", healthHandler.Health)

	// Progresso das análises em andamento
	r.GET("/ws", hub.ServeWS)

	// Rotas de diagnóstico protegidas por basic auth
	debugGroup := r.Group("/")
	debugGroup.Use(middleware.DebugBasicAuth(middleware.DebugAuthConfig{
		Username:     cfg.DebugUser,
		PasswordHash: cfg.DebugPasswordHash,
	}))
	{
		debugGroup.GET("/metrics", healthHandler.Metrics)

		debugGroup.GET("/debug/memory", func(c *gin.Context) {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			c.JSON(200, gin.H{
				"alloc_mb":      m.Alloc / 1024 / 1024,
				"sys_mb":        m.Sys / 1024 / 1024,
				"heap_alloc_mb": m.HeapAlloc / 1024 / 1024,
				"heap_objects":  m.HeapObjects,
				"goroutines":    runtime.NumGoroutine(),
				"gc_runs":       m.NumGC,
			})
		})

		debugGroup.POST("/debug/gc", func(c *gin.Context) {
			runtime.GC()
			debug.FreeOSMemory()
			c.JSON(200, gin.H{"status": "gc_completed"})
		})
	}

	// Grupo de rotas protegidas
	api := r.Group("/api/v1")
	api.Use(middleware.BearerAuth(middleware.AuthConfig{
		TokenAPI: cfg.TokenAPI,
	}))
	{
		api.POST("/analyze", analyzeHandler.Analyze)
		api.GET("/history", historyHandler.List)
		api.GET("/reports/weekly", exportHandler.Weekly)
	}

	// Inicia servidor
	log.Info().Str("port", cfg.Port).Msg("Servidor iniciando")

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Erro ao iniciar servidor")
	}
}
