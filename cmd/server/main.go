package main

import (
	"log"
	"strings"

	"sabores-backend/internal/config"
	"sabores-backend/internal/database"
	"sabores-backend/internal/ingest"
	"sabores-backend/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	db := database.Init(cfg)

	metricsService := metrics.NewService(db)
	ingestService := ingest.NewService(db)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Erro inesperado:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Erro interno do servidor",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/metrics/summary", metrics.SummaryHandler(metricsService))
	app.Get("/metrics/units", metrics.ByUnitHandler(metricsService))
	app.Get("/metrics/categories", metrics.ByCategoryHandler(metricsService))
	app.Get("/metrics/monthly", metrics.MonthlyHandler(metricsService))
	app.Get("/metrics/waiters", metrics.ByWaiterHandler(metricsService))
	app.Get("/metrics/geography", metrics.ByGeographyHandler(metricsService))

	app.Post("/ingestion/upload", ingest.UploadHandler(ingestService))

	log.Println("Servidor rodando na porta:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
