package metrics

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// GET /metrics/summary
func SummaryHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		summary, err := svc.Summary()
		if err != nil {
			log.Printf("Erro no resumo de métricas: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível calcular o resumo")
		}
		return c.JSON(summary)
	}
}

// GET /metrics/units
func ByUnitHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		units, err := svc.ByUnit()
		if err != nil {
			log.Printf("Erro nas métricas por unidade: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível agregar por unidade")
		}
		return c.JSON(units)
	}
}

// GET /metrics/categories
func ByCategoryHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		categories, err := svc.ByCategory()
		if err != nil {
			log.Printf("Erro nas métricas por categoria: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível agregar por categoria")
		}
		return c.JSON(categories)
	}
}

// GET /metrics/monthly
func MonthlyHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		monthly, err := svc.Monthly()
		if err != nil {
			log.Printf("Erro nas métricas mensais: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível agregar por mês")
		}
		return c.JSON(monthly)
	}
}

// GET /metrics/waiters
func ByWaiterHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		waiters, err := svc.ByWaiter()
		if err != nil {
			log.Printf("Erro nas métricas por garçom: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível agregar por garçom")
		}
		return c.JSON(waiters)
	}
}

// GET /metrics/geography
func ByGeographyHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		geo, err := svc.ByGeography()
		if err != nil {
			log.Printf("Erro nas métricas por geografia: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível agregar por geografia")
		}
		return c.JSON(geo)
	}
}
