package ingest

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// POST /ingestion/upload
// Recebe a planilha via multipart e roda a mesma carga do CLI.
// ?truncate=false mantém os dados existentes (o padrão é limpar antes).
func UploadHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Arquivo não enviado: "+err.Error())
		}

		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Apenas arquivos .xlsx são aceitos")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível abrir o arquivo: "+err.Error())
		}
		defer file.Close()

		truncate := c.Query("truncate", "true") != "false"

		result, err := svc.LoadReader(file, truncate)
		if err != nil {
			log.Printf("Carga via upload falhou: %v", err)
			return fiber.NewError(fiber.StatusBadRequest, "Falha na carga: "+err.Error())
		}

		log.Printf("Carga via upload concluída: produtos=%d unidades=%d garçons=%d vendas=%d",
			result.ProductsLoaded, result.UnitsLoaded, result.WaitersLoaded, result.SalesLoaded)

		return c.JSON(result)
	}
}
