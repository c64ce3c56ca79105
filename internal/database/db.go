package database

import (
	"log"

	"sabores-backend/internal/config"
	"sabores-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init abre a conexão com o Postgres e roda as migrações.
// O handle retornado é o mesmo guardado em DB; os serviços recebem
// ele por parâmetro em vez de depender do global.
func Init(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("Não foi possível conectar ao banco: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("Erro no AutoMigrate: %v", err)
	}

	log.Println("Conexão com o banco estabelecida. Migração concluída.")

	DB = db
	return db
}

// Migrate cria/atualiza as quatro tabelas do esquema estrela.
// Separado de Init para os testes reutilizarem com outro driver.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Product{},
		&models.Unit{},
		&models.Waiter{},
		&models.Sale{},
	)
}
