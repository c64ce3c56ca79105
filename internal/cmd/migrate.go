package cmd

import (
	"fmt"

	"sabores-backend/internal/config"
	"sabores-backend/internal/database"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Cria/atualiza o esquema no Postgres",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		database.Init(cfg)

		fmt.Println("Migrações concluídas")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
