package cmd

import (
	"fmt"

	"sabores-backend/internal/config"
	"sabores-backend/internal/database"
	"sabores-backend/internal/ingest"

	"github.com/spf13/cobra"
)

var (
	loadFile string
	loadKeep bool
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Carrega a planilha de vendas no banco",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		db := database.Init(cfg)

		service := ingest.NewService(db)
		result, err := service.LoadFile(loadFile, !loadKeep)
		if err != nil {
			return err
		}

		fmt.Printf("Loaded products=%d, units=%d, waiters=%d, sales=%d\n",
			result.ProductsLoaded, result.UnitsLoaded, result.WaitersLoaded, result.SalesLoaded)
		return nil
	},
}

func init() {
	loadCmd.Flags().StringVar(&loadFile, "file", "", "caminho da planilha .xlsx (abas: Produtos, Unidades, Vendas)")
	loadCmd.Flags().BoolVar(&loadKeep, "keep", false, "não limpar as tabelas antes da carga")
	loadCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(loadCmd)
}
