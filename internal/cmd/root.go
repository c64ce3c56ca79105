package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "loaddata",
	Short: "Ferramentas de carga da base de vendas Sabores",
	Long: `Carrega a planilha de vendas (abas Produtos, Unidades e Vendas)
no Postgres e mantém o esquema usado pela API de métricas.`,
}

// Execute roda o comando raiz
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Erro: %v\n", err)
		os.Exit(1)
	}
}
