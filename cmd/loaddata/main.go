package main

import "sabores-backend/internal/cmd"

func main() {
	cmd.Execute()
}
