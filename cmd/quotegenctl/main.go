package main

import (
	"github.com/joho/godotenv"

	"quotegen/internal/cli"
)

func main() {
	_ = godotenv.Load()
	cli.Execute()
}
