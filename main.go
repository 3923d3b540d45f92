package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/jonesrussell/seo-audit/internal/bootstrap"
)

func main() {
	// Load .env if present; environment always wins over file values.
	_ = godotenv.Load()

	if err := bootstrap.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
