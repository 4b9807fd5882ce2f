package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"peake-swap/cmd"
)

func main() {
	// .env is optional; configuration falls back to real environment variables.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
