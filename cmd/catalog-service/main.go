package main

import (
	"flag"
	"log"

	"catalog-service/internal"
)

func main() {
	envFile := flag.String("env", "", "path to .env file (default: ./.env if present)")
	flag.Parse()

	var envPaths []string
	if *envFile != "" {
		envPaths = append(envPaths, *envFile)
	}

	application, err := internal.NewApp(envPaths...)
	if err != nil {
		log.Fatalf("Failed to initialize catalog-service: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("catalog-service stopped with error: %v", err)
	}
}
