package main

import (
	"log"

	"github.com/joho/godotenv"

	corecmd "github.com/bhabibullo/Education-Bot/core/cmd"
	"github.com/bhabibullo/Education-Bot/internal/enroll"
)

func main() {
	// .env is optional; deployments may pass variables directly.
	_ = godotenv.Load()

	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			cfg, err := enroll.LoadConfig(path)
			if err != nil {
				return nil, err
			}
			return cfg, nil
		},
		Bootstrap: enroll.Bootstrap,
	})
	if err != nil {
		log.Fatalf("bot stopped: %v", err)
	}
}
