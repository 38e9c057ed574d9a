// cmd/seed creates the permission catalog, the ADMIN / VENDEDOR roles and the
// demo accounts admin@example.com and vendedor@example.com.
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"os"
	"time"

	"comercial/internal/config"
	"comercial/internal/infra"
	"comercial/internal/repository"
	"comercial/internal/seed"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	if err := infra.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate schema")
	}

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "cambiar1234"
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	err = seed.Ejecutar(ctx,
		repository.NewRolRepository(db),
		repository.NewUsuarioRepository(db),
		seed.CuentasDemo(password),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().Msg("seed completed")
}
