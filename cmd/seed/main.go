// cmd/seed/main.go: restores the demo stock levels of the six components.
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"os"
	"time"

	"mrpestoque/internal/config"
	"mrpestoque/internal/infra"

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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, c := range infra.ComponentesIniciais() {
		result := db.WithContext(ctx).Exec(`
			INSERT INTO components (name, stock_quantity, created_at, updated_at)
			VALUES (?, ?, NOW(), NOW())
			ON CONFLICT (name) DO UPDATE
			SET stock_quantity = EXCLUDED.stock_quantity,
			    updated_at = NOW()
		`, c.Name, c.StockQuantity)
		if result.Error != nil {
			log.Fatal().Err(result.Error).Str("name", c.Name).Msg("seed failed")
		}
		log.Info().Str("name", c.Name).Int("stock_quantity", c.StockQuantity).Msg("componente restaurado")
	}
}
