package main

import (
	"database/sql"
	"delivery-dispatch-service/internal/adapters/repositories"
	"delivery-dispatch-service/internal/config"
	"delivery-dispatch-service/internal/platform/db"
	"delivery-dispatch-service/internal/platform/obs"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.LoadServer()
	obs.SetupLogger(cfg.LogFormat, zerolog.InfoLevel)
	if envErr != nil {
		log.Info().Msg("No .env file found (using environment variables)")
	}

	conn, dialect, err := db.Connect(cfg.DatabaseURL, cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer conn.Close()

	if err := initAndSeed(conn, dialect, cfg.SeedPath); err != nil {
		log.Fatal().Err(err).Msg("init and seed")
	}
}

func initAndSeed(conn *sql.DB, dialect db.Dialect, seedPath string) error {
	log.Info().Str("db", dialect.String()).Msg("Initializing database schema...")
	if err := repositories.InitSchema(conn); err != nil {
		return err
	}
	log.Info().Msg("Schema ready.")

	log.Info().Str("seed", seedPath).Msg("Seeding database...")
	if err := repositories.SeedFromJSON(conn, dialect, seedPath); err != nil {
		return err
	}
	log.Info().Msg("Seeding complete.")

	return nil
}
