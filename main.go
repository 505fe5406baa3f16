package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/villaindle/go-server/internal/httpserver"
	"github.com/villaindle/go-server/internal/store"
	"github.com/villaindle/go-server/internal/villains"
	"os"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := villains.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load villain catalog")
	}

	db, err := openDB(getEnv("DB_PATH", "./data/villaindle.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	st, err := store.NewSQLiteStore(db)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init game store")
	}

	srv := httpserver.New(st, db)
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Int("villains", villains.Count()).Msg("starting go-server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
