// Package config loads the process-wide configuration surface of §6 from
// environment variables, the way the teacher's main package reads
// SERVER_ADDR: plain os.Getenv with defaults, validated once at startup.
package config

import (
	"fmt"
	"os"
	"strconv"

	"holdem-host/internal/match"
	"holdem-host/internal/table"
)

// Config is everything main needs to start one table's worth of serving.
type Config struct {
	Addr  string
	Table table.Config
}

func Load() (Config, error) {
	cfg := Config{
		Addr: getEnv("SERVER_ADDR", ":18080"),
		Table: table.Config{
			TableID:             getEnv("TABLE_ID", "table-1"),
			Seats:               getEnvInt("SEATS", 6),
			StartingStack:       getEnvInt64("STARTING_STACK", 10000),
			SmallBlind:          getEnvInt64("SMALL_BLIND", 50),
			BigBlind:            getEnvInt64("BIG_BLIND", 100),
			MoveTimeMs:          getEnvInt64("MOVE_TIME_MS", 15000),
			HandControl:         match.HandControl(getEnv("HAND_CONTROL", string(match.ControlAuto))),
			Presentation:        getEnv("PRESENTATION", "off") == "on",
			PresentationDelayMs: getEnvInt64("PRESENTATION_DELAY_MS", 1500),
			Seed:                getEnvInt64("DECK_SEED", 0),
		},
	}
	if cfg.Table.HandControl != match.ControlAuto && cfg.Table.HandControl != match.ControlOperator {
		return cfg, fmt.Errorf("invalid HAND_CONTROL %q: must be auto or operator", cfg.Table.HandControl)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
