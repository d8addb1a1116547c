package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr          string
	DBDSN         string
	LogFile       string
	HoldTTL       time.Duration // default reservation lifetime
	SweepInterval time.Duration // expired-hold purge cadence
}

func Load() Config {
	cfg := Config{
		Addr:          getenv("HTTP_ADDR", ":8080"),
		DBDSN:         getenv("DB_DSN", "threadline.db"),
		LogFile:       os.Getenv("LOG_FILE"),
		HoldTTL:       minutes("HOLD_TTL_MINUTES", 10),
		SweepInterval: minutes("SWEEP_INTERVAL_MINUTES", 10),
	}
	log.Printf("[config] HTTP_ADDR=%s DB_DSN=%s HOLD_TTL=%s SWEEP_INTERVAL=%s",
		cfg.Addr, cfg.DBDSN, cfg.HoldTTL, cfg.SweepInterval)
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func minutes(k string, def int) time.Duration {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Minute
		}
	}
	return time.Duration(def) * time.Minute
}
