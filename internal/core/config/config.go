package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type EventsCfg struct {
	Enabled bool
	Brokers string
	Topic   string
	Queue   int
}

type Config struct {
	Addr          string
	LogLevel      string
	LogConsole    bool
	DataSource    string
	FallbackSize  int
	FallbackSeed  uint64
	PageSize      int
	GridRes       int
	ViewCacheSize int
	RedisAddr     string
	SessionTTL    time.Duration
	Events        EventsCfg
}

func FromEnv() Config {
	res := getint("GRID_RES", 8)
	if res < 0 {
		res = 0
	}
	if res > 15 {
		res = 15
	}

	return Config{
		Addr:          getenv("ADDR", ":8090"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		LogConsole:    getbool("LOG_CONSOLE", false),
		DataSource:    getenv("DATA_SOURCE", ""),
		FallbackSize:  getint("FALLBACK_SIZE", 100),
		FallbackSeed:  getuint64("FALLBACK_SEED", 1),
		PageSize:      getint("PAGE_SIZE", 8),
		GridRes:       res,
		ViewCacheSize: getint("VIEW_CACHE_SIZE", 512),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		SessionTTL:    getduration("SESSION_TTL", 24*time.Hour),
		Events: EventsCfg{
			Enabled: getbool("EVENTS_ENABLED", false),
			Brokers: getenv("KAFKA_BROKERS", "localhost:9092"),
			Topic:   getenv("KAFKA_TOPIC", "waste-record-mutations"),
			Queue:   getint("EVENTS_QUEUE", 1024),
		},
	}
}

// BrokerList splits the comma-separated broker string.
func (c EventsCfg) BrokerList() []string {
	parts := strings.Split(c.Brokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getuint64(k string, def uint64) uint64 {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "t", "true", "y", "yes":
			return true
		case "0", "f", "false", "n", "no":
			return false
		}
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
