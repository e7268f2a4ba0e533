package config

import (
	"os"
	"strconv"
)

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func GetInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// Process-level settings read from the environment (after godotenv.Load).
type Server struct {
	Port           string
	DataDir        string
	JobsCSV        string
	RoutesDir      string
	JobSource      string
	DBPath         string
	DatabaseURL    string
	RedisURL       string
	PlannerConfig  string
	SeedPath       string
	LogFormat      string
	LogLevel       string
	RateLimitRPS   float64
	RateLimitBurst int
}

func LoadServer() Server {
	return Server{
		Port:           Get("PORT", "8080"),
		DataDir:        Get("DATA_DIR", "data"),
		JobsCSV:        Get("JOBS_CSV", "data/customer-requests.csv"),
		RoutesDir:      Get("ROUTES_DIR", "data/routes"),
		JobSource:      Get("JOB_SOURCE", "csv"),
		DBPath:         Get("DB_PATH", "data/app.db"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		PlannerConfig:  os.Getenv("PLANNER_CONFIG"),
		SeedPath:       Get("SEED_PATH", "data/seeds/jobs.json"),
		LogFormat:      Get("LOG_FORMAT", "console"),
		LogLevel:       Get("LOG_LEVEL", "info"),
		RateLimitRPS:   GetFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: GetInt("RATE_LIMIT_BURST", 10),
	}
}
