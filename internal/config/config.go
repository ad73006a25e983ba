package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/playbonspiel/backend/internal/game"
)

type Config struct {
	// Environment
	Environment string

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// Server
	Port        string
	FrontendURL string

	// Evaluation
	DefaultSkill     int
	EvalCacheTTLSecs int

	// Simulation knobs (override the Leaney defaults)
	Mu0          float64
	PivotAlpha   float64
	SweepFactor  float64
	TimeStep     float64
	MaxDuration  float64
	BandSegments int

	// Security
	JWTSecret         string
	SessionTimeoutMin int
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),

		// Database
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/playbonspiel?sslmode=disable"),

		// Redis
		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		// Server
		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		// Evaluation
		DefaultSkill:     getEnvInt("DEFAULT_SKILL_PERCENT", 50),
		EvalCacheTTLSecs: getEnvInt("EVAL_CACHE_TTL_SECONDS", 300),

		// Simulation
		Mu0:          getEnvFloat("SIM_MU0", 0.008),
		PivotAlpha:   getEnvFloat("SIM_PIVOT_ALPHA", 0.014),
		SweepFactor:  getEnvFloat("SIM_SWEEP_FACTOR", 1.0),
		TimeStep:     getEnvFloat("SIM_TIME_STEP", 0.01),
		MaxDuration:  getEnvFloat("SIM_MAX_DURATION", 60.0),
		BandSegments: getEnvInt("SIM_BAND_SEGMENTS", 360),

		// Security
		JWTSecret:         getEnv("JWT_SECRET", "change-me-in-production"),
		SessionTimeoutMin: getEnvInt("SESSION_TIMEOUT_MINUTES", 30),
	}
}

// Params assembles the physics parameters for a run: the Leaney defaults
// with the configured overrides, mu0 pre-scaled by the sweep factor.
func (c *Config) Params() game.Params {
	p := game.DefaultParams()
	p.Mu0 = c.Mu0 * c.SweepFactor
	p.Alpha = c.PivotAlpha
	p.Dt = c.TimeStep
	p.TMax = c.MaxDuration
	p.Segments = c.BandSegments
	return p
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
