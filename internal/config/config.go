package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by MINDFOLD_ENV (or .env by default).
// All config is flat env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("MINDFOLD_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Load main env file (ignore error if file doesn't exist)
	_ = godotenv.Load(envFile)

	return nil
}

// DataDir returns the directory holding the four profile documents.
// Defaults to "experience".
func DataDir() string {
	d := os.Getenv("DATA_DIR")
	if d == "" {
		return "experience"
	}
	return d
}

func ServerPort() int {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		return 8080
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

// OracleProvider returns the configured reasoning oracle provider.
// Valid values: ollama, openai, mock. Defaults to "ollama".
func OracleProvider() string {
	p := os.Getenv("ORACLE_PROVIDER")
	if p == "" {
		return "ollama"
	}
	return p
}

// OracleEndpoint returns the base URL of the oracle backend.
// Defaults to a local Ollama instance.
func OracleEndpoint() string {
	u := os.Getenv("ORACLE_ENDPOINT")
	if u == "" {
		return "http://localhost:11434"
	}
	return u
}

// OracleModel returns the model identifier passed to the oracle backend.
// Defaults to "mistral".
func OracleModel() string {
	m := os.Getenv("ORACLE_MODEL")
	if m == "" {
		return "mistral"
	}
	return m
}

func OpenAIAPIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

// OracleTimeout bounds a single oracle round trip.
// Defaults to 180s; non-positive values fall back to the default.
func OracleTimeout() time.Duration {
	secs, err := strconv.Atoi(os.Getenv("ORACLE_TIMEOUT_SECONDS"))
	if err != nil || secs <= 0 {
		return 180 * time.Second
	}
	return time.Duration(secs) * time.Second
}

// ReflectionWindow returns how many recent interactions a reflection run
// analyzes. Defaults to 50.
func ReflectionWindow() int {
	n, err := strconv.Atoi(os.Getenv("REFLECTION_WINDOW"))
	if err != nil || n <= 0 {
		return 50
	}
	return n
}

// MinBeliefConfidence is the threshold below which extracted beliefs are
// dropped at merge time. Defaults to 0.6.
func MinBeliefConfidence() float32 {
	return floatEnv("MIN_BELIEF_CONFIDENCE", 0.6)
}

// MinPatternConfidence is the threshold below which synthesized patterns
// are dropped. Defaults to 0.65.
func MinPatternConfidence() float32 {
	return floatEnv("MIN_PATTERN_CONFIDENCE", 0.65)
}

// BeliefSimilarityThreshold is the token-overlap score at or above which
// a newly extracted statement reinforces an existing belief in the same
// domain instead of inserting a new one. Defaults to 0.6.
func BeliefSimilarityThreshold() float32 {
	return floatEnv("BELIEF_SIMILARITY_THRESHOLD", 0.6)
}

// RateLimitRPS returns requests per second limit.
// Defaults to 100 if not set.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func RateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 20
	}
	return burst
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}

func floatEnv(key string, def float32) float32 {
	v, err := strconv.ParseFloat(os.Getenv(key), 32)
	if err != nil || v < 0 || v > 1 {
		return def
	}
	return float32(v)
}
