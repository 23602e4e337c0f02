package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type ConsoleConfig struct {
	Port              int
	SurveyAPIURL      string
	RequestTimeout    time.Duration
	RequestsPerSecond float64
	DraftTTL          time.Duration
	DraftCapacity     int
	ResultsCacheSize  int
}

type BackendConfig struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
}

// LoadDotEnv loads variables from an env file without overriding ones
// already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ParseConsoleFlags parses the console server configuration
func ParseConsoleFlags(args []string) (ConsoleConfig, error) {
	var cfg ConsoleConfig

	fs := flag.NewFlagSet("triangle", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.SurveyAPIURL, "api", "", "Survey API base URL")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", 0, "Survey API request timeout")
	fs.Float64Var(&cfg.RequestsPerSecond, "rps", -1, "Survey API requests per second (0 = unlimited)")
	fs.DurationVar(&cfg.DraftTTL, "draft-ttl", 0, "How long an untouched draft is kept")

	if err := fs.Parse(args); err != nil {
		return ConsoleConfig{}, err
	}

	var err error
	if cfg.Port == 0 {
		if cfg.Port, err = envInt("PORT", 3000); err != nil {
			return ConsoleConfig{}, err
		}
	}
	if cfg.SurveyAPIURL == "" {
		cfg.SurveyAPIURL = os.Getenv("SURVEY_API_URL")
		if cfg.SurveyAPIURL == "" {
			cfg.SurveyAPIURL = "http://localhost:3001"
		}
	}
	if cfg.RequestTimeout == 0 {
		if cfg.RequestTimeout, err = envDuration("SURVEY_API_TIMEOUT", 10*time.Second); err != nil {
			return ConsoleConfig{}, err
		}
	}
	if cfg.RequestsPerSecond < 0 {
		if cfg.RequestsPerSecond, err = envFloat("SURVEY_API_RPS", 0); err != nil {
			return ConsoleConfig{}, err
		}
	}
	if cfg.DraftTTL == 0 {
		if cfg.DraftTTL, err = envDuration("DRAFT_TTL", 2*time.Hour); err != nil {
			return ConsoleConfig{}, err
		}
	}
	if cfg.DraftCapacity, err = envInt("DRAFT_CAPACITY", 1024); err != nil {
		return ConsoleConfig{}, err
	}
	if cfg.ResultsCacheSize, err = envInt("RESULTS_CACHE_SIZE", 256); err != nil {
		return ConsoleConfig{}, err
	}

	if cfg.RequestTimeout < 0 || cfg.DraftTTL < 0 {
		return ConsoleConfig{}, errors.New("durations must be positive")
	}
	if cfg.RequestsPerSecond < 0 {
		return ConsoleConfig{}, errors.New("SURVEY_API_RPS must not be negative")
	}

	return cfg, nil
}

// ParseBackendFlags parses the stand-in Survey API configuration
func ParseBackendFlags(args []string) (BackendConfig, error) {
	var cfg BackendConfig

	fs := flag.NewFlagSet("surveyd", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	if err := fs.Parse(args); err != nil {
		return BackendConfig{}, err
	}

	var err error
	if cfg.Port == 0 {
		if cfg.Port, err = envInt("PORT", 3001); err != nil {
			return BackendConfig{}, err
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return BackendConfig{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return BackendConfig{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	return cfg, nil
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return f, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return d, nil
}
