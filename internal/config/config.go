package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lapenya/quiniela/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the pipeline and the API.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	CORSAllowedOrigins []string

	DBURL    string
	RedisURL string

	FootballDataBaseURL         string
	FootballDataToken           string
	FootballDataCompetition     string
	FootballDataSeason          string
	FootballDataTimeout         time.Duration
	FootballDataMaxRetries      int
	FootballDataCircuitEnabled  bool
	FootballDataCircuitFailures int
	FootballDataCircuitOpenWait time.Duration
	FootballDataCircuitHalfOpen int

	OddsDrawStrength float64
	OddsMargin       float64
	OddsCeiling      float64
	ScoringWeight    float64

	PipelineRunTimeout time.Duration
	InternalJobToken   string

	LogLevel logging.Level
}

// Load reads the configuration from the environment. The provider token is
// required: without it every fetch would fail, so the process refuses to
// start instead.
func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := getEnvAsDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := getEnvAsDuration("HTTP_WRITE_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, err
	}

	token := strings.TrimSpace(getEnv("FOOTBALL_DATA_API_TOKEN", ""))
	if token == "" {
		return Config{}, fmt.Errorf("FOOTBALL_DATA_API_TOKEN is required")
	}

	providerTimeout, err := getEnvAsDuration("FOOTBALL_DATA_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	providerRetries, err := getEnvAsInt("FOOTBALL_DATA_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALL_DATA_MAX_RETRIES: %w", err)
	}
	if providerRetries < 0 {
		return Config{}, fmt.Errorf("FOOTBALL_DATA_MAX_RETRIES must be >= 0")
	}

	circuitEnabled, err := strconv.ParseBool(getEnv("FOOTBALL_DATA_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALL_DATA_CIRCUIT_ENABLED: %w", err)
	}
	circuitFailures, err := getEnvAsInt("FOOTBALL_DATA_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALL_DATA_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if circuitFailures < 1 {
		return Config{}, fmt.Errorf("FOOTBALL_DATA_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	circuitOpenWait, err := getEnvAsDuration("FOOTBALL_DATA_CIRCUIT_OPEN_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, err
	}
	circuitHalfOpen, err := getEnvAsInt("FOOTBALL_DATA_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALL_DATA_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if circuitHalfOpen < 1 {
		return Config{}, fmt.Errorf("FOOTBALL_DATA_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	drawStrength, err := getEnvAsFloat("ODDS_DRAW_STRENGTH", 80)
	if err != nil {
		return Config{}, fmt.Errorf("parse ODDS_DRAW_STRENGTH: %w", err)
	}
	if drawStrength <= 0 {
		return Config{}, fmt.Errorf("ODDS_DRAW_STRENGTH must be > 0")
	}
	margin, err := getEnvAsFloat("ODDS_MARGIN", 1.08)
	if err != nil {
		return Config{}, fmt.Errorf("parse ODDS_MARGIN: %w", err)
	}
	if margin <= 0 {
		return Config{}, fmt.Errorf("ODDS_MARGIN must be > 0")
	}
	ceiling, err := getEnvAsFloat("ODDS_CEILING", 20)
	if err != nil {
		return Config{}, fmt.Errorf("parse ODDS_CEILING: %w", err)
	}
	if ceiling < 1 {
		return Config{}, fmt.Errorf("ODDS_CEILING must be >= 1")
	}
	scoringWeight, err := getEnvAsFloat("SCORING_WEIGHT", 1.0)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCORING_WEIGHT: %w", err)
	}
	if scoringWeight <= 0 {
		return Config{}, fmt.Errorf("SCORING_WEIGHT must be > 0")
	}

	runTimeout, err := getEnvAsDuration("PIPELINE_RUN_TIMEOUT", 2*time.Minute)
	if err != nil {
		return Config{}, err
	}

	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required")
	}
	redisURL := strings.TrimSpace(getEnv("REDIS_URL", "redis://localhost:6379/0"))

	return Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("SERVICE_NAME", "quiniela"),
		ServiceVersion: getEnv("SERVICE_VERSION", "dev"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,

		CORSAllowedOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		DBURL:    dbURL,
		RedisURL: redisURL,

		FootballDataBaseURL:         strings.TrimSpace(getEnv("FOOTBALL_DATA_BASE_URL", "")),
		FootballDataToken:           token,
		FootballDataCompetition:     strings.ToUpper(strings.TrimSpace(getEnv("FOOTBALL_DATA_COMPETITION", "PD"))),
		FootballDataSeason:          strings.TrimSpace(getEnv("FOOTBALL_DATA_SEASON", "2025")),
		FootballDataTimeout:         providerTimeout,
		FootballDataMaxRetries:      providerRetries,
		FootballDataCircuitEnabled:  circuitEnabled,
		FootballDataCircuitFailures: circuitFailures,
		FootballDataCircuitOpenWait: circuitOpenWait,
		FootballDataCircuitHalfOpen: circuitHalfOpen,

		OddsDrawStrength: drawStrength,
		OddsMargin:       margin,
		OddsCeiling:      ceiling,
		ScoringWeight:    scoringWeight,

		PipelineRunTimeout: runTimeout,
		InternalJobToken:   strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),

		LogLevel: logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
	}, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func splitAndTrim(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}

	return out, nil
}
