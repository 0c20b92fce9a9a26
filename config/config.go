package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Sink backend selectors.
const (
	SinkSQLite   = "sqlite"
	SinkPostgres = "postgres"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	BaseAPIURL  string
	CookiesFile string
	ResultsFile string
	LogFile     string

	StartYear      int
	MinYear        int
	PageSize       int
	RepeatBudget   int
	RequestTimeout time.Duration
	RequestPause   time.Duration
	CyclePause     time.Duration
	RunOnce        bool

	SinkBackend string
	SQLitePath  string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		BaseAPIURL:  getEnv("BASE_API_URL", "https://api.encar.com/search/car/list/premium"),
		CookiesFile: getEnv("COOKIES_FILE", "encar_cookies.json"),
		ResultsFile: getEnv("RESULTS_FILE", "encar_truck_results.json"),
		LogFile:     getEnv("LOG_FILE", "encar_truck_scraper.log"),

		StartYear:      getEnvInt("START_YEAR", 2025),
		MinYear:        getEnvInt("MIN_YEAR", 2008),
		PageSize:       getEnvInt("PAGE_SIZE", 1000),
		RepeatBudget:   getEnvInt("REPEAT_BUDGET", 10),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SEC", 15)) * time.Second,
		RequestPause:   time.Duration(getEnvInt("REQUEST_PAUSE_MS", 1000)) * time.Millisecond,
		CyclePause:     time.Duration(getEnvInt("CYCLE_PAUSE_SEC", 60)) * time.Second,
		RunOnce:        getEnvBool("RUN_ONCE", false),

		SinkBackend: getEnv("SINK_BACKEND", SinkSQLite),
		SQLitePath:  getEnv("SQLITE_PATH", "encar_cars.db"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "encar_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
