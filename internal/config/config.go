package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  Only the upstream API key is mandatory;
// everything else has a workable default or degrades a feature when
// absent (empty DB host disables history, empty OpenAI key selects the
// heuristic interpreter, empty JWT secret disables authentication).
type Config struct {
	Env  string // application environment (e.g. "dev", "prod")
	Port string // HTTP port to listen on

	TicketmasterKey         string        // upstream API key (required)
	TicketmasterBaseURL     string        // override for tests/staging, default production URL
	TicketmasterMinInterval time.Duration // minimum spacing between upstream calls
	TicketmasterTimeout     time.Duration // per-request timeout

	OpenAIKey     string // optional; empty selects the heuristic interpreter
	OpenAIModel   string
	OpenAIBaseURL string
	OpenAITimeout time.Duration

	JWTSecret string // secret verifying caller identity tokens; empty disables auth

	DBUser string // database username
	DBPass string // database password (optional)
	DBHost string // database host; empty disables search history
	DBPort string // database port number
	DBName string // database name

	RabbitURL string // broker URL for the chat worker; empty disables it
}

// Load reads configuration from environment variables.  The upstream API
// key is enforced by must(): without it the service cannot do anything
// useful, so a missing value exits with a fatal log message.
func Load() Config {
	return Config{
		Env:  envStr("APP_ENV", "dev"),
		Port: envStr("APP_PORT", "8080"),

		TicketmasterKey:         must("TICKETMASTER_API_KEY"),
		TicketmasterBaseURL:     os.Getenv("TICKETMASTER_BASE_URL"),
		TicketmasterMinInterval: envDur("TICKETMASTER_MIN_INTERVAL", 200*time.Millisecond),
		TicketmasterTimeout:     envDur("TICKETMASTER_TIMEOUT", 10*time.Second),

		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   envStr("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		OpenAITimeout: envDur("OPENAI_TIMEOUT", 15*time.Second),

		JWTSecret: os.Getenv("JWT_SECRET"),

		DBUser: os.Getenv("DB_USER"),
		DBPass: os.Getenv("DB_PASS"),
		DBHost: os.Getenv("DB_HOST"),
		DBPort: envStr("DB_PORT", "3306"),
		DBName: envStr("DB_NAME", "eventscout"),

		RabbitURL: rabbitURL(),
	}
}

func rabbitURL() string {
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		return v
	}
	return os.Getenv("AMQP_URL")
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
