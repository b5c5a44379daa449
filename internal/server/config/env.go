package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays values from the process environment. A .env file in the
// working directory is loaded first when present; variables already set in
// the environment win over it.
//
// Recognised variables:
//
//	PORT              HTTP port, the listener binds ":" + PORT
//	DATABASE_DSN      PostgreSQL DSN
//	SESSION_SECRET    cookie signing secret
//	SESSION_VALIDITY  session lifetime, Go duration syntax ("24h")
//	SECURE_COOKIE     strconv.ParseBool syntax
//	BCRYPT_COST       integer work factor
//	TRUSTED_PROXIES   comma-separated list
//
// Malformed values panic, like a malformed JSON file does.
func parseEnv(config *Config) {
	_ = godotenv.Load(".env")

	if port, ok := os.LookupEnv("PORT"); ok && port != "" {
		config.EndpointAddrHTTP = ":" + port
	}
	config.DatabaseDSN = getEnv("DATABASE_DSN", config.DatabaseDSN)
	config.SessionSecret = getEnv("SESSION_SECRET", config.SessionSecret)

	if v, ok := os.LookupEnv("SESSION_VALIDITY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.SessionValidityDuration = d
	}

	if v, ok := os.LookupEnv("SECURE_COOKIE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(err)
		}
		config.SecureCookie = b
	}

	if v, ok := os.LookupEnv("BCRYPT_COST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		config.BcryptCost = n
	}

	if v, ok := os.LookupEnv("TRUSTED_PROXIES"); ok {
		config.TrustedProxies = parseTrustedProxies(v)
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseTrustedProxies(value string) []string {
	var proxies []string
	for _, part := range strings.Split(value, ",") {
		if proxy := strings.TrimSpace(part); proxy != "" {
			proxies = append(proxies, proxy)
		}
	}
	return proxies
}
