package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

type Environment struct {
	IsDevelopment bool
	Domain        string
	Port          string
	LogLevel      string

	DatabaseURL   string
	MongoDatabase string

	Auth0Domain    string
	Auth0Audience  string
	JWTSecret      string
	AllowedOrigins []string
}

var defaultOrigins = []string{"http://localhost:3000"}

// Load reads the environment. DB_URL wins over the MONGO_* variables; with
// neither set the service uses a local sqlite file.
func Load() Environment {
	// Get domain from environment variable
	domain := os.Getenv("COOKIE_DOMAIN")

	// If no domain is set, we're in development
	isDev := domain == ""
	if isDev {
		domain = "localhost"
	}

	env := Environment{
		IsDevelopment: isDev,
		Domain:        domain,
		Port:          getEnv("PORT", "8080"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		DatabaseURL:   os.Getenv("DB_URL"),
		MongoDatabase: getEnv("MONGO_DATABASE", "flashcards"),
		Auth0Domain:   os.Getenv("AUTH0_DOMAIN"),
		Auth0Audience: getEnv("AUTH0_AUDIENCE", "recallcards"),
		JWTSecret:     os.Getenv("JWT_SECRET_KEY"),
	}

	if env.DatabaseURL == "" {
		if host := os.Getenv("MONGO_HOST"); host != "" {
			env.DatabaseURL = mongoURI(host, getEnv("MONGO_PORT", "27017"), env.MongoDatabase,
				os.Getenv("MONGO_USERNAME"), os.Getenv("MONGO_PASSWORD"))
		} else {
			env.DatabaseURL = "flashcards.db"
		}
	}

	env.AllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if len(env.AllowedOrigins) == 0 {
		env.AllowedOrigins = defaultOrigins
	}
	return env
}

func mongoURI(host, port, database, username, password string) string {
	if username != "" && password != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%s/%s?authSource=admin",
			url.QueryEscape(username), url.QueryEscape(password), host, port, database)
	}
	return fmt.Sprintf("mongodb://%s:%s/", host, port)
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
