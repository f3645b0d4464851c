package config

import "os"

type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Admin    AdminConfig
	Media    MediaConfig
	Postgres PostgresConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins string
}

type AuthConfig struct {
	// JWTSecret must be at least 32 bytes for HS256.
	JWTSecret string
	TokenTTL  string
}

type AdminConfig struct {
	Username string
	Email    string
	Password string
}

type MediaConfig struct {
	UploadDir string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:           getenv("APP_PORT", "8080"),
			Env:            getenv("APP_ENV", "dev"),
			AllowedOrigins: getenv("ALLOWED_ORIGINS", "http://localhost:4200"),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("SECRET_KEY"),
			TokenTTL:  getenv("TOKEN_TTL", "24h"),
		},
		Admin: AdminConfig{
			Username: os.Getenv("ADMIN_USERNAME"),
			Email:    os.Getenv("ADMIN_EMAIL"),
			Password: os.Getenv("ADMIN_PASSWORD"),
		},
		Media: MediaConfig{
			UploadDir: getenv("UPLOAD_DIR", "uploads"),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
