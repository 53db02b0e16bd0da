package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Config carries everything handlers need: the Mongo client handle plus the
// env-derived settings. It is passed explicitly into every handler
// constructor instead of living in a package-level singleton.
type Config struct {
	MongoClient *mongo.Client
	DBName      string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	MapyAPIKey         string
	FBResolverEndpoint string

	AdminEmail     string
	AllowedOrigins []string
	Port           string
}

// Load reads settings from the environment and connects to Mongo. Call
// after godotenv has populated the environment.
func Load() (*Config, error) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	cfg := &Config{
		MongoClient:        client,
		DBName:             getenv("DB_NAME", "event_calendar"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		AccessTokenTTL:     15 * time.Minute,
		RefreshTokenTTL:    7 * 24 * time.Hour,
		MapyAPIKey:         os.Getenv("MAPY_API_KEY"),
		FBResolverEndpoint: os.Getenv("FB_RESOLVER_ENDPOINT"),
		AdminEmail:         os.Getenv("ADMIN_EMAIL"),
		Port:               getenv("PORT", "8080"),
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = splitAndTrim(origins)
	}
	return cfg, nil
}

// Events returns the single events collection; pending and approved records
// live together, told apart by the status field.
func (c *Config) Events() *mongo.Collection {
	return c.MongoClient.Database(c.DBName).Collection("events")
}

func (c *Config) Users() *mongo.Collection {
	return c.MongoClient.Database(c.DBName).Collection("users")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
