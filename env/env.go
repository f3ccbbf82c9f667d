package env

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

type Env struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port             int
	CORSAllowOrigins []string
}

type MongoDBConfig struct {
	URI string
	DB  string
}

type LogConfig struct {
	Format string
}

const (
	TextLogFormat = "text"
	JSONLogFormat = "json"
)

var (
	setupOnce sync.Once
	env       Env
	envErr    error
)

// GetEnv reads the configuration once and returns the same result afterwards
func GetEnv() (*Env, error) {

	setupOnce.Do(func() {
		env, envErr = Load()
	})

	if envErr != nil {
		return nil, envErr
	}

	return &env, nil
}

// Load reads the configuration from the environment
func Load() (Env, error) {

	mongoDBURI := os.Getenv("MONGODB_URI")
	if mongoDBURI == "" {
		return Env{}, errors.New("MONGODB_URI is required")
	}

	serverPort, err := strconv.Atoi(getEnv("SERVER_PORT", "8000"))
	if err != nil || serverPort < 1 || serverPort > 65535 {
		return Env{}, fmt.Errorf("SERVER_PORT must be a port number, got %q", os.Getenv("SERVER_PORT"))
	}

	logFormat := strings.ToLower(getEnv("LOG_FORMAT", TextLogFormat))
	if logFormat != TextLogFormat && logFormat != JSONLogFormat {
		return Env{}, fmt.Errorf("LOG_FORMAT must be %q or %q, got %q", TextLogFormat, JSONLogFormat, logFormat)
	}

	return Env{
		Server: ServerConfig{
			Port:             serverPort,
			CORSAllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "*")),
		},
		MongoDB: MongoDBConfig{
			URI: mongoDBURI,
			DB:  getEnv("MONGODB_NAME", "BooksLib"),
		},
		Log: LogConfig{
			Format: logFormat,
		},
	}, nil
}

func getEnv(key, def string) string {

	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}

	return def
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
