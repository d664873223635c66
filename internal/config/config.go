package config

import (
	"os"
)

type Config struct {
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	RedisHost     string
	RedisPort     string
	SessionSecret string
	GinMode       string

	// OpenBoardStatusUpdates keeps the historical behavior where any
	// authenticated user may move a task on the board, member or not.
	// Set OPEN_BOARD_STATUS_UPDATES=false to restrict status changes to
	// members of the task's project.
	OpenBoardStatusUpdates bool
}

func Load() *Config {
	return &Config{
		DBDriver:               getEnv("DB_DRIVER", "mysql"),
		DBHost:                 getEnv("DB_HOST", "localhost"),
		DBPort:                 getEnv("DB_PORT", "3306"),
		DBUser:                 getEnv("DB_USER", "sprintboard"),
		DBPassword:             getEnv("DB_PASSWORD", "sprintboard"),
		DBName:                 getEnv("DB_NAME", "sprintboard"),
		RedisHost:              getEnv("REDIS_HOST", "localhost"),
		RedisPort:              getEnv("REDIS_PORT", "6379"),
		SessionSecret:          getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:                getEnv("GIN_MODE", "debug"),
		OpenBoardStatusUpdates: getEnv("OPEN_BOARD_STATUS_UPDATES", "true") != "false",
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
