package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string

	// Word content: a local directory of per-biome JSON documents,
	// optionally backed by a remote base URL.
	WordsPath    string
	WordsBaseURL string

	AudioPath string

	QuestPrepSeconds     int
	QuestDurationSeconds int
	QuestQuestionCount   int

	// ParentPINHash is a bcrypt hash gating play-time redemption.
	// Empty disables the gate.
	ParentPINHash string

	// SES notification settings for redemption emails.
	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	ParentEmail  string
}

// Load reads configuration from environment variables with sensible
// defaults. A .env file in the working directory is honoured if present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	return &Config{
		ServerPort:     getEnv("PORT", "8080"),
		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./vocabville.db"),
		DatabaseURL:    getEnv("DB_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		WordsPath:    getEnv("WORDS_PATH", "./words"),
		WordsBaseURL: getEnv("WORDS_BASE_URL", ""),

		AudioPath: getEnv("AUDIO_PATH", "./static/audio"),

		QuestPrepSeconds:     getEnvInt("QUEST_PREP_SECONDS", 5),
		QuestDurationSeconds: getEnvInt("QUEST_DURATION_SECONDS", 180),
		QuestQuestionCount:   getEnvInt("QUEST_QUESTION_COUNT", 10),

		ParentPINHash: getEnv("PARENT_PIN_HASH", ""),

		AWSRegion:    getEnv("AWS_REGION", "eu-west-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "VocabVille"),
		ParentEmail:  getEnv("PARENT_EMAIL", ""),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an integer environment variable or returns a default
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid value for %s: %q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
