package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Log      Log
	OpenAI   OpenAI
	Gemini   Gemini
	Speech   Speech
	Storage  Storage
	Database Database
	Redis    Redis

	// LLMTimeout bounds a single HTTP round trip to a provider transport.
	LLMTimeout time.Duration
}

type Server struct {
	Port    string
	GinMode string
}

type Log struct {
	Level  string
	Format string
}

type OpenAI struct {
	APIKey          string
	BaseURL         string
	Model           string
	TranscribeModel string
}

type Gemini struct {
	APIKey string
	Model  string
}

type Speech struct {
	Transcriber  string // "openai" or "gcp"
	LanguageCode string
}

type Storage struct {
	Driver     string // "file" or "postgres"
	SessionDir string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Redis struct {
	URL     string
	LockTTL time.Duration
}

// HasProviderCredentials reports whether any language-model backend is configured.
func (c *Config) HasProviderCredentials() bool {
	return c.OpenAI.APIKey != "" || c.Gemini.APIKey != ""
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "pretty")
	viper.SetDefault("OPENAI_BASE_URL", "https://api.openai.com")
	viper.SetDefault("OPENAI_MODEL", "gpt-4o")
	viper.SetDefault("OPENAI_TRANSCRIBE_MODEL", "whisper-1")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("LLM_TIMEOUT", "120s")
	viper.SetDefault("TRANSCRIBER", "openai")
	viper.SetDefault("SPEECH_LANGUAGE", "en-US")
	viper.SetDefault("STORAGE_DRIVER", "file")
	viper.SetDefault("SESSION_DIR", "./data/sessions")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("SESSION_LOCK_TTL", "2m")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.GinMode = viper.GetString("GIN_MODE")
	config.Log.Level = viper.GetString("LOG_LEVEL")
	config.Log.Format = viper.GetString("LOG_FORMAT")

	config.OpenAI.APIKey = viper.GetString("OPENAI_API_KEY")
	config.OpenAI.BaseURL = viper.GetString("OPENAI_BASE_URL")
	config.OpenAI.Model = viper.GetString("OPENAI_MODEL")
	config.OpenAI.TranscribeModel = viper.GetString("OPENAI_TRANSCRIBE_MODEL")
	config.Gemini.APIKey = viper.GetString("GEMINI_API_KEY")
	config.Gemini.Model = viper.GetString("GEMINI_MODEL")
	config.LLMTimeout = viper.GetDuration("LLM_TIMEOUT")

	config.Speech.Transcriber = viper.GetString("TRANSCRIBER")
	config.Speech.LanguageCode = viper.GetString("SPEECH_LANGUAGE")

	config.Storage.Driver = viper.GetString("STORAGE_DRIVER")
	config.Storage.SessionDir = viper.GetString("SESSION_DIR")

	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Redis.URL = viper.GetString("REDIS_URL")
	config.Redis.LockTTL = viper.GetDuration("SESSION_LOCK_TTL")

	// API keys stay out of the log.
	log.Info().
		Str("port", config.Server.Port).
		Str("storage", config.Storage.Driver).
		Str("transcriber", config.Speech.Transcriber).
		Bool("openai", config.OpenAI.APIKey != "").
		Bool("gemini", config.Gemini.APIKey != "").
		Bool("redis", config.Redis.URL != "").
		Msg("Config loaded")
	return &config, nil

}
