package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone  = "UTC"
	configPathEnv    = "BLOGFORGE_CONFIG"
	portEnv          = "PORT"
	databaseDSNEnv   = "DATABASE_DSN"
	geminiAPIKeyEnv  = "GOOGLE_AI_API_KEY"
	geminiModelEnv   = "GEMINI_MODEL"
	telegramTokenEnv = "TELEGRAM_BOT_TOKEN"
	telegramChatEnv  = "TELEGRAM_CHAT_ID"
	logLevelEnv      = "LOG_LEVEL"
)

// Config holds high-level settings required across the application.
type Config struct {
	Server        ServerConfig       `yaml:"server"`
	Database      DatabaseConfig     `yaml:"database"`
	Logging       LoggingConfig      `yaml:"logging"`
	Gemini        GeminiConfig       `yaml:"gemini"`
	Blog          BlogConfig         `yaml:"blog"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Notifications NotificationConfig `yaml:"notifications"`
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Port string `yaml:"port"`
}

// DatabaseConfig describes Postgres connection details. An empty DSN makes
// the application fall back to in-memory repositories.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// LoggingConfig controls the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// GeminiConfig defines how to contact the generative-AI API.
type GeminiConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"apiKey"`
}

// BlogConfig carries editorial defaults for generated content.
type BlogConfig struct {
	DefaultCategory string `yaml:"defaultCategory"`
	AuthorRole      string `yaml:"authorRole"`
	Region          string `yaml:"region"`
}

// SchedulerConfig defines when the recurring blog routines run.
type SchedulerConfig struct {
	Disabled        bool           `yaml:"disabled"`
	Timezone        string         `yaml:"timezone"`
	GenerationCount int            `yaml:"generationCount"`
	GenerationHour  int            `yaml:"generationHour"`
	PublicationHour int            `yaml:"publicationHour"`
	StatsHour       int            `yaml:"statsHour"`
	PendingAlert    int            `yaml:"pendingAlert"`
	location        *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// NotificationConfig encapsulates outbound channels.
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(portEnv); v != "" {
		c.Server.Port = v
	}

	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(geminiAPIKeyEnv); v != "" {
		c.Gemini.APIKey = v
	}

	if v := os.Getenv(geminiModelEnv); v != "" {
		c.Gemini.Model = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Server.Port != "" {
		base.Server = override.Server
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Gemini.Endpoint != "" {
		base.Gemini.Endpoint = override.Gemini.Endpoint
	}
	if override.Gemini.Model != "" {
		base.Gemini.Model = override.Gemini.Model
	}
	if override.Gemini.APIKey != "" {
		base.Gemini.APIKey = override.Gemini.APIKey
	}

	if override.Blog.DefaultCategory != "" {
		base.Blog.DefaultCategory = override.Blog.DefaultCategory
	}
	if override.Blog.AuthorRole != "" {
		base.Blog.AuthorRole = override.Blog.AuthorRole
	}
	if override.Blog.Region != "" {
		base.Blog.Region = override.Blog.Region
	}

	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}
	base.Scheduler.Disabled = base.Scheduler.Disabled || override.Scheduler.Disabled
	if override.Scheduler.GenerationCount > 0 {
		base.Scheduler.GenerationCount = override.Scheduler.GenerationCount
	}
	if override.Scheduler.GenerationHour > 0 {
		base.Scheduler.GenerationHour = override.Scheduler.GenerationHour
	}
	if override.Scheduler.PublicationHour > 0 {
		base.Scheduler.PublicationHour = override.Scheduler.PublicationHour
	}
	if override.Scheduler.StatsHour > 0 {
		base.Scheduler.StatsHour = override.Scheduler.StatsHour
	}
	if override.Scheduler.PendingAlert > 0 {
		base.Scheduler.PendingAlert = override.Scheduler.PendingAlert
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Server:   ServerConfig{Port: "8080"},
		Database: DatabaseConfig{DSN: ""},
		Logging:  LoggingConfig{Level: "info"},
		Gemini: GeminiConfig{
			Endpoint: "https://generativelanguage.googleapis.com/v1beta",
			Model:    "gemini-2.5-flash",
			APIKey:   "",
		},
		Blog: BlogConfig{
			DefaultCategory: "Conseils & Astuces",
			AuthorRole:      "ADMIN",
			Region:          "BF",
		},
		Scheduler: SchedulerConfig{
			Timezone:        defaultTimezone,
			GenerationCount: 2,
			GenerationHour:  10,
			PublicationHour: 9,
			StatsHour:       0,
			PendingAlert:    5,
			location:        tz,
		},
		Notifications: NotificationConfig{
			Telegram: TelegramConfig{BotToken: "", ChatID: ""},
		},
	}
}
