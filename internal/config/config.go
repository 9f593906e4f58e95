package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string     `mapstructure:"env"`       // current application environment (local, dev, production etc)
	LogLevel         string     `mapstructure:"log_level"` // debug, info, warn or error; empty keeps the env default
	TelegramAPIToken string     `mapstructure:"-"`         // Telegram API token loaded from environment
	DB               DB         `mapstructure:"database"`
	Cache            Cache      `mapstructure:"cache"`
	Content          Content    `mapstructure:"content"`
	Quiz             Quiz       `mapstructure:"quiz"`
	Challenges       Challenges `mapstructure:"challenges"`
	HTTP             HTTP       `mapstructure:"http"`
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
}

// Cache configures the optional Redis cache for content responses.
type Cache struct {
	URL    string        `mapstructure:"url"` // empty disables caching
	TTL    time.Duration `mapstructure:"ttl"`
	Prefix string        `mapstructure:"prefix"`
}

// Content configures the verse text and audio sources.
type Content struct {
	BaseURL      string        `mapstructure:"base_url"`
	AudioBaseURL string        `mapstructure:"audio_base_url"`
	Edition      string        `mapstructure:"edition"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxParallel  int           `mapstructure:"max_parallel"`
}

// Narrator is a selectable recitation.
type Narrator struct {
	ID   string `mapstructure:"id"`
	Name string `mapstructure:"name"`
}

// Quiz holds the player-selectable quiz settings.
type Quiz struct {
	DefaultQuestions int           `mapstructure:"default_questions"`
	QuestionCounts   []int         `mapstructure:"question_counts"`
	AnswerDelay      time.Duration `mapstructure:"answer_delay"` // pause between feedback and the next question
	DefaultNarrator  string        `mapstructure:"default_narrator"`
	Narrators        []Narrator    `mapstructure:"narrators"`
}

// NarratorIDs returns the identifiers of the configured narrators.
func (q Quiz) NarratorIDs() []string {
	ids := make([]string, 0, len(q.Narrators))
	for _, n := range q.Narrators {
		ids = append(ids, n.ID)
	}
	return ids
}

type Challenges struct {
	RefreshSpec string `mapstructure:"refresh_spec"` // cron expression
}

type HTTP struct {
	Addr string `mapstructure:"addr"` // health server address, empty disables it
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	// A missing .env file is fine; variables may come from the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("cache.url", "REDIS_URL")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	cfg.DB.URL = v.GetString("database_url")
	if cfg.DB.URL == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	if err := cfg.Quiz.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("log_level", "")

	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30m")
	v.SetDefault("database.connect_timeout", "5s")

	v.SetDefault("cache.url", "")
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.prefix", "hifz:")

	v.SetDefault("content.base_url", "https://api.alquran.cloud/v1")
	v.SetDefault("content.audio_base_url", "https://cdn.islamic.network/quran/audio/128")
	v.SetDefault("content.edition", "quran-uthmani")
	v.SetDefault("content.timeout", "10s")
	v.SetDefault("content.max_parallel", 4)

	v.SetDefault("quiz.default_questions", 5)
	v.SetDefault("quiz.question_counts", []int{5, 10, 15, 20})
	v.SetDefault("quiz.answer_delay", "2s")
	v.SetDefault("quiz.default_narrator", "ar.alafasy")
	v.SetDefault("quiz.narrators", []map[string]any{
		{"id": "ar.alafasy", "name": "مشاري العفاسي"},
		{"id": "ar.husary", "name": "محمود خليل الحصري"},
		{"id": "ar.minshawi", "name": "محمد صديق المنشاوي"},
		{"id": "ar.abdulbasitmurattal", "name": "عبد الباسط عبد الصمد"},
	})

	v.SetDefault("challenges.refresh_spec", "0 * * * *")
	v.SetDefault("http.addr", ":8080")
}

func (q Quiz) validate() error {
	if len(q.Narrators) == 0 {
		return errors.New("quiz.narrators must not be empty")
	}
	if q.DefaultQuestions <= 0 {
		return fmt.Errorf("quiz.default_questions must be positive, got %d", q.DefaultQuestions)
	}

	found := false
	for _, n := range q.Narrators {
		if n.ID == q.DefaultNarrator {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("quiz.default_narrator %q is not among quiz.narrators", q.DefaultNarrator)
	}

	return nil
}
