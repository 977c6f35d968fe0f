package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server Server `mapstructure:"server"`
	Assets Assets `mapstructure:"assets"`
	Auth   Auth   `mapstructure:"auth"`
	OpenAI OpenAI `mapstructure:"openai"`
	Mirror Mirror `mapstructure:"mirror"`
}

type Server struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
	CORS CORS   `mapstructure:"cors"`
}

type CORS struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

// Assets configures the local asset store and the externally reachable base
// URL used to build file URLs.
type Assets struct {
	Root    string `mapstructure:"root"`
	BaseURL string `mapstructure:"base_url"`
}

// Auth holds the optional shared secret. Empty means the check is disabled.
type Auth struct {
	AppKey string `mapstructure:"app_key"`
}

type OpenAI struct {
	APIKey         string `mapstructure:"api_key"`
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	Text           Text   `mapstructure:"text"`
	Speech         Speech `mapstructure:"speech"`
}

type Text struct {
	Model       string  `mapstructure:"model"`
	Temperature float32 `mapstructure:"temperature"`
}

type Speech struct {
	Model  string  `mapstructure:"model"`
	Voice  string  `mapstructure:"voice"`
	Speed  float64 `mapstructure:"speed"`
	Format string  `mapstructure:"format"`
}

// Mirror configures the optional S3-compatible copy of generated audio.
type Mirror struct {
	Enabled   bool   `mapstructure:"enabled"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	PublicURL string `mapstructure:"public_url"`
}

func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors.allow_all_origins", true)
	v.SetDefault("server.cors.allowed_origins", []string{})
	v.SetDefault("assets.root", "./data/voiceovers")
	v.SetDefault("assets.base_url", "http://localhost:8080")
	v.SetDefault("auth.app_key", "")
	v.SetDefault("openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("openai.timeout_seconds", 60)
	v.SetDefault("openai.text.model", "gpt-4o-mini")
	v.SetDefault("openai.text.temperature", 0.8)
	v.SetDefault("openai.speech.model", "tts-1")
	v.SetDefault("openai.speech.voice", "onyx")
	v.SetDefault("openai.speech.speed", 0.95)
	v.SetDefault("openai.speech.format", "mp3")
	v.SetDefault("mirror.enabled", false)
	v.SetDefault("mirror.use_ssl", true)
	v.SetDefault("mirror.region", "")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Bind environment variables explicitly for sensitive data
	v.BindEnv("openai.api_key", "OPENAI_API_KEY")
	v.BindEnv("openai.base_url", "OPENAI_BASE_URL")
	v.BindEnv("auth.app_key", "APP_KEY")
	v.BindEnv("assets.base_url", "PUBLIC_BASE_URL")
	v.BindEnv("server.port", "PORT")
	v.BindEnv("mirror.endpoint", "MIRROR_ENDPOINT")
	v.BindEnv("mirror.access_key", "MIRROR_ACCESS_KEY")
	v.BindEnv("mirror.secret_key", "MIRROR_SECRET_KEY")
	v.BindEnv("mirror.bucket", "MIRROR_BUCKET")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
