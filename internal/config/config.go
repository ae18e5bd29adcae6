package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
	CORS struct {
		AllowedOrigins   []string `mapstructure:"allowed_origins"`
		AllowedMethods   []string `mapstructure:"allowed_methods"`
		AllowedHeaders   []string `mapstructure:"allowed_headers"`
		ExposedHeaders   []string `mapstructure:"exposed_headers"`
		AllowCredentials bool     `mapstructure:"allow_credentials"`
		MaxAge           int      `mapstructure:"max_age"`
	} `mapstructure:"cors"`
	Auth struct {
		Enabled   bool   `mapstructure:"enabled"`
		JWTSecret string `mapstructure:"jwt_secret"`
	} `mapstructure:"auth"`
	Uploads struct {
		Dir string `mapstructure:"dir"`
	} `mapstructure:"uploads"`
	App struct {
		ReviewLimit       int `mapstructure:"review_limit"`
		PreviewTTLMinutes int `mapstructure:"preview_ttl_minutes"`
	} `mapstructure:"app"`
	Providers struct {
		Gemini struct {
			APIKey        string `mapstructure:"api_key"`
			Model         string `mapstructure:"model"`
			RetryAttempts uint   `mapstructure:"retry_attempts"`
		} `mapstructure:"gemini"`
		AzureSpeech struct {
			APIKey string `mapstructure:"api_key"`
			Region string `mapstructure:"region"`
			Voice  string `mapstructure:"voice"`
		} `mapstructure:"azure_speech"`
	} `mapstructure:"providers"`
}

// PreviewTTL returns the preview-session lifetime as a duration.
func (c *Config) PreviewTTL() time.Duration {
	return time.Duration(c.App.PreviewTTLMinutes) * time.Minute
}

var Cfg Config

func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("auth.enabled", "AUTH_ENABLED")
	viper.BindEnv("auth.jwt_secret", "JWT_SECRET")
	viper.BindEnv("providers.gemini.api_key", "GEMINI_API_KEY")
	viper.BindEnv("providers.azure_speech.api_key", "AZURE_SPEECH_KEY")
	viper.BindEnv("providers.azure_speech.region", "AZURE_SPEECH_REGION")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	// --- defaults ---
	if Cfg.Server.Port == "" {
		Cfg.Server.Port = DefaultServerPort
	}
	if Cfg.Log.Level == "" {
		Cfg.Log.Level = DefaultLogLevel
	}
	if Cfg.App.ReviewLimit <= 0 {
		Cfg.App.ReviewLimit = DefaultReviewLimit
	}
	if Cfg.App.PreviewTTLMinutes <= 0 {
		Cfg.App.PreviewTTLMinutes = DefaultPreviewTTLMinutes
	}
	if Cfg.Uploads.Dir == "" {
		Cfg.Uploads.Dir = DefaultUploadsDir
	}
	if Cfg.Providers.Gemini.Model == "" {
		Cfg.Providers.Gemini.Model = DefaultGeminiModel
	}
	if Cfg.Providers.Gemini.RetryAttempts == 0 {
		Cfg.Providers.Gemini.RetryAttempts = DefaultRetryAttempts
	}
	if Cfg.Providers.AzureSpeech.Voice == "" {
		Cfg.Providers.AzureSpeech.Voice = DefaultSpeechVoice
	}
	if !viper.IsSet("auth.enabled") {
		log.Println("Auth enabled flag not set, defaulting to true (enabled)")
		Cfg.Auth.Enabled = true
	}
	if Cfg.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Review Limit: %d", Cfg.App.ReviewLimit)
	log.Printf("Preview TTL: %d min", Cfg.App.PreviewTTLMinutes)
	log.Printf("Auth Enabled: %t", Cfg.Auth.Enabled)

	return nil
}
