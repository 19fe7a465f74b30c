package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

// apiKeyEnvVars are checked in order for the generative AI credential.
var apiKeyEnvVars = []string{"GOOGLE_GEMINI_API_KEY", "GEMINI_API_KEY"}

type Config struct {
	Mode     string `mapstructure:"mode"`
	Handlers struct {
		Prometheus struct {
			Port string `mapstructure:"port"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	GenerativeAI struct {
		APIKey         string  `mapstructure:"apiKey"`
		ItineraryModel string  `mapstructure:"itineraryModel"`
		SnippetModel   string  `mapstructure:"snippetModel"`
		Temperature    float32 `mapstructure:"temperature"`
		// CallTimeout must stay below server.HTTPTimeout so a slow model degrades
		// to the template before the request itself times out.
		CallTimeout time.Duration `mapstructure:"callTimeout"`
	} `mapstructure:"generativeAI"`
	RateLimit struct {
		Requests int           `mapstructure:"requests"`
		Window   time.Duration `mapstructure:"window"`
	} `mapstructure:"rateLimit"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowedOrigins"`
	} `mapstructure:"cors"`
}

// IsDevelopment reports whether the app runs in development mode (the default).
func (c Config) IsDevelopment() bool {
	return c.Mode == "" || c.Mode == "development"
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// SERVER_HTTPPORT overrides server.HTTPPort, and so on
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(append([]string{"generativeAI.apiKey"}, apiKeyEnvVars...)...); err != nil {
		return Config{}, fmt.Errorf("failed to bind api key env: %w", err)
	}
	if err := v.BindEnv("mode", "APP_ENV"); err != nil {
		return Config{}, fmt.Errorf("failed to bind mode env: %w", err)
	}

	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.GenerativeAI.APIKey = strings.TrimSpace(config.GenerativeAI.APIKey)
	return config, nil
}
