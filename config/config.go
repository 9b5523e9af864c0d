package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode   string `mapstructure:"mode"`
	Dotenv string `mapstructure:"dotenv"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	GenAI struct {
		// APIKey comes from GOOGLE_GEMINI_API_KEY (or API_KEY).
		APIKey      string  `mapstructure:"apiKey"`
		Model       string  `mapstructure:"model"`
		Temperature float32 `mapstructure:"temperature"`
	} `mapstructure:"genai"`
	Maps struct {
		// APIKey comes from GOOGLE_MAPS_API_KEY. Only used for embed URLs.
		APIKey string `mapstructure:"apiKey"`
	} `mapstructure:"maps"`
	Observability struct {
		ServiceName string `mapstructure:"serviceName"`
		MetricsPort string `mapstructure:"metricsPort"`
	} `mapstructure:"observability"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Try to load file-based config
	err := v.ReadInConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	if err = bindEnv(v); err != nil {
		return Config{}, err
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}
	fmt.Fprintln(os.Stderr, "Successfully loaded app configs...")
	return config, nil
}

// bindEnv maps credentials and a few overrides from the process environment.
// The Gemini key accepts API_KEY as a fallback name.
func bindEnv(v *viper.Viper) error {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	bindings := map[string][]string{
		"genai.apiKey":    {"GOOGLE_GEMINI_API_KEY", "API_KEY"},
		"genai.model":     {"GEMINI_MODEL"},
		"maps.apiKey":     {"GOOGLE_MAPS_API_KEY"},
		"server.HTTPPort": {"HTTP_PORT"},
		"mode":            {"APP_ENV"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}
	return nil
}
