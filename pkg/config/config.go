package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultEndpointURL  = "https://us-south.ml.cloud.ibm.com"
	DefaultIAMURL       = "https://iam.cloud.ibm.com/identity/token"
	DefaultModelID      = "ibm/granite-3-2-8b-instruct"
	DefaultAPIVersion   = "2023-05-29"
	DefaultRegulation   = "Indian Labor Law Standards"
	OutputModeJSON      = "structured-json"
	OutputModeSentinel  = "sentinel-phrase"
	defaultModelTimeout = 60 * time.Second
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Logging LoggingConfig `mapstructure:"logging"`
	Model   ModelConfig   `mapstructure:"model"`
	Audit   AuditConfig   `mapstructure:"audit"`
}

type ServerConfig struct {
	Host        string     `mapstructure:"host"`
	Port        int        `mapstructure:"port"`
	MetricsPort int        `mapstructure:"metrics_port"`
	PublicURL   string     `mapstructure:"public_url"`
	CORS        CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowOrigins     []string `mapstructure:"allow_origins"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// ModelConfig describes the remote text-generation endpoint. It is read once
// at startup and never reloaded.
type ModelConfig struct {
	Provider     string         `mapstructure:"provider"`
	EndpointURL  string         `mapstructure:"endpoint_url"`
	IAMURL       string         `mapstructure:"iam_url"`
	APIVersion   string         `mapstructure:"api_version"`
	APIKey       string         `mapstructure:"api_key"`
	ProjectID    string         `mapstructure:"project_id"`
	ModelID      string         `mapstructure:"model_id"`
	Timeout      time.Duration  `mapstructure:"timeout"`
	SystemPrompt string         `mapstructure:"system_prompt"`
	Instructions []string       `mapstructure:"instructions"`
	Decoding     DecodingConfig `mapstructure:"decoding"`
	Breaker      BreakerConfig  `mapstructure:"breaker"`
	AWS          AWSConfig      `mapstructure:"aws"`
	Azure        AzureConfig    `mapstructure:"azure"`
	// Options is passed through to the provider untouched.
	Options map[string]interface{} `mapstructure:"options"`
}

type DecodingConfig struct {
	Method            string  `mapstructure:"method"`
	MaxNewTokens      int     `mapstructure:"max_new_tokens"`
	MinNewTokens      int     `mapstructure:"min_new_tokens"`
	Temperature       float64 `mapstructure:"temperature"`
	RepetitionPenalty float64 `mapstructure:"repetition_penalty"`
}

type BreakerConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxFailures uint32        `mapstructure:"max_failures"`
}

type AWSConfig struct {
	Region       string `mapstructure:"region"`
	AccessKey    string `mapstructure:"access_key"`
	SecretKey    string `mapstructure:"secret_key"`
	SessionToken string `mapstructure:"session_token"`
	RoleARN      string `mapstructure:"role_arn"`
	SessionName  string `mapstructure:"session_name"`
}

type AzureConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	APIVersion  string `mapstructure:"api_version"`
	UseIdentity bool   `mapstructure:"use_identity"`
}

type AuditConfig struct {
	DefaultRule    string `mapstructure:"default_rule"`
	OutputMode     string `mapstructure:"output_mode"`
	DecorateStatus bool   `mapstructure:"decorate_status"`
	EscapeInputs   bool   `mapstructure:"escape_inputs"`
}

// legacyEnv maps the environment variables the service has always honoured
// onto their config keys.
var legacyEnv = map[string]string{
	"model.api_key":      "IBM_CLOUD_API_KEY",
	"model.project_id":   "PROJECT_ID",
	"model.endpoint_url": "IBM_CLOUD_URL",
}

// Load reads config.yaml from configPath (falling back to ./config and the
// working directory) and overlays the environment. A missing file is not an
// error: defaults plus environment are enough to boot.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaultValues(v)

	for key, env := range legacyEnv {
		if err := v.BindEnv(key, strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file config.yaml: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaultValues(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.metrics_port", 9090)
	v.SetDefault("server.cors.max_age", 600)
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("logging.level", "info")

	v.SetDefault("model.provider", "watsonx")
	v.SetDefault("model.endpoint_url", DefaultEndpointURL)
	v.SetDefault("model.iam_url", DefaultIAMURL)
	v.SetDefault("model.api_version", DefaultAPIVersion)
	v.SetDefault("model.model_id", DefaultModelID)
	v.SetDefault("model.timeout", defaultModelTimeout)
	v.SetDefault("model.decoding.method", "greedy")
	v.SetDefault("model.decoding.max_new_tokens", 500)
	v.SetDefault("model.decoding.min_new_tokens", 1)
	v.SetDefault("model.decoding.temperature", 0)
	v.SetDefault("model.decoding.repetition_penalty", 1.1)
	v.SetDefault("model.breaker.enabled", true)
	v.SetDefault("model.breaker.timeout", 30*time.Second)
	v.SetDefault("model.breaker.max_failures", 5)
	v.SetDefault("model.azure.api_version", "2024-02-15-preview")
	v.SetDefault("model.aws.session_name", "compliance-hawk")

	v.SetDefault("audit.default_rule", DefaultRegulation)
	v.SetDefault("audit.output_mode", OutputModeJSON)
	v.SetDefault("audit.decorate_status", true)
	v.SetDefault("audit.escape_inputs", false)
}

// Validate rejects settings that can never work. Missing credentials are not
// checked here; they only disable the model adapter.
func (c *Config) Validate() error {
	switch c.Audit.OutputMode {
	case OutputModeJSON, OutputModeSentinel:
	default:
		return fmt.Errorf("invalid audit.output_mode %q: must be %q or %q",
			c.Audit.OutputMode, OutputModeJSON, OutputModeSentinel)
	}
	if c.Model.Timeout <= 0 {
		return fmt.Errorf("model.timeout must be positive")
	}
	if c.Model.Decoding.MaxNewTokens < c.Model.Decoding.MinNewTokens {
		return fmt.Errorf("model.decoding.max_new_tokens must be >= min_new_tokens")
	}
	if strings.TrimSpace(c.Audit.DefaultRule) == "" {
		c.Audit.DefaultRule = DefaultRegulation
	}
	return nil
}
