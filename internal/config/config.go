package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sosodev/duration"
	"gopkg.in/yaml.v3"

	"vitalguard/internal/ai"
	"vitalguard/internal/generator"
	"vitalguard/internal/vitals"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all configuration for VitalGuard
type Config struct {
	Server  ServerConfig   `yaml:"server"`
	Log     LogConfig      `yaml:"log"`
	Monitor MonitorConfig  `yaml:"monitor"`
	Patient vitals.Patient `yaml:"patient"`
	MQTT    MQTTConfig     `yaml:"mqtt"`
	Rules   ai.RuleConfig  `yaml:"rules"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port        int    `yaml:"port"`
	Environment string `yaml:"environment"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MonitorConfig holds the tick loop, history and classifier settings
type MonitorConfig struct {
	TickInterval      Duration `yaml:"tick_interval"`
	HistoryCapacity   int      `yaml:"history_capacity"`
	Strategy          string   `yaml:"strategy"`
	Generator         string   `yaml:"generator"`
	Seed              int64    `yaml:"seed"`
	StartEnabled      bool     `yaml:"start_enabled"`
	HeartRateBaseline float64  `yaml:"heart_rate_baseline"`
}

// MQTTConfig holds the optional frame publisher configuration
type MQTTConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"client_id"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Topic    string `yaml:"topic"`
	QoS      byte   `yaml:"qos"`
}

// Duration accepts Go durations ("2s") and ISO 8601 durations ("PT2S").
type Duration time.Duration

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// ParseDuration tries Go syntax first, then ISO 8601.
func ParseDuration(s string) (time.Duration, error) {
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	iso, err := duration.Parse(s)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	return iso.ToTimeDuration(), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			Environment: "development",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Monitor: MonitorConfig{
			TickInterval:      Duration(2 * time.Second),
			HistoryCapacity:   50,
			Strategy:          ai.StrategyScore,
			Generator:         generator.KindGaussian,
			StartEnabled:      true,
			HeartRateBaseline: 75,
		},
		Patient: vitals.DefaultPatient(),
		MQTT: MQTTConfig{
			Broker:   "tcp://localhost:1883",
			ClientID: "vitalguard",
			Topic:    "vitalguard",
		},
		Rules: ai.DefaultRuleConfig(),
	}
}

// Load loads configuration from a YAML file on top of the defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	cfg := Default()

	cfg.Server.Port = getEnvInt("PORT", cfg.Server.Port)
	cfg.Server.Environment = getEnv("ENVIRONMENT", cfg.Server.Environment)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)

	cfg.Monitor.TickInterval = Duration(getEnvDuration("TICK_INTERVAL", cfg.Monitor.TickInterval.Std()))
	cfg.Monitor.HistoryCapacity = getEnvInt("HISTORY_CAPACITY", cfg.Monitor.HistoryCapacity)
	cfg.Monitor.Strategy = getEnv("CLASSIFIER_STRATEGY", cfg.Monitor.Strategy)
	cfg.Monitor.Generator = getEnv("GENERATOR_KIND", cfg.Monitor.Generator)
	cfg.Monitor.Seed = getEnvInt64("GENERATOR_SEED", cfg.Monitor.Seed)
	cfg.Monitor.StartEnabled = getEnvBool("MONITORING_ENABLED", cfg.Monitor.StartEnabled)
	cfg.Monitor.HeartRateBaseline = getEnvFloat("HR_BASELINE", cfg.Monitor.HeartRateBaseline)

	cfg.Patient.Name = getEnv("PATIENT_NAME", cfg.Patient.Name)
	cfg.Patient.Age = getEnvInt("PATIENT_AGE", cfg.Patient.Age)
	cfg.Patient.Gender = getEnv("PATIENT_GENDER", cfg.Patient.Gender)
	cfg.Patient.MedicalID = getEnv("PATIENT_MEDICAL_ID", cfg.Patient.MedicalID)

	cfg.MQTT.Enabled = getEnvBool("MQTT_ENABLED", cfg.MQTT.Enabled)
	cfg.MQTT.Broker = getEnv("MQTT_BROKER", cfg.MQTT.Broker)
	cfg.MQTT.ClientID = getEnv("MQTT_CLIENT_ID", cfg.MQTT.ClientID)
	cfg.MQTT.Username = getEnv("MQTT_USERNAME", cfg.MQTT.Username)
	cfg.MQTT.Password = getEnv("MQTT_PASSWORD", cfg.MQTT.Password)
	cfg.MQTT.Topic = getEnv("MQTT_TOPIC", cfg.MQTT.Topic)
	cfg.MQTT.QoS = byte(getEnvInt("MQTT_QOS", int(cfg.MQTT.QoS)))

	return cfg
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var problems []error

	if c.Monitor.HistoryCapacity <= 0 {
		problems = append(problems, fmt.Errorf("monitor.history_capacity must be positive, got %d", c.Monitor.HistoryCapacity))
	}
	if c.Monitor.TickInterval <= 0 {
		problems = append(problems, fmt.Errorf("monitor.tick_interval must be positive, got %s", c.Monitor.TickInterval.Std()))
	}
	if _, err := ai.NewStrategy(c.Monitor.Strategy, c.Rules); err != nil {
		problems = append(problems, fmt.Errorf("monitor.strategy: %w", err))
	}
	switch c.Monitor.Generator {
	case generator.KindGaussian, generator.KindUniform:
	default:
		problems = append(problems, fmt.Errorf("monitor.generator: %w: %q", generator.ErrUnknownKind, c.Monitor.Generator))
	}
	if err := c.Patient.Validate(); err != nil {
		problems = append(problems, fmt.Errorf("patient: %w", err))
	}
	if c.MQTT.QoS > 2 {
		problems = append(problems, fmt.Errorf("mqtt.qos must be 0, 1 or 2, got %d", c.MQTT.QoS))
	}
	if c.MQTT.Enabled && c.MQTT.Broker == "" {
		problems = append(problems, errors.New("mqtt.broker is required when mqtt is enabled"))
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(problems...))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
