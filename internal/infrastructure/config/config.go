package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/service"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/pkg/observability"
)

// Config holds all configuration for the assessment service.
type Config struct {
	KafkaBrokers       []string
	CORSAllowedOrigins []string
	GRPCPort           string
	HTTPPort           string
	ArtifactDir        string
	ArtifactVersion    string
	DatabaseURL        string
	MigrationsDir      string
	KafkaTopic         string
	KafkaClientID      string
	KafkaSASLMechanism string
	KafkaSASLUsername  string
	KafkaSASLPassword  string
	OTLPEndpoint       string
	Environment        string
	LogLevel           string
	LogFormat          string
	CrisisContact      string
	ONNXRuntimeLib     string
	GRPCTLSCertFile    string
	GRPCTLSKeyFile     string
	ResultTTL          time.Duration
	ShutdownTimeout    time.Duration
	RateLimit          float64
	RateBurst          int
	GRPCReflection     bool
	KafkaTLS           bool

	// problems collects values that could not be parsed.
	problems []string
}

// Load reads configuration from environment variables with sensible defaults.
// Unparseable values fall back to their defaults and are reported by Validate.
func Load() *Config {
	c := &Config{
		GRPCPort:           getEnv("GRPC_PORT", "9000"),
		HTTPPort:           getEnv("HTTP_PORT", "8000"),
		ArtifactDir:        getEnv("ARTIFACT_DIR", "./artifacts"),
		ArtifactVersion:    getEnv("ARTIFACT_VERSION", ""),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		MigrationsDir:      getEnv("MIGRATIONS_DIR", "file://migrations"),
		KafkaBrokers:       splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:         getEnv("KAFKA_TOPIC", "mindcheck.events"),
		KafkaClientID:      getEnv("KAFKA_CLIENT_ID", "mindcheck"),
		KafkaSASLMechanism: getEnv("KAFKA_SASL_MECHANISM", ""),
		KafkaSASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
		KafkaSASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
		OTLPEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		Environment:        getEnv("ENVIRONMENT", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		CrisisContact:      getEnv("CRISIS_CONTACT", service.DefaultCrisisContact),
		ONNXRuntimeLib:     getEnv("ONNXRUNTIME_LIB", ""),
		GRPCTLSCertFile:    getEnv("GRPC_TLS_CERT_FILE", ""),
		GRPCTLSKeyFile:     getEnv("GRPC_TLS_KEY_FILE", ""),
	}
	c.ResultTTL = c.lookupDuration("RESULT_TTL", 24*time.Hour)
	c.ShutdownTimeout = c.lookupDuration("SHUTDOWN_TIMEOUT", 15*time.Second)
	c.RateLimit = c.lookupFloat("RATE_LIMIT", 50)
	c.RateBurst = c.lookupInt("RATE_LIMIT_BURST", 100)
	c.GRPCReflection = c.lookupBool("GRPC_REFLECTION", false)
	c.KafkaTLS = c.lookupBool("KAFKA_TLS", false)
	return c
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var errs []error
	for _, p := range c.problems {
		errs = append(errs, errors.New(p))
	}

	for key, port := range map[string]string{"HTTP_PORT": c.HTTPPort, "GRPC_PORT": c.GRPCPort} {
		if n, err := strconv.Atoi(port); err != nil || n < 1 || n > 65535 {
			errs = append(errs, fmt.Errorf("%s must be a port number, got %q", key, port))
		}
	}
	if c.HTTPPort == c.GRPCPort {
		errs = append(errs, fmt.Errorf("HTTP_PORT and GRPC_PORT must differ, both are %q", c.HTTPPort))
	}
	if c.ArtifactDir == "" {
		errs = append(errs, errors.New("ARTIFACT_DIR is required"))
	}
	if c.ResultTTL <= 0 {
		errs = append(errs, fmt.Errorf("RESULT_TTL must be positive, got %s", c.ResultTTL))
	}
	if c.RateLimit <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT must be positive, got %v", c.RateLimit))
	}
	if c.RateBurst < 1 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_BURST must be at least 1, got %d", c.RateBurst))
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaTopic == "" {
		errs = append(errs, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set"))
	}
	switch strings.ToUpper(c.KafkaSASLMechanism) {
	case "":
	case "PLAIN", "SCRAM-SHA-256", "SCRAM-SHA-512":
		if c.KafkaSASLUsername == "" {
			errs = append(errs, errors.New("KAFKA_SASL_USERNAME is required when KAFKA_SASL_MECHANISM is set"))
		}
	default:
		errs = append(errs, fmt.Errorf("KAFKA_SASL_MECHANISM must be PLAIN, SCRAM-SHA-256 or SCRAM-SHA-512, got %q", c.KafkaSASLMechanism))
	}
	if !observability.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", c.LogLevel))
	}
	if f := strings.ToLower(c.LogFormat); f != "json" && f != "text" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat))
	}
	if (c.GRPCTLSCertFile == "") != (c.GRPCTLSKeyFile == "") {
		errs = append(errs, errors.New("GRPC_TLS_CERT_FILE and GRPC_TLS_KEY_FILE must be set together"))
	}

	return errors.Join(errs...)
}

// GRPCAddress returns the full gRPC listen address.
func (c *Config) GRPCAddress() string {
	return fmt.Sprintf(":%s", c.GRPCPort)
}

// HTTPAddress returns the full HTTP listen address.
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.HTTPPort)
}

// GRPCTLSEnabled reports whether the gRPC server should serve TLS.
func (c *Config) GRPCTLSEnabled() bool {
	return c.GRPCTLSCertFile != "" && c.GRPCTLSKeyFile != ""
}

// IsProduction reports whether the service runs in production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) lookupDuration(key string, def time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		c.problems = append(c.problems, fmt.Sprintf("%s must be a duration, got %q", key, raw))
		return def
	}
	return d
}

func (c *Config) lookupFloat(key string, def float64) float64 {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		c.problems = append(c.problems, fmt.Sprintf("%s must be a number, got %q", key, raw))
		return def
	}
	return f
}

func (c *Config) lookupInt(key string, def int) int {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		c.problems = append(c.problems, fmt.Sprintf("%s must be an integer, got %q", key, raw))
		return def
	}
	return n
}

func (c *Config) lookupBool(key string, def bool) bool {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		c.problems = append(c.problems, fmt.Sprintf("%s must be true or false, got %q", key, raw))
		return def
	}
	return b
}
