package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	usecasecontract "github.com/mikiasgoitom/Reelrank/internal/usecase/contract"
)

// Config holds application configuration values. Values come from defaults,
// then an optional TOML file named by CONFIG_FILE, then environment variables.
type Config struct {
	AppBaseURL string `koanf:"app_base_url"`
	Port       string `koanf:"port"`
	LogLevel   string `koanf:"log_level"`
	JWTSecret  string `koanf:"jwt_secret"`

	MongoURI    string `koanf:"mongodb_uri"`
	MongoDBName string `koanf:"mongodb_db_name"`

	RedisURL       string        `koanf:"redis_url"`
	CacheOpTimeout time.Duration `koanf:"cache_op_timeout"`

	FeedCacheTTL     time.Duration `koanf:"feed_cache_ttl"`
	FeedPageSize     int           `koanf:"feed_page_size"`
	CounterTTL       time.Duration `koanf:"counter_ttl"`
	UniqueViewWindow time.Duration `koanf:"unique_view_window"`

	Minio        MinioConfig   `koanf:"minio"`
	UploadURLTTL time.Duration `koanf:"upload_url_ttl"`

	KafkaBrokers []string `koanf:"kafka_brokers"`
	KafkaTopic   string   `koanf:"kafka_topic"`

	RateLimitPerSecond float64 `koanf:"rate_limit_per_second"`
}

// MinioConfig holds the object storage connection settings.
type MinioConfig struct {
	Endpoint  string `koanf:"endpoint"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
	UseSSL    bool   `koanf:"use_ssl"`
	Bucket    string `koanf:"bucket"`
	Region    string `koanf:"region"`
}

var _ usecasecontract.IConfigProvider = (*Config)(nil)

func defaults() *Config {
	return &Config{
		AppBaseURL:       "http://localhost:8080",
		Port:             "8080",
		LogLevel:         "info",
		MongoDBName:      "reelrank",
		CacheOpTimeout:   150 * time.Millisecond,
		FeedCacheTTL:     30 * time.Second,
		FeedPageSize:     20,
		CounterTTL:       7 * 24 * time.Hour,
		UniqueViewWindow: 24 * time.Hour,
		Minio: MinioConfig{
			Bucket: "reels",
			Region: "us-east-1",
		},
		UploadURLTTL:       15 * time.Minute,
		KafkaTopic:         "reel-engagement",
		RateLimitPerSecond: 10,
	}
}

// NewConfig creates a new Config instance.
func NewConfig() (*Config, error) {
	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	if cfg.FeedPageSize <= 0 {
		return nil, fmt.Errorf("feed page size must be positive, got %d", cfg.FeedPageSize)
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return fmt.Errorf("error loading config file %s: %w", path, err)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.AppBaseURL = getEnv("APP_BASE_URL", c.AppBaseURL)
	c.Port = getEnv("PORT", c.Port)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.MongoURI = getEnv("MONGODB_URI", c.MongoURI)
	c.MongoDBName = getEnv("MONGODB_DB_NAME", c.MongoDBName)
	c.RedisURL = getEnv("REDIS_URL", c.RedisURL)
	c.CacheOpTimeout = getEnvAsDuration("CACHE_OP_TIMEOUT", c.CacheOpTimeout)
	c.FeedCacheTTL = getEnvAsDuration("FEED_CACHE_TTL", c.FeedCacheTTL)
	c.FeedPageSize = getEnvAsInt("FEED_PAGE_SIZE", c.FeedPageSize)
	c.CounterTTL = getEnvAsDuration("COUNTER_TTL", c.CounterTTL)
	c.UniqueViewWindow = getEnvAsDuration("UNIQUE_VIEW_WINDOW", c.UniqueViewWindow)
	c.Minio.Endpoint = getEnv("MINIO_ENDPOINT", c.Minio.Endpoint)
	c.Minio.AccessKey = getEnv("MINIO_ACCESS_KEY", c.Minio.AccessKey)
	c.Minio.SecretKey = getEnv("MINIO_SECRET_KEY", c.Minio.SecretKey)
	c.Minio.UseSSL = getEnvAsBool("MINIO_USE_SSL", c.Minio.UseSSL)
	c.Minio.Bucket = getEnv("MINIO_BUCKET", c.Minio.Bucket)
	c.Minio.Region = getEnv("MINIO_REGION", c.Minio.Region)
	c.UploadURLTTL = getEnvAsDuration("UPLOAD_URL_TTL", c.UploadURLTTL)
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		c.KafkaBrokers = splitList(brokers)
	}
	c.KafkaTopic = getEnv("KAFKA_TOPIC", c.KafkaTopic)
	c.RateLimitPerSecond = getEnvAsFloat("RATE_LIMIT_PER_SECOND", c.RateLimitPerSecond)
}

// GetAppBaseURL returns the base URL of the application.
func (c *Config) GetAppBaseURL() string {
	return c.AppBaseURL
}

// GetFeedCacheTTL returns how long an assembled feed page stays cached.
func (c *Config) GetFeedCacheTTL() time.Duration {
	return c.FeedCacheTTL
}

func (c *Config) GetFeedPageSize() int {
	return c.FeedPageSize
}

// GetCounterTTL returns the idle expiry of cached like/view counters.
func (c *Config) GetCounterTTL() time.Duration {
	return c.CounterTTL
}

// GetUniqueViewWindow returns the dedup window for unique views.
func (c *Config) GetUniqueViewWindow() time.Duration {
	return c.UniqueViewWindow
}

func (c *Config) GetMediaBucket() string {
	return c.Minio.Bucket
}

func (c *Config) GetUploadURLTTL() time.Duration {
	return c.UploadURLTTL
}

// Helper function to get an environment variable or return a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as an integer or return a default value.
func getEnvAsInt(name string, fallback int) int {
	valueStr := getEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as a boolean or return a default value.
func getEnvAsBool(name string, fallback bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}
	return fallback
}

func getEnvAsFloat(name string, fallback float64) float64 {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseFloat(valStr, 64); err == nil {
		return val
	}
	return fallback
}

// getEnvAsDuration accepts Go duration strings ("30s", "168h").
func getEnvAsDuration(name string, fallback time.Duration) time.Duration {
	valStr := getEnv(name, "")
	if val, err := time.ParseDuration(valStr); err == nil {
		return val
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
