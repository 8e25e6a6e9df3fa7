package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.GetFeedCacheTTL())
	assert.Equal(t, 24*time.Hour, cfg.GetUniqueViewWindow())
	assert.Equal(t, 7*24*time.Hour, cfg.GetCounterTTL())
	assert.Equal(t, 20, cfg.GetFeedPageSize())
	assert.Equal(t, "reels", cfg.GetMediaBucket())
}

func TestNewConfig_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reelrank.toml")
	content := `
feed_cache_ttl = "45s"
feed_page_size = 12
kafka_brokers = ["k1:9092", "k2:9092"]

[minio]
endpoint = "minio:9000"
bucket = "media"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("FEED_PAGE_SIZE", "8")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 45*time.Second, cfg.GetFeedCacheTTL())
	assert.Equal(t, 8, cfg.GetFeedPageSize(), "env overrides file")
	assert.Equal(t, "media", cfg.GetMediaBucket())
	assert.Equal(t, "minio:9000", cfg.Minio.Endpoint)
	assert.True(t, cfg.Minio.UseSSL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

func TestNewConfig_EnvBrokersAndBadValues(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("KAFKA_BROKERS", " a:9092, ,b:9092 ")
	t.Setenv("FEED_CACHE_TTL", "not-a-duration")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 30*time.Second, cfg.FeedCacheTTL)
}

func TestNewConfig_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.toml"))
	_, err := NewConfig()
	assert.Error(t, err)
}

func TestNewConfig_RejectsNonPositivePageSize(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("FEED_PAGE_SIZE", "0")
	_, err := NewConfig()
	assert.Error(t, err)
}
