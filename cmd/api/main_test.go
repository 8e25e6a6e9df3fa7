package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_ReturnsConfigErrors(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))

	err := run()
	assert.ErrorContains(t, err, "failed to load config")
}

func TestRun_ReturnsMissingSettingErrors(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("MONGODB_URI", "")

	err := run()
	assert.ErrorContains(t, err, "MONGODB_URI environment variable not set")
}
