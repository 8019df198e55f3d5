package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "MONGODB_URI", "MONGODB_DB", "UPLOAD_DIR", "MAX_UPLOAD_MB", "SMTP_PORT"} {
		t.Setenv(key, "")
	}
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "department_library", cfg.DBName)
	assert.Equal(t, "./uploads", cfg.UploadDir)
	assert.Equal(t, int64(5), cfg.MaxUploadMB)
	assert.Equal(t, 587, cfg.SMTPPort)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MONGODB_DB", "library_test")
	t.Setenv("MAX_UPLOAD_MB", "12")
	t.Setenv("SMTP_PORT", "2525")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "library_test", cfg.DBName)
	assert.Equal(t, int64(12), cfg.MaxUploadMB)
	assert.Equal(t, 2525, cfg.SMTPPort)
}

func TestLoadIgnoresBadMaxUpload(t *testing.T) {
	t.Setenv("MAX_UPLOAD_MB", "not-a-number")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int64(5), cfg.MaxUploadMB)
}
