package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"PORT", "DB_PATH", "AUTH_MODE", "IMAGE_MAX_SIDE", "DECODE_TIMEOUT", "MINIO_ENDPOINT", "MINIO_SECURE", "BLOB_DIR"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "fieldwatch.db", cfg.DBPath)
	assert.Equal(t, "dev", cfg.AuthMode)
	assert.Equal(t, 512, cfg.ImageMaxSide)
	assert.Equal(t, 10*time.Second, cfg.DecodeTimeout)
	assert.Equal(t, "blobs", cfg.BlobDir)
	assert.Empty(t, cfg.Minio.Endpoint)
	assert.False(t, cfg.Minio.Secure)
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("AUTH_MODE", "header")
	t.Setenv("IMAGE_MAX_SIDE", "256")
	t.Setenv("DECODE_TIMEOUT", "3s")
	t.Setenv("MINIO_SECURE", "true")
	t.Setenv("UPLOAD_MAX_BYTES", "nonsense")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "header", cfg.AuthMode)
	assert.Equal(t, 256, cfg.ImageMaxSide)
	assert.Equal(t, 3*time.Second, cfg.DecodeTimeout)
	assert.True(t, cfg.Minio.Secure)
	assert.Equal(t, int64(10<<20), cfg.UploadMaxBytes)
}
