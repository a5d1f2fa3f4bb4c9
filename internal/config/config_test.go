package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "local")
	t.Setenv("JWT_EXPIRY", "not-a-duration")
	t.Setenv("BODY_LIMIT_MB", "abc")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 50, cfg.BodyLimitMB)
	assert.Equal(t, "/uploads", cfg.FSURL)
	assert.Equal(t, StorageLocal, cfg.StorageDriver)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("SKIP_AUTH", "true")
	t.Setenv("ORPHAN_GRACE_PERIOD", "30m")
	t.Setenv("LOG_TO_DB", "1")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("CONTACT_NOTIFY_EMAIL", "ops@example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.SkipAuth)
	assert.Equal(t, 30*time.Minute, cfg.OrphanGracePeriod)
	assert.True(t, cfg.Log.ToDB)
	assert.True(t, cfg.SMTP.Enabled())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"local ok", Config{StorageDriver: StorageLocal, FSPath: "./uploads", FSURL: "/uploads"}, false},
		{"local missing path", Config{StorageDriver: StorageLocal, FSURL: "/uploads"}, true},
		{"s3 missing bucket", Config{StorageDriver: StorageS3, FSURL: "/uploads"}, true},
		{"s3 ok", Config{StorageDriver: StorageS3, FSURL: "/uploads", S3: S3Config{Bucket: "portal"}}, false},
		{"unknown driver", Config{StorageDriver: "ftp", FSURL: "/uploads"}, true},
		{"relative url", Config{StorageDriver: StorageLocal, FSPath: "x", FSURL: "uploads"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
