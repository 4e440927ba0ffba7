package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	cfg := fromViper(v)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "Riikyy", cfg.Admin.Username)
	assert.Equal(t, "290829", cfg.Admin.Password)
	assert.Equal(t, int64(10*1024*1024), cfg.Uploads.MaxFileSizeBytes)
	assert.Equal(t, "/uploads", cfg.Uploads.PublicPath)
	assert.Contains(t, cfg.Uploads.AllowedExtensions, ".webp")
	assert.Contains(t, cfg.Uploads.AllowedMIMEs, "video/ogg")
	assert.Equal(t, SessionStoreCookie, cfg.Session.Store)
	assert.Equal(t, 24*time.Hour, cfg.Session.MaxAge)
}

func TestOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("SESSION_STORE", "REDIS")
	v.Set("UPLOADS_PUBLIC_PATH", "media/")
	v.Set("UPLOADS_MAX_FILE_SIZE", 0)
	v.Set("CACHE_TTL", "not-a-duration")
	cfg := fromViper(v)

	assert.Equal(t, SessionStoreRedis, cfg.Session.Store)
	assert.Equal(t, "/media", cfg.Uploads.PublicPath)
	assert.Equal(t, int64(10*1024*1024), cfg.Uploads.MaxFileSizeBytes)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
}

func TestSplitAndTrim(t *testing.T) {
	assert.Nil(t, splitAndTrim(""))
	assert.Equal(t, []string{"a", "b"}, splitAndTrim(" a, ,b "))
}
