package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateNewConfig_FailsWithoutSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")

	_, err := CreateNewConfig()
	assert.ErrorIs(t, err, ErrMissingJWTSecret)

	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("MONGODB_URI", "")

	_, err = CreateNewConfig()
	assert.ErrorIs(t, err, ErrMissingMongoDBURI)
}

func TestCreateNewConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("SERVICE_PORT", "")
	t.Setenv("MAX_PAGE_LIMIT", "abc")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("CORS_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("ADMIN_PASSWORD", "")

	conf, err := CreateNewConfig()
	require.NoError(t, err)

	assert.Equal(t, "5000", conf.ServicePort)
	assert.Equal(t, 100, conf.MaxPageLimit)
	assert.Equal(t, 30*time.Second, conf.RedisConfig.TTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, conf.CORSOrigins)
	assert.Equal(t, "/uploads", conf.UploadConfig.URLPrefix)
	assert.Empty(t, conf.SeedConfig.AdminPassword)
}
