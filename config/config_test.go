package config

import (
	"testing"
	"time"

	"github.com/RassulYunussov/msclient/microservice"
	"gotest.tools/v3/assert"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load()
	assert.NilError(t, err)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 10*time.Second, c.HTTPTimeout)
	assert.Equal(t, uint8(2), c.RetryMax)
	assert.Equal(t, uint32(5), c.CircuitBreakerConsecutiveFailures)
	assert.Equal(t, 30*time.Minute, c.AuthCacheTTL)
	assert.Equal(t, "/api/login", c.AuthLoginPath)
	assert.Assert(t, !c.AuthEnabled())
	assert.NilError(t, c.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "2s")
	t.Setenv("RETRY_MAX", "0")
	t.Setenv("AUTH_BASE_URL", "https://reqres.in")
	t.Setenv("AUTH_EMAIL", "eve.holt@reqres.in")
	t.Setenv("AUTH_PASSWORD", "cityslicka")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("MICROSERVICE_DRUGTRAFFICKING_URL", "http://drugtrafficking:8080")
	c, err := Load()
	assert.NilError(t, err)
	assert.Equal(t, 2*time.Second, c.HTTPTimeout)
	assert.Equal(t, uint8(0), c.RetryMax)
	assert.Assert(t, c.AuthEnabled())
	assert.Equal(t, "eve.holt@reqres.in", c.AuthCredentials.Email)
	assert.Equal(t, 3, c.RedisDB)
	assert.Equal(t, "http://drugtrafficking:8080", c.MicroserviceURLs[microservice.DrugTrafficking])
	assert.NilError(t, c.Validate())
}

func TestLoadMalformed(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "soon")
	t.Setenv("RETRY_MAX", "300")
	_, err := Load()
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorContains(t, err, "HTTP_TIMEOUT")
	assert.ErrorContains(t, err, "RETRY_MAX")
}

func TestValidateRequiresCredentialsWithAuth(t *testing.T) {
	t.Setenv("AUTH_BASE_URL", "https://reqres.in")
	c, err := Load()
	assert.NilError(t, err)
	assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)
}
