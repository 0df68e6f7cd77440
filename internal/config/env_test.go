package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("INTERNHUB_TEST_VALUE", "set")
	assert.Equal(t, "set", getEnv("INTERNHUB_TEST_VALUE", "fallback"))

	t.Setenv("INTERNHUB_TEST_EMPTY", "")
	assert.Equal(t, "fallback", getEnv("INTERNHUB_TEST_EMPTY", "fallback"))
	assert.Equal(t, "fallback", getEnv("INTERNHUB_TEST_MISSING", "fallback"))
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("INTERNHUB_TEST_INT", "7")
	assert.Equal(t, 7, getEnvAsInt("INTERNHUB_TEST_INT", 1))

	t.Setenv("INTERNHUB_TEST_INT", "seven")
	assert.Equal(t, 1, getEnvAsInt("INTERNHUB_TEST_INT", 1))
	assert.Equal(t, 3, getEnvAsInt("INTERNHUB_TEST_INT_MISSING", 3))
}

func TestDSN(t *testing.T) {
	cfg := &DBConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "hub", SSLMode: "disable", TimeZone: "UTC"}
	assert.Equal(t, "host=db user=u password=p dbname=hub port=5432 sslmode=disable TimeZone=UTC", cfg.DSN())
}
