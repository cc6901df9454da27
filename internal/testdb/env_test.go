package testdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseURL_Precedence(t *testing.T) {
	t.Setenv(EnvTestDatabaseURL, "")
	t.Setenv(EnvDatabaseURL, "")
	assert.Equal(t, "", DatabaseURL())

	t.Setenv(EnvDatabaseURL, "postgres://fallback")
	assert.Equal(t, "postgres://fallback", DatabaseURL())

	t.Setenv(EnvTestDatabaseURL, "postgres://preferred")
	assert.Equal(t, "postgres://preferred", DatabaseURL())
}

func TestIsCI(t *testing.T) {
	for _, name := range ciVars {
		t.Setenv(name, "")
	}
	assert.False(t, IsCI())

	t.Setenv("GITHUB_ACTIONS", "true")
	assert.True(t, IsCI())
}
