package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadDefaultPort(t *testing.T) {
	cfg, err := Load(envMap(nil))
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
}

func TestLoadPort(t *testing.T) {
	cfg, err := Load(envMap(map[string]string{"PORT": " 8081 "}))
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Port)
}

func TestLoadInvalidPort(t *testing.T) {
	for _, v := range []string{"abc", "0", "-1", "70000"} {
		_, err := Load(envMap(map[string]string{"PORT": v}))
		assert.Error(t, err, "PORT=%s", v)
	}
}
