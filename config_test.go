package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"defaults", Config{port: 8080, defaultRoom: defaultRoom}, ""},
		{"port_too_low", Config{port: 0, defaultRoom: defaultRoom}, "invalid port"},
		{"port_too_high", Config{port: 70000, defaultRoom: defaultRoom}, "invalid port"},
		{"cert_without_key", Config{port: 8080, defaultRoom: defaultRoom, tlsCert: "cert.pem"}, "--tls-key"},
		{"blank_room", Config{port: 8080, defaultRoom: "   "}, "--default-room"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestConfigValidateNormalizes(t *testing.T) {
	cfg := Config{port: 8080, defaultRoom: "  English  Club ", prefix: "/game/"}
	require.NoError(t, cfg.validate())

	assert.Equal(t, "english club", cfg.defaultRoom)
	assert.Equal(t, "/game", cfg.prefix)
}

func TestConfigRoom(t *testing.T) {
	cfg := Config{defaultRoom: "englishclub"}

	assert.Equal(t, "room1", cfg.room(" ROOM1 "))
	assert.Equal(t, "englishclub", cfg.room(""))
	assert.Equal(t, "englishclub", cfg.room("   "))
}

func TestConfigScheme(t *testing.T) {
	assert.Equal(t, "http", (&Config{}).scheme())
	assert.Equal(t, "http", (&Config{tlsCert: "c"}).scheme())
	assert.Equal(t, "https", (&Config{tlsCert: "c", tlsKey: "k"}).scheme())
}

func TestFlagsFromEnvironment(t *testing.T) {
	t.Setenv("AMONGUS_PORT", "9090")
	t.Setenv("AMONGUS_DEFAULT_ROOM", "Night Shift")
	t.Setenv("AMONGUS_VERBOSE", "true")

	cfg := &Config{}
	newCmd(cfg)

	assert.Equal(t, 9090, cfg.port)
	assert.Equal(t, "Night Shift", cfg.defaultRoom)
	assert.True(t, cfg.verbose)
	assert.Equal(t, "0.0.0.0", cfg.bind)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("AMONGUS_PORT", "9090")

	cfg := &Config{}
	cmd := newCmd(cfg)
	require.NoError(t, cmd.ParseFlags([]string{"--port", "7070"}))

	assert.Equal(t, 7070, cfg.port)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "amongus.env")
	require.NoError(t, os.WriteFile(path, []byte("AMONGUS_BIND=127.0.0.1\nAMONGUS_PORT=9191\n"), 0o600))

	t.Setenv("AMONGUS_ENV_FILE", path)
	t.Setenv("AMONGUS_PORT", "8181")
	// registers cleanup so the variable loaded from the file is unset afterwards
	t.Setenv("AMONGUS_BIND", "")
	require.NoError(t, os.Unsetenv("AMONGUS_BIND"))

	require.NoError(t, loadEnvFile())

	assert.Equal(t, "127.0.0.1", os.Getenv("AMONGUS_BIND"))
	assert.Equal(t, "8181", os.Getenv("AMONGUS_PORT"))
}

func TestLoadEnvFileMissing(t *testing.T) {
	t.Setenv("AMONGUS_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	assert.Error(t, loadEnvFile())
}
