package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupMap(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "localhost:8080", cfg.Listen)
	assert.Equal(t, 2*time.Second, cfg.OperationDelay)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Zero(t, cfg.Seed)
}

func TestDecode(t *testing.T) {
	cfg := Default()
	err := cfg.Decode([]byte("seed: 42\noperation_delay: 500ms\nlog_level: debug\ncatalog: assets.jsonl\n"))
	require.NoError(t, err)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 500*time.Millisecond, cfg.OperationDelay)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "assets.jsonl", cfg.Catalog)
	// untouched keys keep their defaults
	assert.Equal(t, "localhost:8080", cfg.Listen)
}

func TestDecodeInvalid(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.Decode([]byte("seed: [1, 2]")))
}

func TestApplyEnv(t *testing.T) {
	testCases := []struct {
		name    string
		env     map[string]string
		want    func(*Config)
		wantErr bool
	}{
		{
			name: "empty",
			env:  map[string]string{},
			want: func(*Config) {},
		},
		{
			name: "overrides",
			env: map[string]string{
				EnvSeed:           "7",
				EnvListen:         ":9000",
				EnvOperationDelay: "1s",
				EnvLogMaxAge:      "3",
			},
			want: func(c *Config) {
				c.Seed = 7
				c.Listen = ":9000"
				c.OperationDelay = time.Second
				c.LogMaxAge = 3
			},
		},
		{
			name: "blank values are ignored",
			env:  map[string]string{EnvListen: "  ", EnvLogLevel: ""},
			want: func(*Config) {},
		},
		{
			name:    "bad seed",
			env:     map[string]string{EnvSeed: "-1"},
			wantErr: true,
		},
		{
			name:    "bad delay",
			env:     map[string]string{EnvOperationDelay: "soon"},
			wantErr: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Default()
			err := got.ApplyEnv(lookupMap(tc.env))
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			want := Default()
			tc.want(&want)
			assert.Equal(t, want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	file := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(file, []byte("seed: 1\nlisten: ':7000'\n"), 0o644))
	t.Setenv(EnvListen, ":7001")

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), cfg.Seed)
	assert.Equal(t, ":7001", cfg.Listen, "environment wins over the file")
}

func TestLoadMissing(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load("")
	assert.NoError(t, err, "the default file is optional")

	_, err = Load("missing.yaml")
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(".env", []byte(EnvGenAIModel+"=gemini-test\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv(EnvGenAIModel) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "gemini-test", cfg.GenAIModel)
}

func TestEnv(t *testing.T) {
	cfg := Default()
	cfg.Seed = 3
	env := cfg.Env()
	assert.Contains(t, env, "INKY_SEED=3")
	assert.Contains(t, env, "INKY_OPERATION_DELAY=2s")
	assert.Len(t, env, 9)
}
