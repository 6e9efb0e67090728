package cfg

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kstep.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, 100, c.KMeans.MaxIterations)
	assert.Equal(t, 1e-4, c.KMeans.Tolerance)
	assert.Equal(t, 100, c.KMeans.MaxK)
	assert.Equal(t, 5*time.Second, c.API.ReadTimeout.Duration)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[api]
addr = "0.0.0.0:8080"
write_timeout = "30s"
requests_per_second = 0

[kmeans]
max_iterations = 250
seed = 7

[log]
level = "debug"
json = true
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", c.API.Addr)
	assert.Equal(t, 30*time.Second, c.API.WriteTimeout.Duration)
	assert.Equal(t, 5*time.Second, c.API.ReadTimeout.Duration, "untouched keys keep defaults")
	assert.Equal(t, 0.0, c.API.RequestsPerSecond)
	assert.Equal(t, 250, c.KMeans.MaxIterations)
	assert.Equal(t, int64(7), c.KMeans.Seed)
	assert.Equal(t, 1e-4, c.KMeans.Tolerance)
	assert.Equal(t, "debug", c.Log.Level)
	assert.True(t, c.Log.JSON)
}

func TestLoadErrors(t *testing.T) {
	for name, body := range map[string]string{
		"syntax":       "[api\naddr = 1",
		"unknown key":  "[api]\nport = 3000\n",
		"bad duration": "[api]\nread_timeout = \"soon\"\n",
		"bad level":    "[log]\nlevel = \"loud\"\n",
		"zero iters":   "[kmeans]\nmax_iterations = 0\n",
		"bad dataset":  "[dataset]\ndefault_points = 50\nmax_points = 10\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	c := Default()
	c.API.Burst = 0
	assert.Error(t, c.Validate())

	c = Default()
	c.API.RequestsPerSecond = 0
	c.API.Burst = 0
	assert.NoError(t, c.Validate(), "burst is irrelevant without rate limiting")

	c = Default()
	c.KMeans.Tolerance = 0
	assert.Error(t, c.Validate())

	c = Default()
	c.API.Addr = ""
	assert.Error(t, c.Validate())
}

func TestDurationText(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("1m30s")))
	assert.Equal(t, 90*time.Second, d.Duration)
	b, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1m30s", string(b))
}
