package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/redistrict/config"
	"github.com/katalvlaran/redistrict/gridgraph"
	"github.com/katalvlaran/redistrict/partition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, 7, cfg.Districts)
	assert.Equal(t, partition.DefaultPolicy(), cfg.Policy)
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	yamlConfig := `
districts: 4
policy:
  compactness: 2
  locality: 0.5
sweep:
  - compactness: 1
  - locality: 1
parallelism: 2
data:
  tracts: tracts.csv
  edges: edges.csv
metrics:
  enabled: true
output: plan.json
logLevel: debug
`
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlConfig), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Districts)
	assert.Equal(t, partition.ScoringPolicy{Compactness: 2, Locality: 0.5}, cfg.Policy)
	assert.Equal(t, []partition.ScoringPolicy{{Compactness: 1}, {Locality: 1}}, cfg.Sweep)
	assert.Equal(t, 2, cfg.Parallelism)
	assert.Equal(t, "tracts.csv", cfg.Data.Tracts)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "redistrict", cfg.Metrics.Namespace, "default kept")
	assert.Equal(t, "plan.json", cfg.Output)
	assert.Equal(t, "debug", cfg.LogLevel)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"Syntax":        "districts: [",
		"ZeroDistricts": "districts: 0",
		"NegativeWeight": `policy:
  compactness: -1`,
		"BadSweep": `sweep:
  - locality: -2`,
		"Parallelism": "parallelism: -1",
		"LogLevel":    "logLevel: chatty",
		"HalfData":    "data: {tracts: t.csv}",
		"Bridge":      "data: {bridge: -1}",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse([]byte(body))
			require.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(config.EnvDistricts, "3")
	t.Setenv(config.EnvCompactness, "0.25")
	t.Setenv(config.EnvLocality, "4")
	t.Setenv(config.EnvLogLevel, "warn")
	t.Setenv(config.EnvOutput, "out.json")

	cfg := config.Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, 3, cfg.Districts)
	assert.Equal(t, partition.ScoringPolicy{Compactness: 0.25, Locality: 4}, cfg.Policy)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "out.json", cfg.Output)
}

func TestApplyEnv_Invalid(t *testing.T) {
	t.Setenv(config.EnvDistricts, "many")
	require.ErrorIs(t, config.Default().ApplyEnv(), config.ErrInvalidConfig)

	t.Setenv(config.EnvDistricts, "-2")
	require.ErrorIs(t, config.Default().ApplyEnv(), config.ErrInvalidConfig)

	t.Setenv(config.EnvDistricts, "")
	t.Setenv(config.EnvLocality, "lots")
	require.ErrorIs(t, config.Default().ApplyEnv(), config.ErrInvalidConfig)
}

func TestApplyEnv_DotEnvFile(t *testing.T) {
	// godotenv writes straight into the process environment.
	t.Setenv(config.EnvOutput, "")
	require.NoError(t, os.Unsetenv(config.EnvOutput))

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(config.EnvOutput+"=from-dotenv.json\n"), 0o600))

	cfg := config.Default()
	require.NoError(t, cfg.ApplyEnv(path))
	assert.Equal(t, "from-dotenv.json", cfg.Output)

	require.Error(t, cfg.ApplyEnv(filepath.Join(t.TempDir(), "absent.env")))
}

func TestDataSource(t *testing.T) {
	_, err := config.DataConfig{}.Source()
	require.ErrorIs(t, err, config.ErrNoData)

	_, err = config.DataConfig{Grid: [][]int{{1, 2}, {3}}}.Source()
	require.ErrorIs(t, err, gridgraph.ErrNonRectangular)

	src, err := config.DataConfig{Grid: [][]int{{1, 0, 1}}, Bridge: 2}.Source()
	require.NoError(t, err)
	ds, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, ds.Tracts, 3)
	assert.Equal(t, 2, ds.Tracts[1].Population)

	src, err = config.DataConfig{Grid: [][]int{{1, 0}, {0, 1}}, Conn8: true}.Source()
	require.NoError(t, err)
	ds, err = src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, ds.Edges, 1)
}

func TestDataSource_CSVIsParsedOnce(t *testing.T) {
	dir := t.TempDir()
	tp := filepath.Join(dir, "tracts.csv")
	ep := filepath.Join(dir, "edges.csv")
	require.NoError(t, os.WriteFile(tp, []byte("id,population\nA,4\nB,6\n"), 0o600))
	require.NoError(t, os.WriteFile(ep, []byte("a,b\nA,B\n"), 0o600))

	data := config.DataConfig{Tracts: tp, Edges: ep}
	src, err := data.Source()
	require.NoError(t, err)
	first, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, first.Tracts, 2)

	// Later loads of the same pair no longer touch the files.
	require.NoError(t, os.Remove(tp))
	require.NoError(t, os.Remove(ep))
	src, err = data.Source()
	require.NoError(t, err)
	again, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.Tracts, again.Tracts)
	assert.Equal(t, first.Edges, again.Edges)

	// A different pair misses the cache and reads the (now absent) files.
	src, err = config.DataConfig{Tracts: filepath.Join(dir, "other.csv"), Edges: ep}.Source()
	require.NoError(t, err)
	_, err = src.Load(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)
}
