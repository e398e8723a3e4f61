package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfig_YAMLRoundTrip(t *testing.T) {
	enabled := true
	disabled := false
	original := &Config{
		OutputFormat:         "json",
		AssetsRoot:           "res",
		AssetsExclude:        []string{"res/fonts/**", "res/raw/**"},
		SourceRoot:           "lib",
		ReservedDependencies: []string{"flutter"},
		MaxFiles:             500,
		Gitignore:            &disabled,
		Detectors: map[string]DetectorConfig{
			"assets": {
				Enabled:         &enabled,
				ErrorMode:       "fail",
				ExcludePatterns: []string{"res/generated/**"},
			},
			"files": {
				Enabled: &disabled,
			},
		},
	}

	data, err := yaml.Marshal(original)
	require.NoError(t, err)

	var decoded Config
	require.NoError(t, yaml.Unmarshal(data, &decoded))

	assert.Equal(t, original.OutputFormat, decoded.OutputFormat)
	assert.Equal(t, original.AssetsExclude, decoded.AssetsExclude)
	assert.Equal(t, original.MaxFiles, decoded.MaxFiles)
	require.NotNil(t, decoded.Gitignore)
	assert.False(t, *decoded.Gitignore)
	assert.Len(t, decoded.Detectors, 2)

	assets := decoded.Detectors["assets"]
	require.NotNil(t, assets.Enabled)
	assert.True(t, *assets.Enabled)
	assert.Equal(t, "fail", assets.ErrorMode)
	assert.Equal(t, []string{"res/generated/**"}, assets.ExcludePatterns)

	files := decoded.Detectors["files"]
	require.NotNil(t, files.Enabled)
	assert.False(t, *files.Enabled)
}

func TestConfig_EnabledNilDistinct(t *testing.T) {
	// When Enabled is not set in YAML, it should unmarshal as nil.
	data := []byte(`
detectors:
  assets:
    error_mode: skip
`)
	var cfg Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Nil(t, cfg.Detectors["assets"].Enabled)
	assert.Nil(t, cfg.IncludeDevDependencies)
	assert.Nil(t, cfg.Gitignore)
}
