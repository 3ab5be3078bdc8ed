package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	var testCases = []struct {
		description string
		input       string
		expect      *Config
		expectErr   bool
	}{
		{
			description: "empty document takes defaults",
			input:       ``,
			expect:      DefaultConfig(),
		},
		{
			description: "all fields",
			input: `maxDepth: 12
checkDuplicates: true
parallelism: 2
exportURL: /tmp/explanations
logLevel: debug
logFormat: json
`,
			expect: &Config{MaxDepth: 12, CheckDuplicates: true, Parallelism: 2, ExportURL: "/tmp/explanations", LogLevel: "debug", LogFormat: "json"},
		},
		{
			description: "unknown fields are ignored",
			input: `maxDepth: 3
color: blue
`,
			expect: &Config{MaxDepth: 3, Parallelism: DefaultParallelism, LogLevel: "info", LogFormat: "text"},
		},
		{
			description: "negative depth",
			input:       `maxDepth: -1`,
			expectErr:   true,
		},
		{
			description: "negative parallelism",
			input:       `parallelism: -2`,
			expectErr:   true,
		},
		{
			description: "unsupported level",
			input:       `logLevel: loud`,
			expectErr:   true,
		},
		{
			description: "unsupported format",
			input:       `logFormat: xml`,
			expectErr:   true,
		},
		{
			description: "malformed yaml",
			input:       `maxDepth: [`,
			expectErr:   true,
		},
	}

	for _, testCase := range testCases {
		actual, err := Parse([]byte(testCase.input))
		if testCase.expectErr {
			assert.ErrorIs(t, err, ErrConfig, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestLoadAndSave(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	location := filepath.Join(dir, "provenance.yaml")
	require.NoError(t, os.WriteFile(location, []byte("maxDepth: 7\ncheckDuplicates: true\n"), 0644))

	actual, err := Load(ctx, location)
	require.NoError(t, err)
	assert.Equal(t, 7, actual.MaxDepth)
	assert.True(t, actual.CheckDuplicates)
	assert.Equal(t, "info", actual.LogLevel)

	saved := filepath.Join(dir, "saved.yaml")
	actual.LogFormat = "json"
	require.NoError(t, actual.Save(ctx, saved))
	reloaded, err := Load(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, actual, reloaded)

	_, err = Load(ctx, filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, ErrConfig)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("warn", "json", &buf)
	logger.Info("hidden")
	logger.Warn("shown", "node", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	logger = DefaultConfig().Logger(&buf)
	logger.Debug("hidden")
	logger.Info("shown")
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("level=INFO")))

	buf.Reset()
	NewLogger("bogus", "", &buf).Debug("hidden")
	assert.Empty(t, buf.String())
}
