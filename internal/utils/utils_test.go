package utils

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanTokens(t *testing.T) {
	testCases := []struct {
		input    string
		expected []string
		desc     string
	}{
		{"hello world", []string{"hello", "world"}, "Spaces"},
		{"one,two.three-four!five?six", []string{"one", "two", "three", "four", "five", "six"}, "Punctuation"},
		{"  line one\r\nline\ttwo\n", []string{"line", "one", "line", "two"}, "Mixed whitespace"},
		{"don't stop", []string{"don't", "stop"}, "Apostrophe is part of a token"},
		{"...", nil, "Only separators"},
		{"", nil, "Empty"},
		{"naïve café", []string{"naïve", "café"}, "UTF-8"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			scanner := bufio.NewScanner(strings.NewReader(tc.input))
			scanner.Split(ScanTokens)
			var got []string
			for scanner.Scan() {
				got = append(got, scanner.Text())
			}
			require.NoError(t, scanner.Err())
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestLowerFirst(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"Hello", "hello"},
		{"HELLO", "hELLO"},
		{"hello", "hello"},
		{"Élan", "élan"},
		{"1st", "1st"},
		{"", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, LowerFirst(tc.input))
		})
	}
}

func TestFirstNonSpace(t *testing.T) {
	assert.Equal(t, '1', FirstNonSpace("  1\n"))
	assert.Equal(t, 'y', FirstNonSpace("yes"))
	assert.Equal(t, rune(0), FirstNonSpace(" \t\n"))
}

func TestTOMLRoundTripWithRecovery(t *testing.T) {
	type section struct {
		Limit int  `toml:"limit"`
		On    bool `toml:"on"`
	}
	type doc struct {
		Main section `toml:"main"`
	}

	path := filepath.Join(t.TempDir(), "nested", "cfg.toml")
	require.NoError(t, EnsureDir(filepath.Dir(path)))
	require.NoError(t, SaveTOMLFile(doc{Main: section{Limit: 7, On: true}}, path))
	assert.True(t, FileExists(path))

	raw, err := ParseTOMLWithRecovery(path)
	require.NoError(t, err)
	mainSection, ok := ExtractSection(raw, "main")
	require.True(t, ok)

	limit, ok := ExtractInt64(mainSection, "limit")
	assert.True(t, ok)
	assert.Equal(t, 7, limit)
	on, ok := ExtractBool(mainSection, "on")
	assert.True(t, ok)
	assert.True(t, on)

	_, ok = ExtractString(mainSection, "missing")
	assert.False(t, ok)
}

func TestParseTOMLWithRecoveryBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[main\nlimit = "), 0o644))
	_, err := ParseTOMLWithRecovery(path)
	assert.Error(t, err)
}

func TestConfigDirFor(t *testing.T) {
	env := map[string]string{"XDG_CONFIG_HOME": "/xdg", "APPDATA": `C:\AppData`}
	getenv := func(k string) string { return env[k] }
	none := func(string) string { return "" }

	assert.Equal(t, filepath.Join("/xdg", AppName), configDirFor("linux", "/home/u", getenv))
	assert.Equal(t, filepath.Join("/home/u", ".config", AppName), configDirFor("linux", "/home/u", none))
	assert.Equal(t, filepath.Join("/home/u", ".config", AppName), configDirFor("darwin", "/home/u", getenv))
	assert.Equal(t, filepath.Join("/home/u", "."+AppName), configDirFor("plan9", "/home/u", none))
}

func TestIsYAML(t *testing.T) {
	assert.True(t, IsYAML("cfg.yaml"))
	assert.True(t, IsYAML("CFG.YML"))
	assert.False(t, IsYAML("cfg.toml"))
}
