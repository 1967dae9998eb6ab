package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/hubastard/clockface/engine/colors"
	"github.com/hubastard/clockface/internal/clockface"
	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clockface.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := ParseConfig(nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, clockface.RenderState{DepthTest: true}, cfg.RenderState())

	opts, err := cfg.ClockOptions()
	require.NoError(t, err)
	assert.Equal(t, 64, opts.DialSegments)
	assert.Equal(t, colors.LightGray, opts.ClearColor)
	assert.Equal(t, [4]float32{0.7, 0.7, 0.7, 1}, cfg.Core().ClearColor)
}

func TestFileThenFlags(t *testing.T) {
	path := writeConfig(t, `
title: wall clock
width: 640
height: 480
spin: true
culling: false
dial_segments: 32
hand_color: [1, 0, 0]
`)
	cfg, err := ParseConfig([]string{"-config", path, "-width", "1024", "-culling"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "wall clock", cfg.Title)
	assert.Equal(t, 1024, cfg.Width, "flag wins over file")
	assert.Equal(t, 480, cfg.Height, "file wins over default")
	assert.True(t, cfg.Culling)
	assert.True(t, cfg.Spin)
	assert.True(t, cfg.DepthTest)

	opts, err := cfg.ClockOptions()
	require.NoError(t, err)
	assert.Equal(t, 32, opts.DialSegments)
	assert.Equal(t, colors.Red, opts.HandColor)
	assert.Equal(t, colors.PaleCyan, opts.DialColor)
	assert.Equal(t, "wall clock", opts.Title)
}

func TestEmptyConfigFileKeepsDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestUnknownFieldsAreRejected(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "widht: 10\n"))
	assert.ErrorContains(t, err, "widht")
}

func TestMissingConfigFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHomeRelativePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	defer func() { homedir.DisableCache = false }()
	require.NoError(t, os.WriteFile(filepath.Join(home, "clock.yaml"), []byte("width: 300\n"), 0o644))

	cfg, err := LoadConfig("~/clock.yaml")
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Width)
}

func TestInvalidValues(t *testing.T) {
	_, err := ParseConfig([]string{"-width", "0"}, io.Discard)
	assert.Error(t, err)

	cfg, err := LoadConfig(writeConfig(t, "dial_color: [2, 0, 0]\n"))
	require.NoError(t, err)
	_, err = cfg.ClockOptions()
	assert.ErrorContains(t, err, "dial_color")

	_, err = ParseConfig([]string{"-bogus"}, io.Discard)
	assert.Error(t, err)
}
