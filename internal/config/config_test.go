package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesPackageConstants(t *testing.T) {
	p := Default()
	assert.Equal(t, 64, p.Denom)
	assert.Equal(t, 10, p.SeekDetectedThreshold)
	assert.Equal(t, 6, p.SyncMissThreshold)
	assert.Equal(t, 500_000, p.PersistAfterTicks)
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	p, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wwvbrx.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tz_hours: -5\nobserve_dst: true\n"), 0o644))

	p, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, -5, p.TZHours)
	assert.True(t, p.ObserveDST)
	assert.Equal(t, Default().ScoreThreshold, p.ScoreThreshold)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestAcquisitionConfigProjection(t *testing.T) {
	p := Default()
	p.DriftTrigger = 99
	acq := p.AcquisitionConfig()
	assert.Equal(t, 99, acq.DriftTrigger)
	assert.Equal(t, p.SeekDetectedThreshold, acq.SeekDetectedThreshold)
}
