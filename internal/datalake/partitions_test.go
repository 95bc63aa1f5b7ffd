package datalake

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartPath(t *testing.T) {
	path := PartPath("data", LayerBronze, "NFL", 2025, 1)
	assert.Equal(t, filepath.Join("data", "bronze", "league=NFL", "season=2025", "week=1"), path)
}

func TestSeasonPath(t *testing.T) {
	path := SeasonPath("data", LayerSilver, "CFB", 2024)
	assert.Equal(t, filepath.Join("data", "silver", "league=CFB", "season=2024"), path)
}

func TestEnsureDir(t *testing.T) {
	root := t.TempDir()
	path := PartPath(root, LayerGold, "NFL", 2025, 3)
	require.NoError(t, EnsureDir(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Idempotent on an existing directory.
	require.NoError(t, EnsureDir(path))
}
