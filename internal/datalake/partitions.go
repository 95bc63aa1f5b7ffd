// Package datalake lays out the bronze/silver/gold directory partitions the
// pipeline reads from and writes to.
package datalake

import (
	"fmt"
	"os"
	"path/filepath"
)

// Layer names, rawest to most refined.
const (
	LayerBronze = "bronze"
	LayerSilver = "silver"
	LayerGold   = "gold"
)

// PartPath builds a partitioned path like
// root/bronze/league=NFL/season=2025/week=1.
func PartPath(root, layer, league string, season, week int) string {
	return filepath.Join(root, layer,
		fmt.Sprintf("league=%s", league),
		fmt.Sprintf("season=%d", season),
		fmt.Sprintf("week=%d", week),
	)
}

// SeasonPath builds the partition path without a week component.
func SeasonPath(root, layer, league string, season int) string {
	return filepath.Join(root, layer,
		fmt.Sprintf("league=%s", league),
		fmt.Sprintf("season=%d", season),
	)
}

// EnsureDir creates the directory path if it does not exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}
