// Package snapshot archives rendered manifests so past runs stay
// diffable. Snapshots live under the project's .stevedore directory and
// are pruned oldest-first past the retention limit.
package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cameronsjo/stevedore/internal/fileutil"
)

const (
	// SnapshotPrefix is the prefix for snapshot directory names.
	SnapshotPrefix = "run-"
	// DateFormat includes nanoseconds to prevent same-second collisions.
	DateFormat = "20060102-150405.000000000"
	// ManifestFile is the filename of the archived manifest.
	ManifestFile = "manifest.yaml"
	// MaxSnapshots is the maximum number of snapshots to retain.
	MaxSnapshots = 20
	// MinFreeDiskBytes is the minimum free disk space required (10MB).
	MinFreeDiskBytes = 10 * 1024 * 1024
)

// Info holds metadata about a snapshot.
type Info struct {
	Name    string
	Path    string
	RunID   string
	Created time.Time
}

func snapshotsDir(projectDir string) string {
	return filepath.Join(projectDir, ".stevedore", "snapshots")
}

// Create archives manifest text for a run. Returns the snapshot name.
func Create(projectDir, runID, manifestText string) (string, error) {
	snapDir := snapshotsDir(projectDir)

	if err := os.MkdirAll(snapDir, 0755); err != nil {
		return "", fmt.Errorf("create snapshots directory: %w", err)
	}

	if err := checkDiskSpace(snapDir, uint64(len(manifestText))+MinFreeDiskBytes); err != nil {
		return "", fmt.Errorf("insufficient disk space for snapshot: %w", err)
	}

	shortID := runID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	name := SnapshotPrefix + time.Now().Format(DateFormat) + "-" + shortID

	path := filepath.Join(snapDir, name, ManifestFile)
	if err := fileutil.WriteFileAtomic(path, []byte(manifestText), 0644); err != nil {
		return "", fmt.Errorf("write snapshot manifest: %w", err)
	}

	if err := Cleanup(projectDir); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to cleanup old snapshots: %v\n", err)
	}

	return name, nil
}

// List returns snapshots for a project, newest first.
func List(projectDir string) ([]Info, error) {
	snapDir := snapshotsDir(projectDir)

	entries, err := os.ReadDir(snapDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshots directory: %w", err)
	}

	var snapshots []Info
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), SnapshotPrefix) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		runID := ""
		if idx := strings.LastIndex(entry.Name(), "-"); idx > len(SnapshotPrefix) {
			runID = entry.Name()[idx+1:]
		}

		snapshots = append(snapshots, Info{
			Name:    entry.Name(),
			Path:    filepath.Join(snapDir, entry.Name()),
			RunID:   runID,
			Created: info.ModTime(),
		})
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Name > snapshots[j].Name
	})

	return snapshots, nil
}

// Cleanup removes snapshots past the retention limit, oldest first.
func Cleanup(projectDir string) error {
	snapshots, err := List(projectDir)
	if err != nil {
		return err
	}

	if len(snapshots) <= MaxSnapshots {
		return nil
	}

	for _, old := range snapshots[MaxSnapshots:] {
		if err := os.RemoveAll(old.Path); err != nil {
			return fmt.Errorf("remove snapshot %s: %w", old.Name, err)
		}
	}

	return nil
}

// Prune removes all snapshots for a project.
func Prune(projectDir string) (int, error) {
	snapshots, err := List(projectDir)
	if err != nil {
		return 0, err
	}

	for _, snap := range snapshots {
		if err := os.RemoveAll(snap.Path); err != nil {
			return 0, fmt.Errorf("remove snapshot %s: %w", snap.Name, err)
		}
	}

	return len(snapshots), nil
}
