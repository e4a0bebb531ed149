//go:build !windows

package snapshot

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// checkDiskSpace verifies the filesystem at path has at least required
// bytes available.
func checkDiskSpace(path string, required uint64) error {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return fmt.Errorf("statfs %s: %w", path, err)
	}

	available := stat.Bavail * uint64(stat.Bsize)
	if available < required {
		return fmt.Errorf("need %d bytes, %d available", required, available)
	}

	return nil
}
