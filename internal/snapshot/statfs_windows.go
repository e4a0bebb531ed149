//go:build windows

package snapshot

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// checkDiskSpace verifies the filesystem at path has at least required
// bytes available.
func checkDiskSpace(path string, required uint64) error {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return fmt.Errorf("encode path %s: %w", path, err)
	}

	var available uint64
	if err := windows.GetDiskFreeSpaceEx(p, &available, nil, nil); err != nil {
		return fmt.Errorf("disk free space %s: %w", path, err)
	}

	if available < required {
		return fmt.Errorf("need %d bytes, %d available", required, available)
	}

	return nil
}
