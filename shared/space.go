package shared

import (
	"fmt"

	"code.cloudfoundry.org/bytefmt"
	"github.com/ricochet2200/go-disk-usage/du"
)

// AvailableSpace returns the number of bytes available to the current user
// on the filesystem holding path.
func AvailableSpace(path string) uint64 {
	usage := du.NewDiskUsage(path)
	return usage.Available()
}

// RequireSpace fails if less than required bytes are available under dir.
func RequireSpace(dir string, required uint64) error {
	available := AvailableSpace(dir)
	if required > available {
		return fmt.Errorf("%w. required: %v, available: %v",
			ErrNotEnoughSpace, bytefmt.ByteSize(required), bytefmt.ByteSize(available))
	}
	return nil
}
