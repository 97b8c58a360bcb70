// Package shared resolves and lists the shared root: the single flat
// directory exposed for browsing and receiving uploads.
package shared

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v4/disk"
)

// MountProbe reports whether a path is currently a mount point.
type MountProbe interface {
	IsMounted(ctx context.Context, path string) (bool, error)
}

// PartitionProbe answers from the kernel mount table.
type PartitionProbe struct{}

// IsMounted implements MountProbe.
func (PartitionProbe) IsMounted(ctx context.Context, path string) (bool, error) {
	parts, err := disk.PartitionsWithContext(ctx, true)
	if err != nil {
		return false, errors.Wrap(err, "read mount table")
	}

	want := filepath.Clean(path)
	for _, p := range parts {
		if filepath.Clean(p.Mountpoint) == want {
			return true, nil
		}
	}

	return false, nil
}

// Resolve picks the mount point when it is mounted, the default directory
// otherwise, and makes sure the result exists. It runs once at startup.
func Resolve(ctx context.Context, probe MountProbe, mountPoint, defaultDir string) (string, error) {
	root := defaultDir

	if mountPoint != "" {
		mounted, err := probe.IsMounted(ctx, mountPoint)
		if err != nil {
			// a failed probe is not fatal, the local directory still works
			log.Warn().Err(err).Str("mountpoint", mountPoint).Msg("mount probe failed, using default directory")
		}

		if mounted {
			root = mountPoint
		}
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", errors.Wrap(err, "resolve shared root")
	}

	if err = os.MkdirAll(abs, 0o755); err != nil {
		return "", errors.Wrap(err, "create shared root")
	}

	return abs, nil
}
