package shared

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProbe struct {
	mounted bool
	err     error
	asked   string
}

func (f *fakeProbe) IsMounted(_ context.Context, path string) (bool, error) {
	f.asked = path

	return f.mounted, f.err
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		probe     *fakeProbe
		wantMount bool
	}{
		{name: "mounted drive wins", probe: &fakeProbe{mounted: true}, wantMount: true},
		{name: "not mounted", probe: &fakeProbe{}},
		{name: "probe error falls back", probe: &fakeProbe{err: errors.New("no /proc")}}, //nolint:goerr113
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := t.TempDir()
			mount := filepath.Join(base, "usb")
			def := filepath.Join(base, "files")

			got, err := Resolve(context.Background(), tt.probe, mount, def)
			require.NoError(t, err)
			assert.Equal(t, mount, tt.probe.asked)

			if tt.wantMount {
				assert.Equal(t, mount, got)
			} else {
				assert.Equal(t, def, got)
			}

			info, err := os.Stat(got)
			require.NoError(t, err)
			assert.True(t, info.IsDir())
		})
	}
}

func TestResolveWithoutMountPoint(t *testing.T) {
	probe := &fakeProbe{mounted: true}
	def := filepath.Join(t.TempDir(), "files")

	got, err := Resolve(context.Background(), probe, "", def)
	require.NoError(t, err)
	assert.Equal(t, def, got)
	assert.Empty(t, probe.asked)
}

func TestPartitionProbeUnknownPath(t *testing.T) {
	mounted, err := PartitionProbe{}.IsMounted(context.Background(), filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Skipf("mount table not readable here: %v", err)
	}

	assert.False(t, mounted)
}

func TestList(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(root, "b.jpg"), []byte("jpeg"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".hidden"), nil, 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub", "deeper"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "inner.txt"), []byte("x"), 0o644))

	entries, err := List(root)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}

	// flat, hidden entries included, nothing from sub/
	assert.Equal(t, []string{".hidden", "a.txt", "b.jpg", "sub"}, names)
	assert.Equal(t, int64(5), entries[1].Size)
	assert.True(t, entries[3].IsDir)
}

func TestListMissingRoot(t *testing.T) {
	_, err := List(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
