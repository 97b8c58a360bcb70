package settings

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/PirateLibrary/PirateLibrary/internal/config"
)

func newDBStore(t *testing.T) *DBStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	store, err := NewDBStoreFromDB(db)
	require.NoError(t, err)

	return store
}

// stores returns one fresh instance of every backend.
func stores(t *testing.T) map[string]Store {
	t.Helper()

	return map[string]Store{
		"file":   NewFileStore(filepath.Join(t.TempDir(), "piratelibrary.conf")),
		"sqlite": newDBStore(t),
	}
}

func TestDefault(t *testing.T) {
	def := Default()

	assert.Equal(t, Settings{NetworkName: "PirateLibrary", Passphrase: "", HostLabel: "PirateLibrary"}, def)
	assert.True(t, def.IsOpen())
	assert.False(t, New("x", "secret123").IsOpen())
}

func TestLoadFreshStoreReturnsDefault(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			got, err := store.Load()
			require.NoError(t, err)
			assert.Equal(t, Default(), got)

			// the default record is persisted, a second load reads it back
			again, err := store.Load()
			require.NoError(t, err)
			assert.Equal(t, Default(), again)
		})
	}
}

func TestSaveLoad(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			want := New("MyNet", "secret123")

			require.NoError(t, store.Save(want))
			require.NoError(t, store.Save(want))

			got, err := store.Load()
			require.NoError(t, err)
			assert.Equal(t, want, got)
			assert.Equal(t, "MyNet", got.HostLabel)
		})
	}
}

func TestReset(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			// nothing stored yet
			require.NoError(t, store.Reset())

			require.NoError(t, store.Save(New("MyNet", "secret123")))
			require.NoError(t, store.Reset())

			got, err := store.Load()
			require.NoError(t, err)
			assert.Equal(t, Default(), got)
		})
	}
}

func TestFileStoreResetRemovesCorruptRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "piratelibrary.conf")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))

	store := NewFileStore(path)

	_, err := store.Load()
	require.ErrorIs(t, err, ErrCorrupt)

	require.NoError(t, store.Reset())

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), got)
}

func TestSaveRejectsEmptyNetworkName(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, store.Save(Settings{Passphrase: "x"}), ErrEmptyNetworkName)
		})
	}
}

func TestFileStoreLoadCorrupt(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "ssid=foo"},
		{name: "truncated", content: `{"ssid":"Pi`},
		{name: "missing ssid", content: `{"password":"x"}`},
		{name: "null", content: `null`},
		{name: "trailing garbage", content: `{"ssid":"x"}garbage`},
		{name: "two records", content: `{"ssid":"x"}{"ssid":"y"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "piratelibrary.conf")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			_, err := NewFileStore(path).Load()
			require.ErrorIs(t, err, ErrCorrupt)

			// the broken record is left alone for the operator to inspect
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.content, string(data))
		})
	}
}

func TestFileStoreLoadLegacyRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "piratelibrary.conf")
	require.NoError(t, os.WriteFile(path, []byte(`{"ssid": "Library", "password": "hunter22"}`), 0o600))

	got, err := NewFileStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, New("Library", "hunter22"), got)
}

func TestFileStoreWritesJSONKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "piratelibrary.conf")
	store := NewFileStore(path)
	assert.Equal(t, path, store.Path())

	require.NoError(t, store.Save(New("MyNet", "secret123")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ssid":"MyNet","password":"secret123","hostname":"MyNet"}`, string(data))
}

func TestFileStoreConcurrentSaves(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "piratelibrary.conf"))

	var wg sync.WaitGroup

	for _, name := range []string{"alpha", "bravo", "charlie", "delta"} {
		name := name

		wg.Add(1)

		go func() {
			defer wg.Done()
			assert.NoError(t, store.Save(New(name, "")))
		}()
	}

	wg.Wait()

	got, err := store.Load()
	require.NoError(t, err)
	assert.Contains(t, []string{"alpha", "bravo", "charlie", "delta"}, got.NetworkName)
	assert.Equal(t, got.NetworkName, got.HostLabel)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(config.Settings{Backend: config.BackendFile, Path: filepath.Join(dir, "a.conf")})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, store)

	store, err = Open(config.Settings{Backend: config.BackendSQLite, DBPath: filepath.Join(dir, "a.db")})
	require.NoError(t, err)
	assert.IsType(t, &DBStore{}, store)

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), got)

	_, err = Open(config.Settings{Backend: "etcd"})
	require.ErrorIs(t, err, config.ErrUnknownSettingsBackend)
}

func TestNewDBStoreFromNilDB(t *testing.T) {
	_, err := NewDBStoreFromDB(nil)
	require.Error(t, err)
}
