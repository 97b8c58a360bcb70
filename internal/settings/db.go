package settings

import (
	"errors"
	"sync"

	"github.com/glebarez/sqlite"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/PirateLibrary/PirateLibrary/internal/db/controller/setting"
	"github.com/PirateLibrary/PirateLibrary/internal/db/models"
)

// SettingKeyNetwork is the key the record is stored under.
const SettingKeyNetwork = "network"

// DBStore keeps the record as a JSON blob in the settings table.
type DBStore struct {
	db *gorm.DB
	mu sync.Mutex // single writer
}

// NewDBStore opens (and migrates) the sqlite database at path.
func NewDBStore(path string) (*DBStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "open settings database")
	}

	return NewDBStoreFromDB(db)
}

// NewDBStoreFromDB wraps an already opened database.
func NewDBStoreFromDB(db *gorm.DB) (*DBStore, error) {
	if db == nil {
		return nil, setting.ErrDBNil
	}

	if err := db.AutoMigrate(&models.Setting{}); err != nil {
		return nil, pkgerrors.Wrap(err, "migrate settings table")
	}

	return &DBStore{db: db}, nil
}

// Load reads the record, inserting the default one if it is missing.
func (d *DBStore) Load() (Settings, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	row, err := setting.Get(d.db, SettingKeyNetwork)
	if errors.Is(err, setting.ErrSettingNotFound) {
		def := Default()

		return def, d.write(def)
	}

	if err != nil {
		return Settings{}, pkgerrors.Wrap(err, "read settings")
	}

	return decode(row.Value)
}

// Save replaces the record.
func (d *DBStore) Save(s Settings) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.write(s)
}

// Reset deletes the record row.
func (d *DBStore) Reset() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	err := setting.DeleteByName(d.db, SettingKeyNetwork)
	if err != nil && !errors.Is(err, setting.ErrSettingNotFound) {
		return pkgerrors.Wrap(err, "delete settings")
	}

	return nil
}

func (d *DBStore) write(s Settings) error {
	data, err := encode(s)
	if err != nil {
		return err
	}

	_, err = setting.Set(d.db, SettingKeyNetwork, data)

	return pkgerrors.Wrap(err, "write settings")
}
