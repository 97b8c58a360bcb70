// Package settings persists the network identity of the appliance: the SSID,
// the optional WPA2 passphrase and the host label derived from the SSID.
//
// Exactly one record exists. Load materializes the default record on first
// use, Save replaces the whole record and Reset drops it. None of them
// reconfigures the access point; the daemon renders its configuration from
// the record it loaded at startup.
package settings

import (
	"encoding/json"
	"errors"

	pkgerrors "github.com/pkg/errors"

	"github.com/PirateLibrary/PirateLibrary/internal/config"
)

// DefaultNetworkName is advertised until the operator picks another one.
const DefaultNetworkName = "PirateLibrary"

var (
	// ErrCorrupt is returned when the persisted record can not be decoded.
	ErrCorrupt = errors.New("settings record is corrupt")

	// ErrEmptyNetworkName is returned when saving a record without SSID.
	ErrEmptyNetworkName = errors.New("network name can not be empty")
)

// Settings is the persisted network identity.
// The JSON keys match the record written by earlier releases.
type Settings struct {
	NetworkName string `json:"ssid"`
	Passphrase  string `json:"password"`
	HostLabel   string `json:"hostname"`
}

// Store loads and persists the single Settings record.
type Store interface {
	Load() (Settings, error)
	Save(s Settings) error
	// Reset removes the record; the next Load writes the default again.
	Reset() error
}

// Default returns the record written on first boot.
func Default() Settings {
	return New(DefaultNetworkName, "")
}

// New builds a record; the host label always mirrors the network name.
func New(networkName, passphrase string) Settings {
	return Settings{
		NetworkName: networkName,
		Passphrase:  passphrase,
		HostLabel:   networkName,
	}
}

// IsOpen returns true for a network without passphrase.
func (s Settings) IsOpen() bool {
	return s.Passphrase == ""
}

// Open selects the backend configured in cfg.
func Open(cfg config.Settings) (Store, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return NewDBStore(cfg.DBPath)
	case config.BackendFile, "":
		return NewFileStore(cfg.Path), nil
	default:
		return nil, config.ErrUnknownSettingsBackend
	}
}

func encode(s Settings) ([]byte, error) {
	if s.NetworkName == "" {
		return nil, ErrEmptyNetworkName
	}

	return json.Marshal(s)
}

func decode(data []byte) (Settings, error) {
	var s Settings

	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, pkgerrors.Wrap(ErrCorrupt, err.Error())
	}

	if s.NetworkName == "" {
		return Settings{}, pkgerrors.Wrap(ErrCorrupt, "ssid is missing")
	}

	// records written by hand may lack the derived label
	if s.HostLabel == "" {
		s.HostLabel = s.NetworkName
	}

	return s, nil
}
