// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const (
	// FileName is the main configuration file inside the config directory.
	FileName = "main.toml"

	// EnvJSONOverride holds a JSON document merged over the TOML file.
	EnvJSONOverride = "PIRATELIBRARY_CONFIG_JSON"

	// BackendFile stores the settings record as a JSON file.
	BackendFile = "file"

	// BackendSQLite stores the settings record in a sqlite database.
	BackendSQLite = "sqlite"
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	if _, err = toml.DecodeFile(filepath.Join(path, FileName), &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvJSONOverride)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	setDefaults(&c)

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to decode config override from env")
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// setDefaults fills the values a stock Raspberry Pi setup expects.
func setDefaults(c *Config) { //nolint:cyclop
	if c.Title == "" {
		c.Title = "PirateLibrary"
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = 5
	}

	if c.Webserver.ReadTimeout == 0 {
		c.Webserver.ReadTimeout = 300
	}

	if c.Webserver.WriteTimeout == 0 {
		c.Webserver.WriteTimeout = 300
	}

	if c.Webserver.IdleTimeout == 0 {
		c.Webserver.IdleTimeout = 60
	}

	if c.Settings.Backend == "" {
		c.Settings.Backend = BackendFile
	}

	ap := &c.AccessPoint
	ap.Interface = orDefault(ap.Interface, "wlan0")
	ap.Driver = orDefault(ap.Driver, "nl80211")
	ap.HWMode = orDefault(ap.HWMode, "g")
	ap.Gateway = orDefault(ap.Gateway, "192.168.4.1")
	ap.DHCPRangeStart = orDefault(ap.DHCPRangeStart, "192.168.4.2")
	ap.DHCPRangeEnd = orDefault(ap.DHCPRangeEnd, "192.168.4.20")
	ap.Netmask = orDefault(ap.Netmask, "255.255.255.0")
	ap.LeaseTime = orDefault(ap.LeaseTime, "24h")
	ap.HostapdConf = orDefault(ap.HostapdConf, "/etc/hostapd/hostapd.conf")
	ap.DnsmasqConf = orDefault(ap.DnsmasqConf, "/etc/dnsmasq.conf")

	if ap.Channel == 0 {
		ap.Channel = 6
	}

	if ap.PrefixLength == 0 {
		ap.PrefixLength = 24
	}

	c.Service.Name = orDefault(c.Service.Name, "piratelibrary")
	c.Service.UnitPath = orDefault(c.Service.UnitPath, "/etc/systemd/system/"+c.Service.Name+".service")
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}

	return v
}

// validate minimal config settings.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.MaxUploadSize <= 0 {
		return errors.Wrap(ErrMaxUploadSizeInvalid, invalidErrMessage)
	}

	if c.Storage.DefaultDir == "" {
		return errors.Wrap(ErrEmptyDefaultDir, invalidErrMessage)
	}

	switch c.Settings.Backend {
	case BackendFile:
		if c.Settings.Path == "" {
			return errors.Wrap(ErrEmptySettingsPath, invalidErrMessage)
		}
	case BackendSQLite:
		if c.Settings.DBPath == "" {
			return errors.Wrap(ErrEmptySettingsPath, invalidErrMessage)
		}
	default:
		return errors.Wrap(ErrUnknownSettingsBackend, invalidErrMessage)
	}

	if c.AccessPoint.Interface == "" {
		return errors.Wrap(ErrEmptyInterface, invalidErrMessage)
	}

	return nil
}
