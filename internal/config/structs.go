package config

import (
	"github.com/PirateLibrary/PirateLibrary/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode     bool // enable dev mode for development
	Title       string
	Webserver   Webserver
	Storage     Storage
	Settings    Settings
	AccessPoint AccessPoint
	Service     Service
	Log         logger.Log
}

// Webserver implement webserver settings.
type Webserver struct {
	Address       string // listening address, empty means all interfaces
	Port          int    // listening port for the webserver
	MetricsPort   int    // separate prometheus listener, 0 disables it
	ShutDownTime  int    // wait time for shutdown in seconds
	ReadTimeout   int    // per connection read deadline in seconds
	WriteTimeout  int    // per connection write deadline in seconds
	IdleTimeout   int    // keep-alive idle deadline in seconds
	MaxUploadSize int    // request body limit in bytes
}

// Storage selects the shared root.
type Storage struct {
	DefaultDir string // used when MountPoint is not mounted
	MountPoint string // removable drive mount point
}

// Settings selects the network settings backend.
type Settings struct {
	Backend string // "file" or "sqlite"
	Path    string // JSON record for the file backend
	DBPath  string // database file for the sqlite backend
}

// AccessPoint holds the static part of the hostapd and dnsmasq configuration.
type AccessPoint struct {
	Interface      string
	Driver         string
	HWMode         string
	Channel        int
	Gateway        string
	PrefixLength   int
	DHCPRangeStart string
	DHCPRangeEnd   string
	Netmask        string
	LeaseTime      string
	HostapdConf    string // path the rendered hostapd config is written to
	DnsmasqConf    string // path the rendered dnsmasq config is written to
	UseSudo        bool   // prefix system commands with sudo
}

// Service describes the systemd unit registered for autostart.
type Service struct {
	Autostart        bool // register the unit on every start
	Name             string
	UnitPath         string
	User             string
	WorkingDirectory string
	ExecStart        string // defaults to the running binary with "start"
}
