// Package apconfig renders the hostapd and dnsmasq configuration of the
// access point from the stored network settings.
//
// Render is pure: it never touches the filesystem. Writing the files and
// restarting the daemons is done by the orchestrator.
package apconfig

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PirateLibrary/PirateLibrary/internal/config"
	"github.com/PirateLibrary/PirateLibrary/internal/settings"
)

// Options is the static part of the configuration.
type Options struct {
	Interface      string
	Driver         string
	HWMode         string
	Channel        int
	Gateway        string
	DHCPRangeStart string
	DHCPRangeEnd   string
	Netmask        string
	LeaseTime      string
}

// Rendered holds the text of both daemon configuration files.
type Rendered struct {
	AP   string // hostapd.conf
	DHCP string // dnsmasq.conf
}

// DefaultOptions returns the classic Raspberry Pi layout on wlan0.
func DefaultOptions() Options {
	return Options{
		Interface:      "wlan0",
		Driver:         "nl80211",
		HWMode:         "g",
		Channel:        6,
		Gateway:        "192.168.4.1",
		DHCPRangeStart: "192.168.4.2",
		DHCPRangeEnd:   "192.168.4.20",
		Netmask:        "255.255.255.0",
		LeaseTime:      "24h",
	}
}

// FromConfig takes the options from the [AccessPoint] section, falling back
// to DefaultOptions for every empty value.
func FromConfig(c config.AccessPoint) Options {
	o := DefaultOptions()

	setString(&o.Interface, c.Interface)
	setString(&o.Driver, c.Driver)
	setString(&o.HWMode, c.HWMode)
	setString(&o.Gateway, c.Gateway)
	setString(&o.DHCPRangeStart, c.DHCPRangeStart)
	setString(&o.DHCPRangeEnd, c.DHCPRangeEnd)
	setString(&o.Netmask, c.Netmask)
	setString(&o.LeaseTime, c.LeaseTime)

	if c.Channel > 0 {
		o.Channel = c.Channel
	}

	return o
}

// Render builds both configuration files for s.
func Render(s settings.Settings, o Options) Rendered {
	return Rendered{
		AP:   renderHostapd(s, o),
		DHCP: renderDnsmasq(o),
	}
}

func renderHostapd(s settings.Settings, o Options) string {
	var b strings.Builder

	kv(&b, "interface", o.Interface)
	kv(&b, "driver", o.Driver)
	kv(&b, "ssid", s.NetworkName)
	kv(&b, "hw_mode", o.HWMode)
	kv(&b, "channel", strconv.Itoa(o.Channel))
	kv(&b, "macaddr_acl", "0")
	kv(&b, "auth_algs", "1")
	kv(&b, "ignore_broadcast_ssid", "0")

	if !s.IsOpen() {
		kv(&b, "wpa", "2")
		kv(&b, "wpa_passphrase", s.Passphrase)
		kv(&b, "wpa_key_mgmt", "WPA-PSK")
		kv(&b, "rsn_pairwise", "CCMP")
	}

	return b.String()
}

func renderDnsmasq(o Options) string {
	var b strings.Builder

	kv(&b, "interface", o.Interface)
	kv(&b, "dhcp-range", strings.Join([]string{o.DHCPRangeStart, o.DHCPRangeEnd, o.Netmask, o.LeaseTime}, ","))
	// every name resolves to the gateway
	kv(&b, "address", "/#/"+o.Gateway)

	return b.String()
}

func kv(b *strings.Builder, key, value string) {
	fmt.Fprintf(b, "%s=%s\n", key, value)
}

func setString(dst *string, v string) {
	if strings.TrimSpace(v) != "" {
		*dst = v
	}
}
