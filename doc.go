// Package main provides the entry point of PirateLibrary, an offline file
// sharing appliance. It runs a fiber web server that lists a shared
// directory, serves its files and accepts uploads, stores the Wi-Fi network
// name and passphrase, and configures hostapd and dnsmasq so the device acts
// as its own access point with a captive DNS.
package main
