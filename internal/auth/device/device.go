// Package device turns raw User-Agent strings into short display names for
// the session activity view.
package device

import (
	"github.com/mssola/useragent"
)

// ParseUserAgent produces a human-readable "Browser on Platform" summary.
// It never fails; unparseable input degrades to generic labels.
func ParseUserAgent(raw string) string {
	if raw == "" {
		return "Unknown Device"
	}

	ua := useragent.New(raw)

	browser, _ := ua.Browser()
	if browser == "" {
		browser = "Unknown Browser"
	}

	// Mobile platforms ("iPhone", "Android") read better than the full OS
	// string; desktop agents get the OS name.
	where := ua.OSInfo().Name
	if ua.Mobile() && ua.Platform() != "" {
		where = ua.Platform()
	}
	if where == "" {
		where = "Unknown OS"
	}

	return browser + " on " + where
}
