// Package useragent derives coarse device descriptions from request headers
// for the connection-history log. No fingerprinting, only display strings.
package useragent

import (
	"net/http"
	"strings"
)

// DescribeDevice parses the User-Agent header into a short
// "Browser N on OS" description.
func DescribeDevice(r *http.Request) string {
	ua := r.Header.Get("User-Agent")
	if ua == "" {
		return "Unknown Device"
	}

	browser := "Unknown Browser"
	switch {
	case strings.Contains(ua, "Edg/"):
		browser = "Edge"
	case strings.Contains(ua, "Chrome/"):
		browser = "Chrome"
	case strings.Contains(ua, "Firefox/"):
		browser = "Firefox"
	case strings.Contains(ua, "Safari/"):
		browser = "Safari"
	}

	version := ""
	browserKey := browser + "/"
	if browser == "Edge" {
		browserKey = "Edg/"
	}
	if idx := strings.Index(ua, browserKey); idx != -1 {
		versionStart := idx + len(browserKey)
		versionEnd := versionStart
		for versionEnd < len(ua) && (ua[versionEnd] >= '0' && ua[versionEnd] <= '9' || ua[versionEnd] == '.') {
			versionEnd++
		}
		if versionEnd > versionStart {
			version = ua[versionStart:versionEnd]
			if dotIdx := strings.Index(version, "."); dotIdx != -1 {
				version = version[:dotIdx]
			}
		}
	}

	os := "Unknown OS"
	switch {
	case strings.Contains(ua, "Windows"):
		os = "Windows"
	case strings.Contains(ua, "iPhone"), strings.Contains(ua, "iPad"):
		os = "iOS"
	case strings.Contains(ua, "Mac OS X"):
		os = "macOS"
	case strings.Contains(ua, "Android"):
		os = "Android"
	case strings.Contains(ua, "Linux"):
		os = "Linux"
	}

	if version != "" {
		return browser + " " + version + " on " + os
	}
	return browser + " on " + os
}

// ClientIP returns the originating address, honoring proxy headers.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
