// Package device derives display names and stable fingerprints from
// User-Agent strings for login audit metadata.
package device

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/mssola/useragent"
)

// Service computes device fingerprints from User-Agent strings. When disabled
// it returns empty fingerprints so callers skip drift tracking entirely.
type Service struct {
	enabled bool
}

// NewService constructs a device service.
func NewService(enabled bool) *Service {
	return &Service{enabled: enabled}
}

// ParseUserAgent renders a human-readable "Browser on OS" display name.
func ParseUserAgent(ua string) string {
	if ua == "" {
		return "Unknown Device"
	}
	parsed := useragent.New(ua)
	browser, _ := parsed.Browser()
	if browser == "" {
		browser = "Unknown Browser"
	}
	os := parsed.OS()
	if os == "" {
		os = "Unknown OS"
	}
	return strings.TrimSpace(browser + " on " + os)
}

// ComputeFingerprint hashes the stable parts of a User-Agent into a SHA-256
// hex digest. Only the browser's major version is included, so routine patch
// updates do not churn the fingerprint while major upgrades do.
func (s *Service) ComputeFingerprint(ua string) string {
	if !s.enabled {
		return ""
	}
	parsed := useragent.New(ua)
	browser, version := parsed.Browser()
	material := strings.Join([]string{
		browser,
		majorVersion(version),
		parsed.OS(),
		parsed.Platform(),
	}, "|")
	sum := sha256.Sum256([]byte(material))
	return hex.EncodeToString(sum[:])
}

// CompareFingerprints reports whether the current fingerprint matches the
// stored one and whether the mismatch counts as drift. Empty fingerprints
// (fingerprinting disabled or never recorded) never report drift.
func (s *Service) CompareFingerprints(stored, current string) (matched, drift bool) {
	matched = stored == current
	drift = !matched && stored != "" && current != ""
	return matched, drift
}

func majorVersion(version string) string {
	if idx := strings.IndexByte(version, '.'); idx >= 0 {
		return version[:idx]
	}
	return version
}
