package sysconfig

import "time"

// Setting is one stored configuration entry.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
