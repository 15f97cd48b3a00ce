package model

import "time"

// Well-known setting keys. Names are kept verbatim as stored values since the
// settings table is shared with operator tooling.
const (
	SettingWeatherAPIKey  = "weatherApiKey"
	SettingUpdateInterval = "updateInterval"
)

// Setting is a single key/value configuration record. At most one record per
// key; writes replace the value (no history).
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
