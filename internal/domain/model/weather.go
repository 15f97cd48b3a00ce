package model

import (
	"fmt"
	"strings"
)

// WeatherReport is a normalized reading from the weather provider. It is
// transient: built per lookup, formatted, sent, never persisted.
type WeatherReport struct {
	CityName    string
	Temperature float64 // °C
	Condition   string
	WindSpeed   float64 // m/s
	Humidity    int     // %
}

// Format renders the fixed reply template used for both on-demand lookups and
// broadcast messages. Markdown emphasis, temperature to one decimal place.
func (w *WeatherReport) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🌆 *City*: %s\n", w.CityName)
	fmt.Fprintf(&sb, "🌡️ *Temperature*: %.1f°C\n", w.Temperature)
	fmt.Fprintf(&sb, "☁️ *Condition*: %s\n", w.Condition)
	fmt.Fprintf(&sb, "💨 *Wind Speed*: %g m/s\n", w.WindSpeed)
	fmt.Fprintf(&sb, "💧 *Humidity*: %d%%", w.Humidity)
	return sb.String()
}
