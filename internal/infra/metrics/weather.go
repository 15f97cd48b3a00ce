package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var weatherLookups = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "weather_lookups_total",
		Help: "Count of weather provider calls by outcome.",
	},
	[]string{"success"},
)

func init() {
	register(weatherLookups)
}

func IncWeatherLookup(success bool) {
	weatherLookups.WithLabelValues(strconv.FormatBool(success)).Inc()
}
