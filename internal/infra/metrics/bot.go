package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	botCommands = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_commands_total",
			Help: "Count of handled chat commands.",
		},
		[]string{"command"},
	)

	botCommandErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_command_errors_total",
			Help: "Count of chat commands whose handler failed.",
		},
		[]string{"command"},
	)
)

func init() {
	register(botCommands, botCommandErrors)
}

func IncCommand(command string)      { botCommands.WithLabelValues(command).Inc() }
func IncCommandError(command string) { botCommandErrors.WithLabelValues(command).Inc() }
