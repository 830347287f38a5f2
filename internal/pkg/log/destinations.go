package log

import (
	"fmt"
	"log/slog"
	"os"
)

// Destination interface
type Destination interface {
	Enabled() bool
	Level() slog.Level
	Write(entry *logEntry)
	Close()
}

func initDestinations() []Destination {
	var destinations []Destination

	if globalConfig.StdoutEnabled {
		destinations = append(destinations, &StdoutDestination{
			level: globalConfig.StdoutLevel,
		})
	}

	if globalConfig.StderrEnabled {
		destinations = append(destinations, &StderrDestination{
			level: globalConfig.StderrLevel,
		})
	}

	if globalConfig.FileConfig != nil {
		fileDest, err := NewFileDestination(globalConfig.FileConfig)
		if err != nil {
			fmt.Fprintln(os.Stderr, "unable to open log file destination:", err)
		} else {
			destinations = append(destinations, fileDest)
		}
	}

	return destinations
}

// StdoutDestination logs to stdout
type StdoutDestination struct {
	level slog.Level
}

func (d *StdoutDestination) Enabled() bool {
	return true
}

func (d *StdoutDestination) Level() slog.Level {
	return d.level
}

func (d *StdoutDestination) Write(entry *logEntry) {
	if entry.level < globalConfig.StderrLevel || !globalConfig.StderrEnabled {
		fmt.Println(formatLogEntry(entry))
	}
}

func (d *StdoutDestination) Close() {}

// StderrDestination logs to stderr
type StderrDestination struct {
	level slog.Level
}

func (d *StderrDestination) Enabled() bool {
	return true
}

func (d *StderrDestination) Level() slog.Level {
	return d.level
}

func (d *StderrDestination) Write(entry *logEntry) {
	if entry.level >= globalConfig.StderrLevel {
		fmt.Fprintln(os.Stderr, formatLogEntry(entry))
	}
}

func (d *StderrDestination) Close() {}
