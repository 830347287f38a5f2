package log

import (
	"fmt"
	"io"
	"log/slog"
	"path"
	"sync"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
)

// FileDestination logs to a file, rotated on a fixed period.
type FileDestination struct {
	level  slog.Level
	writer io.WriteCloser
	mu     sync.Mutex
}

func NewFileDestination(cfg *LogfileConfig) (*FileDestination, error) {
	writer, err := rotatelogs.New(
		path.Join(cfg.Dir, cfg.Prefix+".%Y.%m.%dT%H-%M.log"),
		rotatelogs.WithLinkName(path.Join(cfg.Dir, cfg.Prefix+".log")),
		rotatelogs.WithRotationTime(cfg.RotatePeriod),
	)
	if err != nil {
		return nil, err
	}

	return &FileDestination{
		level:  cfg.Level,
		writer: writer,
	}, nil
}

func (d *FileDestination) Enabled() bool {
	return true
}

func (d *FileDestination) Level() slog.Level {
	return d.level
}

func (d *FileDestination) Write(entry *logEntry) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintln(d.writer, formatLogEntry(entry))
}

func (d *FileDestination) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.writer.Close()
}
