package visited

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"github.com/warmstack/primer/pkg/models"
)

// Journal is the default Store backend: a tab-separated append-only text
// file, one `url<TAB>media-type<TAB>outcome` record per line. Legacy files
// carrying bare URLs (no media type column) are still loadable, their
// records match any media type.
type Journal struct {
	mu   sync.Mutex
	fs   afero.Fs
	file afero.File
	seen map[string]models.State

	// legacy holds bare-URL records from the pre-media-type file format
	legacy map[string]bool
}

// NewJournal opens (creating if needed) the journal at path and loads all
// prior records. An unwritable path is an error, the caller must not start
// fetching without a working store.
func NewJournal(fs afero.Fs, path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("unable to create visited-state directory: %w", err)
		}
	}

	j := &Journal{
		fs:     fs,
		seen:   make(map[string]models.State),
		legacy: make(map[string]bool),
	}

	if err := j.load(path); err != nil {
		return nil, err
	}

	file, err := fs.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("unable to open visited-state file for writing: %w", err)
	}
	j.file = file

	return j, nil
}

func (j *Journal) load(path string) error {
	exists, err := afero.Exists(j.fs, path)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	f, err := j.fs.Open(path)
	if err != nil {
		return fmt.Errorf("unable to read visited-state file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimRight(scanner.Text(), "\r\n")
		if raw == "" {
			continue
		}

		fields := strings.Split(raw, "\t")
		switch len(fields) {
		case 1:
			j.legacy[fields[0]] = true
		case 3:
			state, err := models.ParseState(fields[2])
			if err != nil {
				return fmt.Errorf("visited-state file line %d: %w", line, err)
			}
			j.seen[key(fields[0], fields[1])] = state
		default:
			return fmt.Errorf("visited-state file line %d: expected 1 or 3 fields, got %d", line, len(fields))
		}
	}

	return scanner.Err()
}

func (j *Journal) Contains(URL, mediaType string) bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	if _, ok := j.seen[key(URL, mediaType)]; ok {
		return true
	}
	return j.legacy[URL]
}

func (j *Journal) Record(URL, mediaType string, outcome models.State) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if _, err := fmt.Fprintf(j.file, "%s\t%s\t%s\n", URL, mediaType, outcome); err != nil {
		return fmt.Errorf("unable to append to visited-state file: %w", err)
	}
	if err := j.file.Sync(); err != nil {
		return fmt.Errorf("unable to sync visited-state file: %w", err)
	}

	j.seen[key(URL, mediaType)] = outcome
	return nil
}

func (j *Journal) Count() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.seen) + len(j.legacy)
}

func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.file.Close()
}
