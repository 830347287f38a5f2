package visited

import (
	"path"
	"sync/atomic"

	"github.com/philippgille/gokv/leveldb"

	"github.com/warmstack/primer/pkg/models"
)

// LevelDB is a Store backend keyed by the xxh3 hash of the (URL, media type)
// pair, meant for runs too large for the journal's in-memory index. Unlike
// the journal it is not hand-editable.
type LevelDB struct {
	count atomic.Int64
	db    leveldb.Store
}

// NewLevelDB opens the database under dir (creating it if needed).
func NewLevelDB(dir string) (*LevelDB, error) {
	db, err := leveldb.NewStore(leveldb.Options{Path: path.Join(dir, "visited")})
	if err != nil {
		return nil, err
	}

	return &LevelDB{db: db}, nil
}

func hash(URL, mediaType string) string {
	return models.NewResource(URL, mediaType).Hash()
}

func (l *LevelDB) Contains(URL, mediaType string) bool {
	var outcome string
	found, err := l.db.Get(hash(URL, mediaType), &outcome)
	if err != nil {
		return false
	}
	return found
}

func (l *LevelDB) Record(URL, mediaType string, outcome models.State) error {
	if err := l.db.Set(hash(URL, mediaType), outcome.String()); err != nil {
		return err
	}
	l.count.Add(1)
	return nil
}

// Count returns the number of records written by this instance. Records from
// previous runs are not enumerable through gokv, they still answer Contains.
func (l *LevelDB) Count() int {
	return int(l.count.Load())
}

func (l *LevelDB) Close() error {
	return l.db.Close()
}
