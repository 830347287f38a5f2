package visited

import (
	"testing"

	"github.com/warmstack/primer/pkg/models"
)

func TestLevelDBRecordAndReopen(t *testing.T) {
	dir := t.TempDir()

	l, err := NewLevelDB(dir)
	if err != nil {
		t.Fatalf("NewLevelDB() error = %v", err)
	}

	if err := l.Record("/mdr/sdtm/1-8", "application/json", models.StateSuccess); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	if !l.Contains("/mdr/sdtm/1-8", "application/json") {
		t.Error("expected recorded pair to be contained")
	}
	if l.Contains("/mdr/sdtm/1-8", "application/xml") {
		t.Error("different media type should not be contained")
	}
	if l.Count() != 1 {
		t.Errorf("Count() = %d, want 1", l.Count())
	}

	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Reopen, prior records must still answer Contains.
	l2, err := NewLevelDB(dir)
	if err != nil {
		t.Fatalf("NewLevelDB() reopen error = %v", err)
	}
	defer l2.Close()

	if !l2.Contains("/mdr/sdtm/1-8", "application/json") {
		t.Error("expected record to survive reopen")
	}
}
