package visited

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warmstack/primer/pkg/models"
)

func TestJournalRecordAndReload(t *testing.T) {
	fs := afero.NewMemMapFs()

	j, err := NewJournal(fs, "jobs/test/visited.log")
	require.NoError(t, err)

	require.NoError(t, j.Record("/mdr/sdtm/1-8", "application/json", models.StateSuccess))
	require.NoError(t, j.Record("/mdr/ct/packages", "application/json", models.StateFailed))
	require.NoError(t, j.Record("/mdr/sdtm/1-8/domains", "application/json", models.StateRejected))
	require.NoError(t, j.Close())

	// A fresh instance over the same file sees every record.
	j2, err := NewJournal(fs, "jobs/test/visited.log")
	require.NoError(t, err)
	defer j2.Close()

	assert.True(t, j2.Contains("/mdr/sdtm/1-8", "application/json"))
	assert.True(t, j2.Contains("/mdr/ct/packages", "application/json"))
	assert.True(t, j2.Contains("/mdr/sdtm/1-8/domains", "application/json"))
	assert.Equal(t, 3, j2.Count())
}

func TestJournalMediaTypeIsPartOfTheKey(t *testing.T) {
	fs := afero.NewMemMapFs()

	j, err := NewJournal(fs, "visited.log")
	require.NoError(t, err)
	defer j.Close()

	require.NoError(t, j.Record("/mdr/sdtm/1-8", "application/json", models.StateSuccess))

	assert.True(t, j.Contains("/mdr/sdtm/1-8", "application/json"))
	assert.False(t, j.Contains("/mdr/sdtm/1-8", "application/xml"))
}

func TestJournalLoadsLegacyBareURLRecords(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "visited.log", []byte("/mdr/sdtm/1-8\n/mdr/ct/packages\n"), 0o644))

	j, err := NewJournal(fs, "visited.log")
	require.NoError(t, err)
	defer j.Close()

	// Bare-URL records predate the media-type column and match any media type.
	assert.True(t, j.Contains("/mdr/sdtm/1-8", "application/json"))
	assert.True(t, j.Contains("/mdr/sdtm/1-8", "application/xml"))
	assert.Equal(t, 2, j.Count())
}

func TestJournalRejectsCorruptedLines(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "visited.log", []byte("/mdr/sdtm/1-8\tapplication/json\tnot-a-state\n"), 0o644))

	_, err := NewJournal(fs, "visited.log")
	assert.Error(t, err)
}

func TestJournalUnwritablePathFailsOpen(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	_, err := NewJournal(fs, "jobs/test/visited.log")
	assert.Error(t, err)
}
