package crawler

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Summary aggregates the outcome counts of a single run.
type Summary struct {
	Success    uint64
	Failed     uint64
	Rejected   uint64
	Skipped    uint64
	Discovered uint64
	Elapsed    time.Duration
}

// Total is the number of candidates that reached a terminal state.
func (s *Summary) Total() uint64 {
	return s.Success + s.Failed + s.Rejected + s.Skipped
}

// String renders the end-of-run report printed to the operator.
func (s *Summary) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "processed %s in %s\n",
		pluralize(s.Total(), "candidate"), s.Elapsed.Round(time.Second))
	fmt.Fprintf(&b, "  fetched:    %s\n", humanize.Comma(int64(s.Success)))
	fmt.Fprintf(&b, "  failed:     %s\n", humanize.Comma(int64(s.Failed)))
	fmt.Fprintf(&b, "  rejected:   %s\n", humanize.Comma(int64(s.Rejected)))
	fmt.Fprintf(&b, "  skipped:    %s\n", humanize.Comma(int64(s.Skipped)))
	fmt.Fprintf(&b, "  discovered: %s", humanize.Comma(int64(s.Discovered)))

	return b.String()
}

func pluralize(n uint64, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return humanize.Comma(int64(n)) + " " + noun + "s"
}
