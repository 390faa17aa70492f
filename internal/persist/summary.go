package persist

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Summary describes a completed save.
type Summary struct {
	Name    string
	Bytes   int
	Lines   int
	Added   int
	Removed int
	Created bool
}

// String renders the summary for the status line:
//
//	"notes.txt" 3L, 42B written (+1 -0)
//	"new.txt" [New] 1L, 2B written
func (s Summary) String() string {
	if s.Created {
		return fmt.Sprintf("%q [New] %dL, %dB written", s.Name, s.Lines, s.Bytes)
	}
	return fmt.Sprintf("%q %dL, %dB written (+%d -%d)", s.Name, s.Lines, s.Bytes, s.Added, s.Removed)
}

func summarize(name string, previous, next []byte, lines int, created bool) Summary {
	s := Summary{
		Name:    name,
		Bytes:   len(next),
		Lines:   lines,
		Created: created,
	}
	if created {
		s.Added = lines
		return s
	}
	s.Added, s.Removed = lineDiff(string(previous), string(next))
	return s
}

// lineDiff counts whole lines added and removed between before and after.
func lineDiff(before, after string) (added, removed int) {
	if before == after {
		return 0, 0
	}

	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added += countLines(d.Text)
		case diffmatchpatch.DiffDelete:
			removed += countLines(d.Text)
		}
	}
	return added, removed
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}
