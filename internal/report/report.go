// Package report produces the post-run artifacts: the JSON run summary
// and the tree verification pass with its integrity manifest.
package report

import (
	"time"

	"github.com/keshon/treegen/internal/tree"
	"github.com/keshon/treegen/internal/util"
)

// Summary is the JSON statistics record written next to the generated tree.
type Summary struct {
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationSeconds float64   `json:"duration_seconds"`

	tree.Stats

	FilesPerSecond float64 `json:"files_per_second"`
}

func NewSummary(start, end time.Time, stats tree.Stats) Summary {
	s := Summary{
		StartTime:       start,
		EndTime:         end,
		DurationSeconds: end.Sub(start).Seconds(),
		Stats:           stats,
	}
	if s.DurationSeconds > 0 {
		s.FilesPerSecond = float64(stats.FilesCreated) / s.DurationSeconds
	}
	return s
}

// WriteSummary writes the summary as indented JSON, atomically.
func WriteSummary(path string, s Summary) error {
	return util.WriteJSON(path, s)
}
