package progress

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Display selects the parts of the info segment shown before a bar.
type Display struct {
	Description    string
	ShowProgress   bool
	ShowPercents   bool
	ShowThroughput bool
	ShowETA        bool
}

// Info renders the info segment, e.g. "[train, 25/100, 3.41 it/s] ".
// For bars without a total, spin is shown first. The result is empty
// when there is nothing to show.
func (d Display) Info(t *Tracker, spin string) string {
	var parts []string
	total, known := t.Total()

	if !known && spin != "" {
		parts = append(parts, spin)
	}
	if d.Description != "" {
		parts = append(parts, d.Description)
	}
	if d.ShowProgress {
		if known {
			parts = append(parts, fmt.Sprintf("%d/%d", t.Count(), total))
		} else {
			parts = append(parts, strconv.FormatInt(t.Count(), 10))
		}
	}
	if d.ShowPercents {
		if p, ok := t.Percent(); ok {
			parts = append(parts, fmt.Sprintf("%.1f%%", 100*p))
		}
	}
	if d.ShowThroughput {
		parts = append(parts, fmt.Sprintf("%.2f it/s", t.Throughput()))
	}
	if d.ShowETA {
		if eta, ok := t.ETA(); ok {
			parts = append(parts, "ETA "+eta.Round(time.Second).String())
		}
	}

	if len(parts) == 0 {
		return ""
	}
	return "[" + strings.Join(parts, ", ") + "] "
}
