package logger

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/progress/pkg/progress"
)

// colorScheme defines consistent colors for summary metrics.
// Green: completion
// Yellow: incomplete bounded runs
// Cyan: labels
type colorScheme struct {
	success *color.Color
	warn    *color.Color
	label   *color.Color
	value   *color.Color
}

func newColorScheme() *colorScheme {
	return &colorScheme{
		success: color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		label:   color.New(color.FgCyan),
		value:   color.New(color.FgWhite),
	}
}

// metric is one "label: value" pair of a summary line.
type metric struct {
	label string
	value string
	tone  *color.Color // nil uses the scheme's value color
}

// formatSummaryMetrics formats the metrics of a finished indicator.
// Format: "units: N, elapsed: 2s, avg: 0.50s/unit" plus "done: 75%" for
// bounded indicators.
func formatSummaryMetrics(s progress.Snapshot, colorOutput bool) string {
	scheme := newColorScheme()

	metrics := []metric{
		{label: "units", value: fmt.Sprintf("%d", s.Index)},
		{label: "elapsed", value: formatDuration(s.ElapsedDuration())},
	}
	if s.Index > 0 {
		metrics = append(metrics, metric{label: "avg", value: fmt.Sprintf("%.2fs/unit", s.Avg)})
	}
	if s.Bounded {
		tone := scheme.success
		if s.Remaining > 0 {
			tone = scheme.warn
		}
		metrics = append(metrics, metric{label: "done", value: fmt.Sprintf("%.0f%%", s.Percent), tone: tone})
	}

	parts := make([]string, 0, len(metrics))
	for _, m := range metrics {
		if !colorOutput {
			parts = append(parts, fmt.Sprintf("%s: %s", m.label, m.value))
			continue
		}
		tone := m.tone
		if tone == nil {
			tone = scheme.value
		}
		parts = append(parts, fmt.Sprintf("%s: %s", scheme.label.Sprint(m.label), tone.Sprint(m.value)))
	}
	return strings.Join(parts, ", ")
}
