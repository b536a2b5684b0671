// Package subtitle renders transcript segments as SRT text and CSV rows.
package subtitle

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/kbukum/speechkit/transcription"
)

// CSVHeader is the first row of CSVRows.
var CSVHeader = []string{"Start (s)", "End (s)", "Segment"}

// Span returns the segment bounds as rendered.
func Span(seg transcription.Segment) (start, end float64) {
	seg = seg.Clamped()
	return seg.Start, seg.End
}

// CSVRows returns the header followed by one row per segment with times
// formatted to two decimals.
func CSVRows(segments []transcription.Segment) [][]string {
	rows := make([][]string, 0, len(segments)+1)
	rows = append(rows, append([]string(nil), CSVHeader...))
	for _, seg := range segments {
		start, end := Span(seg)
		rows = append(rows, []string{
			strconv.FormatFloat(start, 'f', 2, 64),
			strconv.FormatFloat(end, 'f', 2, 64),
			seg.Text,
		})
	}
	return rows
}

// WriteCSV writes rows as RFC 4180 CSV.
func WriteCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// SRT renders segments as numbered SRT cues, each followed by a blank line.
func SRT(segments []transcription.Segment) string {
	var b strings.Builder
	for i, seg := range segments {
		start, end := Span(seg)
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n", i+1, Timestamp(start), Timestamp(end), seg.Text)
	}
	return b.String()
}

// Timestamp formats seconds as HH:MM:SS,mmm. Negative values render as
// zero, hours do not wrap and milliseconds are truncated.
func Timestamp(seconds float64) string {
	micros := int64(math.Round(math.Max(0, seconds) * 1e6))
	total := micros / 1e6
	millis := (micros % 1e6) / 1e3
	return fmt.Sprintf("%02d:%02d:%02d,%03d", total/3600, total%3600/60, total%60, millis)
}
