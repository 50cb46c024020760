// package formatter provides functions to export build run reports to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sablewood/rymx/internal/shared"
	"github.com/sablewood/rymx/internal/tasks"
)

// ExportToCSV converts a BuildRunResult to CSV format with one row per entry.
func ExportToCSV(result *tasks.BuildRunResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Artist", "Title", "Kind", "Status", "URIs", "ArtistScore", "TitleScore", "Error"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, entry := range result.Results {
		record := []string{
			entry.Entry.Artist,
			entry.Entry.Title,
			string(entry.Entry.Kind),
			string(entry.Status),
			strings.Join(entry.URIs, " "),
			formatScore(entry.Decision.ArtistScore),
			formatScore(entry.Decision.TitleScore),
			entry.Err,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a BuildRunResult to Markdown format.
func ExportToMarkdown(result *tasks.BuildRunResult, title string) ([]byte, error) {
	var buf bytes.Buffer

	if title == "" {
		title = "Build Report"
	}
	buf.WriteString(fmt.Sprintf("# %s\n\n", title))

	buf.WriteString(fmt.Sprintf("**Entries**: %d\n", result.TotalEntries))
	buf.WriteString(fmt.Sprintf("**Matched**: %d (%.1f%%)\n", result.MatchedCount, result.MatchPercentage))
	buf.WriteString(fmt.Sprintf("**No match**: %d\n", result.NoMatchCount))
	buf.WriteString(fmt.Sprintf("**Failed**: %d\n", result.FailedCount))
	buf.WriteString(fmt.Sprintf("**Tracks collected**: %d\n\n", len(result.URIs)))

	buf.WriteString("## Entries\n\n")
	for i, entry := range result.Results {
		marker := statusMarker(entry.Status)
		detail := ""
		switch entry.Status {
		case tasks.StatusMatched:
			detail = fmt.Sprintf(" [%d tracks]", len(entry.URIs))
		case tasks.StatusFailed:
			detail = fmt.Sprintf(" (%s)", entry.Err)
		}
		buf.WriteString(fmt.Sprintf("%d. %s %s - %s (%s)%s\n", i+1, marker, entry.Entry.Artist, entry.Entry.Title, entry.Entry.Kind, detail))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a BuildRunResult to plain text format
func ExportToText(result *tasks.BuildRunResult) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Entries: %d\n", result.TotalEntries))
	buf.WriteString(fmt.Sprintf("Matched: %d | No match: %d | Failed: %d\n", result.MatchedCount, result.NoMatchCount, result.FailedCount))
	buf.WriteString(fmt.Sprintf("Tracks collected: %d\n\n", len(result.URIs)))

	for i, entry := range result.Results {
		buf.WriteString(fmt.Sprintf("%d. %s %s - %s\n", i+1, statusMarker(entry.Status), entry.Entry.Artist, entry.Entry.Title))
	}

	return buf.Bytes(), nil
}

// ToSummaryJSON generates a JSON representation of the full run result.
func ToSummaryJSON(result *tasks.BuildRunResult) ([]byte, error) {
	return shared.MarshalJSON(result, true)
}

// ReportExportResult contains the paths of files created by WriteReport
type ReportExportResult struct {
	EntriesFile string
	SummaryFile string
}

// WriteReport exports a run result to CSV with an accompanying summary JSON file.
//
// Creates {base}_entries.csv and {base}_summary.json.
func WriteReport(result *tasks.BuildRunResult, baseFilepath string) (*ReportExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = "build"
	}

	csvData, err := ExportToCSV(result)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	entriesFile := baseFilepath + "_entries.csv"
	if err := os.WriteFile(entriesFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", entriesFile, err)
	}

	summaryData, err := ToSummaryJSON(result)
	if err != nil {
		return nil, fmt.Errorf("failed to generate summary JSON: %w", err)
	}

	summaryFile := baseFilepath + "_summary.json"
	if err := os.WriteFile(summaryFile, summaryData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", summaryFile, err)
	}

	return &ReportExportResult{EntriesFile: entriesFile, SummaryFile: summaryFile}, nil
}

func statusMarker(status tasks.EntryStatus) string {
	switch status {
	case tasks.StatusMatched:
		return "✓"
	case tasks.StatusNoMatch:
		return "✗"
	default:
		return "!"
	}
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 3, 64)
}
