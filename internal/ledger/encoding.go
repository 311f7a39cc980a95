package ledger

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// The ledger files use a line-oriented, human-editable encoding: one
// record per line, fields separated by ':', dates as YYYY-MM-DD. Blank
// lines and lines starting with '#' are ignored on load. The field order
// of each file is documented on its store and must stay stable so the
// files remain hand-editable.

const dateLayout = "2006-01-02"

// readLines reads all record lines from the file at path, skipping
// blanks and comments. A missing file yields no lines and no error, so
// a fresh data directory starts as an empty ledger.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return lines, nil
}

// writeFileAtomic persists the encoded records with
// write-whole-file-then-replace semantics: the content is written to a
// temporary file next to the target and renamed over it, so a crash
// mid-write never leaves a half-applied mutation on disk.
func writeFileAtomic(path string, lines []string) error {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// splitFields splits a record line and verifies the expected field count.
func splitFields(line string, want int) ([]string, error) {
	fields := strings.Split(line, ":")
	if len(fields) != want {
		return nil, fmt.Errorf("expected %d fields, got %d in %q", want, len(fields), line)
	}
	return fields, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date %q: %w", s, err)
	}
	return t.UTC(), nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount %q: %w", s, err)
	}
	return d, nil
}

func parseShares(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse share count %q: %w", s, err)
	}
	return v, nil
}

func formatShares(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
