package cli

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// DateLayout is the window-date format shared by prompts and flags.
const DateLayout = "02.01.2006"

func promptString(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	raw, _ := reader.ReadString('\n')
	return strings.TrimSpace(raw)
}

// promptDate asks until it gets a parseable date. A read error (closed
// stdin) ends the loop instead of re-prompting forever.
func promptDate(reader *bufio.Reader, label string) (time.Time, error) {
	for {
		fmt.Print(label)
		raw, err := reader.ReadString('\n')
		value := strings.TrimSpace(raw)
		if value != "" {
			parsed, perr := time.Parse(DateLayout, value)
			if perr == nil {
				return parsed, nil
			}
			fmt.Println("  Invalid date. Use DD.MM.YYYY, e.g. 01.06.2025.")
		}
		if err != nil {
			return time.Time{}, fmt.Errorf("no date entered: %w", err)
		}
	}
}

func promptOutputPath(reader *bufio.Reader) string {
	def := defaultOutputName(time.Now())
	answer := promptString(reader, fmt.Sprintf("Enter the output file name [%s]: ", def))
	if answer == "" {
		return def
	}
	return answer
}

func defaultOutputName(now time.Time) string {
	return fmt.Sprintf("fulfillment_invoice_%s.xlsx", now.Format("2006-01-02"))
}

func ensureXLSX(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return path
	}
	return path + ".xlsx"
}
