// Package auditlog keeps an append-only CSV record of commit outcomes, so
// an operator can see what each import actually did.
package auditlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// Entry is one row in the import log.
type Entry struct {
	Timestamp  time.Time
	AccountID  string
	File       string
	Format     string
	Imported   int
	Skipped    int
	Duplicates int
	Errored    int
}

// Header is the CSV header for import-log.csv.
const Header = "timestamp,account_id,file,format,imported,skipped,duplicates,errored"

const (
	numFields     = 8
	logFile       = "import-log.csv"
	colTimestamp  = 0
	colAccountID  = 1
	colFile       = 2
	colFormat     = 3
	colImported   = 4
	colSkipped    = 5
	colDuplicates = 6
	colErrored    = 7
)

// FromResult builds an Entry from a commit result.
func FromResult(accountID, file, format string, res model.CommitResult) Entry {
	return Entry{
		Timestamp:  time.Now().UTC(),
		AccountID:  accountID,
		File:       file,
		Format:     format,
		Imported:   res.Imported,
		Skipped:    res.Skipped,
		Duplicates: res.Duplicates,
		Errored:    res.Errored,
	}
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colAccountID] = e.AccountID
	row[colFile] = e.File
	row[colFormat] = e.Format
	row[colImported] = strconv.Itoa(e.Imported)
	row[colSkipped] = strconv.Itoa(e.Skipped)
	row[colDuplicates] = strconv.Itoa(e.Duplicates)
	row[colErrored] = strconv.Itoa(e.Errored)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	counts := make([]int, 4)
	for i, col := range []int{colImported, colSkipped, colDuplicates, colErrored} {
		n, err := strconv.Atoi(record[col])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing count %q: %w", record[col], err)
		}
		counts[i] = n
	}

	return Entry{
		Timestamp:  ts,
		AccountID:  record[colAccountID],
		File:       record[colFile],
		Format:     record[colFormat],
		Imported:   counts[0],
		Skipped:    counts[1],
		Duplicates: counts[2],
		Errored:    counts[3],
	}, nil
}

// Append writes an entry to <dir>/import-log.csv, creating the file with a
// header when it does not exist yet.
func Append(dir string, e Entry) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}

	path := filepath.Join(dir, logFile)
	_, statErr := os.Stat(path)
	isNew := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(MarshalEntry(e)); err != nil {
		return fmt.Errorf("writing entry: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// Read loads all entries from a reader (header included).
func Read(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading import log: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
