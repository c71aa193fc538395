package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"cafe-insights/models"
)

// timestampLayout is unambiguous and round-trips through the day-first
// parser, so an exported clean file re-imports to the identical dataset.
const timestampLayout = "2006-01-02 15:04:05"

// Export headers reuse the source column names so a downloaded clean file
// can be fed straight back through the reader.
var cleanHeader = []string{"Location", "Rating", "Transaction Value", "Transaction Date and Time", "Comment"}

var rejectionHeader = []string{"Location", "Rating", "Transaction Value", "Transaction Date and Time", "Comment", "Reason"}

// WriteClean serializes the canonical dataset to CSV with exactly the
// canonical fields as columns, preserving insertion order. This backs the
// "download cleaned data" feature: the display layer hands the bytes out
// without reformatting anything.
func WriteClean(w io.Writer, records []*models.Feedback) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(cleanHeader); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for _, f := range records {
		row := []string{
			f.Location,
			strconv.Itoa(f.Rating),
			strconv.FormatFloat(f.TransactionValue, 'f', 2, 64),
			f.Timestamp.Format(timestampLayout),
			f.Comment,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteRejections serializes the rejection log: the original raw fields plus
// the reason code, for diagnostics export.
func WriteRejections(w io.Writer, rejections []*models.Rejection) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rejectionHeader); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for _, r := range rejections {
		row := []string{
			r.Raw.Location,
			r.Raw.Rating,
			r.Raw.TransactionValue,
			r.Raw.Timestamp,
			r.Raw.Comment,
			string(r.Reason),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// CSVWriter writes one CSV export to a file. It is safe for concurrent use.
type CSVWriter struct {
	mu   sync.Mutex
	file *os.File
}

// NewCSVWriter creates (or truncates) the file at the given path.
// Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	return &CSVWriter{file: f}, nil
}

// WriteClean writes the canonical dataset to the file.
func (c *CSVWriter) WriteClean(records []*models.Feedback) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return WriteClean(c.file, records)
}

// WriteRejections writes the rejection log to the file.
func (c *CSVWriter) WriteRejections(rejections []*models.Rejection) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return WriteRejections(c.file, rejections)
}

// Close closes the underlying file.
func (c *CSVWriter) Close() error {
	return c.file.Close()
}
