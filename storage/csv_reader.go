package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"cafe-insights/models"
)

// Ingestion errors. These are fatal: they surface before any record is
// processed, unlike per-record rejections which never abort a run.
var (
	ErrEmptyInput     = errors.New("csv: input has no header row")
	ErrMissingColumn  = errors.New("csv: required column missing")
	ErrUnreadableFile = errors.New("csv: input unreadable")
)

// Raw export column names, matched case-insensitively after trimming.
// Comment is optional: exports predating the comment feature simply yield
// empty comments, as the original dashboard tolerated.
const (
	colLocation  = "location"
	colRating    = "rating"
	colValue     = "transaction value"
	colTimestamp = "transaction date and time"
	colComment   = "comment"
)

// ReadRawFile loads raw feedback rows from a CSV file on disk.
func ReadRawFile(path string) ([]*models.RawFeedback, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnreadableFile, path, err)
	}
	defer f.Close()

	return ReadRaw(f)
}

// ReadRaw parses raw feedback rows from CSV data. The header row is
// required; columns beyond the known set (including the source's unnamed
// index columns) are ignored. Ragged rows are tolerated: missing cells read
// as empty and flow through normal rejection handling downstream.
func ReadRaw(r io.Reader) ([]*models.RawFeedback, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}

	for _, required := range []string{colLocation, colRating, colValue, colTimestamp} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, required)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var records []*models.RawFeedback
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
		}

		records = append(records, &models.RawFeedback{
			Location:         cell(row, colLocation),
			Rating:           cell(row, colRating),
			TransactionValue: cell(row, colValue),
			Timestamp:        cell(row, colTimestamp),
			Comment:          cell(row, colComment),
		})
	}

	return records, nil
}
