// Package export saves report results to a file, either as plain text
// with one row per line or as CSV.
package export

import (
	"bufio"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/juju/errors"

	"github.com/willfong/classroom-sql/internal/database"
)

// Format selects the file layout
type Format string

const (
	// FormatText writes a header line then one "a | b | c" line per row
	FormatText Format = "text"
	// FormatCSV writes RFC 4180 CSV with a header row
	FormatCSV Format = "csv"
)

// TextSeparator joins values of a row in text format
const TextSeparator = " | "

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatText, FormatCSV:
		return f, nil
	case "":
		return FormatText, nil
	}
	return "", errors.NotValidf("export format %q (use text or csv)", name)
}

// Writer is a buffered result writer for one output file
type Writer struct {
	file     *os.File
	buffer   *bufio.Writer
	csv      *csv.Writer
	format   Format
	rowCount int64
	closed   bool
}

// Config holds configuration for creating a Writer
type Config struct {
	// Path of the output file; parent directories are created
	Path string
	// Format of the file (default: text)
	Format Format
	// Column headers
	Headers []string
	// Append to an existing file instead of truncating it
	Append bool
	// Buffer size in bytes (default: 64KB)
	BufferSize int
}

// NewWriter creates the file and writes the headers
func NewWriter(cfg Config) (*Writer, error) {
	if cfg.Path == "" {
		return nil, errors.NotValidf("empty export path")
	}
	format := cfg.Format
	if format == "" {
		format = FormatText
	}
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Annotate(err, "create output directory")
		}
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if cfg.Append {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	file, err := os.OpenFile(cfg.Path, flags, 0644)
	if err != nil {
		return nil, errors.Annotatef(err, "create file %s", cfg.Path)
	}

	bufSize := cfg.BufferSize
	if bufSize <= 0 {
		bufSize = 64 * 1024
	}
	buffer := bufio.NewWriterSize(file, bufSize)

	w := &Writer{file: file, buffer: buffer, format: format}
	if format == FormatCSV {
		w.csv = csv.NewWriter(buffer)
	}

	if len(cfg.Headers) > 0 {
		if err := w.write(cfg.Headers); err != nil {
			file.Close()
			return nil, errors.Annotate(err, "write headers")
		}
	}
	return w, nil
}

func (w *Writer) write(row []string) error {
	if w.csv != nil {
		return w.csv.Write(row)
	}
	_, err := w.buffer.WriteString(strings.Join(row, TextSeparator) + "\n")
	return err
}

// WriteRow writes a single row
func (w *Writer) WriteRow(row []string) error {
	if w.closed {
		return errors.New("writer is closed")
	}
	if err := w.write(row); err != nil {
		return errors.Annotate(err, "write row")
	}
	w.rowCount++
	return nil
}

// WriteResult writes a result set as a section of a larger file: an
// optional title line, the column headers, then the rows. Only the rows
// count towards RowCount.
func (w *Writer) WriteResult(title string, rs *database.ResultSet) error {
	if w.closed {
		return errors.New("writer is closed")
	}
	if title != "" {
		if err := w.write([]string{title}); err != nil {
			return errors.Annotate(err, "write title")
		}
	}
	if err := w.write(rs.Columns); err != nil {
		return errors.Annotate(err, "write headers")
	}
	return w.WriteRows(rs.Rows)
}

// WriteRows writes multiple rows
func (w *Writer) WriteRows(rows [][]string) error {
	for _, row := range rows {
		if err := w.WriteRow(row); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes remaining data and closes the file
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if w.csv != nil {
		w.csv.Flush()
		if err := w.csv.Error(); err != nil {
			w.file.Close()
			return errors.Annotate(err, "flushing csv")
		}
	}
	if err := w.buffer.Flush(); err != nil {
		w.file.Close()
		return errors.Annotate(err, "flushing file")
	}
	return w.file.Close()
}

// RowCount returns the number of data rows written (excludes header)
func (w *Writer) RowCount() int64 {
	return w.rowCount
}

// Path returns the full path to the output file
func (w *Writer) Path() string {
	return w.file.Name()
}

// Result writes a whole result set to path and returns the rows written
func Result(path string, format Format, rs *database.ResultSet) (int64, error) {
	w, err := NewWriter(Config{Path: path, Format: format, Headers: rs.Columns})
	if err != nil {
		return 0, err
	}
	if err := w.WriteRows(rs.Rows); err != nil {
		w.Close()
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return w.RowCount(), nil
}
