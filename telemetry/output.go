// Package telemetry records per-frame world statistics and writes them as CSV.
package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/plus3/tieney/config"
)

// Writer handles CSV output in a run directory.
type Writer struct {
	dir        string
	framesFile *os.File

	framesHeaderWritten bool
}

// NewWriter creates the output directory and opens frames.csv.
// Returns nil if dir is empty (output disabled). A nil *Writer is usable and
// discards everything.
func NewWriter(dir string) (*Writer, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "frames.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating frames.csv: %w", err)
	}
	return &Writer{dir: dir, framesFile: f}, nil
}

// Dir returns the output directory, or "" for a disabled writer.
func (w *Writer) Dir() string {
	if w == nil {
		return ""
	}
	return w.dir
}

// WriteConfig saves the effective configuration as YAML.
func (w *Writer) WriteConfig(cfg *config.Config) error {
	if w == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(w.dir, "config.yaml"))
}

// WriteFrames appends frame records to frames.csv. The header is written
// with the first batch.
func (w *Writer) WriteFrames(records []FrameRecord) error {
	if w == nil || len(records) == 0 {
		return nil
	}

	if !w.framesHeaderWritten {
		if err := gocsv.Marshal(records, w.framesFile); err != nil {
			return fmt.Errorf("writing frames: %w", err)
		}
		w.framesHeaderWritten = true
		return nil
	}

	if err := gocsv.MarshalWithoutHeaders(records, w.framesFile); err != nil {
		return fmt.Errorf("writing frames: %w", err)
	}
	return nil
}

// WriteSummary writes summary.csv with a single row.
func (w *Writer) WriteSummary(s Summary) error {
	if w == nil {
		return nil
	}

	f, err := os.Create(filepath.Join(w.dir, "summary.csv"))
	if err != nil {
		return fmt.Errorf("creating summary.csv: %w", err)
	}
	if err := gocsv.Marshal([]Summary{s}, f); err != nil {
		f.Close()
		return fmt.Errorf("writing summary: %w", err)
	}
	return f.Close()
}

// Close closes all open files.
func (w *Writer) Close() error {
	if w == nil {
		return nil
	}
	var errs []error
	if w.framesFile != nil {
		if err := w.framesFile.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing frames.csv: %w", err))
		}
	}
	return errors.Join(errs...)
}
