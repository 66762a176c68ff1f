// internal/storage/memory/export.go
package memory

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	v1 "github.com/ultitrack/recorder/internal/storage/memory/export/v1"
	"github.com/ultitrack/recorder/pkg/core"
)

var fileNameReplacer = strings.NewReplacer(" ", "_", ":", "_", "/", "_", "\\", "_")

// fileName builds name_YYYYMMDD_HHMMSS.json[.gz] from the match.
func fileName(m core.Match, compress bool) string {
	name := fileNameReplacer.Replace(m.Name)
	if name == "" {
		name = "match"
	}
	timestamp := m.StartTime.Format("20060102_150405")

	if compress {
		return fmt.Sprintf("%s_%s.json.gz", name, timestamp)
	}
	return fmt.Sprintf("%s_%s.json", name, timestamp)
}

// exportJSON writes the match to the output directory. Caller holds the lock.
func (b *Backend) exportJSON(final core.GameState) error {
	export, err := v1.Build(&v1.MatchData{
		Match:  *b.match,
		Roster: b.roster,
		Field:  b.field,
		Events: b.events,
		Final:  final,
		Ended:  b.now(),
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	outputPath := filepath.Join(b.cfg.OutputDir, fileName(*b.match, b.cfg.CompressOutput))

	if b.cfg.CompressOutput {
		err = writeGzipJSON(outputPath, export)
	} else {
		err = writeJSON(outputPath, export)
	}
	if err != nil {
		return err
	}

	b.lastExportPath = outputPath
	return nil
}

func writeJSON(path string, data v1.Export) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return replaceFile(path, buf.Bytes())
}

func writeGzipJSON(path string, data v1.Export) error {
	var buf bytes.Buffer
	gzWriter := gzip.NewWriter(&buf)
	if err := json.NewEncoder(gzWriter).Encode(data); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	if err := gzWriter.Close(); err != nil {
		return fmt.Errorf("failed to finish gzip stream: %w", err)
	}
	return replaceFile(path, buf.Bytes())
}

// replaceFile writes data next to path and renames it over path, so an
// earlier export survives a failed write.
func replaceFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace export: %w", err)
	}
	return nil
}
