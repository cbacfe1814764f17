package manifest

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/prrelink/internal/core/domain"
	"github.com/custodia-labs/prrelink/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.RelocationSource = (*Loader)(nil)

// Format identifies a manifest encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatCSV  Format = "csv"
)

// record accepts both key styles.
type record struct {
	OriginalPath    string `json:"original_path" yaml:"original_path" toml:"original_path"`
	DestinationPath string `json:"destination_path" yaml:"destination_path" toml:"destination_path"`
	Original        string `json:"original" yaml:"original" toml:"original"`
	Destination     string `json:"destination" yaml:"destination" toml:"destination"`
}

func (r record) entry() domain.RelocationEntry {
	e := domain.RelocationEntry{OriginalPath: r.OriginalPath, DestinationPath: r.DestinationPath}
	if e.OriginalPath == "" {
		e.OriginalPath = r.Original
	}
	if e.DestinationPath == "" {
		e.DestinationPath = r.Destination
	}
	return e
}

type document struct {
	Relocations []record `json:"relocations" yaml:"relocations" toml:"relocations"`
	CopiedFiles []record `json:"copiedFiles" yaml:"copiedFiles" toml:"copiedFiles"`
}

func (d document) records() []record {
	return append(d.Relocations, d.CopiedFiles...)
}

// Loader reads relocation manifests from disk.
type Loader struct{}

// NewLoader creates a manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the manifest at path.
func (l *Loader) Load(ctx context.Context, path string) ([]domain.RelocationEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("manifest %s: %w", path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("read manifest %s: %w: %w", path, domain.ErrIO, err)
	}

	entries, err := Parse(DetectFormat(path), data)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return entries, nil
}

// DetectFormat picks a format from the file extension. Unknown extensions
// are treated as JSON.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	case ".csv":
		return FormatCSV
	default:
		return FormatJSON
	}
}

// Parse decodes a manifest. Entry order is preserved.
func Parse(format Format, data []byte) ([]domain.RelocationEntry, error) {
	var (
		records []record
		err     error
	)

	switch format {
	case FormatJSON:
		records, err = parseJSON(data)
	case FormatYAML:
		records, err = parseYAML(data)
	case FormatTOML:
		records, err = parseTOML(data)
	case FormatCSV:
		return parseCSV(data)
	default:
		return nil, fmt.Errorf("%w: manifest format %q", domain.ErrUnsupportedType, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s manifest: %v", domain.ErrInvalidInput, format, err)
	}

	entries := make([]domain.RelocationEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, r.entry())
	}
	return entries, nil
}

func parseJSON(data []byte) ([]record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var records []record
		err := json.Unmarshal(trimmed, &records)
		return records, err
	}
	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, err
	}
	return doc.records(), nil
}

func parseYAML(data []byte) ([]record, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, nil
	}

	node := root.Content[0]
	if node.Kind == yaml.SequenceNode {
		var records []record
		err := node.Decode(&records)
		return records, err
	}
	var doc document
	if err := node.Decode(&doc); err != nil {
		return nil, err
	}
	return doc.records(), nil
}

func parseTOML(data []byte) ([]record, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.records(), nil
}

func parseCSV(data []byte) ([]domain.RelocationEntry, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var entries []domain.RelocationEntry
	for line := 1; ; line++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: csv manifest: %v", domain.ErrInvalidInput, err)
		}
		if line == 1 && isHeader(row) {
			continue
		}
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("%w: csv manifest line %d: want 2 columns, got %d",
				domain.ErrInvalidInput, line, len(row))
		}
		entries = append(entries, domain.RelocationEntry{
			OriginalPath:    row[0],
			DestinationPath: row[1],
		})
	}
	return entries, nil
}

func isHeader(row []string) bool {
	if len(row) < 2 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(row[0]))
	return first == "original" || first == "original_path"
}

// ParsePair parses an "original=destination" pair as given on the command
// line. The first '=' separates the two paths.
func ParsePair(s string) (domain.RelocationEntry, error) {
	original, destination, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(original) == "" || strings.TrimSpace(destination) == "" {
		return domain.RelocationEntry{}, fmt.Errorf("%w: relocation %q: want original=destination",
			domain.ErrInvalidInput, s)
	}
	return domain.RelocationEntry{OriginalPath: original, DestinationPath: destination}, nil
}
