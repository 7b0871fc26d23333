package catalogs

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/hamcat/rigmap/pkg/constants"
	"github.com/hamcat/rigmap/pkg/errors"
)

// Format is a snapshot serialization format.
type Format string

// Supported snapshot formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Snapshot is the serialized form of a catalog.
type Snapshot struct {
	Brands []Brand `json:"brands" yaml:"brands"`
	Radios []Radio `json:"radios" yaml:"radios"`
}

// SnapshotOf captures the current contents of a catalog.
func SnapshotOf(r Reader) Snapshot {
	return Snapshot{
		Brands: r.Brands().List(),
		Radios: r.Radios().List(),
	}
}

// Catalog builds an in-memory catalog from the snapshot.
func (s Snapshot) Catalog() Catalog {
	return New(WithBrands(s.Brands...), WithRadios(s.Radios...))
}

// Encode writes the snapshot in the given format.
func (s Snapshot) Encode(w io.Writer, format Format) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(s, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	case FormatYAML, "":
		data, err = yaml.MarshalWithOptions(s,
			yaml.Indent(2),
			yaml.IndentSequence(true),
		)
	default:
		return &errors.ValidationError{Field: "format", Value: format, Message: "must be yaml or json"}
	}
	if err != nil {
		return fmt.Errorf("marshaling snapshot as %s: %w", format, err)
	}
	_, err = w.Write(data)
	return err
}

// DecodeSnapshot reads a snapshot in the given format.
func DecodeSnapshot(r io.Reader, format Format) (Snapshot, error) {
	var s Snapshot
	data, err := io.ReadAll(r)
	if err != nil {
		return s, errors.WrapIO("read", "snapshot", err)
	}
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &s)
	case FormatYAML, "":
		err = yaml.Unmarshal(data, &s)
	default:
		return s, &errors.ValidationError{Field: "format", Value: format, Message: "must be yaml or json"}
	}
	if err != nil {
		return s, errors.WrapParse(string(format), "", err)
	}
	return s, nil
}

// FormatFromPath picks a format from a file extension, defaulting to YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// SaveSnapshot writes the catalog to path in the format implied by its extension.
func SaveSnapshot(r Reader, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return errors.WrapIO("create", dir, err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	if err := SnapshotOf(r).Encode(f, FormatFromPath(path)); err != nil {
		return err
	}
	return errors.WrapIO("close", path, f.Close())
}

