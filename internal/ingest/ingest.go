// Package ingest reads raw record batches from the files the catalog is
// built from: free-text catalog CSV and markdown tables, the brand sheet,
// FCC grant extracts and the FCC grantee extract.
//
// Readers never stop on a bad row. Rows that cannot be turned into a
// record are counted in the batch Report and skipped.
package ingest

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hamcat/rigmap/pkg/errors"
	"github.com/hamcat/rigmap/pkg/logging"
)

// Format names an input file layout.
type Format string

// Supported input formats.
const (
	FormatCatalogCSV Format = "csv"
	FormatMarkdown   Format = "markdown"
	FormatBrandsCSV  Format = "brands"
	FormatFCCXML     Format = "fcc"
	FormatGranteeXML Format = "grantees"
	FormatSnapshot   Format = "snapshot"
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatCatalogCSV, FormatMarkdown, FormatBrandsCSV, FormatFCCXML, FormatGranteeXML, FormatSnapshot}
}

// ParseFormat converts a user-supplied name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv", "catalog":
		return FormatCatalogCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "brands", "brands-csv":
		return FormatBrandsCSV, nil
	case "fcc", "fcc-xml", "grants":
		return FormatFCCXML, nil
	case "grantees", "grantee-xml":
		return FormatGranteeXML, nil
	case "snapshot", "yaml", "json":
		return FormatSnapshot, nil
	}
	return "", &errors.ValidationError{Field: "format", Value: s, Message: "unknown input format"}
}

// FormatFromPath guesses the format from a file extension. Brand sheets and
// grantee extracts share extensions with other formats and must be named
// explicitly.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCatalogCSV, true
	case ".md", ".markdown":
		return FormatMarkdown, true
	case ".xml":
		return FormatFCCXML, true
	case ".yaml", ".yml", ".json":
		return FormatSnapshot, true
	}
	return "", false
}

// Read decodes r according to format. name labels the batch in reports.
func Read(r io.Reader, format Format, name string) (*Batch, error) {
	switch format {
	case FormatCatalogCSV:
		return ReadCatalogCSV(r, name)
	case FormatMarkdown:
		return ReadMarkdown(r, name)
	case FormatBrandsCSV:
		return ReadBrandsCSV(r, name)
	case FormatFCCXML:
		return ReadGrants(r, name)
	case FormatGranteeXML:
		return ReadGrantees(r, name)
	case FormatSnapshot:
		return ReadSnapshot(r, name)
	}
	return nil, &errors.ValidationError{Field: "format", Value: string(format), Message: "unknown input format"}
}

// ReadFile opens path and decodes it according to format.
func ReadFile(ctx context.Context, path string, format Format) (*Batch, error) {
	logger := logging.FromContext(ctx)

	f, err := os.Open(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logger.Warn().Err(cerr).Str("path", path).Msg("Failed to close input file")
		}
	}()

	batch, err := Read(f, format, filepath.Base(path))
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("path", path).
		Str("format", string(format)).
		Int("rows", batch.Report.Rows).
		Int("accepted", batch.Report.Accepted).
		Int("skipped", batch.Report.Total()).
		Msg("Read input file")
	return batch, nil
}
