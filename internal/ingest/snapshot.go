package ingest

import (
	"io"

	"github.com/hamcat/rigmap/pkg/catalogs"
	"github.com/hamcat/rigmap/pkg/errors"
)

// ReadSnapshot reads an exported catalog (YAML or JSON) back as a batch.
// Storage IDs are cleared so the rows merge by key into the target store.
func ReadSnapshot(r io.Reader, name string) (*Batch, error) {
	// JSON is valid YAML, so one decoder serves both exports.
	snap, err := catalogs.DecodeSnapshot(r, catalogs.FormatYAML)
	if err != nil {
		return nil, errors.WrapParse("snapshot", name, err)
	}

	batch := NewBatch(name)
	for i, radio := range snap.Radios {
		batch.Report.Rows++
		if err := radio.Validate(); err != nil {
			batch.Report.Record(&errors.MalformedInputError{
				Source:  string(FormatSnapshot),
				Line:    i + 1,
				Message: err.Error(),
				Err:     err,
			})
			continue
		}
		radio.ID = 0
		batch.Radios = append(batch.Radios, radio)
		batch.Report.Accepted++
	}
	for i, brand := range snap.Brands {
		batch.Report.Rows++
		if err := brand.Validate(); err != nil {
			batch.Report.Record(&errors.MalformedInputError{
				Source:  string(FormatSnapshot),
				Line:    i + 1,
				Field:   "name",
				Message: err.Error(),
				Err:     err,
			})
			continue
		}
		batch.Brands = append(batch.Brands, brand)
		batch.Report.Accepted++
	}
	return batch, nil
}
