package ingest

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/hamcat/rigmap/pkg/catalogs"
	"github.com/hamcat/rigmap/pkg/errors"
	"github.com/hamcat/rigmap/pkg/types"
)

func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	return cr
}

// eachCSVRow reads the header and calls fn for every data row with its
// 1-based line number. Row-level CSV errors are returned to fn as rowErr.
func eachCSVRow(r io.Reader, name string, fn func(header []string, row []string, line int, rowErr error) error) error {
	cr := newCSVReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return &errors.ParseError{Format: "csv", File: name, Message: "file is empty"}
	}
	if err != nil {
		return errors.WrapParse("csv", name, err)
	}
	header = append([]string(nil), header...)

	for {
		row, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		var (
			line   int
			rowErr error
		)
		switch perr, ok := err.(*csv.ParseError); {
		case err == nil:
			line, _ = cr.FieldPos(0)
		case ok:
			line = perr.Line
			rowErr = perr
		default:
			return errors.WrapIO("read", name, err)
		}
		if err := fn(header, row, line, rowErr); err != nil {
			return err
		}
	}
}

// ReadCatalogCSV reads free-text catalog rows. The header must carry Brand
// and Model columns; unknown columns are ignored.
func ReadCatalogCSV(r io.Reader, name string) (*Batch, error) {
	batch := NewBatch(name)
	var layout *radioLayout

	err := eachCSVRow(r, name, func(header, row []string, line int, rowErr error) error {
		if layout == nil {
			l, err := newRadioLayout(types.CatalogCSVID, name, header)
			if err != nil {
				return err
			}
			layout = l
		}
		batch.Report.Rows++
		if rowErr != nil {
			batch.Report.Record(&errors.MalformedInputError{
				Source: string(types.CatalogCSVID), Line: line, Message: "unreadable row", Err: rowErr,
			})
			return nil
		}
		if blankRow(row) {
			batch.Report.Rows--
			return nil
		}
		radio, err := layout.radio(row, line)
		if err != nil {
			batch.Report.Record(err)
			return nil
		}
		batch.Radios = append(batch.Radios, radio)
		batch.Report.Accepted++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// ReadBrandsCSV reads the brand sheet: Name, Grantee_Code, Full_Name,
// Website, Country and Notes.
func ReadBrandsCSV(r io.Reader, name string) (*Batch, error) {
	batch := NewBatch(name)
	var setters []brandSetter

	err := eachCSVRow(r, name, func(header, row []string, line int, rowErr error) error {
		if setters == nil {
			setters = make([]brandSetter, len(header))
			hasName := false
			for i, h := range header {
				key := headerKey(h)
				setters[i] = brandColumns[key]
				hasName = hasName || key == "name"
			}
			if !hasName {
				return &errors.ParseError{Format: "csv", File: name, Message: `missing required column "name"`}
			}
		}
		batch.Report.Rows++
		if rowErr != nil {
			batch.Report.Record(&errors.MalformedInputError{
				Source: string(types.CuratedID), Line: line, Message: "unreadable row", Err: rowErr,
			})
			return nil
		}
		if blankRow(row) {
			batch.Report.Rows--
			return nil
		}

		var brand catalogs.Brand
		for i, cell := range row {
			if i < len(setters) && setters[i] != nil {
				setters[i](&brand, strings.TrimSpace(cell))
			}
		}
		if brand.Name == "" {
			batch.Report.Record(errors.NewMalformedInputError(string(types.CuratedID), line, "Name", "brand name is blank"))
			return nil
		}
		batch.Brands = append(batch.Brands, brand)
		batch.Report.Accepted++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
