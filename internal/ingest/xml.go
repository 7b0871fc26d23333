package ingest

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/hamcat/rigmap/pkg/errors"
	"github.com/hamcat/rigmap/pkg/types"
)

type grantRow struct {
	FCCID     string `xml:"fcc_id"`
	GrantDate string `xml:"grant_date"`
	LowerMHz  string `xml:"lower_freq_mhz"`
	UpperMHz  string `xml:"upper_freq_mhz"`
	Purpose   string `xml:"application_purpose"`
}

type grantDocument struct {
	Rows []grantRow `xml:"Row"`
}

type granteeRow struct {
	Code string `xml:"grantee_code"`
	Name string `xml:"grantee_name"`
}

type granteeDocument struct {
	Rows []granteeRow `xml:"Row"`
}

// ReadGrants reads an FCC equipment authorization search export. Rows
// without an FCC ID are skipped.
func ReadGrants(r io.Reader, name string) (*Batch, error) {
	var doc grantDocument
	if err := decodeXML(r, name, &doc); err != nil {
		return nil, err
	}

	batch := NewBatch(name)
	for i, row := range doc.Rows {
		line := i + 1
		batch.Report.Rows++
		g := Grant{
			FCCID:     strings.TrimSpace(row.FCCID),
			GrantDate: strings.TrimSpace(row.GrantDate),
			LowerMHz:  strings.TrimSpace(row.LowerMHz),
			UpperMHz:  strings.TrimSpace(row.UpperMHz),
			Purpose:   strings.TrimSpace(row.Purpose),
			Line:      line,
		}
		if g.FCCID == "" {
			batch.Report.Record(errors.NewMalformedInputError(string(types.FCCGrantID), line, "fcc_id", "FCC ID is blank"))
			continue
		}
		batch.Grants = append(batch.Grants, g)
		batch.Report.Accepted++
	}
	return batch, nil
}

// ReadGrantees reads the FCC grantee extract. Rows without a code are
// skipped; rows with a blank name are kept so a later row can supply it.
func ReadGrantees(r io.Reader, name string) (*Batch, error) {
	var doc granteeDocument
	if err := decodeXML(r, name, &doc); err != nil {
		return nil, err
	}

	batch := NewBatch(name)
	for i, row := range doc.Rows {
		line := i + 1
		batch.Report.Rows++
		g := Grantee{
			Code: strings.TrimSpace(row.Code),
			Name: strings.TrimSpace(row.Name),
			Line: line,
		}
		if g.Code == "" {
			batch.Report.Record(errors.NewMalformedInputError(string(types.GranteeExtractID), line, "grantee_code", "grantee code is blank"))
			continue
		}
		batch.Grantees = append(batch.Grantees, g)
		batch.Report.Accepted++
	}
	return batch, nil
}

func decodeXML(r io.Reader, name string, v any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.WrapIO("read", name, err)
	}
	dec := xml.NewDecoder(bytes.NewReader(SanitizeXML(data)))
	dec.CharsetReader = charsetReader
	if err := dec.Decode(v); err != nil {
		return errors.WrapParse("xml", name, err)
	}
	return nil
}

// charsetReader handles the Latin-1 declarations FCC exports sometimes carry.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(label) {
	case "iso-8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(input), nil
	}
	return nil, fmt.Errorf("unsupported charset %q", label)
}

var xmlEntities = []string{"amp", "lt", "gt", "quot", "apos"}

// SanitizeXML escapes bare ampersands, which FCC exports leave in company
// names ("R&D Co"). Predefined entities and character references are kept.
func SanitizeXML(data []byte) []byte {
	if bytes.IndexByte(data, '&') < 0 {
		return data
	}
	var b bytes.Buffer
	b.Grow(len(data) + 16)
	for i, c := range data {
		if c == '&' && !isEntityStart(data[i+1:]) {
			b.WriteString("&amp;")
			continue
		}
		b.WriteByte(c)
	}
	return b.Bytes()
}

// isEntityStart reports whether rest (the text after an '&') begins with a
// predefined entity name ending at a word boundary, or with '#' followed by
// a word character.
func isEntityStart(rest []byte) bool {
	for _, name := range xmlEntities {
		if bytes.HasPrefix(rest, []byte(name)) && (len(rest) == len(name) || !isWordByte(rest[len(name)])) {
			return true
		}
	}
	return len(rest) > 1 && rest[0] == '#' && isWordByte(rest[1])
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
