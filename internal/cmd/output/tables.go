package output

import (
	"strconv"
	"strings"

	"github.com/hamcat/rigmap/internal/ingest"
	"github.com/hamcat/rigmap/pkg/catalogs"
	"github.com/hamcat/rigmap/pkg/differ"
	"github.com/hamcat/rigmap/pkg/grantee"
	"github.com/hamcat/rigmap/pkg/reconcile"
)

// RadiosToTableData converts radios to table format. The wide view adds the
// descriptive columns.
func RadiosToTableData(radios []catalogs.Radio, wide bool) Data {
	headers := []string{"Brand", "Model", "FCC ID", "Bands (TX)", "Year"}
	if wide {
		headers = append(headers, "Power (W)", "GPS", "APRS", "DMR", "Battery (mAh)", "Source", "Notes")
	}

	rows := make([][]string, 0, len(radios))
	for _, r := range radios {
		row := []string{r.Brand, r.Model, r.FCCID, r.FreqBandsTX, optionalInt(r.IntroYear)}
		if wide {
			row = append(row, r.PowerWatts, r.GPS, r.APRS, r.DMR, optionalInt(r.BatteryMAH), string(r.Source), r.Notes)
		}
		rows = append(rows, row)
	}
	return Data{Title: "Radios", Headers: headers, Rows: rows}
}

// BrandsToTableData converts brand identities to table format.
func BrandsToTableData(brands []catalogs.Brand) Data {
	rows := make([][]string, 0, len(brands))
	for _, b := range brands {
		rows = append(rows, []string{b.Name, b.GranteeCode, b.FullName, b.Country, b.Website})
	}
	return Data{
		Title:   "Brands",
		Headers: []string{"Name", "Grantee Code", "Full Name", "Country", "Website"},
		Rows:    rows,
	}
}

// GranteesToTableData converts grantee table entries to table format.
func GranteesToTableData(entries []grantee.Entry) Data {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Code, e.Brand, e.FullName})
	}
	return Data{
		Title:   "Grantee codes",
		Headers: []string{"Code", "Brand", "Full Name"},
		Rows:    rows,
	}
}

// ReportToTableData lists skipped rows per error kind.
func ReportToTableData(report *ingest.Report) Data {
	data := Data{
		Title:           "Skipped rows",
		Headers:         []string{"Kind", "Count", "Examples"},
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignLeft},
	}
	if report == nil {
		return data
	}
	for _, kind := range report.Kinds() {
		examples := strings.Join(report.Examples[kind], "\n")
		data.Rows = append(data.Rows, []string{string(kind), strconv.Itoa(report.Count(kind)), examples})
	}
	return data
}

// ResultToTableData renders the statistics of a catalog operation.
func ResultToTableData(res *reconcile.Result) Data {
	data := Data{
		Title:           "Result",
		Headers:         []string{"Statistic", "Value"},
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
	if res == nil {
		return data
	}
	s := res.Metadata.Stats
	add := func(name string, n int) {
		data.Rows = append(data.Rows, []string{name, strconv.Itoa(n)})
	}
	add("Records in", s.RecordsIn)
	add("Records out", s.RecordsOut)
	add("Groups merged", s.MergedGroups)
	add("Records absorbed", s.Absorbed)
	add("Fields adopted", s.FieldsAdopted)
	add("Conflicts kept", s.FieldsKept)
	add("Notes appended", s.NotesAppended)
	if s.Renamed > 0 || res.Operation == "rename" {
		add("Renamed", s.Renamed)
		add("Brands merged", s.BrandsMerged)
	}
	if s.PrefixesCleaned > 0 {
		add("Prefixes cleaned", s.PrefixesCleaned)
	}
	if s.BrandsCreated > 0 {
		add("Brands created", s.BrandsCreated)
	}
	return data
}

// ChangesetToTableData lists every change in a changeset, one row per
// added or removed record and one per changed field.
func ChangesetToTableData(cs *differ.Changeset) Data {
	var rows [][]string
	for _, r := range cs.Radios.Added {
		rows = append(rows, []string{string(differ.ChangeTypeAdd), "radio", r.Brand + " " + r.Model, "", "", ""})
	}
	for _, u := range cs.Radios.Updated {
		for _, c := range u.Changes {
			rows = append(rows, []string{string(c.Type), "radio", u.New.Brand + " " + u.New.Model, c.Path, c.OldValue, c.NewValue})
		}
	}
	for _, r := range cs.Radios.Removed {
		rows = append(rows, []string{string(differ.ChangeTypeRemove), "radio", r.Brand + " " + r.Model, "", "", ""})
	}
	for _, b := range cs.Brands.Added {
		rows = append(rows, []string{string(differ.ChangeTypeAdd), "brand", b.Name, "", "", ""})
	}
	for _, u := range cs.Brands.Updated {
		for _, c := range u.Changes {
			rows = append(rows, []string{string(c.Type), "brand", u.Name, c.Path, c.OldValue, c.NewValue})
		}
	}
	for _, b := range cs.Brands.Removed {
		rows = append(rows, []string{string(differ.ChangeTypeRemove), "brand", b.Name, "", "", ""})
	}
	return Data{
		Title:   "Changes",
		Headers: []string{"Change", "Resource", "Name", "Field", "Old", "New"},
		Rows:    rows,
	}
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
