package ingest

import (
	"bufio"
	"io"
	"strings"

	"github.com/hamcat/rigmap/pkg/errors"
	"github.com/hamcat/rigmap/pkg/types"
)

// ReadMarkdown reads radios from a markdown pipe table with the same
// headers as the catalog CSV. Lines outside the table and separator lines
// are skipped. The first table row is the header.
func ReadMarkdown(r io.Reader, name string) (*Batch, error) {
	batch := NewBatch(name)
	var layout *radioLayout

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(text, "|") || isSeparatorRow(text) {
			continue
		}
		cells := splitTableRow(text)

		if layout == nil {
			l, err := newRadioLayout(types.MarkdownID, name, cells)
			if err != nil {
				return nil, err
			}
			layout = l
			continue
		}
		if blankRow(cells) {
			continue
		}

		batch.Report.Rows++
		radio, err := layout.radio(cells, line)
		if err != nil {
			batch.Report.Record(err)
			continue
		}
		batch.Radios = append(batch.Radios, radio)
		batch.Report.Accepted++
	}
	if err := sc.Err(); err != nil {
		return nil, errors.WrapIO("read", name, err)
	}
	if layout == nil {
		return nil, &errors.ParseError{Format: "markdown", File: name, Message: "no table found"}
	}
	return batch, nil
}

// splitTableRow splits "| a | b |" into trimmed cells. Empty cells keep
// their position.
func splitTableRow(line string) []string {
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	cells := strings.Split(line, "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

// isSeparatorRow reports whether a row is the "|---|:---:|" line under the header.
func isSeparatorRow(line string) bool {
	return strings.Contains(line, "---") &&
		strings.Trim(line, "|-: \t") == ""
}
