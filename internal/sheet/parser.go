package sheet

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Parser reads the first worksheet of an xlsx workbook into Rows.
type Parser struct{}

// NewParser builds a workbook parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse opens the workbook from raw bytes and converts every data row of the
// first sheet into a Row keyed by the header line. Rows whose cells are all
// blank are skipped. Any structural problem rejects the whole upload; there
// is no partial ingest.
func (p *Parser) Parse(data []byte) ([]*Row, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheets[0])
	}

	header := rows[0]
	result := make([]*Row, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		row := NewRow()
		empty := true
		for i, cell := range cells {
			if i >= len(header) {
				break
			}
			key := header[i]
			if strings.TrimSpace(key) == "" {
				continue
			}
			row.Set(key, cell)
			if strings.TrimSpace(cell) != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		result = append(result, row)
	}

	return result, nil
}
