package tabular

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"mtys/internal/normalize"
	"mtys/pkg/types"
)

// ParseMuhtarExcel reads the first sheet of an xlsx/xls workbook as a muhtar
// directory: row 0 holds the headers, remaining rows map positionally.
func ParseMuhtarExcel(data []byte) ([]types.MuhtarInfo, error) {
	headers, rows, err := excelRows(data)
	if err != nil {
		return nil, err
	}
	if headers == nil {
		return []types.MuhtarInfo{}, nil
	}
	if err := requireHeaders(headers, muhtarHeaders, "muhtar"); err != nil {
		return nil, err
	}
	return mapMuhtarRows(rows), nil
}

// ParseRequestExcel reads the first sheet of an xlsx/xls workbook as a
// request backlog, with the same header contract as the delimited path.
func ParseRequestExcel(data []byte, norm *normalize.Normalizer) ([]types.RequestInput, error) {
	headers, rows, err := excelRows(data)
	if err != nil {
		return nil, err
	}
	if headers == nil {
		return []types.RequestInput{}, nil
	}
	if err := requireHeaders(headers, requestHeaders, "talep"); err != nil {
		return nil, err
	}
	return mapRequestRows(rows, norm), nil
}

// excelRows returns normalized headers and positional row maps for the first
// sheet only. Cells are read raw so date serials reach the normalizer intact
// instead of being pre-formatted by the cell style.
func excelRows(data []byte) ([]string, []map[string]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, nil
	}

	raw, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(raw) == 0 {
		return nil, nil, nil
	}

	headers := make([]string, len(raw[0]))
	for i, h := range raw[0] {
		headers[i] = normalizeHeader(h)
	}

	rows := make([]map[string]string, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		if blankRecord(cells) {
			continue
		}
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(cells) {
				row[h] = cells[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}
