// Package tabular turns uploaded CSV/Excel bytes into typed import rows for
// the two record shapes the dashboard accepts: the muhtar directory and the
// request backlog. Header labels are a byte-for-byte contract with the files
// field staff already have, so they stay in Turkish.
package tabular

import (
	"fmt"
	"regexp"
	"strings"

	"mtys/internal/normalize"
	"mtys/pkg/types"
)

// Required header labels, order-independent.
var (
	muhtarHeaders = []string{"İlçe Adı", "Mahalle Adı", "Muhtar Adı", "Muhtar Telefonu"}

	requestHeaders = []string{
		"Talebi Oluşturan",
		"İlçe Adı",
		"Mahalle Adı",
		"Muhtar Adı",
		"Muhtar Telefonu",
		"Talebin Geliş Şekli",
		"Talebin Geliş Tarihi",
		"Talep Konusu",
		"Açıklama",
		"Değerlendirme",
		"Değerlendirme Sonucu",
	}
)

// headerUpdatedBy is optional on request files.
const headerUpdatedBy = "Güncelleyen"

var embeddedNewline = regexp.MustCompile(`\s*\n\s*`)

// ParseMuhtarCSV parses a delimited muhtar directory file. The delimiter is
// sniffed from the header line (tab, semicolon or comma, most frequent wins).
func ParseMuhtarCSV(text string) ([]types.MuhtarInfo, error) {
	header, body := splitHeader(normalizeNewlines(text))
	if strings.TrimSpace(header) == "" {
		return []types.MuhtarInfo{}, nil
	}

	delim := sniffDelimiter(header)
	headers, rows := parseRows(header, body, delim)
	if err := requireHeaders(headers, muhtarHeaders, "muhtar"); err != nil {
		return nil, err
	}

	return mapMuhtarRows(rows), nil
}

// ParseRequestCSV parses a delimited request file. Request exports always use
// a semicolon, so no sniffing happens on this shape.
func ParseRequestCSV(text string, norm *normalize.Normalizer) ([]types.RequestInput, error) {
	header, body := splitHeader(normalizeNewlines(text))
	if strings.TrimSpace(header) == "" {
		return []types.RequestInput{}, nil
	}

	headers, rows := parseRows(header, body, ';')
	if err := requireHeaders(headers, requestHeaders, "talep"); err != nil {
		return nil, err
	}

	return mapRequestRows(rows, norm), nil
}

// normalizeNewlines folds CRLF and bare CR to LF and strips a UTF-8 BOM.
func normalizeNewlines(text string) string {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// splitHeader cuts the input at the first newline outside quotes.
func splitHeader(text string) (header, body string) {
	inQuote := false
	for i, r := range text {
		switch r {
		case '"':
			inQuote = !inQuote
		case '\n':
			if !inQuote {
				return text[:i], text[i+1:]
			}
		}
	}
	return text, ""
}

// sniffDelimiter counts candidate delimiters in the header line. Ties go to
// the earlier candidate; comma is the default when none occur.
func sniffDelimiter(header string) rune {
	best := ','
	bestCount := 0
	for _, candidate := range []rune{'\t', ';', ','} {
		if count := strings.Count(header, string(candidate)); count > bestCount {
			best = candidate
			bestCount = count
		}
	}
	return best
}

func parseRows(header, body string, delim rune) ([]string, []map[string]string) {
	headers := parseRecord(header, delim)
	for i, h := range headers {
		headers[i] = normalizeHeader(h)
	}

	rows := make([]map[string]string, 0)
	for _, record := range parseRecords(body, delim) {
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = record[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return headers, rows
}

func normalizeHeader(h string) string {
	h = strings.TrimSpace(h)
	h = strings.TrimPrefix(h, `"`)
	h = strings.TrimSuffix(h, `"`)
	return embeddedNewline.ReplaceAllString(h, " ")
}

// parseRecords walks the body in a single pass. Quoted fields may contain the
// delimiter, doubled quotes ("") and embedded newlines; blank lines are
// skipped rather than emitted as empty records.
func parseRecords(body string, delim rune) [][]string {
	var records [][]string
	var record []string
	var field strings.Builder
	inQuote := false

	flushField := func() {
		record = append(record, field.String())
		field.Reset()
	}
	flushRecord := func() {
		flushField()
		if !blankRecord(record) {
			records = append(records, record)
		}
		record = nil
	}

	runes := []rune(body)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '"':
			if inQuote {
				if i+1 < len(runes) && runes[i+1] == '"' {
					field.WriteRune('"')
					i++
				} else {
					inQuote = false
				}
			} else {
				inQuote = true
			}
		case r == delim && !inQuote:
			flushField()
		case r == '\n' && !inQuote:
			flushRecord()
		default:
			field.WriteRune(r)
		}
	}
	flushRecord()

	return records
}

// parseRecord parses a single line (the header) with the same quoting rules.
func parseRecord(line string, delim rune) []string {
	records := parseRecords(line, delim)
	if len(records) == 0 {
		return []string{}
	}
	return records[0]
}

func blankRecord(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func requireHeaders(headers, required []string, label string) error {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}

	var missing []string
	for _, h := range required {
		if !present[h] {
			missing = append(missing, h)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing %s headers: %s", label, strings.Join(missing, ", "))
	}
	return nil
}

func mapMuhtarRows(rows []map[string]string) []types.MuhtarInfo {
	out := make([]types.MuhtarInfo, 0, len(rows))
	for _, row := range rows {
		out = append(out, types.MuhtarInfo{
			IlceAdi:        row["İlçe Adı"],
			MahalleAdi:     row["Mahalle Adı"],
			MuhtarAdi:      row["Muhtar Adı"],
			MuhtarTelefonu: row["Muhtar Telefonu"],
		})
	}
	return out
}

// mapRequestRows resolves each raw row into a RequestInput. Dates and topics
// go through the normalizer here so every downstream consumer sees canonical
// values.
func mapRequestRows(rows []map[string]string, norm *normalize.Normalizer) []types.RequestInput {
	out := make([]types.RequestInput, 0, len(rows))
	for _, row := range rows {
		out = append(out, types.RequestInput{
			TalebiOlusturan:     row["Talebi Oluşturan"],
			IlceAdi:             row["İlçe Adı"],
			MahalleAdi:          row["Mahalle Adı"],
			MuhtarAdi:           row["Muhtar Adı"],
			MuhtarTelefonu:      row["Muhtar Telefonu"],
			TalebinGelisSekli:   row["Talebin Geliş Şekli"],
			TalepTarihi:         norm.Date(row["Talebin Geliş Tarihi"]),
			TalepKonusu:         norm.Topic(row["Talep Konusu"]),
			Aciklama:            row["Açıklama"],
			Degerlendirme:       row["Değerlendirme"],
			DegerlendirmeSonucu: row["Değerlendirme Sonucu"],
			Guncelleyen:         row[headerUpdatedBy],
		})
	}
	return out
}
