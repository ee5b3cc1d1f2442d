package dataset

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// ConvertCSV reads a raw export in CSV form and writes it as a JSON array of
// record objects keyed by the header row. The delimiter is detected from the
// header line: semicolon when it outnumbers commas, comma otherwise.
func ConvertCSV(r io.Reader, w io.Writer) (int, error) {
	buffered := bufio.NewReader(r)
	header, err := buffered.ReadString('\n')
	if err != nil && err != io.EOF {
		return 0, err
	}
	if strings.TrimSpace(header) == "" {
		return 0, ErrEmptyInput
	}

	delimiter := detectDelimiter(header)
	reader := csv.NewReader(io.MultiReader(strings.NewReader(header), buffered))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("reading csv header: %w", err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	records := make([]map[string]string, 0, 1024)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("reading csv row: %w", err)
		}
		record := make(map[string]string, len(headers))
		for i, value := range row {
			if i >= len(headers) {
				break
			}
			record[headers[i]] = strings.TrimSpace(value)
		}
		records = append(records, record)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return 0, err
	}
	return len(records), nil
}

func detectDelimiter(header string) rune {
	if strings.Count(header, ";") > strings.Count(header, ",") {
		return ';'
	}
	return ','
}
