package dataset

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"realty/internal/utils"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV reads a delimited table whose first record is the header.
// A leading UTF-8 byte order mark is dropped.
func ReadCSV(r io.Reader, comma rune) (*Frame, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	if comma != 0 {
		cr.Comma = comma
	}

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return NewFrame(nil, nil), nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, rec)
	}
	return NewFrame(header, rows), nil
}

// splitTable is the pandas "split" orientation
type splitTable struct {
	Columns []string `json:"columns"`
	Data    [][]any  `json:"data"`
}

// ReadJSON reads either an array of records or a {"columns", "data"}
// object. Record keys are unioned and sorted to form the header.
func ReadJSON(data []byte) (*Frame, error) {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty JSON table")
	}

	if trimmed[0] == '{' {
		var split splitTable
		if err := utils.ParseLenientJSON(trimmed, &split); err != nil {
			return nil, err
		}
		if len(split.Columns) == 0 {
			return nil, fmt.Errorf("JSON object has no columns")
		}
		rows := make([][]string, 0, len(split.Data))
		for _, rec := range split.Data {
			row := make([]string, len(rec))
			for i, v := range rec {
				row[i] = Cell(v)
			}
			rows = append(rows, row)
		}
		return NewFrame(split.Columns, rows), nil
	}

	var records []map[string]any
	if err := utils.ParseLenientJSON(trimmed, &records); err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var columns []string
	for _, rec := range records {
		for k := range rec {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}
	sort.Strings(columns)

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, len(columns))
		for i, c := range columns {
			row[i] = Cell(rec[c])
		}
		rows = append(rows, row)
	}
	return NewFrame(columns, rows), nil
}

// Cell renders a decoded value as a table cell. nil becomes blank.
func Cell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
