package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/bacembenhfayehd/manarja-sub001/internal/encoding"
)

// Row is one parsed line of a tracker export, before it is owned by a
// user and pushed through entry validation.
type Row struct {
	Start time.Time
	// End is always set after a successful Parse: exports carry
	// completed intervals only, a running timer cannot be imported.
	End         *time.Time
	Description string
	Billable    bool
	// Hours, when the export carries an explicit duration column, is
	// used verbatim as the manual-override path.
	Hours *decimal.Decimal
}

// Service parses CSV exports from external trackers. The expected
// header is "start,end,description,billable[,hours]"; start/end accept
// RFC 3339 or "2006-01-02 15:04:05". Every row needs an end.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02 15:04"}

func (s *Service) Parse(r io.Reader) ([]Row, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	cols, err := headerIndex(records[0])
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(records)-1)

	for i, record := range records[1:] {
		row, err := parseRecord(cols, record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// colIndex maps lower-cased column names to their position.
type colIndex map[string]int

func headerIndex(header []string) (colIndex, error) {
	cols := make(colIndex, len(header))

	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		if name != "" {
			cols[name] = i
		}
	}

	for _, required := range []string{"start", "end", "description"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	return cols, nil
}

func parseRecord(cols colIndex, record []string) (Row, error) {
	field := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}

		return strings.TrimSpace(record[idx])
	}

	start, err := parseTime(field("start"))
	if err != nil {
		return Row{}, fmt.Errorf("start: %w", err)
	}

	row := Row{
		Start:       start,
		Description: field("description"),
	}

	end, err := parseTime(field("end"))
	if err != nil {
		return Row{}, fmt.Errorf("end: %w", err)
	}

	row.End = &end

	if raw := field("billable"); raw != "" {
		billable, err := strconv.ParseBool(raw)
		if err != nil {
			return Row{}, fmt.Errorf("billable: %w", err)
		}

		row.Billable = billable
	}

	if raw := field("hours"); raw != "" {
		hours, err := decimal.NewFromString(raw)
		if err != nil {
			return Row{}, fmt.Errorf("hours: %w", err)
		}

		row.Hours = &hours
	}

	return row, nil
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unparsable timestamp %q", s)
}
