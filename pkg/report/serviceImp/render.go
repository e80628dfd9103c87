package serviceImp

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"fieldwatch/entities"
)

type reportData struct {
	Field    *entities.Field
	Start    time.Time
	End      time.Time
	Readings []entities.SensorReading
	Alerts   []entities.Alert
}

var readingHeader = []string{"timestamp", "sensor_id", "sensor_type", "value", "unit"}

func readingRow(m entities.SensorReading) []string {
	return []string{
		m.Timestamp.UTC().Format(time.RFC3339),
		m.SensorID,
		string(m.SensorType),
		strconv.FormatFloat(m.Value, 'f', -1, 64),
		m.Unit,
	}
}

func renderCSV(d reportData) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(readingHeader); err != nil {
		return nil, err
	}
	for _, m := range d.Readings {
		if err := w.Write(readingRow(m)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

type typeStat struct {
	Type     entities.SensorType
	Count    int
	Min, Max float64
	Sum      float64
}

// summarize aggregates readings per sensor type, ordered by type name.
func summarize(rs []entities.SensorReading) []typeStat {
	by := map[entities.SensorType]*typeStat{}
	for _, m := range rs {
		st, ok := by[m.SensorType]
		if !ok {
			st = &typeStat{Type: m.SensorType, Min: m.Value, Max: m.Value}
			by[m.SensorType] = st
		}
		st.Count++
		st.Sum += m.Value
		st.Min = min(st.Min, m.Value)
		st.Max = max(st.Max, m.Value)
	}
	out := make([]typeStat, 0, len(by))
	for _, st := range by {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

const (
	sheetSummary  = "Summary"
	sheetReadings = "Readings"
	sheetAlerts   = "Alerts"
)

func renderXLSX(d reportData) ([]byte, error) {
	x := excelize.NewFile()
	defer x.Close()

	if err := x.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, err
	}
	for _, s := range []string{sheetReadings, sheetAlerts} {
		if _, err := x.NewSheet(s); err != nil {
			return nil, err
		}
	}

	put := func(sheet string, row int, vals ...any) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		return x.SetSheetRow(sheet, cell, &vals)
	}

	summary := [][]any{
		{"Field", d.Field.Name},
		{"Crop", d.Field.CropType},
		{"Area (ha)", d.Field.AreaHa},
		{"From", d.Start.UTC().Format(time.RFC3339)},
		{"To", d.End.UTC().Format(time.RFC3339)},
		{"Readings", len(d.Readings)},
		{"Alerts", len(d.Alerts)},
		{},
		{"sensor_type", "count", "min", "max", "mean"},
	}
	for _, st := range summarize(d.Readings) {
		summary = append(summary, []any{string(st.Type), st.Count, st.Min, st.Max, st.Sum / float64(st.Count)})
	}
	for i, r := range summary {
		if err := put(sheetSummary, i+1, r...); err != nil {
			return nil, err
		}
	}

	hdr := make([]any, len(readingHeader))
	for i, h := range readingHeader {
		hdr[i] = h
	}
	if err := put(sheetReadings, 1, hdr...); err != nil {
		return nil, err
	}
	for i, m := range d.Readings {
		if err := put(sheetReadings, i+2,
			m.Timestamp.UTC().Format(time.RFC3339), m.SensorID, string(m.SensorType), m.Value, m.Unit); err != nil {
			return nil, err
		}
	}

	if err := put(sheetAlerts, 1, "created_at", "severity", "type", "title", "acknowledged"); err != nil {
		return nil, err
	}
	for i, a := range d.Alerts {
		if err := put(sheetAlerts, i+2,
			a.CreatedAt.UTC().Format(time.RFC3339), string(a.Severity), string(a.Type), a.Title, a.AcknowledgedAt != nil); err != nil {
			return nil, err
		}
	}

	buf, err := x.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
