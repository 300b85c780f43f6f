// FILE: cmd/volarix/csv.go
// CSV bar loading for the replay driver and the demo live BarSource.
// Grounded in the teacher's backtest.go loadCSV/parseTimeFlexible: a
// header-driven, case-insensitive reader tolerant of RFC3339 or UNIX
// timestamps.
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ali1395/volarix4-sub000/internal/bar"
)

// loadBarCSV reads a generic OHLCV CSV with headers time|timestamp,
// open, high, low, close, volume (volume optional).
func loadBarCSV(path string) ([]bar.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var out []bar.Bar
	var headers []string
	rowIdx := 0

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if rowIdx == 0 {
			headers = rec
			rowIdx++
			continue
		}
		row := map[string]string{}
		for j, h := range headers {
			k := strings.ToLower(strings.TrimSpace(h))
			if j < len(rec) {
				row[k] = strings.TrimSpace(rec[j])
			}
		}
		ts := firstNonEmpty(row, "time", "timestamp")
		op := firstNonEmpty(row, "open")
		cp := firstNonEmpty(row, "close")
		if ts == "" || op == "" || cp == "" {
			continue
		}
		tt, err := parseBarTime(ts)
		if err != nil {
			continue
		}
		o, _ := strconv.ParseFloat(op, 64)
		h, _ := strconv.ParseFloat(firstNonEmpty(row, "high"), 64)
		l, _ := strconv.ParseFloat(firstNonEmpty(row, "low"), 64)
		c, _ := strconv.ParseFloat(cp, 64)
		v, _ := strconv.ParseUint(firstNonEmpty(row, "volume", "vol"), 10, 64)
		out = append(out, bar.Bar{Time: tt, Open: o, High: h, Low: l, Close: c, Volume: v})
		rowIdx++
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out, nil
}

func parseBarTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(sec, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("bad time: %s", s)
}

func firstNonEmpty(m map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := m[k]; v != "" {
			return v
		}
	}
	return ""
}
