// Package ingest reads and writes wide-format relaxation data: one file with
// a temperature, time and modulus column per curve, side by side.
package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cwbudde/algo-relax/relax/curve"
)

// ErrNoCurves reports a file in which no temperature/time/modulus column
// group could be found.
var ErrNoCurves = errors.New("ingest: no curves found")

// pairWindow bounds how far from a temperature column its time and modulus
// columns may sit.
const pairWindow = 5

var (
	tempPattern    = regexp.MustCompile(`(?i)temp|deg|°c`)
	timePattern    = regexp.MustCompile(`(?i)time|sec|s\b`)
	modulusPattern = regexp.MustCompile(`(?i)modulus|storage|g'|g_prime|mpa|pa|stress`)
	numberPattern  = regexp.MustCompile(`[-+]?\d*\.\d+|\d+`)
)

type columnKind int

const (
	columnOther columnKind = iota
	columnTemp
	columnTime
	columnModulus
)

func classify(header string) columnKind {
	s := strings.ToLower(header)
	switch {
	case tempPattern.MatchString(s):
		return columnTemp
	case modulusPattern.MatchString(s):
		return columnModulus
	case timePattern.MatchString(s):
		return columnTime
	default:
		return columnOther
	}
}

// ParseFile opens path and parses it with ParseWide.
func ParseFile(path string) ([]curve.Raw, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	curves, err := ParseWide(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return curves, nil
}

// ParseWide parses a delimited wide-format table. The delimiter (comma,
// semicolon or tab) is sniffed from the header line and non-UTF-8 input is
// read as Latin-1. Each temperature column is paired with the nearest time
// and modulus columns within five positions; rows with an empty cell in the
// group are skipped, the temperature comes from the first remaining row and
// non-numeric time or modulus cells are dropped. Curves are returned sorted
// by temperature; a repeated temperature keeps the later curve.
func ParseWide(r io.Reader) ([]curve.Raw, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		data = latin1ToUTF8(data)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = sniffDelimiter(data)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	if len(records) < 2 {
		return nil, ErrNoCurves
	}

	header := records[0]
	kinds := make([]columnKind, len(header))
	for i, h := range header {
		kinds[i] = classify(h)
	}

	byTemp := map[float64]curve.Raw{}
	for i, kind := range kinds {
		if kind != columnTemp {
			continue
		}
		timeCol := nearest(kinds, i, columnTime)
		modCol := nearest(kinds, i, columnModulus)
		if timeCol < 0 || modCol < 0 {
			continue
		}
		c, ok := extract(records[1:], i, timeCol, modCol)
		if ok {
			byTemp[c.Temperature] = c
		}
	}
	if len(byTemp) == 0 {
		return nil, fmt.Errorf("%w: columns %q", ErrNoCurves, header)
	}

	out := make([]curve.Raw, 0, len(byTemp))
	for _, c := range byTemp {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Temperature < out[j].Temperature })
	return out, nil
}

// nearest returns the closest column of the given kind in [i-5, i+5),
// preferring the lower index on ties, or -1.
func nearest(kinds []columnKind, i int, want columnKind) int {
	best := -1
	for idx := max(0, i-pairWindow); idx < min(len(kinds), i+pairWindow); idx++ {
		if idx == i || kinds[idx] != want {
			continue
		}
		if best < 0 || abs(idx-i) < abs(best-i) {
			best = idx
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func extract(rows [][]string, tempCol, timeCol, modCol int) (curve.Raw, bool) {
	var (
		c        curve.Raw
		haveTemp bool
	)
	for _, row := range rows {
		tempCell, ok1 := cell(row, tempCol)
		timeCell, ok2 := cell(row, timeCol)
		modCell, ok3 := cell(row, modCol)
		if !ok1 || !ok2 || !ok3 {
			continue
		}
		if !haveTemp {
			temp, ok := parseTemperature(tempCell)
			if !ok {
				return curve.Raw{}, false
			}
			c.Temperature = temp
			haveTemp = true
		}
		t, err1 := strconv.ParseFloat(timeCell, 64)
		g, err2 := strconv.ParseFloat(modCell, 64)
		if err1 != nil || err2 != nil {
			continue
		}
		c.Time = append(c.Time, t)
		c.Modulus = append(c.Modulus, g)
	}
	return c, haveTemp && len(c.Time) > 0
}

// parseTemperature reads a plain number, or else the first number embedded
// in text such as "120 °C".
func parseTemperature(s string) (float64, bool) {
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, true
	}
	num := numberPattern.FindString(s)
	if num == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(num, 64)
	return v, err == nil
}

func cell(row []string, i int) (string, bool) {
	if i >= len(row) {
		return "", false
	}
	v := strings.TrimSpace(row[i])
	return v, v != ""
}

func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	best, bestCount := ',', 0
	for _, d := range []rune{',', ';', '\t'} {
		if n := bytes.Count(line, []byte(string(d))); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

func latin1ToUTF8(b []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(len(b) * 2)
	for _, c := range b {
		buf.WriteRune(rune(c))
	}
	return buf.Bytes()
}

// WriteWide writes curves in the layout ParseWide reads: a time,
// temperature and modulus column per curve. Shorter curves leave empty
// cells.
func WriteWide(w io.Writer, curves []curve.Raw) error {
	cw := csv.NewWriter(w)
	header := make([]string, 0, 3*len(curves))
	rows := 0
	for _, c := range curves {
		label := strconv.FormatFloat(c.Temperature, 'g', -1, 64)
		header = append(header, "Time_"+label+" (s)", "Temperature_"+label, "Modulus_"+label+" (Pa)")
		rows = max(rows, len(c.Time))
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	record := make([]string, len(header))
	for r := 0; r < rows; r++ {
		for k, c := range curves {
			if r >= len(c.Time) {
				record[3*k], record[3*k+1], record[3*k+2] = "", "", ""
				continue
			}
			record[3*k] = strconv.FormatFloat(c.Time[r], 'g', -1, 64)
			record[3*k+1] = strconv.FormatFloat(c.Temperature, 'g', -1, 64)
			record[3*k+2] = strconv.FormatFloat(c.Modulus[r], 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
