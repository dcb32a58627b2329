package aero

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// ReadRows reads whitespace-separated "angle coefficient" pairs until EOF.
// Reading stops at the first token that is not a finite decimal number
// (nan, inf and hex floats included); a trailing unpaired value is dropped.
func ReadRows(r io.Reader) ([]Sample, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	rows := make([]Sample, 0, 64)
	var pending float64
	havePending := false

	for sc.Scan() {
		v, ok := parseDecimal(sc.Text())
		if !ok {
			break
		}
		if !havePending {
			pending, havePending = v, true
			continue
		}
		rows = append(rows, Sample{Angle: pending, Coefficient: v})
		havePending = false
	}
	if err := sc.Err(); err != nil {
		return rows, err
	}
	return rows, nil
}

func parseDecimal(tok string) (float64, bool) {
	if strings.ContainsAny(tok, "xX_") {
		return 0, false
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// LoadFile builds a table from a two-column data file.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DataUnavailableError{Path: path, Err: err}
	}
	defer f.Close()

	rows, err := ReadRows(f)
	if err != nil {
		return nil, &DataUnavailableError{Path: path, Err: err}
	}
	return NewTable(rows)
}
