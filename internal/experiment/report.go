package experiment

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Supported report formats.
const (
	FormatTSV  = "tsv"
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// ErrUnknownFormat is returned by Write for unsupported formats.
var ErrUnknownFormat = fmt.Errorf("report format must be one of %s, %s, %s", FormatTSV, FormatCSV, FormatJSON)

// Write renders results in the named format.
func Write(w io.Writer, format string, results []Result) error {
	switch strings.ToLower(format) {
	case FormatTSV, "":
		return WriteTSV(w, results)
	case FormatCSV:
		return WriteCSV(w, results)
	case FormatJSON:
		return WriteJSON(w, results)
	default:
		return fmt.Errorf("%w, got %q", ErrUnknownFormat, format)
	}
}

// WriteTSV prints "instance\tbins\tbest\tseconds" per result. Failed runs show "-" for bins.
func WriteTSV(w io.Writer, results []Result) error {
	for _, r := range results {
		bins := "-"
		if !r.Failed() {
			bins = strconv.Itoa(r.BinsUsed)
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\n", r.Instance, bins, r.BestKnown, r.Elapsed.Seconds()); err != nil {
			return err
		}
	}
	return nil
}

// WriteCSV writes a header row followed by one row per result.
func WriteCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"instance", "heuristic", "items", "bins", "best_known", "gap", "elapsed_ms", "error"}); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			r.Instance,
			r.Heuristic,
			strconv.Itoa(r.Items),
			strconv.Itoa(r.BinsUsed),
			strconv.Itoa(r.BestKnown),
			strconv.Itoa(r.Gap()),
			strconv.FormatFloat(float64(r.Elapsed.Microseconds())/1000, 'f', 3, 64),
			r.Err,
		}
		if r.Failed() {
			row[3], row[5] = "", ""
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the results as an indented JSON array.
func WriteJSON(w io.Writer, results []Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if results == nil {
		results = []Result{}
	}
	return enc.Encode(results)
}
