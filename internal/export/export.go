// Package export writes road records as a semicolon separated table or as
// JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/natevvv/osm-road-export/pkg/road"
)

type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
)

// Delimiter separates the fields of a CSV row.
const Delimiter = ';'

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case CSV, JSON:
		return Format(s), nil
	default:
		return "", errors.Newf("unknown output format %q", s)
	}
}

// ContentType is the media type of the format.
func (f Format) ContentType() string {
	if f == JSON {
		return "application/json"
	}
	return "text/csv; charset=utf-8"
}

// WriteCSV writes a header row followed by one row per record. Fields
// containing the delimiter, a quote or a line break are quoted.
func WriteCSV(w io.Writer, records []road.Record) error {
	writer := csv.NewWriter(w)
	writer.Comma = Delimiter

	if err := writer.Write(road.Header); err != nil {
		return errors.Wrap(err, "write header")
	}
	for _, r := range records {
		if err := writer.Write(r.Row()); err != nil {
			return errors.Wrapf(err, "write record %q", r.RoadName)
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "flush csv")
}

func WriteJSON(w io.Writer, records []road.Record) error {
	if records == nil {
		records = []road.Record{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(records), "encode json")
}

func Write(w io.Writer, format Format, records []road.Record) error {
	switch format {
	case JSON:
		return WriteJSON(w, records)
	case CSV:
		return WriteCSV(w, records)
	default:
		return errors.Newf("unknown output format %q", format)
	}
}

// ExportFile replaces filename with the encoded records. The data goes to a
// temporary file in the same directory first, so filename is either fully
// rewritten or left untouched.
func ExportFile(filename string, format Format, records []road.Record) (err error) {
	file, err := os.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+".*")
	if err != nil {
		return errors.Wrapf(err, "create %s", filename)
	}
	defer func() {
		if err != nil {
			file.Close()
			os.Remove(file.Name())
		}
	}()

	if err := Write(file, format, records); err != nil {
		return errors.Wrapf(err, "write %s", filename)
	}
	if err := file.Chmod(0o644); err != nil {
		return errors.Wrapf(err, "chmod %s", filename)
	}
	if err := file.Close(); err != nil {
		return errors.Wrapf(err, "close %s", filename)
	}
	return errors.Wrapf(os.Rename(file.Name(), filename), "rename to %s", filename)
}
