package table

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"

	"github.com/gabriel-vasile/mimetype"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ziggy/pkg/domain/model"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrInvalidCSV is returned when a file cannot be read as header-row CSV
var ErrInvalidCSV = goerr.New("I had trouble parsing the file. It might not be a valid CSV.")

// Load reads a CSV file into records keyed by the header row
func Load(path string) ([]model.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read file", goerr.V("path", path))
	}

	records, err := Parse(data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load table", goerr.V("path", path))
	}
	return records, nil
}

// Read reads CSV data from r into records keyed by the header row
func Read(r io.Reader) ([]model.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read table data")
	}
	return Parse(data)
}

// Parse converts CSV data into records. The first row is the header and
// every data row must have the same number of fields. Header names are
// kept byte for byte so column checks stay exact. Empty lines are
// skipped. An empty input yields no records.
func Parse(data []byte) ([]model.Record, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	if !isText(data) {
		return nil, goerr.Wrap(ErrInvalidCSV, "file is not text",
			goerr.V("mime", mimetype.Detect(data).String()))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = 0

	header, err := reader.Read()
	if err == io.EOF {
		return []model.Record{}, nil
	}
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidCSV, err.Error())
	}

	records := []model.Record{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(ErrInvalidCSV, err.Error(),
				goerr.V("row", len(records)+1))
		}

		record := make(model.Record, len(header))
		for i, col := range header {
			record[col] = row[i]
		}
		records = append(records, record)
	}

	return records, nil
}

func isText(data []byte) bool {
	for mt := mimetype.Detect(data); mt != nil; mt = mt.Parent() {
		if mt.Is("text/plain") {
			return true
		}
	}
	return false
}
