package table_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ziggy/pkg/domain/model"
	"github.com/secmon-lab/ziggy/pkg/utils/table"
)

func TestParse(t *testing.T) {
	t.Run("Header row keys every record", func(t *testing.T) {
		records, err := table.Parse([]byte("Team,Email 1,Email 2\nA,a1@x.com,\nB,b1@x.com,b2@x.com\n"))
		gt.NoError(t, err).Required()
		gt.A(t, records).Length(2)
		gt.Equal(t, model.Record{"Team": "A", "Email 1": "a1@x.com", "Email 2": ""}, records[0])
		gt.Equal(t, "b2@x.com", records[1]["Email 2"])
	})

	t.Run("Strips UTF-8 BOM", func(t *testing.T) {
		records, err := table.Parse([]byte("\xEF\xBB\xBFAFF,NEG\nA,B\n"))
		gt.NoError(t, err).Required()
		gt.True(t, records[0].Has("AFF"))
	})

	t.Run("Quoted fields and blank lines", func(t *testing.T) {
		records, err := table.Parse([]byte("AFF,NEG\n\n\"Smith, Jones\",B\n"))
		gt.NoError(t, err).Required()
		gt.A(t, records).Length(1)
		gt.Equal(t, "Smith, Jones", records[0]["AFF"])
	})

	t.Run("Header names are kept verbatim", func(t *testing.T) {
		records, err := table.Parse([]byte("Team ,Email 1,Email 2\nA,a1@x.com,\n"))
		gt.NoError(t, err).Required()
		gt.True(t, records[0].Has("Team "))
		gt.False(t, records[0].Has("Team"))

		_, err = model.DefaultSchema().Teams(records)
		gt.True(t, errors.Is(err, model.ErrSchema))
	})

	t.Run("Header only", func(t *testing.T) {
		records, err := table.Parse([]byte("AFF,NEG\n"))
		gt.NoError(t, err)
		gt.A(t, records).Length(0)
	})

	t.Run("Empty input", func(t *testing.T) {
		records, err := table.Parse(nil)
		gt.NoError(t, err)
		gt.A(t, records).Length(0)
	})

	t.Run("Ragged rows are rejected", func(t *testing.T) {
		_, err := table.Parse([]byte("AFF,NEG\nA\n"))
		gt.Error(t, err)
		gt.True(t, errors.Is(err, table.ErrInvalidCSV))
	})

	t.Run("Binary data is rejected", func(t *testing.T) {
		png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01")
		_, err := table.Parse(png)
		gt.Error(t, err)
		gt.True(t, errors.Is(err, table.ErrInvalidCSV))
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Round.csv")
	gt.NoError(t, os.WriteFile(path, []byte("AFF,NEG\nA,B\nC,D\n"), 0o600))

	records, err := table.Load(path)
	gt.NoError(t, err).Required()
	gt.A(t, records).Length(2)
	gt.Equal(t, "D", records[1]["NEG"])

	_, err = table.Load(filepath.Join(dir, "missing.csv"))
	gt.Error(t, err)
}

func TestRead(t *testing.T) {
	records, err := table.Read(strings.NewReader("Team,Email 1,Email 2\nA,a@x.com,\n"))
	gt.NoError(t, err).Required()
	gt.A(t, records).Length(1)
}
