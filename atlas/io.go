package atlas

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// Table is a header row plus data rows read from a CSV, TSV or XLSX file.
type Table struct {
	Header []string
	Rows   [][]string
}

// ColumnIndex returns the position of the named column, matched case-insensitively, or -1.
func (t Table) ColumnIndex(name string) int {
	return findColumn(t.Header, []string{strings.TrimSpace(name)})
}

// Column returns every value of the named column. Short rows read as empty cells.
func (t Table) Column(name string) ([]string, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, eris.Wrapf(ErrMissingColumn, "column %q", name)
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			out[i] = row[idx]
		}
	}
	return out, nil
}

// ReadTable reads a batch input file. Only .csv, .tsv and .xlsx are accepted.
func ReadTable(path string) (Table, error) {
	var (
		records [][]string
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		records, err = readDelimited(path, ',')
	case ".tsv":
		records, err = readDelimited(path, '\t')
	case ".xlsx":
		records, err = readXLSX(path)
	default:
		return Table{}, eris.Wrapf(ErrUnsupportedBatchFileFormat, "%s", filepath.Base(path))
	}
	if err != nil {
		return Table{}, err
	}
	return tableFromRecords(path, records)
}

// LoadReferenceTable reads the class-of-business table. Hiscox_COB and the four flag columns are
// required; missing optional text columns read as empty strings.
func LoadReferenceTable(path string) ([]CandidateRow, error) {
	t, err := readReference(path)
	if err != nil {
		return nil, err
	}
	cands := DefaultColumnCandidates()
	cobCol := findColumn(t.Header, cands.COB)
	if cobCol < 0 {
		return nil, eris.Wrapf(ErrMissingColumn, "%s: Hiscox_COB", filepath.Base(path))
	}
	var flagCols [len(LOBs)]int
	for _, l := range LOBs {
		flagCols[l] = findColumn(t.Header, []string{l.String()})
		if flagCols[l] < 0 {
			return nil, eris.Wrapf(ErrMissingColumn, "%s: %s", filepath.Base(path), l)
		}
	}
	codeCol := findColumn(t.Header, cands.IndustryCode)
	descCol := findColumn(t.Header, cands.NAICSDescription)
	titleCol := findColumn(t.Header, cands.NAICSTitle)

	rows := make([]CandidateRow, 0, len(t.Rows))
	for _, rec := range t.Rows {
		row := CandidateRow{
			COB:              cellAt(rec, cobCol),
			IndustryCode:     cellAt(rec, codeCol),
			NAICSDescription: cellAt(rec, descCol),
			NAICSTitle:       cellAt(rec, titleCol),
		}
		for _, l := range LOBs {
			row.Flags[l] = cellAt(rec, flagCols[l])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// LoadPartnerTerms reads the Partner_Description column. An empty path yields no terms.
func LoadPartnerTerms(path string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	t, err := readReference(path)
	if err != nil {
		return nil, err
	}
	values, err := t.Column(DefaultColumnCandidates().Partner[0])
	if err != nil {
		return nil, eris.Wrap(err, filepath.Base(path))
	}
	terms := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.ToLower(cleanCell(v)); v != "" {
			terms = append(terms, v)
		}
	}
	return terms, nil
}

// WriteBatchCSV writes the batch results with a header row.
func WriteBatchCSV(w io.Writer, rows []BatchResultRow) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(BatchHeader); err != nil {
		return eris.Wrap(err, "write header")
	}
	for i, row := range rows {
		if err := writer.Write(row.Record()); err != nil {
			return eris.Wrapf(err, "write row %d", i+1)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return eris.Wrap(err, "flush result")
	}
	return nil
}

// WriteBatchFile writes the batch results to path, replacing any existing file.
func WriteBatchFile(path string, rows []BatchResultRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrap(err, "create output dir")
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return eris.Wrap(err, "create result file")
	}
	if err := WriteBatchCSV(f, rows); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return eris.Wrap(err, "close result file")
	}
	return eris.Wrap(os.Rename(tmp, path), "rename result file")
}

// readReference reads reference-side tables; any extension other than .xlsx/.tsv is read as CSV.
func readReference(path string) (Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".tsv":
		return ReadTable(path)
	}
	records, err := readDelimited(path, ',')
	if err != nil {
		return Table{}, err
	}
	return tableFromRecords(path, records)
}

func tableFromRecords(path string, records [][]string) (Table, error) {
	if len(records) == 0 {
		return Table{}, eris.Errorf("%s is empty", filepath.Base(path))
	}
	t := Table{Header: make([]string, len(records[0]))}
	for i, cell := range records[0] {
		t.Header[i] = cleanCell(cell)
	}
	for _, row := range records[1:] {
		if blankRow(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func readDelimited(path string, comma rune) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open %s", filepath.Base(path))
	}
	defer f.Close()
	reader := csv.NewReader(f)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrapf(err, "read %s", filepath.Base(path))
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "xlsx: open %s", filepath.Base(path))
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("xlsx: %s has no sheets", filepath.Base(path))
	}
	sheet := f.Sheets[0]
	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			if cell != nil {
				cells[j] = cell.String()
			}
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return cleanCell(row[idx])
}

func cleanCell(v string) string {
	v = strings.TrimPrefix(v, "\ufeff")
	return strings.TrimSpace(v)
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
