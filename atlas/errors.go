package atlas

import "github.com/rotisserie/eris"

var (
	// ErrEmptyReferenceStore is returned when a match is attempted with no candidates loaded.
	ErrEmptyReferenceStore = eris.New("reference store is empty")
	// ErrUnsupportedBatchFileFormat is returned for batch files that are not CSV, TSV or XLSX.
	ErrUnsupportedBatchFileFormat = eris.New("unsupported batch file format")
	// ErrNoTextColumnSelected is returned when a batch table offers no text column to match on.
	ErrNoTextColumnSelected = eris.New("no text column selected")
	// ErrMissingColumn is returned when the reference table lacks a required column.
	ErrMissingColumn = eris.New("required column missing")
)
