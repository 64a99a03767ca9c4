package repository

import "errors"

// Sentinel kinds for workbook loading.
var (
	ErrOpenWorkbook  = errors.New("open workbook failed")
	ErrSheetNotFound = errors.New("sheet not found")
	ErrEmptySheet    = errors.New("sheet has no header row")
	ErrMissingColumn = errors.New("missing column")
	ErrInvalidRow    = errors.New("invalid row")
)
