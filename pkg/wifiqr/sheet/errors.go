package sheet

import "errors"

// ErrEmptyPath indicates no workbook path was provided.
var ErrEmptyPath = errors.New("no file path provided")

// ErrFileNotFound indicates the workbook file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the file is not a workbook this resolver can
// parse (wrong extension or corrupt contents).
var ErrInvalidFormat = errors.New("invalid workbook format")

// ErrNoWorkbook indicates an operation that needs a loaded workbook ran
// before Load succeeded.
var ErrNoWorkbook = errors.New("no workbook loaded")

// ErrNoActiveSheet indicates an operation that needs a selected sheet ran
// before SelectSheet succeeded.
var ErrNoActiveSheet = errors.New("no sheet selected")

// ErrSheetNotFound indicates the named sheet is not in the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrEmptySheet indicates the selected sheet has no data rows below the
// header row.
var ErrEmptySheet = errors.New("sheet has no data rows")

// ErrColumnsNotFound indicates header auto-detection could not assign the
// required room and ssid roles. Callers recover by supplying a manual
// mapping; nothing else advances the session past this state.
var ErrColumnsNotFound = errors.New("required columns not found")

// ErrColumnsNotResolved indicates extraction was attempted before a column
// mapping was resolved.
var ErrColumnsNotResolved = errors.New("columns not resolved")

// ErrInvalidMapping indicates a manual mapping is missing required roles or
// references out-of-range or duplicate columns.
var ErrInvalidMapping = errors.New("invalid column mapping")

// ErrRoomNotFound indicates no data row matched the requested room key, or
// the matched row has an empty SSID.
var ErrRoomNotFound = errors.New("room not found")
