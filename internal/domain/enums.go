package domain

// InputFormat identifies the tabular format of the input source.
type InputFormat string

const (
	InputFormatXLSX InputFormat = "xlsx"
	InputFormatCSV  InputFormat = "csv"
)

// AllowedExtensions maps file extensions (without dot) to InputFormat.
var AllowedExtensions = map[string]InputFormat{
	"xlsx": InputFormatXLSX,
	"xlsm": InputFormatXLSX,
	"csv":  InputFormatCSV,
}

// HeaderMode controls whether the first input row is treated as a header.
type HeaderMode string

const (
	// HeaderAuto skips row 1 only when its vote cell is not an integer.
	HeaderAuto   HeaderMode = "auto"
	HeaderAlways HeaderMode = "always"
	HeaderNever  HeaderMode = "never"
)

// Valid reports whether m is a known header mode.
func (m HeaderMode) Valid() bool {
	switch m {
	case HeaderAuto, HeaderAlways, HeaderNever:
		return true
	}
	return false
}
