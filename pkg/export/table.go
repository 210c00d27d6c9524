package export

import "fmt"

// Table is a flat export view of one report section: a header row and
// string cells, ready for CSV or workbook output.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// FileName builds the artifact name for one source table, e.g.
// "shopping_2024-03-05.csv". The suffix is a date or a mode label.
func FileName(source, suffix string) string {
	return fmt.Sprintf("%s_%s.csv", source, suffix)
}
