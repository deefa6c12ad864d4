package export

import "fmt"

// Columns is the field order of every export row.
var Columns = []string{"employee_id", "employee_name", "place", "date", "status", "check_in", "check_out", "notes"}

type Row struct {
	EmployeeID   string
	EmployeeName string
	Place        string
	Date         string
	Status       string
	CheckIn      *string
	CheckOut     *string
	Notes        *string
}

// Values returns the row in Columns order with NULLs as empty strings.
func (r Row) Values() []string {
	return []string{r.EmployeeID, r.EmployeeName, r.Place, r.Date, r.Status, deref(r.CheckIn), deref(r.CheckOut), deref(r.Notes)}
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

var Formats = []string{FormatCSV, FormatXLSX}

type File struct {
	Name        string
	ContentType string
	Body        []byte
}

func Filename(start, end, format string) string {
	return fmt.Sprintf("attendance_%s_to_%s.%s", start, end, format)
}
