package attendance

import "time"

type Record struct {
	ID           int64     `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name,omitempty"`
	Date         string    `json:"date"`
	Status       string    `json:"status"`
	CheckIn      *string   `json:"check_in"`
	CheckOut     *string   `json:"check_out"`
	Notes        *string   `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type MarkInput struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	Status     string  `json:"status"`
	CheckIn    *string `json:"check_in"`
	CheckOut   *string `json:"check_out"`
	Notes      *string `json:"notes"`
}

type MarkResult struct {
	Record  Record `json:"record"`
	Created bool   `json:"created"`
}

type SummaryRow struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Present      int    `json:"present"`
	Absent       int    `json:"absent"`
	HalfDay      int    `json:"half_day"`
	Leave        int    `json:"leave"`
}

type HistoryQuery struct {
	EmployeeID string
	Start      string
	End        string
	Limit      int
	Offset     int
}

type HistoryPage struct {
	Records []Record `json:"records"`
	Total   int      `json:"total"`
	Limit   int      `json:"limit"`
	Offset  int      `json:"offset"`
}
