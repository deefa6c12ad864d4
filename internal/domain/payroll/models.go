package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID          string
	Name        string
	Salary      decimal.Decimal
	TotalLeaves int
	Status      string
}

type AttendanceDay struct {
	EmployeeID string
	Date       time.Time
	Status     string
}

// Counts tallies one employee's weekday attendance in a month.
type Counts struct {
	Present int
	HalfDay int
	Absent  int
	OnLeave int
	Ignored int
}

// LeaveDays is the unpaid bucket: absent plus leave.
func (c Counts) LeaveDays() int {
	return c.Absent + c.OnLeave
}

type Row struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	WorkingDays          int     `json:"workingDays"`
	AllocatedLeaves      int     `json:"allocatedLeaves"`
	EffectiveWorkingDays int     `json:"effectiveWorkingDays"`
	PresentDays          int     `json:"presentDays"`
	HalfDays             int     `json:"halfDays"`
	LeaveDays            int     `json:"leaveDays"`
	AbsentDays           int     `json:"absentDays"`
	OnLeaveDays          int     `json:"onLeaveDays"`
	IgnoredRecords       int     `json:"ignoredRecords"`
	DailyRate            float64 `json:"dailyRate"`
	Salary               float64 `json:"salary"`
	NetSalary            float64 `json:"netSalary"`
	Status               string  `json:"status"`
}

type Report struct {
	Year        int   `json:"year"`
	Month       int   `json:"month"`
	WorkingDays int   `json:"workingDays"`
	Rows        []Row `json:"rows"`
}

type SlipFile struct {
	Name string
	Body []byte
}
