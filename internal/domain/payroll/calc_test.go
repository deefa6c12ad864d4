package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func day(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func TestWorkingDays(t *testing.T) {
	cases := []struct {
		year, month, want int
	}{
		{2024, 2, 21},
		{2024, 3, 21},
		{2024, 6, 20},
		{2023, 12, 21},
		{2025, 2, 20},
	}
	for _, tc := range cases {
		if got := WorkingDays(tc.year, tc.month); got != tc.want {
			t.Fatalf("WorkingDays(%d, %d) = %d, want %d", tc.year, tc.month, got, tc.want)
		}
	}
}

func TestComputeSalaryDeterministic(t *testing.T) {
	emp := Employee{ID: "EMP001", Name: "Asha", Salary: decimal.NewFromInt(30000), TotalLeaves: 2, Status: "active"}
	row := ComputeSalary(emp, 26, Counts{Present: 20, HalfDay: 2})

	if row.EffectiveWorkingDays != 24 {
		t.Fatalf("expected 24 effective days, got %d", row.EffectiveWorkingDays)
	}
	if row.DailyRate != 1250 {
		t.Fatalf("expected daily rate 1250, got %v", row.DailyRate)
	}
	if row.NetSalary != 26250 {
		t.Fatalf("expected net 26250, got %v", row.NetSalary)
	}
}

func TestComputeSalaryRoundsHalfUp(t *testing.T) {
	emp := Employee{Salary: decimal.NewFromInt(10000), TotalLeaves: 0}
	row := ComputeSalary(emp, 21, Counts{Present: 1, HalfDay: 1})
	// 10000/21 = 476.190476..., net = 714.2857...
	if row.DailyRate != 476.19 {
		t.Fatalf("expected daily rate 476.19, got %v", row.DailyRate)
	}
	if row.NetSalary != 714.29 {
		t.Fatalf("expected net 714.29, got %v", row.NetSalary)
	}
}

func TestComputeSalaryZeroEffectiveDays(t *testing.T) {
	emp := Employee{Salary: decimal.NewFromInt(30000), TotalLeaves: 40}
	row := ComputeSalary(emp, 22, Counts{Present: 10})
	if row.EffectiveWorkingDays != 0 || row.DailyRate != 0 || row.NetSalary != 0 {
		t.Fatalf("expected zero rate and net, got %+v", row)
	}
}

func TestComputeSalaryNoAttendance(t *testing.T) {
	emp := Employee{Salary: decimal.NewFromInt(30000), TotalLeaves: 2}
	row := ComputeSalary(emp, 21, Counts{})
	if row.PresentDays != 0 || row.LeaveDays != 0 || row.NetSalary != 0 {
		t.Fatalf("expected zero counts and net, got %+v", row)
	}
}

func TestTallyExcludesWeekendsAndOtherMonths(t *testing.T) {
	records := []AttendanceDay{
		{Date: day("2024-03-01"), Status: "present"},  // Friday
		{Date: day("2024-03-02"), Status: "present"},  // Saturday
		{Date: day("2024-03-03"), Status: "half_day"}, // Sunday
		{Date: day("2024-03-04"), Status: "half_day"},
		{Date: day("2024-03-05"), Status: "absent"},
		{Date: day("2024-03-06"), Status: "leave"},
		{Date: day("2024-03-07"), Status: "late"},
		{Date: day("2024-04-01"), Status: "present"},
	}
	c := Tally(records, 2024, 3)
	if c.Present != 1 || c.HalfDay != 1 || c.Absent != 1 || c.OnLeave != 1 || c.Ignored != 1 {
		t.Fatalf("unexpected counts %+v", c)
	}
	if c.LeaveDays() != 2 {
		t.Fatalf("expected leave days 2, got %d", c.LeaveDays())
	}
}
