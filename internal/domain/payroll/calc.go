package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

var half = decimal.NewFromFloat(0.5)

func IsWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// WorkingDays counts Monday to Friday in the month.
func WorkingDays(year, month int) int {
	day := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	count := 0
	for day.Month() == time.Month(month) {
		if !IsWeekend(day) {
			count++
		}
		day = day.AddDate(0, 0, 1)
	}
	return count
}

// Tally counts the records dated inside the month on weekdays. Unknown
// statuses are counted as ignored.
func Tally(records []AttendanceDay, year, month int) Counts {
	var c Counts
	for _, rec := range records {
		if rec.Date.Year() != year || int(rec.Date.Month()) != month || IsWeekend(rec.Date) {
			continue
		}
		switch rec.Status {
		case statusPresent:
			c.Present++
		case statusHalfDay:
			c.HalfDay++
		case statusAbsent:
			c.Absent++
		case statusLeave:
			c.OnLeave++
		default:
			c.Ignored++
		}
	}
	return c
}

// ComputeSalary pays present days at the daily rate and half days at half of
// it. The daily rate spreads salary over working days minus allocated leaves.
func ComputeSalary(emp Employee, workingDays int, c Counts) Row {
	effective := max(workingDays-emp.TotalLeaves, 0)
	dailyRate := decimal.Zero
	if effective > 0 {
		dailyRate = emp.Salary.Div(decimal.NewFromInt(int64(effective)))
	}
	net := dailyRate.Mul(decimal.NewFromInt(int64(c.Present))).
		Add(dailyRate.Mul(half).Mul(decimal.NewFromInt(int64(c.HalfDay))))

	return Row{
		ID:                   emp.ID,
		Name:                 emp.Name,
		WorkingDays:          workingDays,
		AllocatedLeaves:      emp.TotalLeaves,
		EffectiveWorkingDays: effective,
		PresentDays:          c.Present,
		HalfDays:             c.HalfDay,
		LeaveDays:            c.LeaveDays(),
		AbsentDays:           c.Absent,
		OnLeaveDays:          c.OnLeave,
		IgnoredRecords:       c.Ignored,
		DailyRate:            dailyRate.Round(2).InexactFloat64(),
		Salary:               emp.Salary.InexactFloat64(),
		NetSalary:            net.Round(2).InexactFloat64(),
		Status:               emp.Status,
	}
}
