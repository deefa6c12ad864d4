package payroll

const (
	statusPresent = "present"
	statusHalfDay = "half_day"
	statusAbsent  = "absent"
	statusLeave   = "leave"

	msgEmployeeNotFound = "employee not found"
)
