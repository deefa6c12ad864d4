package attendance

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusHalfDay = "half_day"
	StatusLeave   = "leave"

	// StatusNoData marks a calendar day without usable records.
	StatusNoData = "no-data"

	// Half-day sub-types carried in notes.
	HalfFirst  = "FH"
	HalfSecond = "SH"
)

var Statuses = []string{StatusPresent, StatusAbsent, StatusHalfDay, StatusLeave}

const (
	msgEmployeeNotFound = "employee not found"
	msgConflict         = "attendance record already exists"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)
