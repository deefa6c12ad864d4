package employee

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

var Statuses = []string{StatusActive, StatusInactive}

const (
	msgNotFound = "employee not found"
	msgConflict = "employee already exists"
)
