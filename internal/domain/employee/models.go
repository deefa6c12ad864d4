package employee

import "time"

type Employee struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Age         int       `json:"age"`
	Place       string    `json:"place"`
	Contact     string    `json:"contact"`
	ImageURL    string    `json:"image_url"`
	Salary      float64   `json:"salary"`
	JobTimeFrom string    `json:"job_time_from"`
	JobTimeTo   string    `json:"job_time_to"`
	JoiningDate string    `json:"joining_date"`
	TotalLeaves int       `json:"total_leaves"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Input carries create and update payloads. A nil field was not supplied.
type Input struct {
	ID          *string  `json:"id"`
	Name        *string  `json:"name"`
	Age         *int     `json:"age"`
	Place       *string  `json:"place"`
	Contact     *string  `json:"contact"`
	ImageURL    *string  `json:"image_url"`
	Salary      *float64 `json:"salary"`
	JobTimeFrom *string  `json:"job_time_from"`
	JobTimeTo   *string  `json:"job_time_to"`
	JoiningDate *string  `json:"joining_date"`
	TotalLeaves *int     `json:"total_leaves"`
	Status      *string  `json:"status"`
}
