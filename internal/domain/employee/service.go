package employee

import (
	"context"
	"strings"

	"github.com/oklog/ulid/v2"

	"staffpay/internal/apperr"
)

type Service struct {
	store StoreAPI
	newID func() string
	// OnDelete runs after an employee and its attendance are removed.
	OnDelete func(id string)
}

func NewService(store StoreAPI) *Service {
	return &Service{
		store: store,
		newID: func() string { return ulid.Make().String() },
	}
}

func (s *Service) Create(ctx context.Context, in Input) (Employee, error) {
	v := apperr.NewValidator()
	missing := map[string]bool{}
	for field, absent := range map[string]bool{
		"name":          in.Name == nil,
		"age":           in.Age == nil,
		"place":         in.Place == nil,
		"salary":        in.Salary == nil,
		"job_time_from": in.JobTimeFrom == nil,
		"job_time_to":   in.JobTimeTo == nil,
		"joining_date":  in.JoiningDate == nil,
		"total_leaves":  in.TotalLeaves == nil,
	} {
		if absent {
			missing[field] = true
			v.Add(field, "is required")
		}
	}

	emp := Employee{Status: StatusActive}
	if in.ID != nil {
		emp.ID = strings.TrimSpace(*in.ID)
	}
	apply(&emp, in)
	validate(v, &emp, missing)
	if err := v.Err(); err != nil {
		return Employee{}, err
	}
	if emp.ID == "" {
		emp.ID = s.newID()
	}
	return s.store.Create(ctx, emp)
}

func (s *Service) Get(ctx context.Context, id string) (Employee, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, status string) ([]Employee, error) {
	status = strings.TrimSpace(status)
	v := apperr.NewValidator()
	v.Enum("status", status, Statuses, "must be one of active, inactive")
	if err := v.Err(); err != nil {
		return nil, err
	}
	return s.store.List(ctx, status)
}

// Update applies a partial change. The merged record must still be valid.
func (s *Service) Update(ctx context.Context, id string, patch Input) (Employee, error) {
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return Employee{}, err
	}

	merged := existing
	apply(&merged, patch)
	v := apperr.NewValidator()
	if patch.ID != nil && strings.TrimSpace(*patch.ID) != id {
		v.Add("id", "cannot be changed")
	}
	validate(v, &merged, nil)
	if err := v.Err(); err != nil {
		return Employee{}, err
	}

	normalized := patch
	normalized.JobTimeFrom = optional(patch.JobTimeFrom, merged.JobTimeFrom)
	normalized.JobTimeTo = optional(patch.JobTimeTo, merged.JobTimeTo)
	normalized.Name = optional(patch.Name, merged.Name)
	normalized.Place = optional(patch.Place, merged.Place)
	normalized.Contact = optional(patch.Contact, merged.Contact)
	normalized.ImageURL = optional(patch.ImageURL, merged.ImageURL)
	normalized.JoiningDate = optional(patch.JoiningDate, merged.JoiningDate)
	normalized.Status = optional(patch.Status, merged.Status)
	return s.store.Update(ctx, id, normalized)
}

func (s *Service) SetStatus(ctx context.Context, id, status string) (Employee, error) {
	status = strings.TrimSpace(status)
	v := apperr.NewValidator()
	if v.Required("status", status, "is required") {
		v.Enum("status", status, Statuses, "must be one of active, inactive")
	}
	if err := v.Err(); err != nil {
		return Employee{}, err
	}
	return s.store.SetStatus(ctx, id, status)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	if s.OnDelete != nil {
		s.OnDelete(id)
	}
	return nil
}

func apply(emp *Employee, in Input) {
	if in.Name != nil {
		emp.Name = strings.TrimSpace(*in.Name)
	}
	if in.Age != nil {
		emp.Age = *in.Age
	}
	if in.Place != nil {
		emp.Place = strings.TrimSpace(*in.Place)
	}
	if in.Contact != nil {
		emp.Contact = strings.TrimSpace(*in.Contact)
	}
	if in.ImageURL != nil {
		emp.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if in.Salary != nil {
		emp.Salary = *in.Salary
	}
	if in.JobTimeFrom != nil {
		emp.JobTimeFrom = strings.TrimSpace(*in.JobTimeFrom)
	}
	if in.JobTimeTo != nil {
		emp.JobTimeTo = strings.TrimSpace(*in.JobTimeTo)
	}
	if in.JoiningDate != nil {
		emp.JoiningDate = strings.TrimSpace(*in.JoiningDate)
	}
	if in.TotalLeaves != nil {
		emp.TotalLeaves = *in.TotalLeaves
	}
	if in.Status != nil {
		emp.Status = strings.TrimSpace(*in.Status)
	}
}

// validate checks field values and rewrites job times to HH:MM:SS. Fields in
// skip were already reported as missing.
func validate(v *apperr.Validator, emp *Employee, skip map[string]bool) {
	check := func(field string) bool { return !skip[field] }
	if check("name") {
		v.Required("name", emp.Name, "must not be empty")
	}
	if check("place") {
		v.Required("place", emp.Place, "must not be empty")
	}
	if check("age") && emp.Age <= 0 {
		v.Add("age", "must be greater than zero")
	}
	if check("salary") {
		v.NonNegative("salary", emp.Salary)
	}
	if check("total_leaves") && emp.TotalLeaves < 0 {
		v.Add("total_leaves", "must not be negative")
	}
	if check("job_time_from") {
		if normalized, ok := v.TimeOfDay("job_time_from", emp.JobTimeFrom); ok {
			emp.JobTimeFrom = normalized
		}
	}
	if check("job_time_to") {
		if normalized, ok := v.TimeOfDay("job_time_to", emp.JobTimeTo); ok {
			emp.JobTimeTo = normalized
		}
	}
	if check("joining_date") {
		v.Date("joining_date", emp.JoiningDate)
	}
	if v.Required("status", emp.Status, "is required") {
		v.Enum("status", emp.Status, Statuses, "must be one of active, inactive")
	}
}

func optional(supplied *string, value string) *string {
	if supplied == nil {
		return nil
	}
	return &value
}
