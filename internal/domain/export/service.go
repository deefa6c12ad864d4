package export

import (
	"context"
	"strings"
	"time"

	"staffpay/internal/apperr"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

// Attendance renders records dated in [startDate, endDate]. An empty range
// is reported as not found.
func (s *Service) Attendance(ctx context.Context, startRaw, endRaw, format string) (File, error) {
	v := apperr.NewValidator()
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatCSV
	}
	v.Enum("format", format, Formats, "must be one of csv, xlsx")
	var startDate, endDate time.Time
	if v.Required("startDate", startRaw, "is required") {
		startDate, _ = v.Date("startDate", startRaw)
	}
	if v.Required("endDate", endRaw, "is required") {
		endDate, _ = v.Date("endDate", endRaw)
	}
	v.DateOrder("startDate", startDate, "endDate", endDate)
	if err := v.Err(); err != nil {
		return File{}, err
	}
	start, end := startDate.Format(apperr.DateLayout), endDate.Format(apperr.DateLayout)

	rows, err := s.store.AttendanceRows(ctx, start, end)
	if err != nil {
		return File{}, err
	}
	if len(rows) == 0 {
		return File{}, apperr.NotFound("no attendance records in range")
	}

	if format == FormatXLSX {
		body, err := EncodeXLSX(rows)
		if err != nil {
			return File{}, apperr.Store("render xlsx export", err)
		}
		return File{
			Name:        Filename(start, end, FormatXLSX),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Body:        body,
		}, nil
	}
	return File{
		Name:        Filename(start, end, FormatCSV),
		ContentType: "text/csv",
		Body:        EncodeCSV(rows),
	}, nil
}
