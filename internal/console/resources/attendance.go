package resources

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/muhammadnuman-eng/school-managment-crm-sub001/internal/console/client"
	"github.com/muhammadnuman-eng/school-managment-crm-sub001/internal/console/normalize"
)

// AttendanceRecord is one student's attendance for one day.
type AttendanceRecord struct {
	ID        string              `json:"id"`
	StudentID string              `json:"studentId"`
	Student   *studentRef         `json:"student"`
	Status    string              `json:"status"`
	Date      normalize.Timestamp `json:"date"`

	StudentName string `json:"-"`
	StatusLabel string `json:"-"`
}

func (r *AttendanceRecord) derive() {
	if r.Student != nil {
		r.StudentName = r.Student.FirstName + " " + r.Student.LastName
		if r.StudentID == "" {
			r.StudentID = r.Student.ID
		}
	}
	r.StatusLabel = normalize.DisplayLabel(r.Status)
}

// AttendanceEntry marks one student in a bulk submission.
type AttendanceEntry struct {
	StudentID string `json:"studentId"`
	Status    string `json:"status"`
}

// MarkAttendanceInput submits a class's attendance for a date.
type MarkAttendanceInput struct {
	ClassID string            `json:"classId"`
	Date    string            `json:"date"`
	Entries []AttendanceEntry `json:"entries"`
}

// AttendanceSummary aggregates attendance over a period.
type AttendanceSummary struct {
	Present     normalize.FlexInt   `json:"present"`
	Absent      normalize.FlexInt   `json:"absent"`
	Late        normalize.FlexInt   `json:"late"`
	PresentRate normalize.FlexFloat `json:"presentRate"`
}

// AttendanceService manages daily attendance.
type AttendanceService interface {
	Mark(ctx context.Context, input MarkAttendanceInput) error
	ListByDate(ctx context.Context, date, classID string) ([]AttendanceRecord, error)
	Summary(ctx context.Context, classID, from, to string) (*AttendanceSummary, error)
}

type attendanceService struct {
	client Doer
	logger *slog.Logger
}

// NewAttendanceService creates the attendance service.
func NewAttendanceService(d Doer, logger *slog.Logger) AttendanceService {
	return &attendanceService{client: d, logger: logger}
}

func (s *attendanceService) Mark(ctx context.Context, input MarkAttendanceInput) error {
	return do(ctx, s.client, client.Request{
		Method: http.MethodPost,
		Path:   "/attendance",
		Body:   input,
	})
}

func (s *attendanceService) ListByDate(ctx context.Context, date, classID string) ([]AttendanceRecord, error) {
	values := url.Values{}
	values.Set("date", date)
	if classID != "" {
		values.Set("classId", classID)
	}

	page, err := fetchList[AttendanceRecord](ctx, s.client, client.Request{
		Method: http.MethodGet,
		Path:   "/attendance",
		Query:  values,
	}, "attendance")
	if err != nil {
		return nil, err
	}
	for i := range page.Items {
		page.Items[i].derive()
	}
	return page.Items, nil
}

func (s *attendanceService) Summary(ctx context.Context, classID, from, to string) (*AttendanceSummary, error) {
	values := url.Values{}
	if classID != "" {
		values.Set("classId", classID)
	}
	if from != "" {
		values.Set("from", from)
	}
	if to != "" {
		values.Set("to", to)
	}

	return fetchOne[AttendanceSummary](ctx, s.client, client.Request{
		Method: http.MethodGet,
		Path:   "/attendance/summary",
		Query:  values,
	})
}
