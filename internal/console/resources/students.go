package resources

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/muhammadnuman-eng/school-managment-crm-sub001/internal/console/client"
	"github.com/muhammadnuman-eng/school-managment-crm-sub001/internal/console/normalize"
)

// ClassRef is the nested class relation on a student record.
type ClassRef struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Section string `json:"section"`
}

// Student is the canonical student record. ClassName and StatusLabel are
// derived for list rendering; AdmissionDate keeps its wall-clock split.
type Student struct {
	ID          string              `json:"id"`
	FirstName   string              `json:"firstName"`
	LastName    string              `json:"lastName"`
	Email       string              `json:"email"`
	AdmissionNo string              `json:"admissionNo"`
	RollNumber  normalize.FlexInt   `json:"rollNumber"`
	Status      string              `json:"status"`
	ClassID     string              `json:"classId"`
	Class       *ClassRef           `json:"class"`
	Admitted    normalize.Timestamp `json:"admissionDate"`
	CreatedAt   normalize.Timestamp `json:"createdAt"`

	ClassName   string `json:"-"`
	StatusLabel string `json:"-"`
}

func (s *Student) derive() {
	if s.Class != nil {
		s.ClassName = s.Class.Name
		if s.ClassID == "" {
			s.ClassID = s.Class.ID
		}
	}
	s.StatusLabel = normalize.DisplayLabel(s.Status)
}

// FullName joins the name parts for display.
func (s Student) FullName() string {
	if s.FirstName == "" {
		return s.LastName
	}
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}

// StudentInput creates or updates a student.
type StudentInput struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email,omitempty"`
	AdmissionNo string `json:"admissionNo,omitempty"`
	ClassID     string `json:"classId,omitempty"`
	Status      string `json:"status,omitempty"`
}

// StudentQuery pages and filters a student listing.
type StudentQuery struct {
	Search  string
	ClassID string
	Status  string
	Page    int
	Limit   int
}

// StudentService manages student records.
type StudentService interface {
	List(ctx context.Context, query StudentQuery) (Paged[Student], error)
	Get(ctx context.Context, id string) (*Student, error)
	Create(ctx context.Context, input StudentInput) (*Student, error)
	Update(ctx context.Context, id string, input StudentInput) (*Student, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, term string) ([]Student, error)
}

type studentService struct {
	client Doer
	logger *slog.Logger
}

// NewStudentService creates the student service.
func NewStudentService(d Doer, logger *slog.Logger) StudentService {
	return &studentService{client: d, logger: logger}
}

func (s *studentService) List(ctx context.Context, query StudentQuery) (Paged[Student], error) {
	values := url.Values{}
	if query.Search != "" {
		values.Set("search", query.Search)
	}
	if query.ClassID != "" {
		values.Set("classId", query.ClassID)
	}
	if query.Status != "" {
		values.Set("status", query.Status)
	}
	if query.Page > 0 {
		values.Set("page", strconv.Itoa(query.Page))
	}
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}

	page, err := fetchList[Student](ctx, s.client, client.Request{
		Method: http.MethodGet,
		Path:   "/students",
		Query:  values,
	}, "students")
	if err != nil {
		return page, err
	}
	for i := range page.Items {
		page.Items[i].derive()
	}
	return page, nil
}

func (s *studentService) Get(ctx context.Context, id string) (*Student, error) {
	student, err := fetchOne[Student](ctx, s.client, client.Request{
		Method: http.MethodGet,
		Path:   "/students/" + id,
	})
	if err != nil || student == nil {
		return student, err
	}
	student.derive()
	return student, nil
}

func (s *studentService) Create(ctx context.Context, input StudentInput) (*Student, error) {
	student, err := fetchOne[Student](ctx, s.client, client.Request{
		Method: http.MethodPost,
		Path:   "/students",
		Body:   input,
	})
	if err != nil || student == nil {
		return student, err
	}
	student.derive()
	return student, nil
}

func (s *studentService) Update(ctx context.Context, id string, input StudentInput) (*Student, error) {
	student, err := fetchOne[Student](ctx, s.client, client.Request{
		Method: http.MethodPut,
		Path:   "/students/" + id,
		Body:   input,
	})
	if err != nil || student == nil {
		return student, err
	}
	student.derive()
	return student, nil
}

func (s *studentService) Delete(ctx context.Context, id string) error {
	return do(ctx, s.client, client.Request{
		Method: http.MethodDelete,
		Path:   "/students/" + id,
	})
}

func (s *studentService) Search(ctx context.Context, term string) ([]Student, error) {
	page, err := s.List(ctx, StudentQuery{Search: term})
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}
