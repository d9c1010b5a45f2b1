package resources

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/muhammadnuman-eng/school-managment-crm-sub001/internal/console/client"
	"github.com/muhammadnuman-eng/school-managment-crm-sub001/internal/console/normalize"
)

// Notice is a published announcement.
type Notice struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Body        string              `json:"body"`
	Audience    string              `json:"audience"`
	PublishedAt normalize.Timestamp `json:"publishedAt"`

	AudienceLabel string `json:"-"`
}

// NoticeInput publishes an announcement.
type NoticeInput struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Audience string `json:"audience,omitempty"`
}

// MessageInput sends a direct message to a recipient account.
type MessageInput struct {
	RecipientID string `json:"recipientId"`
	Subject     string `json:"subject,omitempty"`
	Body        string `json:"body"`
}

// CommunicationService manages notices and direct messages.
type CommunicationService interface {
	ListNotices(ctx context.Context) ([]Notice, error)
	PublishNotice(ctx context.Context, input NoticeInput) (*Notice, error)
	DeleteNotice(ctx context.Context, id string) error
	SendMessage(ctx context.Context, input MessageInput) error
}

type communicationService struct {
	client Doer
	logger *slog.Logger
}

// NewCommunicationService creates the communication service.
func NewCommunicationService(d Doer, logger *slog.Logger) CommunicationService {
	return &communicationService{client: d, logger: logger}
}

func (s *communicationService) ListNotices(ctx context.Context) ([]Notice, error) {
	page, err := fetchList[Notice](ctx, s.client, client.Request{
		Method: http.MethodGet,
		Path:   "/communication/notices",
	}, "notices")
	if err != nil {
		return nil, err
	}
	for i := range page.Items {
		page.Items[i].AudienceLabel = normalize.DisplayLabel(page.Items[i].Audience)
	}
	return page.Items, nil
}

func (s *communicationService) PublishNotice(ctx context.Context, input NoticeInput) (*Notice, error) {
	notice, err := fetchOne[Notice](ctx, s.client, client.Request{
		Method: http.MethodPost,
		Path:   "/communication/notices",
		Body:   input,
	})
	if err != nil || notice == nil {
		return notice, err
	}
	notice.AudienceLabel = normalize.DisplayLabel(notice.Audience)
	return notice, nil
}

func (s *communicationService) DeleteNotice(ctx context.Context, id string) error {
	return do(ctx, s.client, client.Request{
		Method: http.MethodDelete,
		Path:   "/communication/notices/" + id,
	})
}

func (s *communicationService) SendMessage(ctx context.Context, input MessageInput) error {
	return do(ctx, s.client, client.Request{
		Method: http.MethodPost,
		Path:   "/communication/messages",
		Body:   input,
	})
}
