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

// Building is a hostel building record.
type Building struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Code       string              `json:"code"`
	Floors     normalize.FlexInt   `json:"floors"`
	TotalRooms normalize.FlexInt   `json:"totalRooms"`
	WardenName string              `json:"wardenName"`
	CreatedAt  normalize.Timestamp `json:"createdAt"`
}

// BuildingRef is the nested relation some room payloads embed.
type BuildingRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// Room is a hostel room record. BuildingName and StatusLabel are derived
// display fields; the nested relation stays available on Building.
type Room struct {
	ID         string              `json:"id"`
	RoomNumber string              `json:"roomNumber"`
	Floor      normalize.FlexInt   `json:"floor"`
	Capacity   normalize.FlexInt   `json:"capacity"`
	Occupied   normalize.FlexInt   `json:"occupied"`
	Status     string              `json:"status"`
	BuildingID string              `json:"buildingId"`
	Building   *BuildingRef        `json:"building"`
	CreatedAt  normalize.Timestamp `json:"createdAt"`

	BuildingName string `json:"-"`
	StatusLabel  string `json:"-"`
}

func (r *Room) derive() {
	if r.Building != nil {
		r.BuildingName = r.Building.Name
		if r.BuildingID == "" {
			r.BuildingID = r.Building.ID
		}
	}
	r.StatusLabel = normalize.DisplayLabel(r.Status)
}

// BuildingInput creates or updates a building.
type BuildingInput struct {
	Name       string `json:"name"`
	Code       string `json:"code,omitempty"`
	Floors     int    `json:"floors,omitempty"`
	WardenName string `json:"wardenName,omitempty"`
}

// RoomInput creates or updates a room.
type RoomInput struct {
	RoomNumber string `json:"roomNumber"`
	BuildingID string `json:"buildingId"`
	Floor      int    `json:"floor,omitempty"`
	Capacity   int    `json:"capacity"`
	Status     string `json:"status,omitempty"`
}

// RoomQuery filters and pages a room listing.
type RoomQuery struct {
	BuildingID string
	Status     string
	Page       int
	Limit      int
}

// AllocationInput assigns a student to a room.
type AllocationInput struct {
	RoomID    string `json:"roomId"`
	StudentID string `json:"studentId"`
	FromDate  string `json:"fromDate,omitempty"`
}

// HostelOverview is the occupancy summary for the hostel dashboard.
type HostelOverview struct {
	TotalBuildings normalize.FlexInt   `json:"totalBuildings"`
	TotalRooms     normalize.FlexInt   `json:"totalRooms"`
	TotalCapacity  normalize.FlexInt   `json:"totalCapacity"`
	Occupied       normalize.FlexInt   `json:"occupied"`
	Available      normalize.FlexInt   `json:"available"`
	OccupancyRate  normalize.FlexFloat `json:"occupancyRate"`
}

// HostelService manages hostel buildings, rooms, and allocations.
type HostelService interface {
	ListBuildings(ctx context.Context) ([]Building, error)
	CreateBuilding(ctx context.Context, input BuildingInput) (*Building, error)
	UpdateBuilding(ctx context.Context, id string, input BuildingInput) (*Building, error)
	DeleteBuilding(ctx context.Context, id string) error

	ListRooms(ctx context.Context, query RoomQuery) (Paged[Room], error)
	CreateRoom(ctx context.Context, input RoomInput) (*Room, error)
	UpdateRoom(ctx context.Context, id string, input RoomInput) (*Room, error)
	DeleteRoom(ctx context.Context, id string) error

	Overview(ctx context.Context) (*HostelOverview, error)
	AllocateRoom(ctx context.Context, input AllocationInput) error
}

type hostelService struct {
	client Doer
	logger *slog.Logger
}

// NewHostelService creates the hostel service.
func NewHostelService(d Doer, logger *slog.Logger) HostelService {
	return &hostelService{client: d, logger: logger}
}

func (s *hostelService) ListBuildings(ctx context.Context) ([]Building, error) {
	page, err := fetchList[Building](ctx, s.client, client.Request{
		Method: http.MethodGet,
		Path:   "/hostels/buildings",
	}, "buildings")
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (s *hostelService) CreateBuilding(ctx context.Context, input BuildingInput) (*Building, error) {
	return fetchOne[Building](ctx, s.client, client.Request{
		Method: http.MethodPost,
		Path:   "/hostels/buildings",
		Body:   input,
	})
}

func (s *hostelService) UpdateBuilding(ctx context.Context, id string, input BuildingInput) (*Building, error) {
	return fetchOne[Building](ctx, s.client, client.Request{
		Method: http.MethodPut,
		Path:   "/hostels/buildings/" + id,
		Body:   input,
	})
}

func (s *hostelService) DeleteBuilding(ctx context.Context, id string) error {
	return do(ctx, s.client, client.Request{
		Method: http.MethodDelete,
		Path:   "/hostels/buildings/" + id,
	})
}

func (s *hostelService) ListRooms(ctx context.Context, query RoomQuery) (Paged[Room], error) {
	values := url.Values{}
	if query.BuildingID != "" {
		values.Set("buildingId", query.BuildingID)
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

	page, err := fetchList[Room](ctx, s.client, client.Request{
		Method: http.MethodGet,
		Path:   "/hostels/rooms",
		Query:  values,
	}, "rooms")
	if err != nil {
		return page, err
	}
	for i := range page.Items {
		page.Items[i].derive()
	}
	return page, nil
}

func (s *hostelService) CreateRoom(ctx context.Context, input RoomInput) (*Room, error) {
	room, err := fetchOne[Room](ctx, s.client, client.Request{
		Method: http.MethodPost,
		Path:   "/hostels/rooms",
		Body:   input,
	})
	if err != nil || room == nil {
		return room, err
	}
	room.derive()
	return room, nil
}

func (s *hostelService) UpdateRoom(ctx context.Context, id string, input RoomInput) (*Room, error) {
	room, err := fetchOne[Room](ctx, s.client, client.Request{
		Method: http.MethodPut,
		Path:   "/hostels/rooms/" + id,
		Body:   input,
	})
	if err != nil || room == nil {
		return room, err
	}
	room.derive()
	return room, nil
}

func (s *hostelService) DeleteRoom(ctx context.Context, id string) error {
	return do(ctx, s.client, client.Request{
		Method: http.MethodDelete,
		Path:   "/hostels/rooms/" + id,
	})
}

func (s *hostelService) Overview(ctx context.Context) (*HostelOverview, error) {
	return fetchOne[HostelOverview](ctx, s.client, client.Request{
		Method: http.MethodGet,
		Path:   "/hostels/overview",
	})
}

func (s *hostelService) AllocateRoom(ctx context.Context, input AllocationInput) error {
	return do(ctx, s.client, client.Request{
		Method: http.MethodPost,
		Path:   "/hostels/allocations",
		Body:   input,
	})
}
