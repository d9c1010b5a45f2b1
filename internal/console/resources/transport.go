package resources

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/muhammadnuman-eng/school-managment-crm-sub001/internal/console/client"
	"github.com/muhammadnuman-eng/school-managment-crm-sub001/internal/console/normalize"
)

// Vehicle is a transport fleet record.
type Vehicle struct {
	ID           string            `json:"id"`
	Registration string            `json:"registration"`
	Model        string            `json:"model"`
	Capacity     normalize.FlexInt `json:"capacity"`
	Status       string            `json:"status"`
	DriverName   string            `json:"driverName"`

	StatusLabel string `json:"-"`
}

// Route is a pickup/drop route with its ordered stops.
type Route struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Stops     []string    `json:"stops"`
	VehicleID string      `json:"vehicleId"`
	Vehicle   *vehicleRef `json:"vehicle"`

	VehicleRegistration string `json:"-"`
}

type vehicleRef struct {
	ID           string `json:"id"`
	Registration string `json:"registration"`
}

// VehicleInput creates a vehicle.
type VehicleInput struct {
	Registration string `json:"registration"`
	Model        string `json:"model,omitempty"`
	Capacity     int    `json:"capacity"`
	DriverName   string `json:"driverName,omitempty"`
}

// RouteInput creates a route.
type RouteInput struct {
	Name  string   `json:"name"`
	Stops []string `json:"stops"`
}

// TransportService manages the vehicle fleet and routes.
type TransportService interface {
	ListVehicles(ctx context.Context) ([]Vehicle, error)
	CreateVehicle(ctx context.Context, input VehicleInput) (*Vehicle, error)
	ListRoutes(ctx context.Context) ([]Route, error)
	CreateRoute(ctx context.Context, input RouteInput) (*Route, error)
	AssignVehicle(ctx context.Context, routeID, vehicleID string) error
}

type transportService struct {
	client Doer
	logger *slog.Logger
}

// NewTransportService creates the transport service.
func NewTransportService(d Doer, logger *slog.Logger) TransportService {
	return &transportService{client: d, logger: logger}
}

func (s *transportService) ListVehicles(ctx context.Context) ([]Vehicle, error) {
	page, err := fetchList[Vehicle](ctx, s.client, client.Request{
		Method: http.MethodGet,
		Path:   "/transport/vehicles",
	}, "vehicles")
	if err != nil {
		return nil, err
	}
	for i := range page.Items {
		page.Items[i].StatusLabel = normalize.DisplayLabel(page.Items[i].Status)
	}
	return page.Items, nil
}

func (s *transportService) CreateVehicle(ctx context.Context, input VehicleInput) (*Vehicle, error) {
	vehicle, err := fetchOne[Vehicle](ctx, s.client, client.Request{
		Method: http.MethodPost,
		Path:   "/transport/vehicles",
		Body:   input,
	})
	if err != nil || vehicle == nil {
		return vehicle, err
	}
	vehicle.StatusLabel = normalize.DisplayLabel(vehicle.Status)
	return vehicle, nil
}

func (s *transportService) ListRoutes(ctx context.Context) ([]Route, error) {
	page, err := fetchList[Route](ctx, s.client, client.Request{
		Method: http.MethodGet,
		Path:   "/transport/routes",
	}, "routes")
	if err != nil {
		return nil, err
	}
	for i := range page.Items {
		if page.Items[i].Vehicle != nil {
			page.Items[i].VehicleRegistration = page.Items[i].Vehicle.Registration
			if page.Items[i].VehicleID == "" {
				page.Items[i].VehicleID = page.Items[i].Vehicle.ID
			}
		}
	}
	return page.Items, nil
}

func (s *transportService) CreateRoute(ctx context.Context, input RouteInput) (*Route, error) {
	return fetchOne[Route](ctx, s.client, client.Request{
		Method: http.MethodPost,
		Path:   "/transport/routes",
		Body:   input,
	})
}

func (s *transportService) AssignVehicle(ctx context.Context, routeID, vehicleID string) error {
	return do(ctx, s.client, client.Request{
		Method: http.MethodPost,
		Path:   "/transport/routes/" + routeID + "/vehicle",
		Body:   map[string]string{"vehicleId": vehicleID},
	})
}
