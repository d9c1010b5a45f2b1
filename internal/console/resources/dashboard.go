package resources

import (
	"context"
	"log/slog"
	"sync"
)

// DashboardOverview is the landing-page aggregate. Sections that failed to
// load are nil; the dashboard renders what it has rather than failing whole.
type DashboardOverview struct {
	Hostel    *HostelOverview
	Buildings []Building
	Rooms     []Room
}

// DashboardService aggregates the landing-page data.
type DashboardService interface {
	Overview(ctx context.Context) (*DashboardOverview, error)
}

type dashboardService struct {
	hostels HostelService
	logger  *slog.Logger
}

// NewDashboardService creates the dashboard service.
func NewDashboardService(hostels HostelService, logger *slog.Logger) DashboardService {
	return &dashboardService{hostels: hostels, logger: logger}
}

// Overview fans out the section fetches concurrently. A section failure is
// logged and leaves its slot empty; only all sections failing is an error,
// reported as the first failure observed.
func (s *dashboardService) Overview(ctx context.Context) (*DashboardOverview, error) {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		overview DashboardOverview
		failures int
		firstErr error
	)

	record := func(section string, err error) {
		mu.Lock()
		defer mu.Unlock()
		failures++
		if firstErr == nil {
			firstErr = err
		}
		s.logger.Warn("dashboard section failed",
			slog.String("section", section),
			slog.String("error", err.Error()))
	}

	wg.Add(3)

	go func() {
		defer wg.Done()
		result, err := s.hostels.Overview(ctx)
		if err != nil {
			record("overview", err)
			return
		}
		mu.Lock()
		overview.Hostel = result
		mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		buildings, err := s.hostels.ListBuildings(ctx)
		if err != nil {
			record("buildings", err)
			return
		}
		mu.Lock()
		overview.Buildings = buildings
		mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		rooms, err := s.hostels.ListRooms(ctx, RoomQuery{})
		if err != nil {
			record("rooms", err)
			return
		}
		mu.Lock()
		overview.Rooms = rooms.Items
		mu.Unlock()
	}()

	wg.Wait()

	if failures == 3 {
		return nil, firstErr
	}
	return &overview, nil
}
