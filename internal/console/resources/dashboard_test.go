package resources

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dashboardDoer() *fakeDoer {
	doer := newFakeDoer()
	doer.respond("GET", "/hostels/overview", `{"totalBuildings":2,"totalRooms":80}`)
	doer.respond("GET", "/hostels/buildings", `[{"id":"b1","name":"North Wing"},{"id":"b2","name":"South Wing"}]`)
	doer.respond("GET", "/hostels/rooms", `{"data":[{"id":"r1","roomNumber":"R-101"}],"meta":{"total":80,"page":1,"limit":10}}`)
	return doer
}

func TestDashboardService_Overview(t *testing.T) {
	doer := dashboardDoer()
	svc := NewDashboardService(NewHostelService(doer, testLogger()), testLogger())

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.NotNil(t, overview)

	require.NotNil(t, overview.Hostel)
	assert.Equal(t, 80, overview.Hostel.TotalRooms.Int())
	assert.Len(t, overview.Buildings, 2)
	assert.Len(t, overview.Rooms, 1)
}

func TestDashboardService_PartialFailureKeepsRest(t *testing.T) {
	doer := dashboardDoer()
	doer.fail("GET", "/hostels/overview", fmt.Errorf("upstream 502"))

	svc := NewDashboardService(NewHostelService(doer, testLogger()), testLogger())
	overview, err := svc.Overview(context.Background())
	require.NoError(t, err, "one failed section does not fail the dashboard")

	assert.Nil(t, overview.Hostel)
	assert.Len(t, overview.Buildings, 2)
	assert.Len(t, overview.Rooms, 1)
}

func TestDashboardService_AllSectionsFailing(t *testing.T) {
	doer := newFakeDoer()
	doer.fail("GET", "/hostels/overview", fmt.Errorf("down"))
	doer.fail("GET", "/hostels/buildings", fmt.Errorf("down"))
	doer.fail("GET", "/hostels/rooms", fmt.Errorf("down"))

	svc := NewDashboardService(NewHostelService(doer, testLogger()), testLogger())
	_, err := svc.Overview(context.Background())
	assert.Error(t, err)
}
