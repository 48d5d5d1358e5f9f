package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ride-hail-client/internal/api"
	"ride-hail-client/internal/common/config"
	"ride-hail-client/internal/contracts"
	"ride-hail-client/internal/domain/geo"
	"ride-hail-client/internal/domain/ride"
	"ride-hail-client/internal/domain/user"
	"ride-hail-client/internal/location"
	"ride-hail-client/internal/realtime"
	"ride-hail-client/internal/session"
)

// driverBackend serves the driver endpoints with mutable state.
type driverBackend struct {
	mu        sync.Mutex
	available []ride.Ride
	mine      []ride.Ride
	online    bool
	locations int
}

func (b *driverBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /rides/available", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		json.NewEncoder(w).Encode(b.available)
	})
	mux.HandleFunc("GET /rides/", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		json.NewEncoder(w).Encode(b.mine)
	})
	mux.HandleFunc("GET /vacation/available", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	})
	mux.HandleFunc("PATCH /rides/{id}", func(w http.ResponseWriter, r *http.Request) {
		var req contracts.UpdateRideRequest
		json.NewDecoder(r.Body).Decode(&req)
		resp := ride.Ride{ID: 31, Status: ride.StatusAccepted}
		if req.Status != nil {
			resp.Status = ride.Status(*req.Status)
		}
		json.NewEncoder(w).Encode(resp)
	})
	mux.HandleFunc("PATCH /users/driver/availability", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.online = !b.online
		online := b.online
		b.mu.Unlock()
		json.NewEncoder(w).Encode(user.DriverProfile{IsAvailable: online})
	})
	mux.HandleFunc("PATCH /users/driver/location", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.locations++
		b.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func newDriverFixture(t *testing.T) (*Driver, *driverBackend) {
	t.Helper()

	backend := &driverBackend{}
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	store, err := session.OpenInMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	log := testLogger()
	sess := session.New(user.RoleDriver, store, log)
	require.NoError(t, sess.Login("tok", user.User{ID: 2, Role: user.RoleDriver}))

	apiClient := api.New(srv.URL, 2*time.Second, sess, log)
	cfg := &config.Config{
		Role: "driver",
		Poll: config.PollConfig{
			RideInterval:       time.Hour,
			FallbackInterval:   time.Hour,
			AdminStatsInterval: time.Hour,
		},
		Location: config.LocationConfig{
			ReportInterval: time.Hour,
			AcquireTimeout: time.Second,
			MaxFixAge:      time.Minute,
		},
		Realtime: config.RealtimeConfig{
			URL:                  "ws://127.0.0.1:1/ws",
			MaxReconnectAttempts: 0,
			ReconnectInterval:    time.Millisecond,
			HandshakeTimeout:     time.Second,
		},
	}
	rt := realtime.New(cfg.Realtime, sess.Token, log)
	loc := location.NewCached(location.NewSimulated(geo.Point{Lat: 12.97, Lng: 77.59}),
		cfg.Location.AcquireTimeout, cfg.Location.MaxFixAge)

	return NewDriver(apiClient, rt, loc, cfg, log), backend
}

func TestDriverToggleOnlineLoadsQueuesAndReportsLocation(t *testing.T) {
	dash, backend := newDriverFixture(t)
	backend.available = []ride.Ride{{ID: 21, Status: ride.StatusPending}}

	online, err := dash.Toggle(context.Background())
	require.NoError(t, err)
	assert.True(t, online)
	assert.True(t, dash.Online())

	// the first poll cycles fire immediately on going online
	assert.Eventually(t, func() bool { return dash.AvailableRides.Loaded() }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, dash.AvailableRides.Len())

	assert.Eventually(t, func() bool {
		backend.mu.Lock()
		defer backend.mu.Unlock()
		return backend.locations >= 1
	}, 2*time.Second, 5*time.Millisecond, "location must be reported while online")
}

func TestDriverGoingOfflineClearsQueues(t *testing.T) {
	dash, backend := newDriverFixture(t)
	backend.available = []ride.Ride{{ID: 21, Status: ride.StatusPending}}

	_, err := dash.Toggle(context.Background())
	require.NoError(t, err)
	assert.Eventually(t, func() bool { return dash.AvailableRides.Loaded() }, 2*time.Second, 5*time.Millisecond)

	_, err = dash.Toggle(context.Background())
	require.NoError(t, err)
	assert.False(t, dash.Online())
	assert.Zero(t, dash.AvailableRides.Len(), "offline view must hold no stale work")
	assert.False(t, dash.AvailableRides.Loaded())
}

func TestDriverPushedDispatchInsertedOnce(t *testing.T) {
	dash, _ := newDriverFixture(t)

	frame, _ := json.Marshal(contracts.NewRideRequestEvent{
		Type: contracts.EventNewRideRequest, RideID: 44,
		PickupAddress: "A", DestinationAddress: "B",
		DistanceKM: 3.2, EstimatedFare: 82, VehicleType: "economy",
	})
	evt := contracts.Event{Type: contracts.EventNewRideRequest, Raw: frame}

	dash.onNewRide(context.Background(), evt)
	dash.onNewRide(context.Background(), evt)

	assert.Equal(t, 1, dash.AvailableRides.Len(), "duplicate dispatch must not duplicate the entry")
	r, ok := dash.AvailableRides.Get(44)
	require.True(t, ok)
	assert.Equal(t, ride.StatusPending, r.Status)
	require.NotNil(t, r.EstimatedFare)
	assert.Equal(t, 82.0, *r.EstimatedFare)
}

func TestDriverAcceptRideMovesItToOwnList(t *testing.T) {
	dash, _ := newDriverFixture(t)
	dash.AvailableRides.InsertIfAbsent(ride.Ride{ID: 31, Status: ride.StatusPending})

	require.NoError(t, dash.AcceptRide(context.Background(), 31))

	_, stillOpen := dash.AvailableRides.Get(31)
	assert.False(t, stillOpen)
	r, ok := dash.MyRides.Get(31)
	require.True(t, ok)
	assert.Equal(t, ride.StatusAccepted, r.Status)
}
