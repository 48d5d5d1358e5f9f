package dashboard

import (
	"context"
	"sync"

	json "github.com/goccy/go-json"

	"ride-hail-client/internal/api"
	"ride-hail-client/internal/common/config"
	"ride-hail-client/internal/common/logger"
	"ride-hail-client/internal/contracts"
	"ride-hail-client/internal/domain/geo"
	"ride-hail-client/internal/domain/ride"
	"ride-hail-client/internal/domain/vacation"
	"ride-hail-client/internal/realtime"
)

// Rider is the rider-side view state: own rides, vacation bookings and
// intercity trips, kept in sync by polling with realtime patches in between.
type Rider struct {
	api *api.Client
	rt  *realtime.Client
	cfg *config.Config
	log *logger.Logger

	Rides     *RecordSet[ride.Ride]
	Vacations *RecordSet[vacation.Vacation]
	Intercity *RecordSet[ride.IntercityRide]

	mu        sync.RWMutex
	driverPos map[int64]geo.Point
	subs      []realtime.Subscription
}

// NewRider builds the rider dashboard.
func NewRider(apiClient *api.Client, rt *realtime.Client, cfg *config.Config, log *logger.Logger) *Rider {
	return &Rider{
		api:       apiClient,
		rt:        rt,
		cfg:       cfg,
		log:       log,
		Rides:     NewRecordSet[ride.Ride](),
		Vacations: NewRecordSet[vacation.Vacation](),
		Intercity: NewRecordSet[ride.IntercityRide](),
		driverPos: make(map[int64]geo.Point),
	}
}

// Run subscribes to push events, opens the realtime channel and polls until
// ctx is cancelled.
func (d *Rider) Run(ctx context.Context) {
	d.subs = append(d.subs,
		d.rt.AddListener(contracts.EventRideStatusUpdate, func(evt contracts.Event) {
			d.onRideStatus(ctx, evt)
		}),
		d.rt.AddListener(contracts.EventDriverLocationUpdate, func(evt contracts.Event) {
			d.onDriverLocation(ctx, evt)
		}),
		d.rt.AddListener(contracts.EventVacationStatusUpdate, func(evt contracts.Event) {
			d.onVacationStatus(ctx, evt)
		}),
		d.rt.AddListener(contracts.EventMaxReconnectAttempts, func(evt contracts.Event) {
			d.log.Warn(ctx, "realtime_gave_up", "push channel exhausted reconnects, polling only", nil)
		}),
	)
	d.rt.Connect(ctx)

	var wg sync.WaitGroup
	polls := []*Poller{
		NewPoller("rides", d.cfg.Poll.RideInterval, d.RefreshRides, d.log),
		NewPoller("vacations", d.cfg.Poll.FallbackInterval, d.RefreshVacations, d.log),
		NewPoller("intercity_rides", d.cfg.Poll.FallbackInterval, d.RefreshIntercity, d.log),
	}
	for _, p := range polls {
		wg.Add(1)
		go func(p *Poller) {
			defer wg.Done()
			p.Run(ctx)
		}(p)
	}
	wg.Wait()

	for _, sub := range d.subs {
		d.rt.RemoveListener(sub)
	}
	d.rt.Disconnect(context.WithoutCancel(ctx))
}

// RefreshRides reloads the ride list snapshot.
func (d *Rider) RefreshRides(ctx context.Context) error {
	gen := d.Rides.NextGen()
	rides, err := d.api.Rides(ctx, "")
	if err != nil {
		return err
	}
	d.Rides.ApplySnapshot(gen, rides)
	return nil
}

// RefreshVacations reloads the vacation list snapshot.
func (d *Rider) RefreshVacations(ctx context.Context) error {
	gen := d.Vacations.NextGen()
	vacations, err := d.api.Vacations(ctx)
	if err != nil {
		return err
	}
	d.Vacations.ApplySnapshot(gen, vacations)
	return nil
}

// RefreshIntercity reloads the intercity trip list snapshot.
func (d *Rider) RefreshIntercity(ctx context.Context) error {
	gen := d.Intercity.NextGen()
	rides, err := d.api.IntercityRides(ctx)
	if err != nil {
		return err
	}
	d.Intercity.ApplySnapshot(gen, rides)
	return nil
}

// CreateRide books a ride and seeds the view with the server's record.
func (d *Rider) CreateRide(ctx context.Context, req contracts.CreateRideRequest) (ride.Ride, error) {
	r, err := d.api.CreateRide(ctx, req)
	if err != nil {
		return ride.Ride{}, err
	}
	d.Rides.Upsert(r)
	return r, nil
}

// CancelRide cancels a ride and drops it from the view. The cancelled record
// reappears with its terminal status on the next snapshot.
func (d *Rider) CancelRide(ctx context.Context, id int64) error {
	if err := d.api.CancelRide(ctx, id); err != nil {
		return err
	}
	d.Rides.Remove(id)
	d.Rides.Invalidate()
	d.mu.Lock()
	delete(d.driverPos, id)
	d.mu.Unlock()
	return nil
}

// RateRide rates a completed ride and patches the view with the result.
func (d *Rider) RateRide(ctx context.Context, id int64, rating int, feedback *string) error {
	r, err := d.api.RateRide(ctx, id, rating, feedback)
	if err != nil {
		return err
	}
	d.Rides.Upsert(r)
	return nil
}

// DriverPosition returns the last pushed driver location for a ride.
func (d *Rider) DriverPosition(rideID int64) (geo.Point, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.driverPos[rideID]
	return p, ok
}

// onRideStatus patches the affected ride in place. An update for a ride the
// view does not hold yet falls back to a full refresh.
func (d *Rider) onRideStatus(ctx context.Context, evt contracts.Event) {
	var upd contracts.RideStatusUpdateEvent
	if err := json.Unmarshal(evt.Raw, &upd); err != nil {
		d.log.Warn(ctx, "ride_status_unparseable", "dropping malformed status update", nil)
		return
	}
	status, err := ride.ParseStatus(upd.Status)
	if err != nil {
		d.log.Warn(ctx, "ride_status_unknown", "dropping status update with unknown status",
			map[string]any{"status": upd.Status})
		return
	}

	r, ok := d.Rides.Get(upd.RideID)
	if !ok {
		if err := d.RefreshRides(ctx); err != nil {
			d.log.Warn(ctx, "ride_refresh_failed", "refresh after push failed", map[string]any{"error": err.Error()})
		}
		return
	}
	r.Status = status
	d.Rides.Upsert(r)

	if status.Terminal() {
		d.mu.Lock()
		delete(d.driverPos, upd.RideID)
		d.mu.Unlock()
	}
}

func (d *Rider) onDriverLocation(ctx context.Context, evt contracts.Event) {
	var upd contracts.DriverLocationUpdateEvent
	if err := json.Unmarshal(evt.Raw, &upd); err != nil {
		d.log.Warn(ctx, "driver_location_unparseable", "dropping malformed location update", nil)
		return
	}
	d.mu.Lock()
	d.driverPos[upd.RideID] = geo.Point{Lat: upd.Lat, Lng: upd.Lng}
	d.mu.Unlock()
}

func (d *Rider) onVacationStatus(ctx context.Context, evt contracts.Event) {
	var upd contracts.VacationStatusUpdateEvent
	if err := json.Unmarshal(evt.Raw, &upd); err != nil {
		d.log.Warn(ctx, "vacation_status_unparseable", "dropping malformed status update", nil)
		return
	}
	status, err := vacation.ParseStatus(upd.Status)
	if err != nil {
		d.log.Warn(ctx, "vacation_status_unknown", "dropping status update with unknown status",
			map[string]any{"status": upd.Status})
		return
	}

	v, ok := d.Vacations.Get(upd.VacationID)
	if !ok {
		if err := d.RefreshVacations(ctx); err != nil {
			d.log.Warn(ctx, "vacation_refresh_failed", "refresh after push failed", map[string]any{"error": err.Error()})
		}
		return
	}
	v.Status = status
	d.Vacations.Upsert(v)
}
