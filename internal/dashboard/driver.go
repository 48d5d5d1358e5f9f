package dashboard

import (
	"context"
	"sync"

	json "github.com/goccy/go-json"

	"ride-hail-client/internal/api"
	"ride-hail-client/internal/common/config"
	"ride-hail-client/internal/common/logger"
	"ride-hail-client/internal/contracts"
	"ride-hail-client/internal/domain/ride"
	"ride-hail-client/internal/domain/vacation"
	"ride-hail-client/internal/location"
	"ride-hail-client/internal/realtime"
)

// Driver is the driver-side view state. Everything hangs off the online
// toggle: while online the agent subscribes to dispatch events, polls the
// open work queues and reports its position; going offline tears all of that
// down and clears the queues so no stale work is shown.
type Driver struct {
	api *api.Client
	rt  *realtime.Client
	cfg *config.Config
	log *logger.Logger
	loc location.Source

	AvailableRides     *RecordSet[ride.Ride]
	AvailableVacations *RecordSet[vacation.Vacation]
	MyRides            *RecordSet[ride.Ride]

	mu           sync.Mutex
	online       bool
	onlineCancel context.CancelFunc
	onlineDone   chan struct{}
	subs         []realtime.Subscription
}

// NewDriver builds the driver dashboard.
func NewDriver(apiClient *api.Client, rt *realtime.Client, loc location.Source, cfg *config.Config, log *logger.Logger) *Driver {
	return &Driver{
		api:                apiClient,
		rt:                 rt,
		cfg:                cfg,
		log:                log,
		loc:                loc,
		AvailableRides:     NewRecordSet[ride.Ride](),
		AvailableVacations: NewRecordSet[vacation.Vacation](),
		MyRides:            NewRecordSet[ride.Ride](),
	}
}

// Run blocks until ctx is cancelled. The driver starts offline; SetOnline
// brings the sync machinery up.
func (d *Driver) Run(ctx context.Context) {
	<-ctx.Done()
	d.SetOnline(context.WithoutCancel(ctx), false)
}

// Online reports the current availability state.
func (d *Driver) Online() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.online
}

// Toggle flips availability on the server and mirrors the result locally.
func (d *Driver) Toggle(ctx context.Context) (bool, error) {
	profile, err := d.api.ToggleDriverAvailability(ctx)
	if err != nil {
		return d.Online(), err
	}
	d.SetOnline(ctx, profile.IsAvailable)
	return profile.IsAvailable, nil
}

// SetOnline transitions between the offline and online states. Idempotent.
func (d *Driver) SetOnline(ctx context.Context, online bool) {
	d.mu.Lock()
	if d.online == online {
		d.mu.Unlock()
		return
	}
	d.online = online
	if !online {
		cancel := d.onlineCancel
		done := d.onlineDone
		d.onlineCancel = nil
		d.onlineDone = nil
		d.mu.Unlock()

		if cancel != nil {
			cancel()
			<-done
		}
		d.AvailableRides.Clear()
		d.AvailableVacations.Clear()
		d.MyRides.Clear()
		d.log.Info(ctx, "driver_offline", "went offline, cleared work queues", nil)
		return
	}

	// detached from the caller: a toggle arriving over a short-lived request
	// context must not take the sync machinery down with it
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})
	d.onlineCancel = cancel
	d.onlineDone = done
	d.mu.Unlock()

	d.log.Info(ctx, "driver_online", "went online, starting sync", nil)
	go d.runOnline(runCtx, done)
}

func (d *Driver) runOnline(ctx context.Context, done chan struct{}) {
	defer close(done)

	subs := []realtime.Subscription{
		d.rt.AddListener(contracts.EventNewRideRequest, func(evt contracts.Event) {
			d.onNewRide(ctx, evt)
		}),
		d.rt.AddListener(contracts.EventNewVacationRequest, func(evt contracts.Event) {
			d.onNewVacation(ctx, evt)
		}),
	}
	d.rt.Connect(ctx)

	var wg sync.WaitGroup
	polls := []*Poller{
		NewPoller("available_rides", d.cfg.Poll.RideInterval, d.RefreshAvailableRides, d.log),
		NewPoller("available_vacations", d.cfg.Poll.FallbackInterval, d.RefreshAvailableVacations, d.log),
		NewPoller("my_rides", d.cfg.Poll.FallbackInterval, d.RefreshMyRides, d.log),
		NewPoller("driver_location", d.cfg.Location.ReportInterval, d.reportLocation, d.log),
	}
	for _, p := range polls {
		wg.Add(1)
		go func(p *Poller) {
			defer wg.Done()
			p.Run(ctx)
		}(p)
	}
	wg.Wait()

	for _, sub := range subs {
		d.rt.RemoveListener(sub)
	}
	d.rt.Disconnect(context.WithoutCancel(ctx))
}

// RefreshAvailableRides reloads the open ride queue snapshot.
func (d *Driver) RefreshAvailableRides(ctx context.Context) error {
	gen := d.AvailableRides.NextGen()
	rides, err := d.api.AvailableRides(ctx)
	if err != nil {
		return err
	}
	d.AvailableRides.ApplySnapshot(gen, rides)
	return nil
}

// RefreshAvailableVacations reloads the open vacation queue snapshot.
func (d *Driver) RefreshAvailableVacations(ctx context.Context) error {
	gen := d.AvailableVacations.NextGen()
	vacations, err := d.api.AvailableVacations(ctx)
	if err != nil {
		return err
	}
	d.AvailableVacations.ApplySnapshot(gen, vacations)
	return nil
}

// RefreshMyRides reloads the driver's own assigned rides.
func (d *Driver) RefreshMyRides(ctx context.Context) error {
	gen := d.MyRides.NextGen()
	rides, err := d.api.Rides(ctx, "")
	if err != nil {
		return err
	}
	d.MyRides.ApplySnapshot(gen, rides)
	return nil
}

// AcceptRide claims an open ride and moves it into the driver's own list.
func (d *Driver) AcceptRide(ctx context.Context, id int64) error {
	r, err := d.api.UpdateRideStatus(ctx, id, ride.StatusAccepted)
	if err != nil {
		return err
	}
	d.AvailableRides.Remove(id)
	d.AvailableRides.Invalidate()
	d.MyRides.Upsert(r)
	return nil
}

// AdvanceRide moves an accepted ride through its lifecycle.
func (d *Driver) AdvanceRide(ctx context.Context, id int64, status ride.Status) error {
	r, err := d.api.UpdateRideStatus(ctx, id, status)
	if err != nil {
		return err
	}
	d.MyRides.Upsert(r)
	return nil
}

// ConfirmVacation accepts an open vacation request.
func (d *Driver) ConfirmVacation(ctx context.Context, id int64) error {
	if err := d.api.ConfirmVacation(ctx, id); err != nil {
		return err
	}
	d.AvailableVacations.Remove(id)
	d.AvailableVacations.Invalidate()
	return nil
}

// RejectVacation declines an open vacation request.
func (d *Driver) RejectVacation(ctx context.Context, id int64) error {
	if err := d.api.RejectVacation(ctx, id); err != nil {
		return err
	}
	d.AvailableVacations.Remove(id)
	d.AvailableVacations.Invalidate()
	return nil
}

func (d *Driver) reportLocation(ctx context.Context) error {
	fix, err := d.loc.Current(ctx)
	if err != nil {
		return err
	}
	return d.api.UpdateDriverLocation(ctx, fix.Point.Lat, fix.Point.Lng)
}

// onNewRide inserts a pushed dispatch into the queue as a lightweight
// placeholder; the next poll snapshot replaces it with the full record.
func (d *Driver) onNewRide(ctx context.Context, evt contracts.Event) {
	var req contracts.NewRideRequestEvent
	if err := json.Unmarshal(evt.Raw, &req); err != nil {
		d.log.Warn(ctx, "new_ride_unparseable", "dropping malformed dispatch", nil)
		return
	}
	vt, err := ride.ParseVehicleType(req.VehicleType)
	if err != nil {
		vt = ride.VehicleEconomy
	}
	placeholder := ride.Ride{
		ID:                 req.RideID,
		PickupAddress:      req.PickupAddress,
		DestinationAddress: req.DestinationAddress,
		VehicleType:        vt,
		Status:             ride.StatusPending,
		DistanceKM:         &req.DistanceKM,
		EstimatedFare:      &req.EstimatedFare,
	}
	if d.AvailableRides.InsertIfAbsent(placeholder) {
		d.log.Info(ctx, "new_ride_pushed", "dispatch received", map[string]any{"ride_id": req.RideID})
	}
}

func (d *Driver) onNewVacation(ctx context.Context, evt contracts.Event) {
	var req contracts.NewVacationRequestEvent
	if err := json.Unmarshal(evt.Raw, &req); err != nil {
		d.log.Warn(ctx, "new_vacation_unparseable", "dropping malformed dispatch", nil)
		return
	}
	if err := d.RefreshAvailableVacations(ctx); err != nil {
		d.log.Warn(ctx, "vacation_refresh_failed", "refresh after push failed",
			map[string]any{"vacation_id": req.VacationID, "error": err.Error()})
	}
}
