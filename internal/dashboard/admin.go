package dashboard

import (
	"context"
	"sync"

	"ride-hail-client/internal/api"
	"ride-hail-client/internal/common/config"
	"ride-hail-client/internal/common/logger"
	"ride-hail-client/internal/contracts"
	"ride-hail-client/internal/domain/user"
	"ride-hail-client/internal/realtime"
)

// Admin is the platform overview: aggregate stats plus the user roster,
// refreshed on a slow cadence with a push-triggered refresh of the stats.
type Admin struct {
	api *api.Client
	rt  *realtime.Client
	cfg *config.Config
	log *logger.Logger

	Users *RecordSet[user.User]

	mu    sync.RWMutex
	stats contracts.AdminStats
	ok    bool

	subs []realtime.Subscription
}

// NewAdmin builds the admin dashboard.
func NewAdmin(apiClient *api.Client, rt *realtime.Client, cfg *config.Config, log *logger.Logger) *Admin {
	return &Admin{
		api:   apiClient,
		rt:    rt,
		cfg:   cfg,
		log:   log,
		Users: NewRecordSet[user.User](),
	}
}

// Run polls stats and the user roster until ctx is cancelled. Any pushed
// platform event also refreshes the stats so the overview tracks activity
// between polls.
func (d *Admin) Run(ctx context.Context) {
	d.subs = append(d.subs,
		d.rt.AddListener(contracts.EventMessage, func(evt contracts.Event) {
			if err := d.RefreshStats(ctx); err != nil {
				d.log.Warn(ctx, "stats_refresh_failed", "refresh after push failed", map[string]any{"error": err.Error()})
			}
		}),
	)
	d.rt.Connect(ctx)

	var wg sync.WaitGroup
	polls := []*Poller{
		NewPoller("admin_stats", d.cfg.Poll.AdminStatsInterval, d.RefreshStats, d.log),
		NewPoller("admin_users", d.cfg.Poll.AdminStatsInterval, d.RefreshUsers, d.log),
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

// RefreshStats reloads the aggregate numbers.
func (d *Admin) RefreshStats(ctx context.Context) error {
	stats, err := d.api.Stats(ctx)
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.stats = stats
	d.ok = true
	d.mu.Unlock()
	return nil
}

// RefreshUsers reloads the user roster.
func (d *Admin) RefreshUsers(ctx context.Context) error {
	gen := d.Users.NextGen()
	users, err := d.api.Users(ctx, "")
	if err != nil {
		return err
	}
	d.Users.ApplySnapshot(gen, users)
	return nil
}

// Stats returns the last loaded aggregate numbers.
func (d *Admin) Stats() (contracts.AdminStats, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.stats, d.ok
}

// ToggleUserActive flips an account's active flag and patches the roster.
func (d *Admin) ToggleUserActive(ctx context.Context, id int64) error {
	u, err := d.api.ToggleUserActive(ctx, id)
	if err != nil {
		return err
	}
	d.Users.Upsert(u)
	return nil
}

// DeleteUser removes an account and drops it from the roster.
func (d *Admin) DeleteUser(ctx context.Context, id int64) error {
	if err := d.api.DeleteUser(ctx, id); err != nil {
		return err
	}
	d.Users.Remove(id)
	d.Users.Invalidate()
	return nil
}
