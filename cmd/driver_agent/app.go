package driveragent

import (
	"context"
	"errors"

	"ride-hail-client/internal/api"
	"ride-hail-client/internal/cli"
	"ride-hail-client/internal/common/config"
	"ride-hail-client/internal/common/logger"
	"ride-hail-client/internal/dashboard"
	"ride-hail-client/internal/diag"
	"ride-hail-client/internal/domain/geo"
	"ride-hail-client/internal/location"
	"ride-hail-client/internal/realtime"
	"ride-hail-client/internal/session"
)

// Run wires the driver agent and blocks until ctx is cancelled. startOnline
// flips availability right after startup instead of waiting for a toggle.
func Run(ctx context.Context, cfgPath, email, password string, startOnline bool) error {
	log := logger.New(cli.ModeDriver)
	ctx = log.WithRequestID(ctx, "startup-001")

	cfg, err := config.Load(cfgPath, "driver")
	if err != nil {
		log.Error(ctx, "config_load_failed", "Failed to load configuration", err, nil)
		return err
	}

	store, err := session.OpenStore(cfg.Storage.Dir)
	if err != nil {
		log.Error(ctx, "storage_open_failed", "Failed to open credential store", err, nil)
		return err
	}
	defer store.Close()

	sess := session.New(cfg.UserRole(), store, log)
	sess.InitFromStorage(ctx)

	apiClient := api.New(cfg.API.BaseURL, cfg.API.Timeout, sess, log)
	rt := realtime.New(cfg.Realtime, sess.Token, log)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	apiClient.SetUnauthorizedHook(func() {
		log.Warn(ctx, "session_invalidated", "Credentials rejected, shutting down", nil)
		cancel()
	})

	if !sess.Authenticated() {
		if email == "" || password == "" {
			err := errors.New("no stored session and no credentials provided")
			log.Error(ctx, "auth_missing", "Cannot start unauthenticated", err, nil)
			return err
		}
		u, err := apiClient.Authenticate(ctx, email, password)
		if err != nil {
			log.Error(ctx, "login_failed", "Login rejected", err, nil)
			return err
		}
		log.Info(ctx, "login_ok", "Authenticated", map[string]any{"user_id": u.ID})
	}

	origin := geo.Point{Lat: cfg.Location.SimOriginLat, Lng: cfg.Location.SimOriginLng}
	loc := location.NewCached(location.NewSimulated(origin), cfg.Location.AcquireTimeout, cfg.Location.MaxFixAge)

	dash := dashboard.NewDriver(apiClient, rt, loc, cfg, log)

	if cfg.Diag.Enabled {
		srv := diag.New(cfg.Diag.Port, func() any {
			return map[string]any{
				"role":                cfg.Role,
				"authenticated":       sess.Authenticated(),
				"online":              dash.Online(),
				"realtime_state":      rt.State(),
				"available_rides":     dash.AvailableRides.All(),
				"available_vacations": dash.AvailableVacations.All(),
				"my_rides":            dash.MyRides.All(),
			}
		}, dash.Toggle, log)
		go func() {
			if err := srv.Run(runCtx); err != nil {
				log.Error(ctx, "diag_failed", "Diagnostics endpoint terminated", err, nil)
			}
		}()
	}

	if startOnline {
		if _, err := dash.Toggle(runCtx); err != nil {
			log.Error(ctx, "availability_toggle_failed", "Could not go online at startup", err, nil)
		}
	}

	log.Info(ctx, "agent_started", "Driver agent running", map[string]any{"api": cfg.API.BaseURL, "online": dash.Online()})
	dash.Run(runCtx)
	log.Info(ctx, "agent_stopped", "Driver agent stopped", nil)
	return nil
}
