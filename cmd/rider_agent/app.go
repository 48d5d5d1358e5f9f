package rideragent

import (
	"context"
	"errors"

	"ride-hail-client/internal/api"
	"ride-hail-client/internal/cli"
	"ride-hail-client/internal/common/config"
	"ride-hail-client/internal/common/logger"
	"ride-hail-client/internal/dashboard"
	"ride-hail-client/internal/diag"
	"ride-hail-client/internal/realtime"
	"ride-hail-client/internal/session"
)

// Run wires the rider agent and blocks until ctx is cancelled.
func Run(ctx context.Context, cfgPath, email, password string) error {
	log := logger.New(cli.ModeRider)
	ctx = log.WithRequestID(ctx, "startup-001")

	cfg, err := config.Load(cfgPath, "rider")
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

	// A rejected token ends the agent; the operator restarts with fresh
	// credentials, the moral equivalent of being sent back to the login page.
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

	dash := dashboard.NewRider(apiClient, rt, cfg, log)

	if cfg.Diag.Enabled {
		srv := diag.New(cfg.Diag.Port, func() any {
			return map[string]any{
				"role":           cfg.Role,
				"authenticated":  sess.Authenticated(),
				"realtime_state": rt.State(),
				"rides":          dash.Rides.All(),
				"vacations":      dash.Vacations.All(),
				"intercity":      dash.Intercity.All(),
			}
		}, nil, log)
		go func() {
			if err := srv.Run(runCtx); err != nil {
				log.Error(ctx, "diag_failed", "Diagnostics endpoint terminated", err, nil)
			}
		}()
	}

	log.Info(ctx, "agent_started", "Rider agent running", map[string]any{"api": cfg.API.BaseURL})
	dash.Run(runCtx)
	log.Info(ctx, "agent_stopped", "Rider agent stopped", nil)
	return nil
}
