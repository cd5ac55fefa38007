// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance jobs: the keep-alive
// self-ping and the GeoIP database reload.
package scheduler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/folio-go/internal/geoip"
)

// Cron expressions for the maintenance jobs.
const (
	keepAliveSpec   = "*/10 * * * *" // every 10 minutes
	geoipReloadSpec = "0 4 * * *"    // daily at 04:00
)

// pingTimeout bounds one keep-alive request.
const pingTimeout = 30 * time.Second

// Scheduler handles periodic maintenance jobs.
type Scheduler struct {
	cron    *cron.Cron
	baseURL string
	geo     *geoip.Lookup
	client  *http.Client
	logger  *slog.Logger
}

// New creates a scheduler. baseURL may be empty to disable the keep-alive
// ping; geo may be a disabled lookup.
func New(baseURL string, geo *geoip.Lookup, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		baseURL: baseURL,
		geo:     geo,
		client:  &http.Client{Timeout: pingTimeout},
		logger:  logger,
	}
}

// Start registers and starts the jobs.
func (s *Scheduler) Start() error {
	if s.baseURL != "" {
		// Free hosting tiers idle the process out; the self-ping keeps it warm.
		if _, err := s.cron.AddFunc(keepAliveSpec, s.keepAlive); err != nil {
			return fmt.Errorf("adding keep-alive job: %w", err)
		}
	}

	if s.geo.IsEnabled() {
		if _, err := s.cron.AddFunc(geoipReloadSpec, s.reloadGeoIP); err != nil {
			return fmt.Errorf("adding geoip reload job: %w", err)
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// keepAlive pings the service's own health endpoint.
func (s *Scheduler) keepAlive() {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	url := s.baseURL + "/api/health"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		s.logger.Error("building keep-alive request failed", "error", err)
		return
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("keep-alive ping failed", "url", url, "error", err)
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	s.logger.Debug("keep-alive ping", "status", resp.StatusCode)
}

// reloadGeoIP picks up a refreshed MaxMind database file.
func (s *Scheduler) reloadGeoIP() {
	if err := s.geo.Reload(); err != nil {
		s.logger.Warn("geoip reload failed", "error", err)
		return
	}
	s.logger.Info("geoip database reloaded")
}
