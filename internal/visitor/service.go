// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package visitor implements visitor accounting: per-session daily
// deduplication, aggregate counters, and the rolling 7-day series.
package visitor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mileusna/useragent"

	"github.com/olegiv/folio-go/internal/cache"
	"github.com/olegiv/folio-go/internal/geoip"
	"github.com/olegiv/folio-go/internal/store"
)

const statsCacheKey = "visitor:stats"

// Visit describes a single page visit to record.
type Visit struct {
	SessionID string
	IPAddress string
	UserAgent string
	Referrer  string
	Page      string
}

// DayCount is one entry of the 7-day visit series.
type DayCount struct {
	Date    string `json:"date"`    // "2006-01-02"
	DayName string `json:"dayName"` // "Mon"
	Count   int64  `json:"count"`
}

// Stats is the aggregate visitor snapshot served to clients.
type Stats struct {
	TodayVisitors int64      `json:"todayVisitors"`
	TotalVisitors int64      `json:"totalVisitors"`
	UniqueToday   int64      `json:"uniqueToday"`
	Last7Days     []DayCount `json:"last7Days"`
}

// Service records visits and answers count queries.
// All day boundaries use the UTC calendar.
type Service struct {
	queries *store.Queries
	geo     *geoip.Lookup
	cache   cache.Cache
	ttl     time.Duration
	now     func() time.Time
}

// NewService creates a visitor service. geo may be a disabled lookup and
// c may be nil to bypass stats caching.
func NewService(queries *store.Queries, geo *geoip.Lookup, c cache.Cache, ttl time.Duration) *Service {
	return &Service{
		queries: queries,
		geo:     geo,
		cache:   c,
		ttl:     ttl,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Record stores a visit unless the session already has one today (UTC).
// Bot traffic is dropped. It returns true when a new row was inserted.
//
// The dedupe is check-then-insert without a uniqueness constraint, so two
// concurrent requests for the same session can both insert. Counts treat
// that as noise rather than paying for serialized writes.
func (s *Service) Record(ctx context.Context, v Visit) (bool, error) {
	if v.SessionID == "" {
		return false, errors.New("session id is required")
	}

	ua := useragent.Parse(v.UserAgent)
	if ua.Bot {
		return false, nil
	}

	now := s.now()
	count, err := s.queries.CountVisitorsBySessionSince(ctx, store.CountVisitorsBySessionSinceParams{
		SessionID: v.SessionID,
		Since:     startOfDay(now),
	})
	if err != nil {
		return false, fmt.Errorf("checking for today's visit: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	browser := ua.Name
	if browser == "" {
		browser = "Unknown"
	}
	os := ua.OS
	if os == "" {
		os = "Unknown"
	}
	deviceType := "desktop"
	switch {
	case ua.Mobile:
		deviceType = "mobile"
	case ua.Tablet:
		deviceType = "tablet"
	}

	page := v.Page
	if page == "" {
		page = "/"
	}

	_, err = s.queries.CreateVisitor(ctx, store.CreateVisitorParams{
		IPAddress:   v.IPAddress,
		UserAgent:   v.UserAgent,
		Referrer:    v.Referrer,
		Page:        page,
		SessionID:   v.SessionID,
		CountryCode: s.geo.LookupCountry(v.IPAddress),
		Browser:     browser,
		OS:          os,
		DeviceType:  deviceType,
		CreatedAt:   now,
	})
	if err != nil {
		return false, fmt.Errorf("inserting visit: %w", err)
	}

	s.invalidateStats(ctx)
	return true, nil
}

// CountToday returns the number of visits recorded today (UTC).
func (s *Service) CountToday(ctx context.Context) (int64, error) {
	return s.queries.CountVisitorsSince(ctx, startOfDay(s.now()))
}

// CountTotal returns the number of visits ever recorded.
func (s *Service) CountTotal(ctx context.Context) (int64, error) {
	return s.queries.CountVisitors(ctx)
}

// CountUniqueToday returns the number of distinct visitor IPs today (UTC).
func (s *Service) CountUniqueToday(ctx context.Context) (int64, error) {
	return s.queries.CountDistinctIPsSince(ctx, startOfDay(s.now()))
}

// Last7Days returns exactly seven day counts ending today, oldest first.
// Days without visits are present with a zero count.
func (s *Service) Last7Days(ctx context.Context) ([]DayCount, error) {
	today := startOfDay(s.now())
	series := make([]DayCount, 0, 7)

	for i := 6; i >= 0; i-- {
		dayStart := today.AddDate(0, 0, -i)
		count, err := s.queries.CountVisitorsBetween(ctx, store.CountVisitorsBetweenParams{
			Start: dayStart,
			End:   dayStart.AddDate(0, 0, 1),
		})
		if err != nil {
			return nil, fmt.Errorf("counting visits for %s: %w", dayStart.Format("2006-01-02"), err)
		}
		series = append(series, DayCount{
			Date:    dayStart.Format("2006-01-02"),
			DayName: dayStart.Format("Mon"),
			Count:   count,
		})
	}

	return series, nil
}

// Stats returns the aggregate visitor snapshot, served from cache when fresh.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, statsCacheKey); err == nil {
			var cached Stats
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	var stats Stats
	var err error
	if stats.TodayVisitors, err = s.CountToday(ctx); err != nil {
		return Stats{}, fmt.Errorf("counting today's visitors: %w", err)
	}
	if stats.TotalVisitors, err = s.CountTotal(ctx); err != nil {
		return Stats{}, fmt.Errorf("counting total visitors: %w", err)
	}
	if stats.UniqueToday, err = s.CountUniqueToday(ctx); err != nil {
		return Stats{}, fmt.Errorf("counting unique visitors: %w", err)
	}
	if stats.Last7Days, err = s.Last7Days(ctx); err != nil {
		return Stats{}, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, data, s.ttl); err != nil {
				slog.Debug("caching visitor stats failed", "error", err)
			}
		}
	}

	return stats, nil
}

// invalidateStats drops the cached snapshot after a new visit.
func (s *Service) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, statsCacheKey); err != nil {
		slog.Debug("invalidating visitor stats cache failed", "error", err)
	}
}

// startOfDay truncates a time to midnight UTC.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
