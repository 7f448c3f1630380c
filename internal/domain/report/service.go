package report

import (
	"context"

	"github.com/go-faster/errors"
	"golang.org/x/sync/errgroup"
)

// Overview bundles both reports for the reporting page.
type Overview struct {
	Daily   []DailyRevenue
	Popular []ItemSales
}

// Service exposes the aggregation queries with default limits.
type Service struct {
	repo Repository
}

// NewService creates a report Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// DailyRevenue returns the revenue series. A non-positive limit falls
// back to DefaultRevenueDays.
func (s *Service) DailyRevenue(ctx context.Context, limitDays int) ([]DailyRevenue, error) {
	if limitDays <= 0 {
		limitDays = DefaultRevenueDays
	}
	return s.repo.DailyRevenue(ctx, limitDays)
}

// PopularItems returns the top-item ranking. A non-positive limit falls
// back to DefaultPopularItems.
func (s *Service) PopularItems(ctx context.Context, limitItems int) ([]ItemSales, error) {
	if limitItems <= 0 {
		limitItems = DefaultPopularItems
	}
	return s.repo.PopularItems(ctx, limitItems)
}

// Overview runs both reports concurrently and returns them together.
// Each query still sees its own consistent snapshot.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	var o Overview

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		daily, err := s.repo.DailyRevenue(ctx, DefaultRevenueDays)
		if err != nil {
			return errors.Wrap(err, "daily revenue")
		}
		o.Daily = daily
		return nil
	})
	g.Go(func() error {
		popular, err := s.repo.PopularItems(ctx, DefaultPopularItems)
		if err != nil {
			return errors.Wrap(err, "popular items")
		}
		o.Popular = popular
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &o, nil
}
