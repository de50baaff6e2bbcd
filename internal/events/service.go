package events

import (
	"context"
	"fmt"
	"strings"

	"eventhub/internal/seatmap"
	"eventhub/pkg/logger"
	"eventhub/pkg/money"
)

// FeaturedLimit caps the featured list on the home page.
const FeaturedLimit = 3

var defaultImages = []string{
	"https://images.unsplash.com/photo-1533174072545-7a4b6ad7a6c3?auto=format&fit=crop&w=800&q=80",
	"https://images.unsplash.com/photo-1470225620780-dba8ba36b745?auto=format&fit=crop&w=800&q=80",
}

// Service is the catalogue and admin surface for events. It never changes
// seat occupancy or availability after creation.
type Service interface {
	ListEvents(ctx context.Context, query ListQuery) ([]Event, error)
	GetFeaturedEvents(ctx context.Context) ([]Event, error)
	GetEvent(ctx context.Context, id int64) (*Event, error)
	GetCategories(ctx context.Context) ([]string, error)
	CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error)
	UpdateEvent(ctx context.Context, id int64, req UpdateEventRequest) (*Event, error)
	DeleteEvent(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
	log  *logger.Logger
}

func NewService(repo Repository, log *logger.Logger) Service {
	if log == nil {
		log = logger.GetDefault()
	}
	return &service{repo: repo, log: log}
}

func (s *service) ListEvents(ctx context.Context, query ListQuery) ([]Event, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return Filter(all, query), nil
}

// Filter applies a case-insensitive search over title, description and
// location, then an exact category match.
func Filter(list []Event, query ListQuery) []Event {
	term := strings.ToLower(strings.TrimSpace(query.Search))
	category := strings.TrimSpace(query.Category)
	if strings.EqualFold(category, "all") {
		category = ""
	}

	out := make([]Event, 0, len(list))
	for _, e := range list {
		if term != "" &&
			!strings.Contains(strings.ToLower(e.Title), term) &&
			!strings.Contains(strings.ToLower(e.Description), term) &&
			!strings.Contains(strings.ToLower(e.Location), term) {
			continue
		}
		if category != "" && e.Category != category {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (s *service) GetFeaturedEvents(ctx context.Context) ([]Event, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	featured := make([]Event, 0, FeaturedLimit)
	for _, e := range all {
		if !e.Featured {
			continue
		}
		featured = append(featured, e)
		if len(featured) == FeaturedLimit {
			break
		}
	}
	return featured, nil
}

func (s *service) GetEvent(ctx context.Context, id int64) (*Event, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) GetCategories(ctx context.Context) ([]string, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	seen := make(map[string]bool)
	var out []string
	for _, e := range all {
		if e.Category == "" || seen[e.Category] {
			continue
		}
		seen[e.Category] = true
		out = append(out, e.Category)
	}
	return out, nil
}

func (s *service) CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error) {
	cols := (req.TotalSeats + req.Rows - 1) / req.Rows

	prices := DefaultSeatPrices(req.Price)
	if req.VIPPrice != nil {
		prices[seatmap.TierVIP] = *req.VIPPrice
	}
	if req.PremiumPrice != nil {
		prices[seatmap.TierPremium] = *req.PremiumPrice
	}
	if req.StandardPrice != nil {
		prices[seatmap.TierStandard] = *req.StandardPrice
	}

	images := req.Images
	if len(images) == 0 {
		images = append([]string(nil), defaultImages...)
	}

	event := &Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
		Category:    req.Category,
		Rating:      4.5,
		Images:      images,
		Performers:  trimAll(req.Performers),
		Featured:    req.Featured,
		Price:       req.Price,
		SeatPrices:  prices,
		SeatMap:     seatmap.Generate(req.Rows, cols),
	}
	// The grid is rounded up to whole rows, so totals come from the grid itself.
	event.Reconcile()

	err := s.repo.WithTx(ctx, func(tx Repository) error {
		id, err := tx.NextID(ctx)
		if err != nil {
			return err
		}
		event.ID = id
		return tx.Save(ctx, event)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.log.LogEventCreated(ctx, event.ID, event.Title)
	return event, nil
}

func (s *service) UpdateEvent(ctx context.Context, id int64, req UpdateEventRequest) (*Event, error) {
	var updated *Event
	err := s.repo.WithTx(ctx, func(tx Repository) error {
		event, err := tx.Get(ctx, id)
		if err != nil {
			return err
		}
		applyUpdate(event, req)
		updated = event
		return tx.Save(ctx, event)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func applyUpdate(e *Event, req UpdateEventRequest) {
	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.Date != nil {
		e.Date = *req.Date
	}
	if req.Time != nil {
		e.Time = *req.Time
	}
	if req.Location != nil {
		e.Location = *req.Location
	}
	if req.Category != nil {
		e.Category = *req.Category
	}
	if req.Price != nil {
		e.Price = *req.Price
	}
	setPrice := func(tier seatmap.Tier, p *money.Amount) {
		if p == nil {
			return
		}
		if e.SeatPrices == nil {
			e.SeatPrices = make(map[seatmap.Tier]money.Amount)
		}
		e.SeatPrices[tier] = *p
	}
	setPrice(seatmap.TierVIP, req.VIPPrice)
	setPrice(seatmap.TierPremium, req.PremiumPrice)
	setPrice(seatmap.TierStandard, req.StandardPrice)
	if req.Featured != nil {
		e.Featured = *req.Featured
	}
	if req.Performers != nil {
		e.Performers = trimAll(req.Performers)
	}
	if req.Images != nil {
		e.Images = req.Images
	}
}

func (s *service) DeleteEvent(ctx context.Context, id int64) error {
	return s.repo.WithTx(ctx, func(tx Repository) error {
		return tx.Delete(ctx, id)
	})
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
