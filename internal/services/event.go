package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"deveventhub/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	cache          domain.EventCache
	contextTimeout time.Duration
}

// NewEventService builds the event service. cache may be nil, in which case
// lookups always go to the repository.
func NewEventService(eventRepo domain.EventRepository, cache domain.EventCache, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		cache:          cache,
		contextTimeout: timeout,
	}
}

func requireField(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return domain.NewValidationError(field, "is required")
	}
	return nil
}

func (s *eventService) Create(ctx context.Context, in domain.CreateEventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	for field, value := range map[string]string{
		"title":       in.Title,
		"description": in.Description,
		"overview":    in.Overview,
		"image":       in.Image,
		"venue":       in.Venue,
		"location":    in.Location,
		"audience":    in.Audience,
		"organizer":   in.Organizer,
	} {
		if err := requireField(field, value); err != nil {
			return nil, err
		}
	}
	mode := strings.ToLower(strings.TrimSpace(in.Mode))
	if !domain.ValidMode(mode) {
		return nil, domain.NewValidationError("mode", "must be one of online, offline, hybrid")
	}
	if len(in.Tags) == 0 {
		return nil, domain.NewValidationError("tags", "must not be empty")
	}
	if len(in.Agenda) == 0 {
		return nil, domain.NewValidationError("agenda", "must not be empty")
	}

	title := strings.TrimSpace(in.Title)
	slug, err := domain.GenerateSlug(title)
	if err != nil {
		return nil, err
	}
	date, err := domain.NormalizeDate(in.Date)
	if err != nil {
		return nil, err
	}
	normalizedTime, err := domain.NormalizeTime(in.Time)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	event := &domain.Event{
		ID:          uuid.NewString(),
		Slug:        slug,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Overview:    strings.TrimSpace(in.Overview),
		Image:       strings.TrimSpace(in.Image),
		Venue:       strings.TrimSpace(in.Venue),
		Location:    strings.TrimSpace(in.Location),
		Date:        date,
		Time:        normalizedTime,
		Mode:        mode,
		Audience:    strings.TrimSpace(in.Audience),
		Organizer:   strings.TrimSpace(in.Organizer),
		Tags:        in.Tags,
		Agenda:      in.Agenda,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) Update(ctx context.Context, eventID string, in domain.UpdateEventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("load event: %w", err)
	}
	oldSlug := event.Slug

	// The slug is re-derived only when the title actually changes, so a stored
	// slug never drifts on unrelated updates.
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title != event.Title {
			slug, err := domain.GenerateSlug(title)
			if err != nil {
				return nil, err
			}
			event.Title = title
			event.Slug = slug
		}
	}
	if in.Date != nil {
		date, err := domain.NormalizeDate(*in.Date)
		if err != nil {
			return nil, err
		}
		event.Date = date
	}
	if in.Time != nil {
		normalizedTime, err := domain.NormalizeTime(*in.Time)
		if err != nil {
			return nil, err
		}
		event.Time = normalizedTime
	}
	if in.Mode != nil {
		mode := strings.ToLower(strings.TrimSpace(*in.Mode))
		if !domain.ValidMode(mode) {
			return nil, domain.NewValidationError("mode", "must be one of online, offline, hybrid")
		}
		event.Mode = mode
	}
	for field, pair := range map[string]struct {
		src *string
		dst *string
	}{
		"description": {in.Description, &event.Description},
		"overview":    {in.Overview, &event.Overview},
		"image":       {in.Image, &event.Image},
		"venue":       {in.Venue, &event.Venue},
		"location":    {in.Location, &event.Location},
		"audience":    {in.Audience, &event.Audience},
		"organizer":   {in.Organizer, &event.Organizer},
	} {
		if pair.src == nil {
			continue
		}
		if err := requireField(field, *pair.src); err != nil {
			return nil, err
		}
		*pair.dst = strings.TrimSpace(*pair.src)
	}
	if in.Tags != nil {
		if len(in.Tags) == 0 {
			return nil, domain.NewValidationError("tags", "must not be empty")
		}
		event.Tags = in.Tags
	}
	if in.Agenda != nil {
		if len(in.Agenda) == 0 {
			return nil, domain.NewValidationError("agenda", "must not be empty")
		}
		event.Agenda = in.Agenda
	}

	event.UpdatedAt = time.Now().UTC()
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	if s.cache != nil {
		// Best effort: a failed invalidation only delays freshness until the
		// cache TTL expires.
		_ = s.cache.Invalidate(ctx, oldSlug)
		if event.Slug != oldSlug {
			_ = s.cache.Invalidate(ctx, event.Slug)
		}
	}
	return event, nil
}

func (s *eventService) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Any cache error, miss or otherwise, falls through to the repository.
	if s.cache != nil {
		if event, err := s.cache.GetBySlug(ctx, slug); err == nil {
			return event, nil
		}
	}
	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get event by slug: %w", err)
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, event)
	}
	return event, nil
}

func (s *eventService) List(ctx context.Context, search string, params domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, total, err := s.eventRepo.List(ctx, strings.TrimSpace(search), params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	return events, total, nil
}
