package service

import (
	"context"
	"strings"
	"time"

	"github.com/IlTetta/CoWorkSpace-sub001/internal/booking"
	"github.com/IlTetta/CoWorkSpace-sub001/internal/model"
	"github.com/IlTetta/CoWorkSpace-sub001/internal/repository"
)

// LocationRepository is the subset of repository.LocationRepo used here.
type LocationRepository interface {
	Create(ctx context.Context, l *model.Location) error
	GetByID(ctx context.Context, id uint64) (*model.Location, error)
	ListAll(ctx context.Context) ([]*model.Location, error)
	ListByManager(ctx context.Context, managerID uint64) ([]*model.Location, error)
	Update(ctx context.Context, l *model.Location) error
	Delete(ctx context.Context, id uint64) error
}

// SpaceRepository is the subset of repository.SpaceRepo used here.
type SpaceRepository interface {
	Create(ctx context.Context, sp *model.Space) error
	GetByID(ctx context.Context, id uint64) (*model.Space, error)
	ListByLocation(ctx context.Context, locationID uint64) ([]*model.Space, error)
	Update(ctx context.Context, sp *model.Space) error
	Delete(ctx context.Context, id uint64, now time.Time) error
}

// SpaceService manages locations and the spaces inside them.  Managers
// may only touch their own locations; admins may touch any.
type SpaceService struct {
	locations LocationRepository
	spaces    SpaceRepository
	cache     CacheInvalidator
	now       Clock
}

func NewSpaceService(locations LocationRepository, spaces SpaceRepository, cache CacheInvalidator, now Clock) *SpaceService {
	if cache == nil {
		cache = nopInvalidator{}
	}
	if now == nil {
		now = WallClock(time.UTC)
	}
	return &SpaceService{locations: locations, spaces: spaces, cache: cache, now: now}
}

func (s *SpaceService) ListLocations(ctx context.Context) ([]*model.Location, error) {
	return s.locations.ListAll(ctx)
}

// ListManagedLocations returns the locations the actor may manage.
func (s *SpaceService) ListManagedLocations(ctx context.Context, actor Actor) ([]*model.Location, error) {
	if actor.Role == model.RoleAdmin {
		return s.locations.ListAll(ctx)
	}
	return s.locations.ListByManager(ctx, actor.UserID)
}

func (s *SpaceService) GetLocation(ctx context.Context, id uint64) (*model.Location, error) {
	return s.locations.GetByID(ctx, id)
}

// ListSpaces lists the spaces of an existing location.
func (s *SpaceService) ListSpaces(ctx context.Context, locationID uint64) ([]*model.Space, error) {
	if _, err := s.locations.GetByID(ctx, locationID); err != nil {
		return nil, err
	}
	return s.spaces.ListByLocation(ctx, locationID)
}

func (s *SpaceService) GetSpace(ctx context.Context, id uint64) (*model.Space, error) {
	return s.spaces.GetByID(ctx, id)
}

// CreateLocation stores a new location.  A manager always becomes its
// manager; an admin may assign one and defaults to themselves.
func (s *SpaceService) CreateLocation(ctx context.Context, actor Actor, l *model.Location) error {
	if !actor.Privileged() {
		return repository.ErrForbidden
	}
	if err := validateLocation(l); err != nil {
		return err
	}
	if actor.Role != model.RoleAdmin || l.ManagerID == 0 {
		l.ManagerID = actor.UserID
	}
	return s.locations.Create(ctx, l)
}

// UpdateLocation rewrites the descriptive fields of a location.  Only an
// admin may hand the location over to another manager.
func (s *SpaceService) UpdateLocation(ctx context.Context, actor Actor, l *model.Location) error {
	current, err := s.ownedLocation(ctx, actor, l.ID)
	if err != nil {
		return err
	}
	if err := validateLocation(l); err != nil {
		return err
	}
	if actor.Role != model.RoleAdmin || l.ManagerID == 0 {
		l.ManagerID = current.ManagerID
	}
	if err := s.locations.Update(ctx, l); err != nil {
		return err
	}
	stored, err := s.locations.GetByID(ctx, l.ID)
	if err != nil {
		return err
	}
	*l = *stored
	return nil
}

// DeleteLocation removes a location without spaces.
func (s *SpaceService) DeleteLocation(ctx context.Context, actor Actor, id uint64) error {
	if _, err := s.ownedLocation(ctx, actor, id); err != nil {
		return err
	}
	return s.locations.Delete(ctx, id)
}

// CreateSpace validates the schedule and rates and stores the space in
// canonical form.
func (s *SpaceService) CreateSpace(ctx context.Context, actor Actor, sp *model.Space) error {
	if _, err := s.ownedLocation(ctx, actor, sp.LocationID); err != nil {
		return err
	}
	if err := normalizeSpace(sp); err != nil {
		return err
	}
	return s.spaces.Create(ctx, sp)
}

// UpdateSpace rewrites a space.  Existing reservations keep their price
// and are not rechecked against the new schedule.
func (s *SpaceService) UpdateSpace(ctx context.Context, actor Actor, sp *model.Space) error {
	current, err := s.spaces.GetByID(ctx, sp.ID)
	if err != nil {
		return err
	}
	if _, err := s.ownedLocation(ctx, actor, current.LocationID); err != nil {
		return err
	}
	sp.LocationID = current.LocationID
	if err := normalizeSpace(sp); err != nil {
		return err
	}
	if err := s.spaces.Update(ctx, sp); err != nil {
		return err
	}
	s.invalidate(ctx, sp.ID)
	stored, err := s.spaces.GetByID(ctx, sp.ID)
	if err != nil {
		return err
	}
	*sp = *stored
	return nil
}

// DeleteSpace removes a space that has no upcoming live reservations.
func (s *SpaceService) DeleteSpace(ctx context.Context, actor Actor, id uint64) error {
	current, err := s.spaces.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.ownedLocation(ctx, actor, current.LocationID); err != nil {
		return err
	}
	if err := s.spaces.Delete(ctx, id, s.now()); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *SpaceService) ownedLocation(ctx context.Context, actor Actor, id uint64) (*model.Location, error) {
	if !actor.Privileged() {
		return nil, repository.ErrForbidden
	}
	loc, err := s.locations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != model.RoleAdmin && loc.ManagerID != actor.UserID {
		return nil, repository.ErrForbidden
	}
	return loc, nil
}

func (s *SpaceService) invalidate(ctx context.Context, spaceID uint64) {
	_ = s.cache.InvalidateSpace(ctx, spaceID)
}

func validateLocation(l *model.Location) error {
	l.Name = strings.TrimSpace(l.Name)
	l.Address = strings.TrimSpace(l.Address)
	if l.Name == "" || l.Address == "" {
		return booking.Validationf("location name and address are required")
	}
	return nil
}

// normalizeSpace checks a space's schedule and rates and rewrites the
// schedule columns in their canonical text form.
func normalizeSpace(sp *model.Space) error {
	sp.Name = strings.TrimSpace(sp.Name)
	if sp.Name == "" {
		return booking.Validationf("space name is required")
	}
	if sp.Capacity == 0 {
		return booking.Validationf("capacity must be at least 1")
	}
	if sp.Status == "" {
		sp.Status = string(booking.SpaceActive)
	}
	sched, err := sp.Schedule()
	if err != nil {
		return err
	}
	if err := sched.Validate(); err != nil {
		return err
	}
	if err := sp.Rates().Validate(); err != nil {
		return err
	}
	sp.OpeningTime = sched.OpeningTime.String()
	sp.ClosingTime = sched.ClosingTime.String()
	sp.AvailableDays = sched.AvailableWeekdays.String()
	return nil
}
