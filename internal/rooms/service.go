package rooms

import (
	"context"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

// Service exposes the room tree the way the mansion's pages consume it:
// scope-keyed cached lists plus the mutation entry points that keep those
// caches honest.
type Service interface {
	Rooms(ctx context.Context, parentID *string) ([]Room, error)
	Room(ctx context.Context, slug string) (*Room, error)
	AddRoom(ctx context.Context, params NewRoom) (*Room, error)
	UpdateRoom(ctx context.Context, id string, updates RoomUpdate) (*Room, error)
	DeleteRoom(ctx context.Context, id string) error
	Breadcrumbs(ctx context.Context, roomID string) ([]Room, error)
}

type service struct {
	repo      Repository
	resolver  *Resolver
	cache     *gocache.Cache
	logger    *logrus.Logger
	sentryHub *sentry.Hub
}

var _ Service = (*service)(nil)

const defaultCacheTTL = 5 * time.Minute

// ServiceOptions wires the room service with its dependencies.
type ServiceOptions struct {
	Repository Repository
	Resolver   *Resolver
	CacheTTL   time.Duration
	Logger     *logrus.Logger
	SentryHub  *sentry.Hub
}

// NewService constructs the room service. The cache TTL bounds staleness for
// reads that race an external writer; mutations through this service always
// invalidate synchronously before returning.
func NewService(opts ServiceOptions) (Service, error) {
	if opts.Repository == nil {
		return nil, eris.New("room repository is required")
	}
	if opts.Resolver == nil {
		return nil, eris.New("breadcrumb resolver is required")
	}

	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	return &service{
		repo:      opts.Repository,
		resolver:  opts.Resolver,
		cache:     gocache.New(ttl, 2*ttl),
		logger:    opts.Logger,
		sentryHub: opts.SentryHub,
	}, nil
}

// Rooms returns the cached list for the scope, falling through to the
// repository on a miss.
func (s *service) Rooms(ctx context.Context, parentID *string) ([]Room, error) {
	key := scopeKey(parentID)
	if cached, found := s.cache.Get(key); found {
		return cached.([]Room), nil
	}

	listed, err := s.repo.ListByParent(ctx, parentID)
	if err != nil {
		s.recordError(logrus.Fields{"scope": scopeLabel(parentID)}, err, "listing rooms for scope")
		return nil, err
	}

	s.cache.SetDefault(key, listed)
	return listed, nil
}

// Room returns the room addressed by slug, cached per slug.
func (s *service) Room(ctx context.Context, slug string) (*Room, error) {
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return nil, eris.New("slug is required")
	}

	key := slugKey(trimmed)
	if cached, found := s.cache.Get(key); found {
		room := cached.(Room)
		return &room, nil
	}

	room, err := s.repo.GetBySlug(ctx, trimmed)
	if err != nil {
		if !eris.Is(err, ErrNotFound) {
			s.recordError(logrus.Fields{"slug": trimmed}, err, "fetching room by slug")
		}
		return nil, err
	}

	s.cache.SetDefault(key, *room)
	return room, nil
}

// AddRoom creates a room and drops the cached list for its scope before
// returning, so an await-then-read always sees the new room.
func (s *service) AddRoom(ctx context.Context, params NewRoom) (*Room, error) {
	room, err := s.repo.Create(ctx, params)
	if err != nil {
		s.recordError(logrus.Fields{"name": params.Name}, err, "creating room")
		return nil, err
	}

	s.cache.Delete(scopeKey(room.ParentID))
	return room, nil
}

// UpdateRoom applies a partial update and invalidates the room's scope list
// and slug entry. Parent moves are not supported by this layer, so no other
// scope can be affected.
func (s *service) UpdateRoom(ctx context.Context, id string, updates RoomUpdate) (*Room, error) {
	room, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if !eris.Is(err, ErrNotFound) {
			s.recordError(logrus.Fields{"id": id}, err, "updating room")
		}
		return nil, err
	}

	s.cache.Delete(scopeKey(room.ParentID))
	s.cache.Delete(slugKey(room.Slug))
	return room, nil
}

// DeleteRoom removes a room unless it is deletion-exempt. The policy check
// lives here, not in the repository: calling the repository directly deletes
// unconditionally. Children of the deleted room are left in place; the
// breadcrumb walk degrades gracefully around the missing ancestor.
func (s *service) DeleteRoom(ctx context.Context, id string) error {
	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !eris.Is(err, ErrNotFound) {
			s.recordError(logrus.Fields{"id": id}, err, "loading room for deletion")
		}
		return err
	}

	if room.IsDefault {
		return eris.Wrapf(ErrDefaultRoom, "deleting room: %s", room.Slug)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.recordError(logrus.Fields{"id": id}, err, "deleting room")
		return err
	}

	s.cache.Delete(scopeKey(room.ParentID))
	s.cache.Delete(slugKey(room.Slug))
	return nil
}

// Breadcrumbs resolves the ancestry chain for the room. Chains are not cached:
// they are cheap at the expected nesting depth and staleness here is more
// visible than anywhere else.
func (s *service) Breadcrumbs(ctx context.Context, roomID string) ([]Room, error) {
	chain, err := s.resolver.Resolve(ctx, roomID)
	if err != nil {
		s.recordError(logrus.Fields{"room_id": roomID}, err, "resolving breadcrumbs")
		return nil, err
	}
	return chain, nil
}

func (s *service) recordError(fields logrus.Fields, err error, message string) {
	if err == nil {
		return
	}

	if s.logger != nil {
		entry := s.logger.WithField("error", err.Error())
		if len(fields) > 0 {
			entry = entry.WithFields(fields)
		}
		entry.Error(message)
	}

	if s.sentryHub != nil {
		s.sentryHub.CaptureException(err)
	}
}

func scopeKey(parentID *string) string {
	return "scope:" + scopeLabel(parentID)
}

func slugKey(slug string) string {
	return "slug:" + slug
}
