package rooms

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

// maxLineageDepth bounds the breadcrumb walk. Real mansions nest a handful of
// levels deep; hitting the bound means the parent chain loops.
const maxLineageDepth = 64

// Resolver reconstructs the ancestor chain of a room by walking parent
// pointers one hop at a time.
type Resolver struct {
	repo   Repository
	logger *logrus.Logger
}

// NewResolver constructs a breadcrumb resolver over the given repository.
func NewResolver(repo Repository, logger *logrus.Logger) (*Resolver, error) {
	if repo == nil {
		return nil, eris.New("room repository is required")
	}

	return &Resolver{repo: repo, logger: logger}, nil
}

// Resolve returns the rooms from the root ancestor down to roomID inclusive.
// A missing ancestor truncates the chain silently rather than failing the
// whole walk, so one lost record never blocks rendering the rest. The walk is
// sequential because each fetch depends on the previous room's parent pointer.
func (r *Resolver) Resolve(ctx context.Context, roomID string) ([]Room, error) {
	if roomID == "" {
		return nil, eris.New("room id is required")
	}

	chain := make([]Room, 0, 4)
	currentID := roomID

	for depth := 0; ; depth++ {
		if depth >= maxLineageDepth {
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{"room_id": roomID, "depth": depth}).
					Error("breadcrumb walk exceeded maximum depth")
			}
			return nil, eris.Wrapf(ErrCorruptLineage, "resolving breadcrumbs for %s", roomID)
		}

		room, err := r.repo.GetByID(ctx, currentID)
		if err != nil {
			if eris.Is(err, ErrNotFound) {
				// Best effort: a vanished ancestor truncates the chain.
				if r.logger != nil && depth > 0 {
					r.logger.WithFields(logrus.Fields{"room_id": roomID, "missing_id": currentID}).
						Warn("breadcrumb chain truncated at missing ancestor")
				}
				return chain, nil
			}
			return nil, eris.Wrapf(err, "resolving breadcrumbs for %s", roomID)
		}

		chain = append([]Room{*room}, chain...)

		if room.ParentID == nil {
			return chain, nil
		}
		currentID = *room.ParentID
	}
}
