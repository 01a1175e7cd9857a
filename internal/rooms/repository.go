package rooms

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NewRoom carries the caller-supplied fields for room creation. Slug,
// position and identifier are assigned by the repository.
type NewRoom struct {
	Name        string
	Icon        string
	Description string
	RoomType    RoomType
	ParentID    *string
}

// RoomUpdate describes a partial metadata or content update. Nil fields are
// left untouched.
type RoomUpdate struct {
	Name        *string
	Icon        *string
	Description *string
	Content     *string
	RoomType    *RoomType
}

// Repository defines persistence operations for mansion rooms.
type Repository interface {
	ListByParent(ctx context.Context, parentID *string) ([]Room, error)
	Create(ctx context.Context, params NewRoom) (*Room, error)
	Update(ctx context.Context, id string, updates RoomUpdate) (*Room, error)
	Delete(ctx context.Context, id string) error
	GetBySlug(ctx context.Context, slug string) (*Room, error)
	GetByID(ctx context.Context, id string) (*Room, error)
}

// GormRepository persists rooms using a Gorm database connection.
type GormRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
	now    func() time.Time
}

// NewRepository constructs a Gorm-backed repository implementation.
func NewRepository(db *gorm.DB, logger *logrus.Logger) (*GormRepository, error) {
	if db == nil {
		return nil, eris.New("gorm DB is required")
	}

	return &GormRepository{db: db, logger: logger, now: time.Now}, nil
}

var _ Repository = (*GormRepository)(nil)

// ListByParent returns the rooms directly under the given parent, ordered by
// position. A nil parentID selects the root scope (parent_id IS NULL).
func (r *GormRepository) ListByParent(ctx context.Context, parentID *string) ([]Room, error) {
	var listed []Room

	query := r.db.WithContext(ctx).Order("position ASC")
	if parentID != nil {
		query = query.Where("parent_id = ?", *parentID)
	} else {
		query = query.Where("parent_id IS NULL")
	}

	if err := query.Find(&listed).Error; err != nil {
		r.logError(logrus.Fields{"parent_id": scopeLabel(parentID)}, err, "listing rooms")
		return nil, eris.Wrapf(err, "listing rooms under %s", scopeLabel(parentID))
	}

	return listed, nil
}

// Create inserts a new room. The slug is derived from the name once and never
// regenerated; the position is the sibling count read inside the insert
// transaction, so sequential creators get 0, 1, 2, ...
func (r *GormRepository) Create(ctx context.Context, params NewRoom) (*Room, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, eris.New("room name is required")
	}

	roomType := params.RoomType
	if roomType == "" {
		roomType = TypeRoom
	}
	if !roomType.Valid() {
		return nil, eris.Errorf("unknown room type: %s", roomType)
	}

	icon := params.Icon
	if icon == "" {
		icon = DefaultIcon
	}

	room := Room{
		Name:        name,
		Slug:        MakeSlug(name, r.now()),
		Icon:        icon,
		Description: strings.TrimSpace(params.Description),
		RoomType:    roomType,
		ParentID:    params.ParentID,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		siblings := tx.Model(&Room{})
		if params.ParentID != nil {
			siblings = siblings.Where("parent_id = ?", *params.ParentID)
		} else {
			siblings = siblings.Where("parent_id IS NULL")
		}

		var count int64
		if err := siblings.Count(&count).Error; err != nil {
			return eris.Wrap(err, "counting siblings")
		}
		room.Position = int(count)

		if err := tx.Create(&room).Error; err != nil {
			return eris.Wrapf(err, "inserting room: %s", room.Slug)
		}
		return nil
	})
	if err != nil {
		r.logError(logrus.Fields{"name": name, "parent_id": scopeLabel(params.ParentID)}, err, "creating room")
		return nil, err
	}

	return &room, nil
}

// Update applies the provided fields and returns the updated room. An update
// with no fields set leaves the row untouched.
func (r *GormRepository) Update(ctx context.Context, id string, updates RoomUpdate) (*Room, error) {
	room, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if updates.Name != nil {
		trimmed := strings.TrimSpace(*updates.Name)
		if trimmed == "" {
			return nil, eris.New("room name cannot be blank")
		}
		fields["name"] = trimmed
	}
	if updates.Icon != nil {
		fields["icon"] = *updates.Icon
	}
	if updates.Description != nil {
		fields["description"] = *updates.Description
	}
	if updates.Content != nil {
		fields["content"] = *updates.Content
	}
	if updates.RoomType != nil {
		if !updates.RoomType.Valid() {
			return nil, eris.Errorf("unknown room type: %s", *updates.RoomType)
		}
		fields["room_type"] = *updates.RoomType
	}

	if len(fields) == 0 {
		return room, nil
	}

	if err := r.db.WithContext(ctx).Model(&Room{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		r.logError(logrus.Fields{"id": id}, err, "updating room")
		return nil, eris.Wrapf(err, "updating room: %s", id)
	}

	return r.GetByID(ctx, id)
}

// Delete removes the room by id. It performs no children handling and no
// default-room policy check; callers enforce both.
func (r *GormRepository) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return eris.New("room id is required")
	}

	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Room{}).Error; err != nil {
		r.logError(logrus.Fields{"id": id}, err, "deleting room")
		return eris.Wrapf(err, "deleting room: %s", id)
	}

	return nil
}

// GetBySlug returns exactly one room for the slug or ErrNotFound. The unique
// index should make a second match impossible; it is guarded regardless.
func (r *GormRepository) GetBySlug(ctx context.Context, slug string) (*Room, error) {
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return nil, eris.New("slug is required")
	}

	var matches []Room
	if err := r.db.WithContext(ctx).Where("slug = ?", trimmed).Limit(2).Find(&matches).Error; err != nil {
		r.logError(logrus.Fields{"slug": trimmed}, err, "fetching room by slug")
		return nil, eris.Wrapf(err, "fetching room by slug: %s", trimmed)
	}

	if len(matches) != 1 {
		return nil, eris.Wrapf(ErrNotFound, "fetching room by slug: %s", trimmed)
	}

	return &matches[0], nil
}

// GetByID returns the room with the given identifier or ErrNotFound.
func (r *GormRepository) GetByID(ctx context.Context, id string) (*Room, error) {
	if strings.TrimSpace(id) == "" {
		return nil, eris.New("room id is required")
	}

	var room Room
	err := r.db.WithContext(ctx).First(&room, "id = ?", id).Error
	if err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, eris.Wrapf(ErrNotFound, "fetching room by id: %s", id)
		}
		r.logError(logrus.Fields{"id": id}, err, "fetching room by id")
		return nil, eris.Wrapf(err, "fetching room by id: %s", id)
	}

	return &room, nil
}

func (r *GormRepository) logError(fields logrus.Fields, err error, message string) {
	if r.logger == nil {
		return
	}

	entry := r.logger.WithField("error", err.Error())
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Error(message)
}

func scopeLabel(parentID *string) string {
	if parentID == nil {
		return "root"
	}
	return *parentID
}
