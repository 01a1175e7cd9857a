package rooms

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoomType categorises a room within the mansion.
type RoomType string

// The mansion's room categories.
const (
	TypeRoom     RoomType = "room"
	TypeHallway  RoomType = "hallway"
	TypeLibrary  RoomType = "library"
	TypeKitchen  RoomType = "kitchen"
	TypeGarden   RoomType = "garden"
	TypeBasement RoomType = "basement"
	TypeAttic    RoomType = "attic"
	TypeGallery  RoomType = "gallery"
	TypeStudy    RoomType = "study"
	TypeVault    RoomType = "vault"
)

// DefaultIcon is assigned to rooms created without an explicit glyph.
const DefaultIcon = "🚪"

var roomTypes = map[RoomType]struct{}{
	TypeRoom:     {},
	TypeHallway:  {},
	TypeLibrary:  {},
	TypeKitchen:  {},
	TypeGarden:   {},
	TypeBasement: {},
	TypeAttic:    {},
	TypeGallery:  {},
	TypeStudy:    {},
	TypeVault:    {},
}

// Valid reports whether the room type is one of the known categories.
func (t RoomType) Valid() bool {
	_, ok := roomTypes[t]
	return ok
}

// Room is a node in the mansion's content tree. It doubles as a folder when
// it has children and as a document through its Content field.
type Room struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Slug        string    `gorm:"size:255;uniqueIndex:idx_rooms_slug;not null" json:"slug"`
	Icon        string    `gorm:"size:16;not null" json:"icon"`
	Description string    `gorm:"type:text" json:"description"`
	Content     string    `gorm:"type:text" json:"content"`
	Position    int       `gorm:"not null" json:"position"`
	IsDefault   bool      `gorm:"not null" json:"is_default"`
	ParentID    *string   `gorm:"size:36;index:idx_rooms_parent" json:"parent_id"`
	RoomType    RoomType  `gorm:"size:32;not null" json:"room_type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName defines the table name for the Room model.
func (Room) TableName() string {
	return "rooms"
}

// BeforeCreate assigns the opaque identifier when the store has not seen the row yet.
func (r *Room) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
