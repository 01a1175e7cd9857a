package rooms

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migrate applies the rooms schema using Gorm's AutoMigrate and seeds the
// mansion's ground floor on first run.
func Migrate(ctx context.Context, db *gorm.DB, logger *logrus.Logger) error {
	if db == nil {
		return eris.New("gorm DB is required")
	}

	logFields := logrus.Fields{"component": "rooms.migrate"}
	if logger != nil {
		logger.WithFields(logFields).Info("applying rooms schema")
	}

	if err := db.WithContext(ctx).AutoMigrate(&Room{}); err != nil {
		if logger != nil {
			logger.WithFields(logFields).WithField("error", err.Error()).Error("rooms schema migration failed")
		}
		return eris.Wrap(err, "auto migrating rooms schema")
	}

	seeded, err := seedDefaultRooms(ctx, db)
	if err != nil {
		if logger != nil {
			logger.WithFields(logFields).WithField("error", err.Error()).Error("seeding default rooms failed")
		}
		return err
	}

	if logger != nil {
		logger.WithFields(logFields).WithField("seeded", seeded).Info("rooms schema migration complete")
	}

	return nil
}

// seedDefaultRooms installs the deletion-exempt ground-floor rooms when the
// mansion is empty. Reports how many rooms were created.
func seedDefaultRooms(ctx context.Context, db *gorm.DB) (int, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&Room{}).Count(&count).Error; err != nil {
		return 0, eris.Wrap(err, "counting existing rooms")
	}
	if count > 0 {
		return 0, nil
	}

	now := time.Now()
	defaults := []Room{
		{
			Name:        "Grand Foyer",
			Slug:        MakeSlug("Grand Foyer", now),
			Icon:        "🏛️",
			Description: "The entrance hall. Every visit starts here.",
			Position:    0,
			IsDefault:   true,
			RoomType:    TypeHallway,
		},
		{
			Name:        "Library",
			Slug:        MakeSlug("Library", now.Add(time.Millisecond)),
			Icon:        "📚",
			Description: "Shelves of notes nobody has opened in years.",
			Position:    1,
			IsDefault:   true,
			RoomType:    TypeLibrary,
		},
		{
			Name:        "Study",
			Slug:        MakeSlug("Study", now.Add(2*time.Millisecond)),
			Icon:        "📖",
			Description: "A quiet place to write things down.",
			Position:    2,
			IsDefault:   true,
			RoomType:    TypeStudy,
		},
	}

	if err := db.WithContext(ctx).Create(&defaults).Error; err != nil {
		return 0, eris.Wrap(err, "seeding default rooms")
	}

	return len(defaults), nil
}
