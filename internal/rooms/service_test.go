package rooms

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
)

// countingRepository wraps a real repository and counts how often each read
// operation reaches the store, which is how the cache tests observe hits.
type countingRepository struct {
	Repository
	listCalls int
	slugCalls int
}

func (c *countingRepository) ListByParent(ctx context.Context, parentID *string) ([]Room, error) {
	c.listCalls++
	return c.Repository.ListByParent(ctx, parentID)
}

func (c *countingRepository) GetBySlug(ctx context.Context, slug string) (*Room, error) {
	c.slugCalls++
	return c.Repository.GetBySlug(ctx, slug)
}

func setupService(t *testing.T) (Service, *countingRepository) {
	t.Helper()

	repo, _ := setupRepository(t)
	counting := &countingRepository{Repository: repo}

	resolver, err := NewResolver(counting, nil)
	if err != nil {
		t.Fatalf("NewResolver returned error: %v", err)
	}

	service, err := NewService(ServiceOptions{
		Repository: counting,
		Resolver:   resolver,
		CacheTTL:   time.Minute,
	})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}

	return service, counting
}

func TestNewServiceValidatesDependencies(t *testing.T) {
	t.Parallel()

	if _, err := NewService(ServiceOptions{}); err == nil {
		t.Fatalf("expected error when repository is missing")
	}
}

func TestRoomsServesSecondReadFromCache(t *testing.T) {
	t.Parallel()

	service, counting := setupService(t)
	ctx := context.Background()

	if _, err := service.AddRoom(ctx, NewRoom{Name: "Kitchen", RoomType: TypeKitchen}); err != nil {
		t.Fatalf("AddRoom returned error: %v", err)
	}

	first, err := service.Rooms(ctx, nil)
	if err != nil {
		t.Fatalf("Rooms returned error: %v", err)
	}
	second, err := service.Rooms(ctx, nil)
	if err != nil {
		t.Fatalf("Rooms returned error: %v", err)
	}

	if counting.listCalls != 1 {
		t.Fatalf("expected one store read for two list calls, got %d", counting.listCalls)
	}
	if len(first) != len(second) {
		t.Fatalf("cached list diverged from the fresh one")
	}
}

func TestAddRoomInvalidatesScope(t *testing.T) {
	t.Parallel()

	service, _ := setupService(t)
	ctx := context.Background()

	kitchen, err := service.AddRoom(ctx, NewRoom{Name: "Kitchen", RoomType: TypeKitchen})
	if err != nil {
		t.Fatalf("AddRoom returned error: %v", err)
	}

	// Warm the root cache, then mutate the scope.
	if _, err := service.Rooms(ctx, nil); err != nil {
		t.Fatalf("Rooms returned error: %v", err)
	}
	if _, err := service.AddRoom(ctx, NewRoom{Name: "Parlour"}); err != nil {
		t.Fatalf("AddRoom returned error: %v", err)
	}

	roots, err := service.Rooms(ctx, nil)
	if err != nil {
		t.Fatalf("Rooms returned error: %v", err)
	}
	if len(roots) != 2 {
		t.Fatalf("expected the fresh root list to include the new room, got %d rooms", len(roots))
	}

	// Child scopes are independent of the root scope.
	children, err := service.Rooms(ctx, &kitchen.ID)
	if err != nil {
		t.Fatalf("Rooms returned error: %v", err)
	}
	if len(children) != 0 {
		t.Fatalf("expected empty child scope, got %d rooms", len(children))
	}
}

func TestAddChildRoomLeavesRootScopeIntact(t *testing.T) {
	t.Parallel()

	service, _ := setupService(t)
	ctx := context.Background()

	kitchen, err := service.AddRoom(ctx, NewRoom{Name: "Kitchen", RoomType: TypeKitchen})
	if err != nil {
		t.Fatalf("AddRoom returned error: %v", err)
	}
	if _, err := service.AddRoom(ctx, NewRoom{Name: "Pantry", ParentID: &kitchen.ID}); err != nil {
		t.Fatalf("AddRoom returned error: %v", err)
	}

	children, err := service.Rooms(ctx, &kitchen.ID)
	if err != nil {
		t.Fatalf("Rooms returned error: %v", err)
	}
	if len(children) != 1 {
		t.Fatalf("expected exactly one room under the kitchen, got %d", len(children))
	}

	roots, err := service.Rooms(ctx, nil)
	if err != nil {
		t.Fatalf("Rooms returned error: %v", err)
	}
	if len(roots) != 1 || roots[0].ID != kitchen.ID {
		t.Fatalf("expected the kitchen to remain the only root, got %d rooms", len(roots))
	}
}

func TestRoomCachesSlugLookups(t *testing.T) {
	t.Parallel()

	service, counting := setupService(t)
	ctx := context.Background()

	created, err := service.AddRoom(ctx, NewRoom{Name: "Garden", RoomType: TypeGarden})
	if err != nil {
		t.Fatalf("AddRoom returned error: %v", err)
	}

	for i := 0; i < 3; i++ {
		room, err := service.Room(ctx, created.Slug)
		if err != nil {
			t.Fatalf("Room returned error: %v", err)
		}
		if room.ID != created.ID {
			t.Fatalf("expected room %s, got %s", created.ID, room.ID)
		}
	}

	if counting.slugCalls != 1 {
		t.Fatalf("expected one store read for three slug lookups, got %d", counting.slugCalls)
	}
}

func TestUpdateRoomInvalidatesSlugEntry(t *testing.T) {
	t.Parallel()

	service, _ := setupService(t)
	ctx := context.Background()

	created, err := service.AddRoom(ctx, NewRoom{Name: "Study", RoomType: TypeStudy})
	if err != nil {
		t.Fatalf("AddRoom returned error: %v", err)
	}

	// Warm the slug cache, then update the content through the adapter.
	if _, err := service.Room(ctx, created.Slug); err != nil {
		t.Fatalf("Room returned error: %v", err)
	}

	content := "Notes on the east wing."
	if _, err := service.UpdateRoom(ctx, created.ID, RoomUpdate{Content: &content}); err != nil {
		t.Fatalf("UpdateRoom returned error: %v", err)
	}

	reread, err := service.Room(ctx, created.Slug)
	if err != nil {
		t.Fatalf("Room returned error: %v", err)
	}
	if reread.Content != content {
		t.Fatalf("expected the re-read to reflect the update, got %q", reread.Content)
	}
}

func TestDeleteRoomRejectsDefaults(t *testing.T) {
	t.Parallel()

	service, counting := setupService(t)
	ctx := context.Background()

	created, err := service.AddRoom(ctx, NewRoom{Name: "Grand Foyer", RoomType: TypeHallway})
	if err != nil {
		t.Fatalf("AddRoom returned error: %v", err)
	}

	repo := counting.Repository.(*GormRepository)
	if err := repo.db.Model(&Room{}).Where("id = ?", created.ID).Update("is_default", true).Error; err != nil {
		t.Fatalf("marking room default failed: %v", err)
	}

	if err := service.DeleteRoom(ctx, created.ID); !eris.Is(err, ErrDefaultRoom) {
		t.Fatalf("expected ErrDefaultRoom, got %v", err)
	}

	if _, err := repo.GetByID(ctx, created.ID); err != nil {
		t.Fatalf("default room must survive the rejected delete: %v", err)
	}
}

func TestDeleteRoomInvalidatesScope(t *testing.T) {
	t.Parallel()

	service, _ := setupService(t)
	ctx := context.Background()

	kitchen, err := service.AddRoom(ctx, NewRoom{Name: "Kitchen", RoomType: TypeKitchen})
	if err != nil {
		t.Fatalf("AddRoom returned error: %v", err)
	}
	child, err := service.AddRoom(ctx, NewRoom{Name: "Pantry", ParentID: &kitchen.ID})
	if err != nil {
		t.Fatalf("AddRoom returned error: %v", err)
	}

	if _, err := service.Rooms(ctx, nil); err != nil {
		t.Fatalf("Rooms returned error: %v", err)
	}

	if err := service.DeleteRoom(ctx, kitchen.ID); err != nil {
		t.Fatalf("DeleteRoom returned error: %v", err)
	}

	roots, err := service.Rooms(ctx, nil)
	if err != nil {
		t.Fatalf("Rooms returned error: %v", err)
	}
	if containsID(roots, kitchen.ID) {
		t.Fatalf("deleted room still present in the root scope")
	}

	// The orphaned child remains and its breadcrumb chain truncates.
	chain, err := service.Breadcrumbs(ctx, child.ID)
	if err != nil {
		t.Fatalf("Breadcrumbs returned error: %v", err)
	}
	if len(chain) != 1 || chain[0].ID != child.ID {
		t.Fatalf("expected truncated chain [pantry], got %d rooms", len(chain))
	}
}

func TestBreadcrumbsEndAtRequestedRoom(t *testing.T) {
	t.Parallel()

	service, _ := setupService(t)
	ctx := context.Background()

	kitchen, err := service.AddRoom(ctx, NewRoom{Name: "Kitchen", RoomType: TypeKitchen})
	if err != nil {
		t.Fatalf("AddRoom returned error: %v", err)
	}
	child, err := service.AddRoom(ctx, NewRoom{Name: "Pantry", ParentID: &kitchen.ID})
	if err != nil {
		t.Fatalf("AddRoom returned error: %v", err)
	}

	chain, err := service.Breadcrumbs(ctx, child.ID)
	if err != nil {
		t.Fatalf("Breadcrumbs returned error: %v", err)
	}
	if len(chain) != 2 || chain[0].ID != kitchen.ID || chain[1].ID != child.ID {
		t.Fatalf("expected [kitchen, pantry], got %d rooms", len(chain))
	}
}
