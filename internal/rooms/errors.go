package rooms

import "github.com/rotisserie/eris"

var (
	// ErrNotFound indicates the requested room does not exist.
	ErrNotFound = eris.New("room not found")

	// ErrDefaultRoom indicates an attempt to delete a deletion-exempt room.
	ErrDefaultRoom = eris.New("default rooms cannot be deleted")

	// ErrCorruptLineage indicates the parent chain exceeded the maximum
	// supported depth, which only happens when the stored tree contains a
	// cycle or is otherwise malformed.
	ErrCorruptLineage = eris.New("room ancestry exceeds maximum depth")
)
