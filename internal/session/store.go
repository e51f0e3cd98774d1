package session

import "conduit/internal/entity"

// Store is the local-storage collaborator: one slot holding the viewer.
// Implementations must treat an absent slot as Guest (nil, no error).
type Store interface {
	// Load reads the stored viewer; nil means no one is logged in.
	Load() (*entity.Viewer, error)

	// Save replaces the slot with the given viewer.
	Save(v entity.Viewer) error

	// Clear empties the slot. Clearing an empty slot is not an error.
	Clear() error

	// Close gracefully shuts down the store.
	Close() error
}
