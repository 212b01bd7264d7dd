package match

import "context"

// Store keeps the working copy of live matches. Load returns
// ErrMatchNotFound when nothing is stored under id.
type Store interface {
	Load(ctx context.Context, matchID string) (*State, error)
	Save(ctx context.Context, state *State) error
	Delete(ctx context.Context, matchID string) error
}
