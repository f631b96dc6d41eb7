package ports

import "context"

// LoginThrottle counts failed login attempts per identifier inside a fixed
// window so repeated credential guessing can be cut off before the password
// check runs.
type LoginThrottle interface {
	TooMany(ctx context.Context, identifier string) (bool, error)
	RecordFailure(ctx context.Context, identifier string) error
	Reset(ctx context.Context, identifier string) error
}
