package subscription

import "context"

// Repository is the persisted subscription store. The resolution engine only
// reads from it; the HTTP layer writes through it.
type Repository interface {
	// GetUserSubscriptions returns the streams a user follows, in stable
	// store order.
	GetUserSubscriptions(ctx context.Context, userID int) ([]CategoryRef, error)

	// GetOrCreateUser looks a user up by email, provisioning on first sight.
	GetOrCreateUser(ctx context.Context, email string) (User, error)

	// GetUserByEmail returns the user, or ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (User, error)

	// ListUsers returns every registered recipient.
	ListUsers(ctx context.Context) ([]User, error)

	// DeleteUser removes a recipient and their subscriptions.
	DeleteUser(ctx context.Context, userID int) error

	// ListCategories returns every known category descriptor.
	ListCategories(ctx context.Context) ([]CategoryRef, error)

	// SyncCategories upserts the live API's category listing into the store.
	SyncCategories(ctx context.Context, refs []CategoryRef) error

	// UpdateUserSubscriptions replaces a user's subscription set.
	UpdateUserSubscriptions(ctx context.Context, userID int, categoryIDs []int) error
}
