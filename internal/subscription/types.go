package subscription

// CategoryRef identifies one subscribed stream in the persisted store.
// Identifiers and names may drift independently between the store and the
// live API, which is why resolution matches on both.
type CategoryRef struct {
	ID   int
	Name string
}

// User is a bulletin recipient.
type User struct {
	ID    int
	Email string
	Name  string
}
