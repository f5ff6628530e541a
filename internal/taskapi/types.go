package taskapi

// CategoryRef is a category descriptor from the upstream listing.
type CategoryRef struct {
	ID   int
	Name string
}

// historyRequest is the POST body for the follow-up history endpoint.
type historyRequest struct {
	TaskID   int `json:"TaskId"`
	PageSize int `json:"PageSize"`
}
