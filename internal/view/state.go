package view

// State is the ephemeral per-session view state: search text, position
// filter, and sort key. It lives only for the page session and is passed
// explicitly into every render; pipeline stages never share it.
type State struct {
	Search   string `json:"search,omitempty"`
	Position string `json:"position,omitempty"`
	// SortKey names a column; a leading '-' reverses direction.
	SortKey string `json:"sort,omitempty"`
}
