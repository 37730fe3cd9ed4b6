package repository

// Page carries limit/offset paging plus an optional sort key. Repositories
// only accept sort keys from their own whitelist; anything else falls back
// to the default ordering.
type Page struct {
	Limit    int
	Offset   int
	SortBy   string
	SortDesc bool
}

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
)

// Clamp normalizes a page so repositories never see a hostile limit/offset.
func (p Page) Clamp() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
