package model

// GraphFilter narrows and pages graph listings.
type GraphFilter struct {
	Search string // substring match on name or description
	Sort   string // column name, "-" prefix for descending
	Limit  int
	Offset int
}
