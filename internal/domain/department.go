package domain

// Department represents an organizational unit. Names are unique.
type Department struct {
	ID   int64
	Name string
}
