package domain

// Office is a physical location employees can be assigned to.
type Office struct {
	ID      int64
	Name    string
	City    string
	Country string
	Address *string
}
