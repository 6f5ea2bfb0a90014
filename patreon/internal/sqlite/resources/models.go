package resources

type Resource struct {
	Kind      string
	ID        string
	Payload   string
	UpdatedAt int64
}
