package constants

const (
	Create = "create"
	Update = "update"
	Delete = "delete"
	Rate   = "rate"
)
