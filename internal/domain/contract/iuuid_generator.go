package contract

// IUUIDGenerator generates unique identifiers.
type IUUIDGenerator interface {
	NewUUID() string
}
