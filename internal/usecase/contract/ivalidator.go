package usecasecontract

// IValidator validates identifiers and request payloads.
type IValidator interface {
	ValidateID(id string) error
	ValidateStruct(s interface{}) error
}
