package enums

import "fmt"

// RequestType identifies the kind of business request an assignment tracks.
type RequestType string

const (
	RequestTypeQuote       RequestType = "QUOTE"
	RequestTypeOrder       RequestType = "ORDER"
	RequestTypeInstallment RequestType = "INSTALLMENT"
	RequestTypeImport      RequestType = "IMPORT"
	RequestTypeMissing     RequestType = "MISSING"
)

var validRequestTypes = []RequestType{
	RequestTypeQuote,
	RequestTypeOrder,
	RequestTypeInstallment,
	RequestTypeImport,
	RequestTypeMissing,
}

// String implements fmt.Stringer.
func (t RequestType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known RequestType.
func (t RequestType) IsValid() bool {
	for _, candidate := range validRequestTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// RequestTypes returns every known request type.
func RequestTypes() []RequestType {
	types := make([]RequestType, len(validRequestTypes))
	copy(types, validRequestTypes)
	return types
}

// ParseRequestType converts raw input into a RequestType.
func ParseRequestType(value string) (RequestType, error) {
	for _, candidate := range validRequestTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid request type %q", value)
}
