package trip

import "github.com/travelplanner/service-trip/internal/domain/shared"

// Field names one picker of the trip form.
type Field string

const (
	FieldOrigin        Field = "cityOfOrigin"
	FieldIntermediates Field = "intermediateCities"
	FieldDestination   Field = "cityOfDestination"
)

// Fields lists the pickers in sequence order.
var Fields = []Field{FieldOrigin, FieldIntermediates, FieldDestination}

// IsMultiple reports whether the field holds several values.
func (f Field) IsMultiple() bool {
	return f == FieldIntermediates
}

// String returns the form field name.
func (f Field) String() string {
	return string(f)
}

// ParseField converts a form field name to a Field.
func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", shared.NewValidationError("unknown trip field: " + s)
}
