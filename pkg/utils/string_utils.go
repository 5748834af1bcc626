package utils

// NewNullString maps an optional form value to a nullable column: nil when
// the value is empty, a pointer to it otherwise.
func NewNullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
