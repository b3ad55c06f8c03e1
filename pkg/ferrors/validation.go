package ferrors

// ValidationError is a specialized error type for invalid configuration or
// arguments supplied to the store (a nil config, an empty data directory,
// a nil logger).
type ValidationError struct {
	*baseError
	field    string // Identifies which specific field or parameter failed validation.
	rule     string // Specifies which validation rule was violated (e.g. "required", "range").
	provided any    // Captures what value was actually provided.
}

// NewValidationError creates a new validation-specific error with the provided context.
func NewValidationError(err error, code ErrorCode, msg string) *ValidationError {
	return &ValidationError{baseError: NewBaseError(err, code, msg)}
}

// WithField sets which field failed validation.
func (ve *ValidationError) WithField(field string) *ValidationError {
	ve.field = field
	return ve
}

// WithRule specifies which validation rule was violated.
func (ve *ValidationError) WithRule(rule string) *ValidationError {
	ve.rule = rule
	return ve
}

// WithProvided captures what value was provided that failed validation.
func (ve *ValidationError) WithProvided(value any) *ValidationError {
	ve.provided = value
	return ve
}

// WithDetail adds contextual information while preserving the ValidationError type.
func (ve *ValidationError) WithDetail(key string, value any) *ValidationError {
	ve.baseError.WithDetail(key, value)
	return ve
}

// Field returns the field name that failed validation.
func (ve *ValidationError) Field() string {
	return ve.field
}

// Rule returns the validation rule that was violated.
func (ve *ValidationError) Rule() string {
	return ve.rule
}

// Provided returns the value that was provided and failed validation.
func (ve *ValidationError) Provided() any {
	return ve.provided
}

// NewRequiredFieldError creates a specialized error for a missing required field.
func NewRequiredFieldError(field string) *ValidationError {
	return NewValidationError(nil, ErrorCodeInvalidInput, "required field is missing or empty").
		WithField(field).
		WithRule("required")
}
