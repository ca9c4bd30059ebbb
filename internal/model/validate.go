package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// ValidateFieldInput checks a FieldInput before it is added to a schema.
// Name, type, and title are all required; select fields must carry at least
// one enum option.
func ValidateFieldInput(in FieldInput) error {
	var ve ValidationError

	if strings.TrimSpace(in.Name) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "name", Message: "is required"})
	}
	if strings.TrimSpace(in.Type) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "type", Message: "is required"})
	}
	if strings.TrimSpace(in.Title) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "title", Message: "is required"})
	}
	if in.Type == "select" && len(in.Enum) == 0 {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "enum",
			Message: "select fields must have options",
		})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}

// ValidateForm checks a Form for constraint violations.
func ValidateForm(f *Form) error {
	var ve ValidationError

	if strings.TrimSpace(f.TenantID) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "customerId", Message: "is required"})
	}
	if strings.TrimSpace(f.FormID) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "formId", Message: "is required"})
	}
	if !f.Type.IsValid() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "type",
			Message: fmt.Sprintf("invalid value %q", f.Type),
		})
	}
	if f.Type == FormTypeCustom && strings.TrimSpace(f.IntegrationKey) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "integrationKey", Message: "is required for custom forms"})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}

// ValidateRecord checks a Record for constraint violations.
func ValidateRecord(r *Record) error {
	var ve ValidationError

	if strings.TrimSpace(r.TenantID) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "customerId", Message: "is required"})
	}
	if strings.TrimSpace(r.RecordType) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "recordType", Message: "is required"})
	}
	if strings.TrimSpace(r.Name) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "name", Message: "is required"})
	}
	if len(r.Fields) > 0 && !json.Valid(r.Fields) {
		ve.Errors = append(ve.Errors, FieldError{Field: "fields", Message: "contains invalid JSON"})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}
