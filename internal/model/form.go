package model

import "time"

// FormType distinguishes built-in record types from tenant-created ones.
type FormType string

const (
	FormTypeDefault FormType = "default"
	FormTypeCustom  FormType = "custom"
)

// String returns the string representation of the form type.
func (t FormType) String() string {
	return string(t)
}

// IsValid checks whether the form type is a known value.
func (t FormType) IsValid() bool {
	switch t {
	case FormTypeDefault, FormTypeCustom:
		return true
	}
	return false
}

// Form is a record-type registration for one tenant. FormID is stored
// lower-cased; (tenant_id, form_id) is unique. IntegrationKey is set only
// for custom forms and names the external connection that owns the form's
// data source.
type Form struct {
	TenantID       string    `json:"customerId"`
	FormID         string    `json:"formId"`
	FormTitle      string    `json:"formTitle"`
	Type           FormType  `json:"type"`
	IntegrationKey string    `json:"integrationKey,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
