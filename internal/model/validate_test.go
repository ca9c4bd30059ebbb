package model

import (
	"encoding/json"
	"strings"
	"testing"
)

// fieldErrors extracts a *ValidationError from err or fails the test.
func fieldErrors(t *testing.T, err error) []FieldError {
	t.Helper()
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	return ve.Errors
}

// hasFieldError reports whether the error list contains an error for the given field.
func hasFieldError(errs []FieldError, field string) bool {
	for _, fe := range errs {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func validFieldInput() FieldInput {
	return FieldInput{Name: "industry", Title: "Industry", Type: "text"}
}

func TestValidateFieldInput_Valid(t *testing.T) {
	if err := ValidateFieldInput(validFieldInput()); err != nil {
		t.Errorf("valid input should pass, got: %v", err)
	}
}

func TestValidateFieldInput_NameRequired(t *testing.T) {
	in := validFieldInput()
	in.Name = "  "
	if !hasFieldError(fieldErrors(t, ValidateFieldInput(in)), "name") {
		t.Error("expected error on field 'name'")
	}
}

func TestValidateFieldInput_TypeRequired(t *testing.T) {
	in := validFieldInput()
	in.Type = ""
	if !hasFieldError(fieldErrors(t, ValidateFieldInput(in)), "type") {
		t.Error("expected error on field 'type'")
	}
}

func TestValidateFieldInput_TitleRequired(t *testing.T) {
	in := validFieldInput()
	in.Title = ""
	if !hasFieldError(fieldErrors(t, ValidateFieldInput(in)), "title") {
		t.Error("expected error on field 'title'")
	}
}

func TestValidateFieldInput_SelectNeedsOptions(t *testing.T) {
	in := validFieldInput()
	in.Type = "select"
	in.Enum = nil
	err := ValidateFieldInput(in)
	errs := fieldErrors(t, err)
	if !hasFieldError(errs, "enum") {
		t.Error("expected error on field 'enum' for select without options")
	}
	if !strings.Contains(err.Error(), "select fields must have options") {
		t.Errorf("error message = %q", err.Error())
	}

	in.Enum = []string{}
	if !hasFieldError(fieldErrors(t, ValidateFieldInput(in)), "enum") {
		t.Error("expected error on field 'enum' for select with empty options")
	}

	in.Enum = []string{"a"}
	if err := ValidateFieldInput(in); err != nil {
		t.Errorf("select with options should pass, got: %v", err)
	}
}

func validForm() *Form {
	return &Form{
		TenantID:       "T1",
		FormID:         "invoices",
		FormTitle:      "Invoices",
		Type:           FormTypeCustom,
		IntegrationKey: "conn-1",
	}
}

func TestValidateForm_Valid(t *testing.T) {
	if err := ValidateForm(validForm()); err != nil {
		t.Errorf("valid form should pass, got: %v", err)
	}
}

func TestValidateForm_TenantRequired(t *testing.T) {
	f := validForm()
	f.TenantID = ""
	if !hasFieldError(fieldErrors(t, ValidateForm(f)), "customerId") {
		t.Error("expected error on field 'customerId'")
	}
}

func TestValidateForm_FormIDRequired(t *testing.T) {
	f := validForm()
	f.FormID = " "
	if !hasFieldError(fieldErrors(t, ValidateForm(f)), "formId") {
		t.Error("expected error on field 'formId'")
	}
}

func TestValidateForm_InvalidType(t *testing.T) {
	f := validForm()
	f.Type = "weird"
	if !hasFieldError(fieldErrors(t, ValidateForm(f)), "type") {
		t.Error("expected error on field 'type'")
	}
}

func TestValidateForm_CustomNeedsIntegrationKey(t *testing.T) {
	f := validForm()
	f.IntegrationKey = ""
	if !hasFieldError(fieldErrors(t, ValidateForm(f)), "integrationKey") {
		t.Error("expected error on field 'integrationKey'")
	}

	f.Type = FormTypeDefault
	if err := ValidateForm(f); err != nil {
		t.Errorf("default form without integration key should pass, got: %v", err)
	}
}

func validRecord() *Record {
	return &Record{TenantID: "T1", RecordType: "clients", Name: "Acme"}
}

func TestValidateRecord_Valid(t *testing.T) {
	if err := ValidateRecord(validRecord()); err != nil {
		t.Errorf("valid record should pass, got: %v", err)
	}
}

func TestValidateRecord_RequiredFields(t *testing.T) {
	for _, tc := range []struct {
		mutate func(*Record)
		field  string
	}{
		{func(r *Record) { r.TenantID = "" }, "customerId"},
		{func(r *Record) { r.RecordType = "" }, "recordType"},
		{func(r *Record) { r.Name = "  " }, "name"},
	} {
		r := validRecord()
		tc.mutate(r)
		if !hasFieldError(fieldErrors(t, ValidateRecord(r)), tc.field) {
			t.Errorf("expected error on field %q", tc.field)
		}
	}
}

func TestValidateRecord_InvalidFieldsJSON(t *testing.T) {
	r := validRecord()
	r.Fields = json.RawMessage(`{"broken`)
	if !hasFieldError(fieldErrors(t, ValidateRecord(r)), "fields") {
		t.Error("expected error on field 'fields' for invalid JSON")
	}

	r.Fields = json.RawMessage(`{"industry":"retail"}`)
	if err := ValidateRecord(r); err != nil {
		t.Errorf("valid fields JSON should pass, got: %v", err)
	}
}
