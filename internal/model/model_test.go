package model

import (
	"testing"
)

func TestNewFieldDefinition_Select(t *testing.T) {
	def := NewFieldDefinition(FieldInput{
		Name:  "priority",
		Title: "Priority",
		Type:  "select",
		Enum:  []string{"low", "medium", "high"},
	})
	if def.Type != "string" {
		t.Errorf("select field type = %q, want %q", def.Type, "string")
	}
	if len(def.Enum) != 3 || def.Enum[0] != "low" {
		t.Errorf("select field enum = %v", def.Enum)
	}
	if def.Format != "" {
		t.Errorf("select field format = %q, want empty", def.Format)
	}
}

func TestNewFieldDefinition_Formats(t *testing.T) {
	for _, tc := range []struct {
		inputType string
		format    string
	}{
		{"email", "email"},
		{"phone", "phone"},
		{"currency", "currency"},
		{"date", "date"},
	} {
		def := NewFieldDefinition(FieldInput{Name: "f", Title: "F", Type: tc.inputType})
		if def.Type != "string" {
			t.Errorf("%s field type = %q, want %q", tc.inputType, def.Type, "string")
		}
		if def.Format != tc.format {
			t.Errorf("%s field format = %q, want %q", tc.inputType, def.Format, tc.format)
		}
	}
}

func TestNewFieldDefinition_TextPassthrough(t *testing.T) {
	def := NewFieldDefinition(FieldInput{Name: "notes", Title: "Notes", Type: "text", Default: "n/a"})
	if def.Type != "text" {
		t.Errorf("text field type = %q, want %q", def.Type, "text")
	}
	if def.Format != "" || def.Enum != nil {
		t.Errorf("text field should carry no format or enum, got %+v", def)
	}
	if def.Default != "n/a" {
		t.Errorf("default = %q, want %q", def.Default, "n/a")
	}
}

func TestFieldDefinition_NormalizeStripsEmptyEnum(t *testing.T) {
	def := &FieldDefinition{Type: "string", Title: "Status", Enum: []string{}}
	def.Normalize()
	if def.Enum != nil {
		t.Errorf("empty enum should be stripped, got %v", def.Enum)
	}

	def = &FieldDefinition{Type: "string", Title: "Status", Enum: []string{"open"}}
	def.Normalize()
	if len(def.Enum) != 1 {
		t.Errorf("non-empty enum should survive, got %v", def.Enum)
	}
}

func TestProperties_Clone(t *testing.T) {
	p := Properties{
		"status": {Type: "string", Title: "Status", Enum: []string{"open", "done"}},
	}
	c := p.Clone()

	c["status"].Enum[0] = "mutated"
	c["extra"] = &FieldDefinition{Type: "string", Title: "Extra"}

	if p["status"].Enum[0] != "open" {
		t.Error("clone shares enum backing array with original")
	}
	if _, ok := p["extra"]; ok {
		t.Error("clone shares map with original")
	}
}

func TestSchema_NormalizeFiltersRequired(t *testing.T) {
	s := &Schema{
		Properties: Properties{
			"id":   {Type: "string", Title: "ID"},
			"name": {Type: "string", Title: "Name", Enum: []string{}},
		},
		Required: []string{"id", "name", "ghost"},
	}
	s.Normalize()

	if len(s.Required) != 2 {
		t.Fatalf("required = %v, want [id name]", s.Required)
	}
	for _, name := range s.Required {
		if _, ok := s.Properties[name]; !ok {
			t.Errorf("required entry %q has no matching property", name)
		}
	}
	if s.Properties["name"].Enum != nil {
		t.Error("empty enum should be stripped during normalize")
	}
}

func TestSchema_NormalizeNilDefaults(t *testing.T) {
	s := &Schema{}
	s.Normalize()
	if s.Properties == nil {
		t.Error("properties should default to an empty map")
	}
	if s.Required == nil {
		t.Error("required should default to an empty slice")
	}
}

func TestSchema_JSONSchema(t *testing.T) {
	s := &Schema{
		TenantID:   "T1",
		RecordType: "activities",
		Properties: Properties{"id": {Type: "string", Title: "ID"}},
		Required:   []string{"id"},
	}
	js := s.JSONSchema()
	if js.Type != "object" {
		t.Errorf("type = %q, want %q", js.Type, "object")
	}
	if len(js.Properties) != 1 || len(js.Required) != 1 {
		t.Errorf("unexpected schema shape: %+v", js)
	}
}

func TestFormType_IsValid(t *testing.T) {
	if !FormTypeDefault.IsValid() || !FormTypeCustom.IsValid() {
		t.Error("known form types should be valid")
	}
	if FormType("bogus").IsValid() {
		t.Error("unknown form type should be invalid")
	}
}
