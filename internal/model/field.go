package model

// FieldDefinition describes a single schema property in JSON-Schema shape.
// Enum and Format are mutually exclusive; an empty enum is never stored.
type FieldDefinition struct {
	Type    string   `json:"type"`
	Title   string   `json:"title"`
	Format  string   `json:"format,omitempty"`
	Enum    []string `json:"enum,omitempty"`
	Default string   `json:"default,omitempty"`
}

// FieldInput is the user-facing shape for adding a field to a schema.
// Type carries the UI-level kind ("text", "select", "email", ...); it is
// normalized into a FieldDefinition before storage.
type FieldInput struct {
	Name     string   `json:"name"`
	Title    string   `json:"title"`
	Type     string   `json:"type"`
	Enum     []string `json:"enum,omitempty"`
	Default  string   `json:"default,omitempty"`
	Required bool     `json:"required,omitempty"`
}

// formatFor maps UI-level field types to their JSON-Schema format hint.
var formatFor = map[string]string{
	"email":    "email",
	"phone":    "phone",
	"currency": "currency",
	"date":     "date",
}

// NewFieldDefinition normalizes a FieldInput into a storable FieldDefinition.
// "select" becomes type "string" with the enum attached; format-bearing types
// (email, phone, currency, date) become "string" with the matching format.
func NewFieldDefinition(in FieldInput) *FieldDefinition {
	def := &FieldDefinition{
		Type:    in.Type,
		Title:   in.Title,
		Default: in.Default,
	}

	if format, ok := formatFor[in.Type]; ok {
		def.Type = "string"
		def.Format = format
	}

	if in.Type == "select" {
		def.Type = "string"
		if len(in.Enum) > 0 {
			def.Enum = in.Enum
		}
	}

	return def
}

// Normalize strips attributes that must never be persisted or returned:
// an empty enum is equivalent to no enum at all.
func (f *FieldDefinition) Normalize() {
	if f.Enum != nil && len(f.Enum) == 0 {
		f.Enum = nil
	}
}

// Properties maps field names to their definitions.
type Properties map[string]*FieldDefinition

// Normalize applies FieldDefinition.Normalize to every property. It is run
// on every read and before every write so legacy rows with empty enums are
// corrected silently.
func (p Properties) Normalize() {
	for _, def := range p {
		if def != nil {
			def.Normalize()
		}
	}
}

// Clone returns a deep copy of the properties map.
func (p Properties) Clone() Properties {
	out := make(Properties, len(p))
	for name, def := range p {
		if def == nil {
			continue
		}
		copied := *def
		if def.Enum != nil {
			copied.Enum = append([]string(nil), def.Enum...)
		}
		out[name] = &copied
	}
	return out
}
