// Package catalog holds the static seed data for built-in record types:
// the default field schema each one starts from, and the set of built-in
// form registrations reconciled for every tenant.
package catalog

import "github.com/groblegark/kforms/internal/model"

// Entry is the seed shape a freshly-instantiated schema is copied from.
type Entry struct {
	Properties model.Properties
	Required   []string
}

// FormSeed describes one built-in record type to register for every tenant.
type FormSeed struct {
	FormID string
	Title  string
}

// Catalog is an immutable lookup table from record-type key to default
// schema entry. It is injected into the server so tests can substitute
// fixtures without touching persistence.
type Catalog struct {
	entries map[string]Entry
	forms   []FormSeed
}

// New builds a catalog from the given entries and built-in form seeds.
func New(entries map[string]Entry, forms []FormSeed) *Catalog {
	return &Catalog{entries: entries, forms: forms}
}

// Lookup returns the seed entry for a record-type key. A deep copy is
// returned so callers can never mutate the catalog.
func (c *Catalog) Lookup(recordType string) (Entry, bool) {
	e, ok := c.entries[recordType]
	if !ok {
		return Entry{}, false
	}
	return Entry{
		Properties: e.Properties.Clone(),
		Required:   append([]string(nil), e.Required...),
	}, true
}

// Forms returns the built-in form registrations.
func (c *Catalog) Forms() []FormSeed {
	return append([]FormSeed(nil), c.forms...)
}

// IsDefaultType reports whether recordType is one of the built-in record types.
func (c *Catalog) IsDefaultType(recordType string) bool {
	for _, f := range c.forms {
		if f.FormID == recordType {
			return true
		}
	}
	return false
}

// MinimalEntry is the fallback schema used when no catalog entry matches a
// record type: just an ID and a name.
func MinimalEntry() Entry {
	return Entry{
		Properties: model.Properties{
			"id":   {Type: "string", Title: "ID"},
			"name": {Type: "string", Title: "Name"},
		},
		Required: []string{"id", "name"},
	}
}

// Default returns the built-in catalog: the "activities" and "clients"
// record types and their seed schemas.
func Default() *Catalog {
	return New(map[string]Entry{
		"activities": {
			Properties: model.Properties{
				"id":     {Type: "string", Title: "ID"},
				"name":   {Type: "string", Title: "Name"},
				"status": {Type: "string", Title: "Status", Enum: []string{"open", "in progress", "done"}},
				"due":    {Type: "string", Title: "Due Date", Format: "date"},
				"notes":  {Type: "string", Title: "Notes"},
			},
			Required: []string{"id", "name"},
		},
		"clients": {
			Properties: model.Properties{
				"id":       {Type: "string", Title: "ID"},
				"name":     {Type: "string", Title: "Name"},
				"email":    {Type: "string", Title: "Email", Format: "email"},
				"phone":    {Type: "string", Title: "Phone", Format: "phone"},
				"industry": {Type: "string", Title: "Industry"},
			},
			Required: []string{"id", "name"},
		},
	}, []FormSeed{
		{FormID: "activities", Title: "Activities"},
		{FormID: "clients", Title: "Clients"},
	})
}
