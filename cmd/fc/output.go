package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/groblegark/kforms/internal/model"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printSchemaTable(schema *model.JSONSchema) {
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tTYPE\tFORMAT\tREQUIRED\tOPTIONS")
	for _, name := range names {
		def := schema.Properties[name]
		req := ""
		if required[name] {
			req = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			name, def.Type, def.Format, req, strings.Join(def.Enum, ", "))
	}
	w.Flush()
	fmt.Printf("\n%d fields\n", len(names))
}

func printFormsTable(forms []*model.Form) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FORM\tTITLE\tTYPE\tUPDATED")
	for _, f := range forms {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			f.FormID, f.FormTitle, f.Type, f.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	w.Flush()
	fmt.Printf("\n%d forms\n", len(forms))
}

func printRecordTable(rec *model.Record) {
	fmt.Printf("ID:          %s\n", rec.ID)
	fmt.Printf("Customer:    %s\n", rec.TenantID)
	fmt.Printf("Record Type: %s\n", rec.RecordType)
	fmt.Printf("Name:        %s\n", rec.Name)
	if rec.URI != "" {
		fmt.Printf("URI:         %s\n", rec.URI)
	}
	if len(rec.Fields) > 0 {
		fmt.Printf("Fields:      %s\n", string(rec.Fields))
	}
	fmt.Printf("Created At:  %s\n", rec.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Updated At:  %s\n", rec.UpdatedAt.Format("2006-01-02 15:04:05"))
}

func printRecordsTable(records []*model.Record, total int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tURI\tUPDATED")
	for _, r := range records {
		name := r.Name
		if len(name) > 50 {
			name = name[:47] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			r.ID, name, r.URI, r.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	w.Flush()
	fmt.Printf("\n%d records (%d total)\n", len(records), total)
}

func printEventsTable(events []*model.Event) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TOPIC\tRECORD TYPE\tAT")
	for _, e := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			e.Topic, e.RecordType, e.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	w.Flush()
	fmt.Printf("\n%d events\n", len(events))
}

// requireCustomer exits with an error unless --customer was given.
func requireCustomer() string {
	if customerID == "" {
		fmt.Fprintln(os.Stderr, "Error: --customer is required")
		os.Exit(1)
	}
	return customerID
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
