package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/groblegark/kforms/internal/model"
)

var schemaCmd = &cobra.Command{
	Use:   "schema <command>",
	Short: "Inspect and edit record type schemas",
}

var schemaGetCmd = &cobra.Command{
	Use:   "get <record-type>",
	Short: "Show the schema for a record type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := formsClient.GetSchema(context.Background(), requireCustomer(), args[0])
		if err != nil {
			fatal(err)
		}

		if jsonOutput {
			printJSON(schema)
		} else {
			printSchemaTable(schema)
		}
		return nil
	},
}

var schemaAddFieldCmd = &cobra.Command{
	Use:   "add-field <record-type> <field-name>",
	Short: "Add a field to a record type's schema",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		fieldType, _ := cmd.Flags().GetString("type")
		options, _ := cmd.Flags().GetStringSlice("option")
		defaultValue, _ := cmd.Flags().GetString("default")
		required, _ := cmd.Flags().GetBool("required")

		if title == "" {
			title = args[1]
		}

		in := model.FieldInput{
			Name:     args[1],
			Title:    title,
			Type:     fieldType,
			Enum:     options,
			Default:  defaultValue,
			Required: required,
		}

		schema, err := formsClient.AddField(context.Background(), requireCustomer(), args[0], in)
		if err != nil {
			fatal(err)
		}

		if jsonOutput {
			printJSON(schema)
		} else {
			printSchemaTable(schema)
		}
		return nil
	},
}

var schemaRemoveFieldCmd = &cobra.Command{
	Use:   "remove-field <record-type> <field-name>",
	Short: "Remove a field from a record type's schema",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := formsClient.RemoveField(context.Background(), requireCustomer(), args[0], args[1])
		if err != nil {
			fatal(err)
		}

		if jsonOutput {
			printJSON(schema)
		} else {
			printSchemaTable(schema)
		}
		return nil
	},
}

func init() {
	schemaAddFieldCmd.Flags().String("title", "", "display title (defaults to the field name)")
	schemaAddFieldCmd.Flags().StringP("type", "t", "text", "field type (text, select, email, phone, currency, date, ...)")
	schemaAddFieldCmd.Flags().StringSliceP("option", "o", nil, "select option (repeatable)")
	schemaAddFieldCmd.Flags().String("default", "", "default value")
	schemaAddFieldCmd.Flags().BoolP("required", "r", false, "mark the field required")

	schemaCmd.AddCommand(schemaGetCmd)
	schemaCmd.AddCommand(schemaAddFieldCmd)
	schemaCmd.AddCommand(schemaRemoveFieldCmd)
}
