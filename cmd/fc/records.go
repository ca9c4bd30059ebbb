package main

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/groblegark/kforms/internal/model"
)

var recordsCmd = &cobra.Command{
	Use:   "records <command>",
	Short: "Manage records of a record type",
}

var recordsListCmd = &cobra.Command{
	Use:   "list <record-type>",
	Short: "List records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		resp, err := formsClient.ListRecords(context.Background(), requireCustomer(), args[0],
			model.RecordFilter{Limit: limit, Offset: offset})
		if err != nil {
			fatal(err)
		}

		if jsonOutput {
			printJSON(resp)
		} else {
			printRecordsTable(resp.Records, resp.Total)
		}
		return nil
	},
}

var recordsShowCmd = &cobra.Command{
	Use:   "show <record-type> <id>",
	Short: "Show one record",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := formsClient.GetRecord(context.Background(), requireCustomer(), args[0], args[1])
		if err != nil {
			fatal(err)
		}

		if jsonOutput {
			printJSON(rec)
		} else {
			printRecordTable(rec)
		}
		return nil
	},
}

var recordsCreateCmd = &cobra.Command{
	Use:   "create <record-type> <name>",
	Short: "Create a record",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		uri, _ := cmd.Flags().GetString("uri")
		fields, _ := cmd.Flags().GetString("fields")

		rec := &model.Record{
			TenantID:   requireCustomer(),
			RecordType: args[0],
			Name:       args[1],
			URI:        uri,
		}
		if fields != "" {
			rec.Fields = json.RawMessage(fields)
		}

		created, err := formsClient.CreateRecord(context.Background(), rec)
		if err != nil {
			fatal(err)
		}

		if jsonOutput {
			printJSON(created)
		} else {
			printRecordTable(created)
		}
		return nil
	},
}

var recordsUpdateCmd = &cobra.Command{
	Use:   "update <record-type> <id>",
	Short: "Update a record",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		uri, _ := cmd.Flags().GetString("uri")
		fields, _ := cmd.Flags().GetString("fields")

		tenant := requireCustomer()
		rec, err := formsClient.GetRecord(context.Background(), tenant, args[0], args[1])
		if err != nil {
			fatal(err)
		}

		if name != "" {
			rec.Name = name
		}
		if uri != "" {
			rec.URI = uri
		}
		if fields != "" {
			rec.Fields = json.RawMessage(fields)
		}

		updated, err := formsClient.UpdateRecord(context.Background(), rec)
		if err != nil {
			fatal(err)
		}

		if jsonOutput {
			printJSON(updated)
		} else {
			printRecordTable(updated)
		}
		return nil
	},
}

var recordsDeleteCmd = &cobra.Command{
	Use:   "delete <record-type> <id>",
	Short: "Delete a record",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := formsClient.DeleteRecord(context.Background(), requireCustomer(), args[0], args[1]); err != nil {
			fatal(err)
		}
		cmd.Printf("deleted %s\n", args[1])
		return nil
	},
}

func init() {
	recordsListCmd.Flags().Int("limit", 20, "maximum number of records to return")
	recordsListCmd.Flags().Int("offset", 0, "offset for pagination")

	recordsCreateCmd.Flags().String("uri", "", "record URI")
	recordsCreateCmd.Flags().String("fields", "", "record fields as a JSON object")

	recordsUpdateCmd.Flags().String("name", "", "new record name")
	recordsUpdateCmd.Flags().String("uri", "", "new record URI")
	recordsUpdateCmd.Flags().String("fields", "", "new record fields as a JSON object")

	recordsCmd.AddCommand(recordsListCmd)
	recordsCmd.AddCommand(recordsShowCmd)
	recordsCmd.AddCommand(recordsCreateCmd)
	recordsCmd.AddCommand(recordsUpdateCmd)
	recordsCmd.AddCommand(recordsDeleteCmd)
}
