package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server health",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := formsClient.Health(context.Background())
		if err != nil {
			fatal(err)
		}
		fmt.Println(status)
		return nil
	},
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List audit events for the customer",
	RunE: func(cmd *cobra.Command, args []string) error {
		recordType, _ := cmd.Flags().GetString("record-type")

		events, err := formsClient.GetEvents(context.Background(), requireCustomer(), recordType)
		if err != nil {
			fatal(err)
		}

		if jsonOutput {
			printJSON(events)
		} else {
			printEventsTable(events)
		}
		return nil
	},
}

func init() {
	eventsCmd.Flags().String("record-type", "", "filter by record type")
}
