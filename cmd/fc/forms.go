package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/groblegark/kforms/internal/model"
)

var formsCmd = &cobra.Command{
	Use:   "forms <command>",
	Short: "List and register forms",
}

var formsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the customer's forms",
	RunE: func(cmd *cobra.Command, args []string) error {
		forms, err := formsClient.ListForms(context.Background(), requireCustomer())
		if err != nil {
			fatal(err)
		}

		if jsonOutput {
			printJSON(forms)
		} else {
			printFormsTable(forms)
		}
		return nil
	},
}

var formsCreateCmd = &cobra.Command{
	Use:   "create <form-id>",
	Short: "Register a custom form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		integrationKey, _ := cmd.Flags().GetString("integration-key")

		form, err := formsClient.CreateForm(context.Background(), &model.Form{
			TenantID:       requireCustomer(),
			FormID:         args[0],
			FormTitle:      title,
			IntegrationKey: integrationKey,
		})
		if err != nil {
			fatal(err)
		}

		if jsonOutput {
			printJSON(form)
		} else {
			printFormsTable([]*model.Form{form})
		}
		return nil
	},
}

func init() {
	formsCreateCmd.Flags().String("title", "", "display title for the form")
	formsCreateCmd.Flags().String("integration-key", "", "integration connection key")

	formsCmd.AddCommand(formsListCmd)
	formsCmd.AddCommand(formsCreateCmd)
}
