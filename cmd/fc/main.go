package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/groblegark/kforms/internal/client"
)

var (
	httpURL    string
	authToken  string
	customerID string
	jsonOutput bool

	formsClient client.FormsClient
)

func defaultHTTPURL() string {
	if s := os.Getenv("FORMS_HTTP_URL"); s != "" {
		return s
	}
	return "http://localhost:8080"
}

var rootCmd = &cobra.Command{
	Use:   "fc <command>",
	Short: "CLI client for the forms service",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		formsClient = client.NewHTTPClient(httpURL, authToken)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if formsClient != nil {
			formsClient.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&httpURL, "http-url", defaultHTTPURL(), "HTTP server URL")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", os.Getenv("FORMS_AUTH_TOKEN"), "bearer token for authentication")
	rootCmd.PersistentFlags().StringVarP(&customerID, "customer", "c", "", "customer (tenant) ID")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(formsCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(healthCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
