package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/groblegark/kforms/internal/events"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream events from NATS to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		natsURL, _ := cmd.Flags().GetString("nats-url")
		if natsURL == "" {
			natsURL = os.Getenv("FORMS_NATS_URL")
		}
		if natsURL == "" {
			return fmt.Errorf("NATS URL required (--nats-url or FORMS_NATS_URL)")
		}
		topic, _ := cmd.Flags().GetString("topic")

		sub, err := events.NewNATSSubscriber(natsURL)
		if err != nil {
			return err
		}
		defer sub.Close()

		ch, cancel, err := sub.Subscribe(topic)
		if err != nil {
			return err
		}
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return nil
				}
				fmt.Println(string(msg))
			case <-sigCh:
				return nil
			}
		}
	},
}

func init() {
	watchCmd.Flags().String("nats-url", "", "NATS server URL (defaults to FORMS_NATS_URL)")
	watchCmd.Flags().String("topic", "forms.>", "subject to subscribe to (supports wildcards)")
}
