package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/promptdesk/assistant/internal/config"
	"github.com/promptdesk/assistant/internal/eventlog"
)

func newFeedbackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "feedback",
		Short: "Print every stored feedback record as a JSON array",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.AppConfig
			logger, logCloser := eventlog.Open(cfg.EventLogFile, cfg.ErrorLogFile, os.Stderr)
			defer logCloser.Close()

			feedbackStore, closeStore, err := openFeedbackStore(cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to open feedback store: %w", err)
			}
			defer closeStore()

			records, err := feedbackStore.All()
			if err != nil {
				return fmt.Errorf("failed to read feedback: %w", err)
			}
			return printFeedback(cmd.OutOrStdout(), records)
		},
	}
}

func jsonIndent(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode feedback: %w", err)
	}
	return append(data, '\n'), nil
}
