package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/stride-labs/stride/internal/daemon"
	"github.com/stride-labs/stride/internal/domain"
)

func init() {
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Bulk-import historical activity events",
	Long: `Import an array of externally-sourced activity events from a JSON
file. Each event must carry a stable source_id; events already
processed are skipped, so re-running an import is safe.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

// importedEvent is the JSON form of one historical event.
type importedEvent struct {
	Kind         string         `json:"kind"`
	ActivityDate time.Time      `json:"activity_date"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	SourceID     string         `json:"source_id"`
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read import file: %w", err)
	}

	var events []importedEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return fmt.Errorf("parse import file: %w", err)
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	var counted, skipped int
	for i, ie := range events {
		if ie.Kind == "" || ie.ActivityDate.IsZero() || ie.SourceID == "" {
			return fmt.Errorf("event %d: %w: kind, activity_date and source_id are required", i, domain.ErrInvalidEvent)
		}
		summary := d.Engine.Process(domain.Event{
			ID:           "import-" + ie.SourceID,
			Kind:         domain.EventKind(ie.Kind),
			ActivityDate: ie.ActivityDate,
			Metadata:     ie.Metadata,
			SourceID:     ie.SourceID,
		})
		if summary != nil {
			counted++
		} else {
			skipped++
		}
	}

	fmt.Printf("Imported %d event(s), skipped %d (replays or below threshold).\n", counted, skipped)
	return nil
}
