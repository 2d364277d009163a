package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"snapdiff/internal/config"
	"snapdiff/internal/diffengine"
	"snapdiff/internal/document"
	"snapdiff/internal/history"
	"snapdiff/internal/logging"
)

var (
	diffOutputPath string
	diffFormat     string
	diffPretty     bool
	diffSave       bool
)

var diffCmd = &cobra.Command{
	Use:   "diff <before> <after>",
	Short: "Compare two snapshot documents",
	Long: `Compare a before and an after snapshot and print the diff report.

The report contains a "meta" section listing changed metadata fields with
their before/after values (time fields rendered in UTC+2), and a
"candidates" section listing removed, edited and added candidate ids.
Sections without differences are omitted; identical snapshots produce {}.

Examples:
  # Diff two JSON snapshots to stdout
  snapdiff diff before.json after.json

  # Pretty-printed report into a file
  snapdiff diff before.json after.json --pretty --output report.json

  # YAML input works too, mixed freely with JSON
  snapdiff diff before.yaml after.json

  # Record the run in the history store
  snapdiff diff before.json after.json --save`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().StringVar(&diffOutputPath, "output", "", "Output path for the report (default: stdout)")
	diffCmd.Flags().StringVar(&diffFormat, "format", "", "Output format: json or human (default: from config)")
	diffCmd.Flags().BoolVar(&diffPretty, "pretty", false, "Indent JSON output")
	diffCmd.Flags().BoolVar(&diffSave, "save", false, "Record the report in history")

	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	start := time.Now()

	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	before, err := readDocument(args[0])
	if err != nil {
		return fmt.Errorf("failed to read before snapshot: %w", err)
	}
	after, err := readDocument(args[1])
	if err != nil {
		return fmt.Errorf("failed to read after snapshot: %w", err)
	}

	report, err := diffengine.New().Diff(before, after)
	if err != nil {
		return err
	}

	format := cfg.Output.Format
	if diffFormat != "" {
		format = diffFormat
	}

	var out []byte
	if format == "human" {
		out = []byte(renderReportHuman(report))
	} else {
		indent := ""
		if diffPretty || cfg.Output.Pretty {
			indent = "  "
		}
		out, err = report.EncodeJSON(indent)
		if err != nil {
			return fmt.Errorf("failed to serialize report: %w", err)
		}
	}

	if diffOutputPath != "" {
		if err := os.WriteFile(diffOutputPath, append(out, '\n'), 0644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logger.Debug("Report written", map[string]interface{}{
			"path": diffOutputPath,
			"size": len(out),
		})
	} else {
		fmt.Println(string(out))
	}

	if diffSave || cfg.History.Enabled {
		if err := saveReport(cfg, logger, args[0], args[1], before, report); err != nil {
			return err
		}
	}

	logger.Debug("Diff completed", map[string]interface{}{
		"meta_changed":       report.Stats.MetaChanged,
		"candidates_removed": report.Stats.CandidatesRemoved,
		"candidates_edited":  report.Stats.CandidatesEdited,
		"candidates_added":   report.Stats.CandidatesAdded,
		"duration_ms":        time.Since(start).Milliseconds(),
	})
	return nil
}

// readDocument loads a snapshot file into a document tree. YAML is
// selected by file extension; everything else parses as JSON.
func readDocument(path string) (*document.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return document.DecodeYAML(data)
	default:
		return document.DecodeJSON(data)
	}
}

func saveReport(cfg *config.Config, logger *logging.Logger, beforeLabel, afterLabel string, before *document.Value, report *diffengine.Report) error {
	payload, err := report.EncodeJSON("")
	if err != nil {
		return err
	}

	store, err := history.Open(cfg.History.Dir, logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	id, err := store.Save(documentID(before), beforeLabel, afterLabel, payload, report.Stats)
	if err != nil {
		return err
	}
	logger.Info("Report recorded", map[string]interface{}{
		"id": id,
	})
	return nil
}

// documentID extracts the shared entity id for history bookkeeping.
func documentID(doc *document.Value) string {
	id, ok := doc.Get(document.FieldID)
	if !ok {
		return ""
	}
	return id.Raw()
}

func renderReportHuman(report *diffengine.Report) string {
	var b strings.Builder
	b.WriteString("Diff Summary\n")
	b.WriteString("============\n")

	if report.IsEmpty() {
		b.WriteString("No changes detected.\n")
		return b.String()
	}

	if meta, ok := report.Tree().Get(document.FieldMeta); ok {
		b.WriteString("Meta:\n")
		items, _ := meta.Items()
		for _, entry := range items {
			field, _ := entry.Get(document.FieldField)
			before, _ := entry.Get(document.FieldBefore)
			after, _ := entry.Get(document.FieldAfter)
			fmt.Fprintf(&b, "  %s: %s -> %s\n", field.Raw(), before.Raw(), after.Raw())
		}
	}

	if cands, ok := report.Tree().Get(document.FieldCandidates); ok {
		b.WriteString("Candidates:\n")
		members, _ := cands.Members()
		for _, m := range members {
			fmt.Fprintf(&b, "  %s: %s\n", m.Key, idList(m.Value))
		}
	}

	fmt.Fprintf(&b, "\nTotals:  meta ~%d  candidates -%d ~%d +%d\n",
		report.Stats.MetaChanged,
		report.Stats.CandidatesRemoved,
		report.Stats.CandidatesEdited,
		report.Stats.CandidatesAdded)
	return b.String()
}

func idList(rows *document.Value) string {
	items, err := rows.Items()
	if err != nil {
		return ""
	}
	ids := make([]string, 0, len(items))
	for _, row := range items {
		id, _ := row.Get(document.FieldID)
		ids = append(ids, id.Raw())
	}
	return strings.Join(ids, ", ")
}
