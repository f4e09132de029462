package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/digital-byte-innovations/StackWise/internal/cli"
	"github.com/digital-byte-innovations/StackWise/internal/model"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the budget to a file",
		Long:  `Write all transactions and categories to a local JSON or CSV file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output == "" {
				return fmt.Errorf("--output is required")
			}

			store, err := initStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			snapshot := store.Snapshot()

			switch format {
			case "json":
				err = exportJSON(output, snapshot)
			case "csv":
				err = exportCSV(output, snapshot)
			default:
				return fmt.Errorf("unsupported format %q (use json or csv)", format)
			}
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d transaction(s) and %d categorie(s) to %s",
				len(snapshot.Transactions), len(snapshot.Categories), output)))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "export format (json, csv)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "destination file path")

	return cmd
}

func exportJSON(path string, snapshot *model.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

func exportCSV(path string, snapshot *model.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() { _ = f.Close() }()

	categoryNames := make(map[string]string, len(snapshot.Categories))
	for _, cat := range snapshot.Categories {
		categoryNames[cat.ID] = cat.Name
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "date", "type", "description", "category", "amount"}); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	for _, txn := range snapshot.Transactions {
		record := []string{
			txn.ID,
			txn.Date.Format("2006-01-02"),
			string(txn.Type),
			txn.Description,
			categoryNames[txn.CategoryID],
			strconv.FormatFloat(txn.Amount, 'f', 2, 64),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
