package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/digital-byte-innovations/StackWise/internal/cli"
	"github.com/digital-byte-innovations/StackWise/internal/model"
	"github.com/digital-byte-innovations/StackWise/internal/validate"
	"github.com/spf13/cobra"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Manage recorded transactions",
	}

	cmd.AddCommand(listTransactionsCmd())
	cmd.AddCommand(deleteTransactionCmd())

	return cmd
}

func listTransactionsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := initStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			transactions := store.Transactions()
			if len(transactions) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No transactions yet."))
				return nil
			}

			// The store keeps most-recent-first order already, but the
			// display re-sorts by date regardless.
			sort.SliceStable(transactions, func(i, j int) bool {
				return transactions[i].Date.After(transactions[j].Date)
			})

			if limit > 0 && len(transactions) > limit {
				transactions = transactions[:limit]
			}

			categoryNames := make(map[string]string)
			for _, cat := range store.Categories() {
				categoryNames[cat.ID] = cat.Name
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("Date"),
				cli.BoldStyle.Render("Description"),
				cli.BoldStyle.Render("Category"),
				cli.BoldStyle.Render("Amount"),
				cli.BoldStyle.Render("ID"))

			for _, txn := range transactions {
				category := categoryNames[txn.CategoryID]
				if category == "" && txn.Type == model.TypeExpense {
					category = cli.SubtleStyle.Render("(uncategorized)")
				}

				amount := validate.FormatCurrency(txn.Amount)
				if txn.Type == model.TypeIncome {
					amount = cli.SuccessStyle.Render("+" + amount)
				} else {
					amount = cli.ErrorStyle.Render("-" + amount)
				}

				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					validate.FormatDate(txn.Date),
					txn.DisplayDescription(),
					category,
					amount,
					cli.SubtleStyle.Render(txn.ID))
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of transactions to show (0 for all)")

	return cmd
}

func deleteTransactionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := initStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			id := strings.TrimSpace(args[0])
			found := false
			for _, txn := range store.Transactions() {
				if txn.ID == id {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("no transaction with id %q", id)
			}

			store.DeleteTransaction(id)
			fmt.Println(cli.FormatSuccess("Deleted transaction " + id))
			return nil
		},
	}
}
