package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/digital-byte-innovations/StackWise/internal/cli"
	"github.com/digital-byte-innovations/StackWise/internal/validate"
	"github.com/spf13/cobra"
)

func categoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage spending categories",
		Long:  `List, add, and delete the monthly budgeted categories expenses are assigned to.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := initStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			spending := store.CategorySpending()
			if len(spending) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No categories yet. Use 'stackwise category add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("Name"),
				cli.BoldStyle.Render("Budget"),
				cli.BoldStyle.Render("Spent"),
				cli.BoldStyle.Render("Remaining"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 8),
				strings.Repeat("-", 20),
				strings.Repeat("-", 10),
				strings.Repeat("-", 10),
				strings.Repeat("-", 10))

			for _, cs := range spending {
				remaining := validate.FormatCurrency(cs.Remaining)
				if cs.OverBudget {
					remaining = cli.ErrorStyle.Render(
						validate.FormatCurrency(cs.OverBudgetAmount()) + " over")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					cs.Category.ID,
					cs.Category.Name,
					validate.FormatCurrency(cs.Category.Budget),
					validate.FormatCurrency(cs.Spent),
					remaining)
			}

			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <budget>",
		Short: "Add a new category",
		Long:  `Create a spending category with a monthly budget ceiling.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if result := validate.CategoryName(name); !result.Valid {
				return errors.New(result.Error)
			}

			budgetAmount, err := parseAmount(args[1])
			if err != nil {
				return fmt.Errorf("budget: %w", err)
			}

			store, err := initStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if existing := store.CategoryByName(name); existing != nil {
				return fmt.Errorf("category %q already exists", strings.TrimSpace(name))
			}

			store.AddCategory(name, budgetAmount)

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added category %q with a %s monthly budget",
				strings.TrimSpace(name), validate.FormatCurrency(budgetAmount))))
			return nil
		},
	}
}

func deleteCategoryCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id-or-name>",
		Short: "Delete a category and its transactions",
		Long: `Delete a category. Every expense recorded against it is deleted
with it; there is no way to keep orphaned transactions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			categoryID, err := resolveCategory(store, args[0])
			if err != nil {
				return err
			}
			cat := store.CategoryByID(categoryID)

			affected := 0
			for _, txn := range store.Transactions() {
				if txn.CategoryID == categoryID {
					affected++
				}
			}

			if !force {
				prompt := fmt.Sprintf("Delete %q and its %d transaction(s)?", cat.Name, affected)
				confirmed, err := cli.Confirm(ctx, os.Stdin, os.Stdout, cli.FormatWarning(prompt))
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Println(cli.SubtleStyle.Render("Canceled."))
					return nil
				}
			}

			store.DeleteCategory(categoryID)

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted %q and %d transaction(s)", cat.Name, affected)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "delete without confirmation")

	return cmd
}
