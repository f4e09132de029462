package main

import (
	"errors"
	"fmt"

	"github.com/digital-byte-innovations/StackWise/internal/cli"
	"github.com/digital-byte-innovations/StackWise/internal/validate"
	"github.com/spf13/cobra"
)

func expenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Record spending",
	}

	cmd.AddCommand(addExpenseCmd())

	return cmd
}

func addExpenseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <amount> <category> [description]",
		Short: "Record an expense against a category",
		Long: `Record money going out. The category may be given by name or id;
the description is optional and defaults to "Expense".`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}

			description := ""
			if len(args) > 2 {
				description = args[2]
			}
			if result := validate.Description(description); !result.Valid {
				return errors.New(result.Error)
			}

			store, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			categoryID, err := resolveCategory(store, args[1])
			if err != nil {
				return err
			}

			store.AddExpense(amount, description, categoryID)

			cat := store.CategoryByID(categoryID)
			spending := store.SpentFor(categoryID)
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s expense in %s (%s of %s spent)",
				validate.FormatCurrency(amount),
				cat.Name,
				validate.FormatCurrency(spending),
				validate.FormatCurrency(cat.Budget))))

			if spending > cat.Budget {
				fmt.Println(cli.FormatWarning(fmt.Sprintf("%s is %s over budget",
					cat.Name, validate.FormatCurrency(spending-cat.Budget))))
			}
			return nil
		},
	}
}
