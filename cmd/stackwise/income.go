package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/digital-byte-innovations/StackWise/internal/cli"
	"github.com/digital-byte-innovations/StackWise/internal/validate"
	"github.com/spf13/cobra"
)

func incomeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "income",
		Short: "Record income",
	}

	cmd.AddCommand(addIncomeCmd())

	return cmd
}

func addIncomeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <amount> [description]",
		Short: "Record an income transaction",
		Long:  `Record money coming in. The description is optional; "Income" is used when omitted.`,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}

			description := ""
			if len(args) > 1 {
				description = args[1]
			}
			if result := validate.Description(description); !result.Valid {
				return errors.New(result.Error)
			}

			store, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			store.AddIncome(amount, description)

			label := strings.TrimSpace(description)
			if label == "" {
				label = "Income"
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s income: %s",
				validate.FormatCurrency(amount), label)))
			return nil
		},
	}
}
