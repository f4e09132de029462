package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/digital-byte-innovations/StackWise/internal/budget"
	"github.com/digital-byte-innovations/StackWise/internal/cli"
	"github.com/digital-byte-innovations/StackWise/internal/validate"
	"github.com/spf13/cobra"
)

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show spending versus budget",
		Long:  `Display total income, total expenses, what is left to spend, and a budget bar per category.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := initStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			fmt.Println(renderSummary(store.Summary(), store.CategorySpending()))
			return nil
		},
	}
}

func renderSummary(summary budget.Summary, spending []budget.CategorySpending) string {
	leftStyle := cli.SuccessStyle
	if summary.LeftToSpend < 0 {
		leftStyle = cli.ErrorStyle
	}

	totals := lipgloss.JoinVertical(lipgloss.Left,
		cli.SubtleStyle.Render("Left to Spend"),
		leftStyle.Bold(true).Render(validate.FormatCurrency(summary.LeftToSpend)),
		"",
		fmt.Sprintf("%s %s    %s %s",
			cli.SubtleStyle.Render("Income"),
			cli.SuccessStyle.Render(validate.FormatCurrency(summary.TotalIncome)),
			cli.SubtleStyle.Render("Expenses"),
			cli.ErrorStyle.Render(validate.FormatCurrency(summary.TotalExpenses))),
	)

	sections := []string{cli.RenderBox("Budget", totals)}

	if len(spending) == 0 {
		sections = append(sections,
			cli.SubtleStyle.Render("No categories yet. Add a category to start tracking your budget."))
	} else {
		lines := make([]string, 0, len(spending)*2)
		for _, cs := range spending {
			bar := cli.RenderBudgetBar(cs.Percentage, 30, cs.Category.Color, cs.OverBudget)
			amounts := fmt.Sprintf("%s / %s",
				validate.FormatCurrency(cs.Spent),
				validate.FormatCurrency(cs.Category.Budget))
			if cs.OverBudget {
				amounts = cli.ErrorStyle.Render(amounts +
					fmt.Sprintf("  (%s over budget)", validate.FormatCurrency(cs.OverBudgetAmount())))
			}
			lines = append(lines,
				fmt.Sprintf("%s  %s", cli.BoldStyle.Render(padName(cs.Category.Name, 20)), amounts),
				bar)
		}
		sections = append(sections,
			cli.FormatTitle("Category Budgets"),
			strings.Join(lines, "\n"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func padName(name string, width int) string {
	if len(name) >= width {
		return name
	}
	return name + strings.Repeat(" ", width-len(name))
}
