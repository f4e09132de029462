package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/digital-byte-innovations/StackWise/internal/budget"
	"github.com/digital-byte-innovations/StackWise/internal/cli"
	"github.com/digital-byte-innovations/StackWise/internal/model"
	"github.com/digital-byte-innovations/StackWise/internal/validate"
)

var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(cli.PrimaryColor).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(cli.SubtleColor).
				Padding(0, 2)

	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(cli.PrimaryColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(cli.SubtleColor).
			MarginTop(1)
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if !m.store.Hydrated() {
		return cli.SubtleStyle.Render("Loading your budget...")
	}

	var body string
	switch m.state {
	case StateConfirmingDelete:
		body = cli.FormatWarning(m.deletePrompt) + "\n" +
			cli.SubtleStyle.Render("y: delete  n: keep")
	case StateAddingIncome:
		body = m.renderForm("Add Income")
	case StateAddingExpense:
		body = m.renderForm("Add Expense")
	case StateAddingCategory:
		body = m.renderForm("Add Category")
	default:
		switch m.tab {
		case TabTransactions:
			body = m.renderTransactions()
		case TabCategories:
			body = m.renderCategories()
		default:
			body = m.renderOverview()
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabs(),
		body,
		m.renderHelp(),
	)
}

func (m Model) renderTabs() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if Tab(i) == m.tab {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = inactiveTabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderOverview() string {
	summary := m.store.Summary()

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

	spending := m.store.CategorySpending()
	if len(spending) == 0 {
		sections = append(sections, cli.SubtleStyle.Render(
			"No categories yet. Press 'c' to add one and start tracking your budget."))
	} else {
		lines := make([]string, 0, len(spending)*2)
		for _, cs := range spending {
			header := fmt.Sprintf("%s  %s / %s",
				cli.BoldStyle.Render(cs.Category.Name),
				validate.FormatCurrency(cs.Spent),
				validate.FormatCurrency(cs.Category.Budget))
			if cs.OverBudget {
				header += cli.ErrorStyle.Render(fmt.Sprintf("  %s over budget",
					validate.FormatCurrency(cs.OverBudgetAmount())))
			}
			lines = append(lines, header,
				cli.RenderBudgetBar(cs.Percentage, barWidth(m.width), cs.Category.Color, cs.OverBudget))
		}
		sections = append(sections,
			cli.FormatTitle("Category Budgets"),
			strings.Join(lines, "\n"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTransactions() string {
	transactions := sortedTransactions(m.store)
	if len(transactions) == 0 {
		return cli.SubtleStyle.Render("No transactions yet. Press 'i' for income or 'e' for an expense.")
	}

	categoryNames := make(map[string]string)
	for _, cat := range m.store.Categories() {
		categoryNames[cat.ID] = cat.Name
	}

	rows := make([]string, 0, len(transactions))
	for i, txn := range transactions {
		amount := validate.FormatCurrency(txn.Amount)
		if txn.Type == model.TypeIncome {
			amount = cli.SuccessStyle.Render("+" + amount)
		} else {
			amount = cli.ErrorStyle.Render("-" + amount)
		}

		category := categoryNames[txn.CategoryID]
		if category == "" && txn.Type == model.TypeExpense {
			category = "(uncategorized)"
		}

		row := fmt.Sprintf("%s  %-24s %-16s %s",
			validate.FormatDate(txn.Date),
			truncate(txn.DisplayDescription(), 24),
			truncate(category, 16),
			amount)
		if i == m.cursor {
			row = selectedRowStyle.Render("> " + row)
		} else {
			row = "  " + row
		}
		rows = append(rows, row)
	}

	return strings.Join(rows, "\n")
}

func (m Model) renderCategories() string {
	spending := m.store.CategorySpending()
	if len(spending) == 0 {
		return cli.SubtleStyle.Render("No categories yet. Press 'c' to add one.")
	}

	rows := make([]string, 0, len(spending))
	for i, cs := range spending {
		status := validate.FormatCurrency(cs.Remaining) + " left"
		if cs.OverBudget {
			status = cli.ErrorStyle.Render(
				validate.FormatCurrency(cs.OverBudgetAmount()) + " over budget")
		}

		row := fmt.Sprintf("%-20s %s / %s  %s",
			truncate(cs.Category.Name, 20),
			validate.FormatCurrency(cs.Spent),
			validate.FormatCurrency(cs.Category.Budget),
			status)
		if i == m.cursor {
			row = selectedRowStyle.Render("> " + row)
		} else {
			row = "  " + row
		}
		rows = append(rows, row)
	}

	return strings.Join(rows, "\n")
}

func (m Model) renderForm(title string) string {
	fields := make([]string, 0, len(m.inputs)+2)
	fields = append(fields, cli.FormatTitle(title))
	for i := range m.inputs {
		fields = append(fields, m.inputs[i].View())
	}
	if m.formError != "" {
		fields = append(fields, cli.FormatError(m.formError))
	}
	return lipgloss.JoinVertical(lipgloss.Left, fields...)
}

func (m Model) renderHelp() string {
	switch m.state {
	case StateBrowsing:
		return helpStyle.Render("tab: switch view • i: income • e: expense • c: category • d: delete • q: quit")
	case StateConfirmingDelete:
		return ""
	default:
		return helpStyle.Render("enter: next/submit • esc: cancel")
	}
}

// sortedTransactions returns the display order: date descending. The
// store already keeps most-recent-first, but the view re-sorts
// defensively rather than trusting insertion order.
func sortedTransactions(store *budget.Store) []model.Transaction {
	transactions := store.Transactions()
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date)
	})
	return transactions
}

func barWidth(termWidth int) int {
	if termWidth <= 0 {
		return 30
	}
	width := termWidth - 10
	if width > 40 {
		width = 40
	}
	if width < 10 {
		width = 10
	}
	return width
}

// truncate shortens a string to max characters, never splitting a
// multibyte rune.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
