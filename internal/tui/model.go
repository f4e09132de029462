// Package tui implements the interactive dashboard: an overview of
// spending versus budget, the transaction list, and category
// management, all backed by a single budget store.
package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/digital-byte-innovations/StackWise/internal/budget"
	"github.com/digital-byte-innovations/StackWise/internal/validate"
)

// Tab identifies the visible screen.
type Tab int

const (
	TabOverview Tab = iota
	TabTransactions
	TabCategories
)

var tabNames = []string{"Overview", "Transactions", "Categories"}

// State represents what the dashboard is currently doing.
type State int

const (
	StateBrowsing State = iota
	StateAddingIncome
	StateAddingExpense
	StateAddingCategory
	StateConfirmingDelete
)

// storeChangedMsg is sent whenever the store notifies subscribers.
type storeChangedMsg struct{}

// Model holds the dashboard state.
type Model struct {
	store        *budget.Store
	inputs       []textinput.Model
	formError    string
	deleteID     string
	deletePrompt string
	tab          Tab
	state        State
	focusIndex   int
	cursor       int
	width        int
	height       int
	quitting     bool
}

// NewModel creates a dashboard model for the given store.
func NewModel(store *budget.Store) Model {
	return Model{
		store: store,
		tab:   TabOverview,
		state: StateBrowsing,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case storeChangedMsg:
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		if m.state == StateBrowsing {
			return m.updateBrowsing(msg)
		}
		if m.state == StateConfirmingDelete {
			return m.updateConfirming(msg)
		}
		return m.updateForm(msg)
	}

	return m, nil
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "tab", "right":
		m.tab = (m.tab + 1) % Tab(len(tabNames))
		m.cursor = 0
		return m, nil

	case "shift+tab", "left":
		m.tab = (m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames))
		m.cursor = 0
		return m, nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		m.cursor++
		m.clampCursor()
		return m, nil

	case "i":
		return m.startForm(StateAddingIncome, "Amount", "Description (optional)")

	case "e":
		return m.startForm(StateAddingExpense, "Amount", "Category name", "Description (optional)")

	case "c":
		return m.startForm(StateAddingCategory, "Name", "Monthly budget")

	case "d":
		return m.startDelete()
	}

	return m, nil
}

func (m Model) updateConfirming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if m.tab == TabCategories {
			m.store.DeleteCategory(m.deleteID)
		} else {
			m.store.DeleteTransaction(m.deleteID)
		}
		m.state = StateBrowsing
		m.deleteID = ""
		m.clampCursor()
	case "n", "N", "esc":
		m.state = StateBrowsing
		m.deleteID = ""
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = StateBrowsing
		m.formError = ""
		return m, nil

	case "tab", "down":
		m.focusIndex = (m.focusIndex + 1) % len(m.inputs)
		return m.refocus()

	case "shift+tab", "up":
		m.focusIndex = (m.focusIndex + len(m.inputs) - 1) % len(m.inputs)
		return m.refocus()

	case "enter":
		if m.focusIndex < len(m.inputs)-1 {
			m.focusIndex++
			return m.refocus()
		}
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
	return m, cmd
}

func (m Model) startForm(state State, placeholders ...string) (tea.Model, tea.Cmd) {
	m.state = state
	m.formError = ""
	m.focusIndex = 0
	m.inputs = make([]textinput.Model, len(placeholders))
	for i, placeholder := range placeholders {
		input := textinput.New()
		input.Placeholder = placeholder
		input.CharLimit = validate.MaxDescriptionLength
		m.inputs[i] = input
	}
	m.inputs[0].Focus()
	return m, textinput.Blink
}

func (m Model) refocus() (tea.Model, tea.Cmd) {
	for i := range m.inputs {
		if i == m.focusIndex {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m, textinput.Blink
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	switch m.state {
	case StateAddingIncome:
		amountText := m.inputs[0].Value()
		if result := validate.Amount(amountText); !result.Valid {
			m.formError = result.Error
			return m, nil
		}
		description := m.inputs[1].Value()
		if result := validate.Description(description); !result.Valid {
			m.formError = result.Error
			return m, nil
		}
		m.store.AddIncome(parseFloat(amountText), description)

	case StateAddingExpense:
		amountText := m.inputs[0].Value()
		if result := validate.Amount(amountText); !result.Valid {
			m.formError = result.Error
			return m, nil
		}
		category := m.store.CategoryByName(m.inputs[1].Value())
		if category == nil {
			m.formError = "No category with that name"
			return m, nil
		}
		description := m.inputs[2].Value()
		if result := validate.Description(description); !result.Valid {
			m.formError = result.Error
			return m, nil
		}
		m.store.AddExpense(parseFloat(amountText), description, category.ID)

	case StateAddingCategory:
		name := m.inputs[0].Value()
		if result := validate.CategoryName(name); !result.Valid {
			m.formError = result.Error
			return m, nil
		}
		budgetText := m.inputs[1].Value()
		if result := validate.Amount(budgetText); !result.Valid {
			m.formError = result.Error
			return m, nil
		}
		m.store.AddCategory(name, parseFloat(budgetText))
	}

	m.state = StateBrowsing
	m.formError = ""
	return m, nil
}

func (m Model) startDelete() (tea.Model, tea.Cmd) {
	switch m.tab {
	case TabTransactions:
		transactions := sortedTransactions(m.store)
		if m.cursor >= len(transactions) {
			return m, nil
		}
		txn := transactions[m.cursor]
		m.deleteID = txn.ID
		m.deletePrompt = "Delete \"" + txn.DisplayDescription() + "\"?"
		m.state = StateConfirmingDelete

	case TabCategories:
		categories := m.store.Categories()
		if m.cursor >= len(categories) {
			return m, nil
		}
		cat := categories[m.cursor]
		affected := 0
		for _, txn := range m.store.Transactions() {
			if txn.CategoryID == cat.ID {
				affected++
			}
		}
		m.deleteID = cat.ID
		m.deletePrompt = "Delete \"" + cat.Name + "\" and its " +
			strconv.Itoa(affected) + " transaction(s)?"
		m.state = StateConfirmingDelete
	}
	return m, nil
}

func (m *Model) clampCursor() {
	var max int
	switch m.tab {
	case TabTransactions:
		max = len(m.store.Transactions()) - 1
	case TabCategories:
		max = len(m.store.Categories()) - 1
	default:
		max = 0
	}
	if max < 0 {
		max = 0
	}
	if m.cursor > max {
		m.cursor = max
	}
}

// parseFloat assumes the text already passed validation.
func parseFloat(text string) float64 {
	value, _ := strconv.ParseFloat(strings.TrimSpace(text), 64)
	return value
}
