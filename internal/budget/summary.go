package budget

import "github.com/digital-byte-innovations/StackWise/internal/model"

// Summary aggregates all transactions into the dashboard totals.
// LeftToSpend may be negative; the sign only drives display styling.
type Summary struct {
	TotalIncome   float64
	TotalExpenses float64
	LeftToSpend   float64
}

// CategorySpending pairs a category with its derived spending figures
// for the current set of transactions.
type CategorySpending struct {
	Category   model.Category
	Spent      float64
	Percentage float64 // 0-100, capped; 0 when the budget is zero
	Remaining  float64 // budget - spent, may be negative
	OverBudget bool
}

// OverBudgetAmount returns how far spending exceeds the budget, or 0
// when within budget. Display layers show this instead of a negative
// remaining value.
func (c CategorySpending) OverBudgetAmount() float64 {
	if !c.OverBudget {
		return 0
	}
	return c.Spent - c.Category.Budget
}

// Summary recomputes the income, expense, and left-to-spend totals
// from the current transaction list. Derived values are never cached;
// every call reads the live state.
func (s *Store) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum Summary
	for _, txn := range s.transactions {
		switch txn.Type {
		case model.TypeIncome:
			sum.TotalIncome += txn.Amount
		case model.TypeExpense:
			sum.TotalExpenses += txn.Amount
		}
	}
	sum.LeftToSpend = sum.TotalIncome - sum.TotalExpenses
	return sum
}

// CategorySpending computes spent-versus-budget for every category, in
// category insertion order. Expense transactions whose category id
// matches no category are simply uncategorized and contribute nothing
// here (they still count toward the Summary totals).
func (s *Store) CategorySpending() []CategorySpending {
	s.mu.RLock()
	defer s.mu.RUnlock()

	spentByCategory := make(map[string]float64, len(s.categories))
	for _, txn := range s.transactions {
		if txn.Type == model.TypeExpense && txn.CategoryID != "" {
			spentByCategory[txn.CategoryID] += txn.Amount
		}
	}

	out := make([]CategorySpending, 0, len(s.categories))
	for _, cat := range s.categories {
		spent := spentByCategory[cat.ID]
		out = append(out, CategorySpending{
			Category:   cat,
			Spent:      spent,
			Percentage: percentOfBudget(spent, cat.Budget),
			Remaining:  cat.Budget - spent,
			OverBudget: spent > cat.Budget,
		})
	}
	return out
}

// SpentFor returns the total expense amount recorded against a single
// category.
func (s *Store) SpentFor(categoryID string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var spent float64
	for _, txn := range s.transactions {
		if txn.Type == model.TypeExpense && txn.CategoryID == categoryID {
			spent += txn.Amount
		}
	}
	return spent
}

// percentOfBudget caps at 100 and avoids dividing by a zero budget.
func percentOfBudget(spent, budget float64) float64 {
	if budget <= 0 {
		return 0
	}
	pct := spent / budget * 100
	if pct > 100 {
		return 100
	}
	return pct
}
