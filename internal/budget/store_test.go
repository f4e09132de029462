package budget_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/digital-byte-innovations/StackWise/internal/budget"
	"github.com/digital-byte-innovations/StackWise/internal/model"
	"github.com/digital-byte-innovations/StackWise/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AddIncome(t *testing.T) {
	tests := []struct {
		name            string
		amount          float64
		description     string
		wantAmount      float64
		wantDescription string
	}{
		{
			name:            "plain income",
			amount:          1500,
			description:     "salary",
			wantAmount:      1500,
			wantDescription: "salary",
		},
		{
			name:            "negative amount is stored absolute",
			amount:          -50,
			description:     "refund",
			wantAmount:      50,
			wantDescription: "refund",
		},
		{
			name:            "blank description gets the default label",
			amount:          25,
			description:     "   ",
			wantAmount:      25,
			wantDescription: "Income",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := testutil.NewStore(t)

			store.AddIncome(tt.amount, tt.description)

			transactions := store.Transactions()
			require.Len(t, transactions, 1)
			assert.Equal(t, tt.wantAmount, transactions[0].Amount)
			assert.Equal(t, tt.wantDescription, transactions[0].Description)
			assert.Equal(t, model.TypeIncome, transactions[0].Type)
			assert.Empty(t, transactions[0].CategoryID)
			assert.NotEmpty(t, transactions[0].ID)
			assert.False(t, transactions[0].Date.IsZero())
		})
	}
}

func TestStore_AbsoluteValueCoercion(t *testing.T) {
	store, _ := testutil.NewStore(t)

	store.AddIncome(-50, "x")
	store.AddIncome(50, "x")

	transactions := store.Transactions()
	require.Len(t, transactions, 2)
	assert.Equal(t, transactions[0].Amount, transactions[1].Amount)
	assert.Equal(t, 50.0, transactions[0].Amount)
}

func TestStore_AddExpense(t *testing.T) {
	store, _ := testutil.NewStore(t)

	// The category id is stored verbatim, dangling or not.
	store.AddExpense(30, "lunch", "no-such-category")

	transactions := store.Transactions()
	require.Len(t, transactions, 1)
	assert.Equal(t, model.TypeExpense, transactions[0].Type)
	assert.Equal(t, "no-such-category", transactions[0].CategoryID)
	assert.Equal(t, 30.0, transactions[0].Amount)
}

func TestStore_TransactionsMostRecentFirst(t *testing.T) {
	store, _ := testutil.NewStore(t)

	store.AddIncome(1, "first")
	store.AddExpense(2, "second", "")
	store.AddIncome(3, "third")

	transactions := store.Transactions()
	require.Len(t, transactions, 3)
	assert.Equal(t, "third", transactions[0].Description)
	assert.Equal(t, "second", transactions[1].Description)
	assert.Equal(t, "first", transactions[2].Description)
}

func TestStore_AddCategory(t *testing.T) {
	t.Run("trims the name", func(t *testing.T) {
		store, _ := testutil.NewStore(t)

		store.AddCategory("  Food  ", 200)

		categories := store.Categories()
		require.Len(t, categories, 1)
		assert.Equal(t, "Food", categories[0].Name)
		assert.Equal(t, 200.0, categories[0].Budget)
		assert.NotEmpty(t, categories[0].Color)
	})

	t.Run("blank name is a silent no-op", func(t *testing.T) {
		store, _ := testutil.NewStore(t)

		store.AddCategory("", 100)
		store.AddCategory("   ", 100)

		assert.Empty(t, store.Categories())
	})

	t.Run("negative budget is stored absolute", func(t *testing.T) {
		store, _ := testutil.NewStore(t)

		store.AddCategory("Rent", -900)

		categories := store.Categories()
		require.Len(t, categories, 1)
		assert.Equal(t, 900.0, categories[0].Budget)
	})

	t.Run("preserves insertion order", func(t *testing.T) {
		store, _ := testutil.NewStore(t)

		store.AddCategory("Food", 100)
		store.AddCategory("Rent", 900)
		store.AddCategory("Fun", 50)

		categories := store.Categories()
		require.Len(t, categories, 3)
		assert.Equal(t, "Food", categories[0].Name)
		assert.Equal(t, "Rent", categories[1].Name)
		assert.Equal(t, "Fun", categories[2].Name)
	})
}

func TestStore_DeleteTransaction(t *testing.T) {
	store, _ := testutil.NewStore(t)

	store.AddIncome(10, "keep")
	store.AddIncome(20, "remove")

	var removeID string
	for _, txn := range store.Transactions() {
		if txn.Description == "remove" {
			removeID = txn.ID
		}
	}
	require.NotEmpty(t, removeID)

	store.DeleteTransaction(removeID)

	transactions := store.Transactions()
	require.Len(t, transactions, 1)
	assert.Equal(t, "keep", transactions[0].Description)

	// Absent ids are a no-op.
	store.DeleteTransaction("missing")
	assert.Len(t, store.Transactions(), 1)
}

func TestStore_DeleteCategoryCascades(t *testing.T) {
	store, _ := testutil.NewStore(t)

	store.AddCategory("Food", 100)
	catID := store.Categories()[0].ID

	store.AddExpense(30, "lunch", catID)
	store.AddExpense(15, "unrelated", "other-category")
	store.AddIncome(500, "salary")

	store.DeleteCategory(catID)

	assert.Empty(t, store.Categories(), "category should be gone")
	for _, txn := range store.Transactions() {
		assert.NotEqual(t, catID, txn.CategoryID,
			"transactions referencing the deleted category must be removed")
	}
	assert.Len(t, store.Transactions(), 2, "unrelated transactions survive the cascade")
}

func TestStore_DeleteCategoryAbsentID(t *testing.T) {
	store, _ := testutil.NewStore(t)

	store.AddCategory("Food", 100)
	store.AddIncome(10, "salary")

	store.DeleteCategory("missing")

	assert.Len(t, store.Categories(), 1)
	assert.Len(t, store.Transactions(), 1)
}

func TestStore_HydrationLifecycle(t *testing.T) {
	t.Run("status progresses to ready", func(t *testing.T) {
		persister := &testutil.MemoryPersister{}
		store := budget.New(persister)

		assert.Equal(t, budget.StatusUninitialized, store.Status())
		assert.False(t, store.Hydrated())

		store.Hydrate(context.Background())

		assert.Equal(t, budget.StatusReady, store.Status())
		assert.True(t, store.Hydrated())
	})

	t.Run("load failure still completes hydration with empty state", func(t *testing.T) {
		persister := &testutil.MemoryPersister{LoadErr: errors.New("disk exploded")}
		store := budget.New(persister)

		store.Hydrate(context.Background())

		assert.True(t, store.Hydrated())
		assert.Empty(t, store.Transactions())
		assert.Empty(t, store.Categories())
	})

	t.Run("hydrates at most once", func(t *testing.T) {
		persister := &testutil.MemoryPersister{}
		persister.Seed(&model.Snapshot{
			Transactions: []model.Transaction{{ID: "t1", Amount: 5, Type: model.TypeIncome}},
		})
		store := budget.New(persister)

		store.Hydrate(context.Background())
		require.Len(t, store.Transactions(), 1)

		// A different snapshot on disk must not be picked up again.
		persister.Seed(&model.Snapshot{})
		store.Hydrate(context.Background())
		assert.Len(t, store.Transactions(), 1)
	})

	t.Run("hydration notifies subscribers exactly once", func(t *testing.T) {
		persister := &testutil.MemoryPersister{}
		store := budget.New(persister)

		notifications := 0
		store.Subscribe(func() { notifications++ })

		store.Hydrate(context.Background())
		store.Hydrate(context.Background())

		assert.Equal(t, 1, notifications)
	})

	t.Run("malformed persisted entries are filtered", func(t *testing.T) {
		persister := &testutil.MemoryPersister{}
		persister.Seed(&model.Snapshot{
			Transactions: []model.Transaction{
				{ID: "", Amount: 10},
				{ID: "t1", Amount: 20, Type: model.TypeExpense},
			},
			Categories: []model.Category{
				{ID: "", Name: "ghost"},
				{ID: "c1", Name: "Food", Budget: 100},
			},
		})
		store := budget.New(persister)

		store.Hydrate(context.Background())

		require.Len(t, store.Transactions(), 1)
		assert.Equal(t, "t1", store.Transactions()[0].ID)
		require.Len(t, store.Categories(), 1)
		assert.Equal(t, "c1", store.Categories()[0].ID)
	})
}

func TestStore_PersistsAfterEachMutation(t *testing.T) {
	store, persister := testutil.NewStore(t)

	store.AddCategory("Food", 100)
	store.AddExpense(30, "lunch", store.Categories()[0].ID)
	store.Flush()

	assert.Equal(t, 2, persister.SaveCount())

	saved := persister.Saved()
	require.NotNil(t, saved)
	require.Len(t, saved.Transactions, 1)
	require.Len(t, saved.Categories, 1)
	assert.Equal(t, "Food", saved.Categories[0].Name)
}

func TestStore_SaveFailureKeepsMemoryState(t *testing.T) {
	persister := &testutil.MemoryPersister{SaveErr: errors.New("disk full")}
	store := budget.New(persister)
	store.Hydrate(context.Background())

	store.AddIncome(100, "salary")
	store.Flush()

	require.Len(t, store.Transactions(), 1, "mutation succeeds in memory even when the write fails")
	assert.Equal(t, 0, persister.SaveCount())
}

func TestStore_SubscribeAndUnsubscribe(t *testing.T) {
	store, _ := testutil.NewStore(t)

	notifications := 0
	unsubscribe := store.Subscribe(func() { notifications++ })

	store.AddIncome(10, "one")
	store.AddIncome(10, "two")
	assert.Equal(t, 2, notifications)

	unsubscribe()
	store.AddIncome(10, "three")
	assert.Equal(t, 2, notifications)
}

func TestStore_ReadsReturnCopies(t *testing.T) {
	store, _ := testutil.NewStore(t)

	store.AddCategory("Food", 100)
	categories := store.Categories()
	categories[0].Name = "Mutated"

	assert.Equal(t, "Food", store.Categories()[0].Name)
}

func TestStore_CategoryLookups(t *testing.T) {
	store, _ := testutil.NewStore(t)

	store.AddCategory("Food", 100)
	catID := store.Categories()[0].ID

	byID := store.CategoryByID(catID)
	require.NotNil(t, byID)
	assert.Equal(t, "Food", byID.Name)

	byName := store.CategoryByName("  Food ")
	require.NotNil(t, byName)
	assert.Equal(t, catID, byName.ID)

	assert.Nil(t, store.CategoryByID("missing"))
	assert.Nil(t, store.CategoryByName("missing"))
}

func TestStore_DeterministicTimestamps(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	store, _ := testutil.NewStore(t, budget.WithClock(testutil.FixedClock(now)))

	store.AddIncome(10, "x")

	assert.Equal(t, now, store.Transactions()[0].Date)
}
