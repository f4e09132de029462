package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/digital-byte-innovations/StackWise/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "budget.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func testSnapshot() *model.Snapshot {
	date := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return &model.Snapshot{
		Transactions: []model.Transaction{
			{ID: "t1", Amount: 1000, Description: "salary", Date: date, Type: model.TypeIncome},
			{ID: "t2", Amount: 60, Description: "groceries", Date: date, Type: model.TypeExpense, CategoryID: "c1"},
			{ID: "t3", Amount: 50, Description: "dinner", Date: date, Type: model.TypeExpense, CategoryID: "c1"},
		},
		Categories: []model.Category{
			{ID: "c1", Name: "Food", Budget: 100, Color: "#3498db"},
			{ID: "c2", Name: "Rent", Budget: 900, Color: "#2ecc71"},
		},
	}
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	original := testSnapshot()
	require.NoError(t, store.Save(ctx, original))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	require.Len(t, loaded.Transactions, len(original.Transactions))
	require.Len(t, loaded.Categories, len(original.Categories))

	// Order is preserved on both collections.
	for i, txn := range original.Transactions {
		assert.Equal(t, txn.ID, loaded.Transactions[i].ID)
		assert.Equal(t, txn.Amount, loaded.Transactions[i].Amount)
		assert.Equal(t, txn.Type, loaded.Transactions[i].Type)
		assert.Equal(t, txn.CategoryID, loaded.Transactions[i].CategoryID)
		assert.True(t, txn.Date.Equal(loaded.Transactions[i].Date))
	}
	for i, cat := range original.Categories {
		assert.Equal(t, cat, loaded.Categories[i])
	}
}

func TestSQLiteStore_LoadMissingSnapshot(t *testing.T) {
	store := newTestStore(t)

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, loaded, "no snapshot yet means nil, not an error")
}

func TestSQLiteStore_SaveReplacesPrevious(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSnapshot()))
	require.NoError(t, store.Save(ctx, &model.Snapshot{
		Transactions: []model.Transaction{},
		Categories:   []model.Category{},
	}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Empty(t, loaded.Transactions)
	assert.Empty(t, loaded.Categories)
}

func TestSQLiteStore_LoadMalformedDocument(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.db.ExecContext(ctx,
		`INSERT INTO snapshots (key, document) VALUES (?, ?)`,
		SnapshotKey, `{not json at all`)
	require.NoError(t, err)

	loaded, err := store.Load(ctx)
	require.NoError(t, err, "a corrupt document degrades to empty state, not an error")
	assert.Nil(t, loaded)
}

func TestSQLiteStore_LoadVersionZeroDocument(t *testing.T) {
	tests := []struct {
		name             string
		document         string
		wantTransactions int
		wantCategories   int
	}{
		{
			name:             "missing version tag",
			document:         `{"state":{"transactions":[{"id":"t1","amount":5,"type":"income","date":"2024-06-01T12:00:00Z"}],"categories":[]}}`,
			wantTransactions: 1,
			wantCategories:   0,
		},
		{
			name:             "non-array transactions coerced to empty",
			document:         `{"state":{"transactions":"oops","categories":[{"id":"c1","name":"Food","budget":100}]},"version":0}`,
			wantTransactions: 0,
			wantCategories:   1,
		},
		{
			name:             "null collections coerced to empty",
			document:         `{"state":{"transactions":null,"categories":null},"version":0}`,
			wantTransactions: 0,
			wantCategories:   0,
		},
		{
			name:             "missing state entirely",
			document:         `{"version":0}`,
			wantTransactions: 0,
			wantCategories:   0,
		},
		{
			name:             "malformed entries are dropped, valid ones kept",
			document:         `{"state":{"transactions":[{"id":"t1","amount":5,"type":"income","date":"2024-06-01T12:00:00Z"},"bogus",{"id":"t2","amount":7,"type":"expense","date":"2024-06-01T12:00:00Z"}],"categories":[]},"version":1}`,
			wantTransactions: 2,
			wantCategories:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			ctx := context.Background()

			_, err := store.db.ExecContext(ctx,
				`INSERT INTO snapshots (key, document) VALUES (?, ?)`,
				SnapshotKey, tt.document)
			require.NoError(t, err)

			loaded, err := store.Load(ctx)
			require.NoError(t, err)
			require.NotNil(t, loaded)
			assert.Len(t, loaded.Transactions, tt.wantTransactions)
			assert.Len(t, loaded.Categories, tt.wantCategories)
		})
	}
}

func TestSQLiteStore_WritesCurrentVersion(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSnapshot()))

	var raw string
	err := store.db.QueryRowContext(ctx,
		`SELECT document FROM snapshots WHERE key = ?`, SnapshotKey).Scan(&raw)
	require.NoError(t, err)

	_, version, err := decodeDocument([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, DocumentVersion, version)
}

func TestSQLiteStore_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "budget.db")

	store, err := NewSQLiteStore(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, testSnapshot()))
	require.NoError(t, store.Close())

	// Reopening re-runs migrations; they must be idempotent.
	reopened, err := NewSQLiteStore(ctx, dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	loaded, err := reopened.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Len(t, loaded.Transactions, 3)
	assert.Len(t, loaded.Categories, 2)
}

func TestSQLiteStore_SaveValidation(t *testing.T) {
	store := newTestStore(t)

	err := store.Save(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNilParameter)
}

func TestNewSQLiteStore_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStore(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestMigrate_RecordsVersion(t *testing.T) {
	store := newTestStore(t)

	version, err := store.schemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}
