package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/digital-byte-innovations/StackWise/internal/budget"
	"github.com/digital-byte-innovations/StackWise/internal/common"
	"github.com/digital-byte-innovations/StackWise/internal/config"
	"github.com/digital-byte-innovations/StackWise/internal/storage"
	"github.com/digital-byte-innovations/StackWise/internal/validate"
	"github.com/spf13/viper"
)

// initStore opens the database and returns a hydrated budget store.
// Callers must Close it so pending background writes get flushed.
func initStore(ctx context.Context) (*budget.Store, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath
	}
	dbPath = config.ExpandPath(dbPath)

	persister, err := storage.NewSQLiteStore(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open budget database: %w", err)
	}

	store := budget.New(persister)
	store.Hydrate(ctx)

	return store, nil
}

// parseAmount validates a user-entered amount and parses it.
func parseAmount(text string) (float64, error) {
	if result := validate.Amount(text); !result.Valid {
		return 0, errors.New(result.Error)
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", text, err)
	}
	return amount, nil
}

// resolveCategory finds a category by id or (trimmed) name.
func resolveCategory(store *budget.Store, idOrName string) (string, error) {
	if cat := store.CategoryByID(idOrName); cat != nil {
		return cat.ID, nil
	}
	if cat := store.CategoryByName(idOrName); cat != nil {
		return cat.ID, nil
	}
	return "", common.NewUserError(fmt.Sprintf("no category matches %q", idOrName), common.ErrNotFound)
}
