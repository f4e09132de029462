package main

import (
	"testing"

	"github.com/digital-byte-innovations/StackWise/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{
			name:  "plain amount",
			input: "42.50",
			want:  42.50,
		},
		{
			name:  "whole number",
			input: "100",
			want:  100,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "not a number",
			input:   "lots",
			wantErr: true,
		},
		{
			name:    "zero",
			input:   "0",
			wantErr: true,
		},
		{
			name:    "too many decimal places",
			input:   "1.005",
			wantErr: true,
		},
		{
			name:    "NaN never reaches the store",
			input:   "NaN",
			wantErr: true,
		},
		{
			name:    "infinity never reaches the store",
			input:   "Inf",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAmount(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveCategory(t *testing.T) {
	store, _ := testutil.NewStore(t)
	store.AddCategory("Food", 100)
	catID := store.Categories()[0].ID

	t.Run("by id", func(t *testing.T) {
		got, err := resolveCategory(store, catID)
		require.NoError(t, err)
		assert.Equal(t, catID, got)
	})

	t.Run("by name", func(t *testing.T) {
		got, err := resolveCategory(store, "Food")
		require.NoError(t, err)
		assert.Equal(t, catID, got)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := resolveCategory(store, "Missing")
		require.Error(t, err)
	})
}
