package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func strp(s string) *string { return &s }

func TestCreateInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      CreateInput
		wantErr string
	}{
		{
			name: "ok quantity ticket",
			in:   CreateInput{Title: "Fiesta Bio 2", Type: "ticket", Price: intp(12000), StockType: "quantity", StockValue: 80},
		},
		{
			name: "ok boolean item",
			in:   CreateInput{Title: "Tote", Type: "item", Price: intp(5000), StockType: "boolean", StockValue: 1},
		},
		{
			name:    "missing title",
			in:      CreateInput{Type: "ticket", Price: intp(1), StockType: "quantity"},
			wantErr: "title",
		},
		{
			name:    "bad type",
			in:      CreateInput{Title: "x", Type: "bundle", Price: intp(1), StockType: "quantity"},
			wantErr: "type",
		},
		{
			name:    "missing price",
			in:      CreateInput{Title: "x", Type: "item", StockType: "quantity"},
			wantErr: "price",
		},
		{
			name:    "negative price",
			in:      CreateInput{Title: "x", Type: "item", Price: intp(-5), StockType: "quantity"},
			wantErr: "price",
		},
		{
			name:    "bad stock type",
			in:      CreateInput{Title: "x", Type: "item", Price: intp(1), StockType: "finite"},
			wantErr: "stock_type",
		},
		{
			name:    "zero max per order",
			in:      CreateInput{Title: "x", Type: "item", Price: intp(1), StockType: "quantity", MaxPerOrder: intp(0)},
			wantErr: "max_per_order",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.in.Validate()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalid)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.in.Title, p.Title)
		})
	}
}

func TestCreateInputNormalizesBooleanStock(t *testing.T) {
	p, err := CreateInput{Title: "x", Type: "item", Price: intp(1), StockType: "boolean", StockValue: 7}.Validate()
	require.NoError(t, err)
	assert.Equal(t, 1, p.StockValue)

	p, err = CreateInput{Title: "x", Type: "item", Price: intp(1), StockType: "boolean", StockValue: 0}.Validate()
	require.NoError(t, err)
	assert.Equal(t, 0, p.StockValue)
}

func TestCreateInputDefaultsVisible(t *testing.T) {
	p, err := CreateInput{Title: "x", Type: "item", Price: intp(1), StockType: "quantity"}.Validate()
	require.NoError(t, err)
	assert.True(t, p.Visible)
}

func TestUpdateInputValidate(t *testing.T) {
	assert.NoError(t, UpdateInput{ID: 3, Price: intp(900)}.Validate())
	assert.ErrorIs(t, UpdateInput{Price: intp(900)}.Validate(), ErrInvalid)
	assert.ErrorIs(t, UpdateInput{ID: 3, Type: strp("bundle")}.Validate(), ErrInvalid)
	assert.ErrorIs(t, UpdateInput{ID: 3, StockValue: intp(-1)}.Validate(), ErrInvalid)
	assert.ErrorIs(t, UpdateInput{ID: 3, Title: strp("")}.Validate(), ErrInvalid)
}

func TestProductAvailable(t *testing.T) {
	assert.True(t, Product{StockType: StockBoolean, StockValue: 1}.Available())
	assert.False(t, Product{StockType: StockBoolean, StockValue: 0}.Available())
}
