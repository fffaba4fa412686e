package dto

import (
	"os"
	"testing"
	"time"

	ierr "github.com/retailcore/pospricing/internal/errors"
	"github.com/retailcore/pospricing/internal/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	validator.NewValidator()
	os.Exit(m.Run())
}

func TestCalculatePriceRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     CalculatePriceRequest
		wantErr bool
	}{
		{
			name: "valid request",
			req:  CalculatePriceRequest{ItemCode: "ITEM-001", BasePrice: decimal.NewFromInt(100)},
		},
		{
			name:    "missing item code",
			req:     CalculatePriceRequest{BasePrice: decimal.NewFromInt(100)},
			wantErr: true,
		},
		{
			name:    "negative base price",
			req:     CalculatePriceRequest{ItemCode: "ITEM-001", BasePrice: decimal.NewFromInt(-1)},
			wantErr: true,
		},
		{
			name:    "negative quantity",
			req:     CalculatePriceRequest{ItemCode: "ITEM-001", Quantity: decimal.NewFromInt(-2)},
			wantErr: true,
		},
		{
			name:    "negative total",
			req:     CalculatePriceRequest{ItemCode: "ITEM-001", TotalAmount: decimal.NewFromInt(-10)},
			wantErr: true,
		},
		{
			name: "zero price is allowed",
			req:  CalculatePriceRequest{ItemCode: "ITEM-001"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, ierr.IsValidation(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCalculatePriceRequestNormalize(t *testing.T) {
	req := CalculatePriceRequest{ItemCode: "ITEM-001"}
	req.Normalize()

	assert.True(t, req.Quantity.Equal(decimal.NewFromInt(1)), "quantity defaults to 1")
	assert.NotNil(t, req.Timestamp)
	assert.Equal(t, time.UTC, req.Timestamp.Location())
}

func TestCalculatePriceRequestNormalizeKeepsExplicitValues(t *testing.T) {
	ts := time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)
	req := CalculatePriceRequest{
		ItemCode:  "ITEM-001",
		Quantity:  decimal.NewFromInt(3),
		Timestamp: &ts,
	}
	req.Normalize()

	assert.True(t, req.Quantity.Equal(decimal.NewFromInt(3)))
	assert.True(t, req.Timestamp.Equal(ts))
}

func TestCalculateBulkPricesRequestValidate(t *testing.T) {
	item := BulkPriceItem{ItemCode: "ITEM-001", BasePrice: decimal.NewFromInt(10), Quantity: decimal.NewFromInt(1)}

	t.Run("valid batch", func(t *testing.T) {
		req := CalculateBulkPricesRequest{Items: []BulkPriceItem{item}}
		assert.NoError(t, req.Validate())
	})

	t.Run("empty batch", func(t *testing.T) {
		req := CalculateBulkPricesRequest{}
		assert.Error(t, req.Validate())
	})

	t.Run("batch at the cap", func(t *testing.T) {
		items := make([]BulkPriceItem, MaxBulkItems)
		for i := range items {
			items[i] = item
		}
		req := CalculateBulkPricesRequest{Items: items}
		assert.NoError(t, req.Validate())
	})

	t.Run("batch over the cap", func(t *testing.T) {
		items := make([]BulkPriceItem, MaxBulkItems+1)
		for i := range items {
			items[i] = item
		}
		req := CalculateBulkPricesRequest{Items: items}
		assert.Error(t, req.Validate())
	})

	t.Run("item missing code", func(t *testing.T) {
		req := CalculateBulkPricesRequest{Items: []BulkPriceItem{{BasePrice: decimal.NewFromInt(10)}}}
		assert.Error(t, req.Validate())
	})

	t.Run("item with negative price", func(t *testing.T) {
		bad := item
		bad.BasePrice = decimal.NewFromInt(-10)
		req := CalculateBulkPricesRequest{Items: []BulkPriceItem{bad}}
		assert.Error(t, req.Validate())
	})
}

func TestApplicableRulesRequestValidate(t *testing.T) {
	req := ApplicableRulesRequest{Quantity: decimal.NewFromInt(-1)}
	assert.Error(t, req.Validate())

	req = ApplicableRulesRequest{ItemCode: "ITEM-001"}
	assert.NoError(t, req.Validate())
	req.Normalize()
	assert.True(t, req.Quantity.Equal(decimal.NewFromInt(1)))
	assert.NotNil(t, req.Timestamp)
}
