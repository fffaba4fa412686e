package dto

import (
	"context"
	"time"

	"github.com/retailcore/pospricing/internal/domain/pricingrule"
	ierr "github.com/retailcore/pospricing/internal/errors"
	"github.com/retailcore/pospricing/internal/types"
	"github.com/retailcore/pospricing/internal/validator"
	"github.com/shopspring/decimal"
)

// CreateRuleRequest represents the request to create a pricing rule.
// Optional time and amount fields use their zero value to mean unset;
// time-of-day bounds are "HH:MM" or "HH:MM:SS" strings.
type CreateRuleRequest struct {
	Name          string              `json:"name" validate:"required"`
	PriorityLevel types.PriorityLevel `json:"priority_level" validate:"required,min=1,max=8"`
	PricingType   types.PricingType   `json:"pricing_type" validate:"required"`
	IsActive      bool                `json:"is_active"`

	ValidFrom  time.Time         `json:"valid_from"`
	ValidUpto  time.Time         `json:"valid_upto"`
	DaysOfWeek []types.DayOfWeek `json:"days_of_week,omitempty"`
	FromTime   string            `json:"from_time,omitempty"`
	ToTime     string            `json:"to_time,omitempty"`

	ItemCode      string   `json:"item_code,omitempty"`
	ItemGroup     string   `json:"item_group,omitempty"`
	Brand         string   `json:"brand,omitempty"`
	Customer      string   `json:"customer,omitempty"`
	CustomerGroup string   `json:"customer_group,omitempty"`
	Territory     string   `json:"territory,omitempty"`
	BranchIDs     []string `json:"branch_ids,omitempty"`

	MinQuantity    decimal.Decimal `json:"min_quantity"`
	MaxQuantity    decimal.Decimal `json:"max_quantity"`
	MinSpendAmount decimal.Decimal `json:"min_spend_amount"`

	BasePrice          decimal.Decimal `json:"base_price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	BuyQuantity        int64           `json:"bxgy_buy_qty"`
	GetQuantity        int64           `json:"bxgy_get_qty"`
}

func (r *CreateRuleRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ToRule converts the request into a domain rule, generating its
// identifiers and audit fields. The rule's own authoring validation
// still runs afterwards; this only shapes the data.
func (r *CreateRuleRequest) ToRule(ctx context.Context) (*pricingrule.Rule, error) {
	rule := &pricingrule.Rule{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_RULE),
		DisplayID:          types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_RULE),
		Name:               r.Name,
		PricingType:        r.PricingType,
		IsActive:           r.IsActive,
		ValidFrom:          types.ToNillableTime(r.ValidFrom),
		ValidUpto:          types.ToNillableTime(r.ValidUpto),
		DaysOfWeek:         r.DaysOfWeek,
		ItemCode:           r.ItemCode,
		ItemGroup:          r.ItemGroup,
		Brand:              r.Brand,
		CustomerCode:       r.Customer,
		CustomerGroup:      r.CustomerGroup,
		Territory:          r.Territory,
		BranchIDs:          r.BranchIDs,
		MinQuantity:        types.ToNillableDecimal(r.MinQuantity),
		MaxQuantity:        types.ToNillableDecimal(r.MaxQuantity),
		MinSpendAmount:     types.ToNillableDecimal(r.MinSpendAmount),
		BasePrice:          types.ToNillableDecimal(r.BasePrice),
		DiscountPercentage: types.ToNillableDecimal(r.DiscountPercentage),
		DiscountAmount:     types.ToNillableDecimal(r.DiscountAmount),
		BuyQuantity:        r.BuyQuantity,
		GetQuantity:        r.GetQuantity,
		BaseModel:          types.GetDefaultBaseModel(ctx),
	}
	rule.SetPriorityLevel(r.PriorityLevel)

	if r.FromTime != "" {
		tod, err := types.ParseTimeOfDay(r.FromTime)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("from_time must be HH:MM or HH:MM:SS").
				Mark(ierr.ErrValidation)
		}
		rule.FromTime = &tod
	}
	if r.ToTime != "" {
		tod, err := types.ParseTimeOfDay(r.ToTime)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("to_time must be HH:MM or HH:MM:SS").
				Mark(ierr.ErrValidation)
		}
		rule.ToTime = &tod
	}

	return rule, nil
}

// ApplicableRulesRequest asks which rules would apply to a context,
// without selecting a winner. Used for device-side rule inspection.
type ApplicableRulesRequest struct {
	ItemCode    string          `json:"item_code,omitempty"`
	Customer    string          `json:"customer,omitempty"`
	BranchID    string          `json:"branch_id,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Timestamp   *time.Time      `json:"timestamp,omitempty"`
}

func (r *ApplicableRulesRequest) Normalize() {
	if r.Quantity.IsZero() {
		r.Quantity = decimal.NewFromInt(1)
	}
	if r.Timestamp == nil {
		now := time.Now().UTC()
		r.Timestamp = &now
	}
}

func (r *ApplicableRulesRequest) Validate() error {
	if r.Quantity.IsNegative() || r.TotalAmount.IsNegative() {
		return ierr.NewError("negative quantity or total").
			WithHint("Quantity and total amount must not be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// RuleResponse is the wire shape of a pricing rule.
type RuleResponse struct {
	ID               string              `json:"id"`
	DisplayID        string              `json:"display_id"`
	Name             string              `json:"name"`
	PricingType      types.PricingType   `json:"pricing_type"`
	PriorityLevel    types.PriorityLevel `json:"priority_level"`
	ResolvedPriority int                 `json:"resolved_priority"`
	IsActive         bool                `json:"is_active"`

	ValidFrom *time.Time `json:"valid_from,omitempty"`
	ValidUpto *time.Time `json:"valid_upto,omitempty"`

	ItemCode      string `json:"item_code,omitempty"`
	ItemGroup     string `json:"item_group,omitempty"`
	Brand         string `json:"brand,omitempty"`
	Customer      string `json:"customer,omitempty"`
	CustomerGroup string `json:"customer_group,omitempty"`
	Territory     string `json:"territory,omitempty"`

	BasePrice          *decimal.Decimal `json:"base_price,omitempty"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty"`
	DiscountAmount     *decimal.Decimal `json:"discount_amount,omitempty"`
	MinQuantity        *decimal.Decimal `json:"min_quantity,omitempty"`
	MaxQuantity        *decimal.Decimal `json:"max_quantity,omitempty"`
	MinSpendAmount     *decimal.Decimal `json:"min_spend_amount,omitempty"`
	BuyQuantity        int64            `json:"bxgy_buy_qty,omitempty"`
	GetQuantity        int64            `json:"bxgy_get_qty,omitempty"`
}

// NewRuleResponse converts a domain rule into its response shape.
func NewRuleResponse(r *pricingrule.Rule) *RuleResponse {
	if r == nil {
		return nil
	}
	return &RuleResponse{
		ID:                 r.ID,
		DisplayID:          r.DisplayID,
		Name:               r.Name,
		PricingType:        r.PricingType,
		PriorityLevel:      r.PriorityLevel,
		ResolvedPriority:   r.ResolvedPriority,
		IsActive:           r.IsActive,
		ValidFrom:          r.ValidFrom,
		ValidUpto:          r.ValidUpto,
		ItemCode:           r.ItemCode,
		ItemGroup:          r.ItemGroup,
		Brand:              r.Brand,
		Customer:           r.CustomerCode,
		CustomerGroup:      r.CustomerGroup,
		Territory:          r.Territory,
		BasePrice:          r.BasePrice,
		DiscountPercentage: r.DiscountPercentage,
		DiscountAmount:     r.DiscountAmount,
		MinQuantity:        r.MinQuantity,
		MaxQuantity:        r.MaxQuantity,
		MinSpendAmount:     r.MinSpendAmount,
		BuyQuantity:        r.BuyQuantity,
		GetQuantity:        r.GetQuantity,
	}
}

// ConfigurationReport is the outcome of a pricing configuration check.
// It is a validation surface only and never gates price calculation.
type ConfigurationReport struct {
	Status     string                  `json:"status"`
	Issues     []string                `json:"issues"`
	Statistics ConfigurationStatistics `json:"statistics"`
}

type ConfigurationStatistics struct {
	ActiveRules          int                         `json:"active_rules"`
	PriorityDistribution map[types.PriorityLevel]int `json:"priority_distribution"`
}
