package service

import (
	"strings"
	"testing"
	"time"

	"github.com/retailcore/pospricing/internal/api/dto"
	ierr "github.com/retailcore/pospricing/internal/errors"
	"github.com/retailcore/pospricing/internal/testutil"
	"github.com/retailcore/pospricing/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type RuleServiceSuite struct {
	testutil.BaseServiceTestSuite
	service RuleService
	pricing PricingService
}

func TestRuleService(t *testing.T) {
	suite.Run(t, new(RuleServiceSuite))
}

func (s *RuleServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		Cache:        s.GetCache(),
		RuleRepo:     s.GetStores().RuleRepo,
		ItemRepo:     s.GetStores().ItemRepo,
		CustomerRepo: s.GetStores().CustomerRepo,
	}
	s.service = NewRuleService(params)
	s.pricing = NewPricingService(params)
}

func (s *RuleServiceSuite) draftRule() *dto.CreateRuleRequest {
	return &dto.CreateRuleRequest{
		Name:               "Weekday discount",
		PriorityLevel:      types.PriorityLevelTimeBased,
		PricingType:        types.PricingTypeTimeBased,
		IsActive:           true,
		DiscountPercentage: decimal.RequireFromString("10"),
	}
}

func (s *RuleServiceSuite) TestCreateRule() {
	created, err := s.service.CreateRule(s.GetContext(), s.draftRule())
	s.NoError(err)

	s.True(strings.HasPrefix(created.ID, types.UUID_PREFIX_RULE+"_"))
	s.True(strings.HasPrefix(created.DisplayID, types.SHORT_ID_PREFIX_RULE))
	s.LessOrEqual(len(created.DisplayID), 12)
	s.Equal(17, created.ResolvedPriority)
	s.Equal(types.StatusActive, created.Status)

	stored, err := s.service.GetRule(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(created.Name, stored.Name)
	s.Equal(created.DisplayID, stored.DisplayID)
}

func (s *RuleServiceSuite) TestCreateRuleDisplayIDsAreUnique() {
	first, err := s.service.CreateRule(s.GetContext(), s.draftRule())
	s.NoError(err)
	second, err := s.service.CreateRule(s.GetContext(), s.draftRule())
	s.NoError(err)

	s.NotEqual(first.DisplayID, second.DisplayID)
}

func (s *RuleServiceSuite) TestCreateRuleRejectsInvalid() {
	// Struct-tag validation: missing name.
	req := s.draftRule()
	req.Name = ""
	_, err := s.service.CreateRule(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsValidation(err))

	// Authoring validation: discount type without a discount value.
	req = s.draftRule()
	req.DiscountPercentage = decimal.Zero
	_, err = s.service.CreateRule(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsValidation(err))

	_, err = s.service.CreateRule(s.GetContext(), nil)
	s.Error(err)
}

func (s *RuleServiceSuite) TestUpdateRuleRederivesPriority() {
	created, err := s.service.CreateRule(s.GetContext(), s.draftRule())
	s.NoError(err)

	created.PriorityLevel = types.PriorityLevelManualOverride
	created.PricingType = types.PricingTypeManualOverride

	updated, err := s.service.UpdateRule(s.GetContext(), created)
	s.NoError(err)
	s.Equal(13, updated.ResolvedPriority)
}

func (s *RuleServiceSuite) TestUpdateRuleRequiresID() {
	_, err := s.service.UpdateRule(s.GetContext(), nil)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *RuleServiceSuite) TestDeleteRule() {
	created, err := s.service.CreateRule(s.GetContext(), s.draftRule())
	s.NoError(err)

	s.NoError(s.service.DeleteRule(s.GetContext(), created.ID))

	_, err = s.service.GetRule(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))

	s.Error(s.service.DeleteRule(s.GetContext(), "rule_missing"))
}

func (s *RuleServiceSuite) TestListRulesOrderedByPriority() {
	low := s.draftRule()
	low.Name = "Low"
	low.PriorityLevel = types.PriorityLevelBasePrice
	low.PricingType = types.PricingTypeBasePrice
	low.BasePrice = decimal.RequireFromString("10")
	low.DiscountPercentage = decimal.Zero

	high := s.draftRule()
	high.Name = "High"
	high.PriorityLevel = types.PriorityLevelManualOverride
	high.PricingType = types.PricingTypeManualOverride

	_, err := s.service.CreateRule(s.GetContext(), low)
	s.NoError(err)
	_, err = s.service.CreateRule(s.GetContext(), high)
	s.NoError(err)

	rules, err := s.service.ListRules(s.GetContext())
	s.NoError(err)
	s.Len(rules, 2)
	s.Equal("High", rules[0].Name)
	s.Equal("Low", rules[1].Name)
}

func (s *RuleServiceSuite) TestWriteInvalidatesCandidateCache() {
	_, err := s.service.CreateRule(s.GetContext(), s.draftRule())
	s.NoError(err)

	ts := time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)
	req := &dto.CalculatePriceRequest{
		ItemCode:  "ITEM-001",
		BasePrice: decimal.NewFromInt(100),
		Quantity:  decimal.NewFromInt(1),
		Timestamp: &ts,
	}

	resp, err := s.pricing.CalculatePrice(s.GetContext(), req)
	s.NoError(err)
	s.True(resp.FinalPrice.Equal(decimal.NewFromInt(90)))
	s.Equal(1, s.GetStores().RuleRepo.FetchCount())

	// A second rule outranks the cached candidate set; the write must
	// drop it so the next calculation sees both rules.
	override := s.draftRule()
	override.Name = "Manual override"
	override.PriorityLevel = types.PriorityLevelManualOverride
	override.PricingType = types.PricingTypeManualOverride
	override.DiscountPercentage = decimal.RequireFromString("50")

	_, err = s.service.CreateRule(s.GetContext(), override)
	s.NoError(err)

	resp, err = s.pricing.CalculatePrice(s.GetContext(), req)
	s.NoError(err)
	s.Equal(2, s.GetStores().RuleRepo.FetchCount())
	s.True(resp.FinalPrice.Equal(decimal.NewFromInt(50)))
}
