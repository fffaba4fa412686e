package service

import (
	"context"

	"github.com/retailcore/pospricing/internal/api/dto"
	"github.com/retailcore/pospricing/internal/cache"
	"github.com/retailcore/pospricing/internal/domain/pricingrule"
	ierr "github.com/retailcore/pospricing/internal/errors"
)

// RuleService owns the authoring side of pricing rules: create, update
// and retire. Every write re-derives the resolved priority and runs the
// authoring validation, and invalidates cached candidate sets so devices
// never price against a retired rule for a full TTL.
type RuleService interface {
	CreateRule(ctx context.Context, req *dto.CreateRuleRequest) (*pricingrule.Rule, error)
	GetRule(ctx context.Context, id string) (*pricingrule.Rule, error)
	UpdateRule(ctx context.Context, rule *pricingrule.Rule) (*pricingrule.Rule, error)
	DeleteRule(ctx context.Context, id string) error
	ListRules(ctx context.Context) ([]*pricingrule.Rule, error)
}

type ruleService struct {
	ServiceParams
}

// NewRuleService creates a new rule service
func NewRuleService(params ServiceParams) RuleService {
	return &ruleService{
		ServiceParams: params,
	}
}

func (s *ruleService) CreateRule(ctx context.Context, req *dto.CreateRuleRequest) (*pricingrule.Rule, error) {
	if req == nil {
		return nil, ierr.NewError("request cannot be nil").
			WithHint("Request cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rule, err := req.ToRule(ctx)
	if err != nil {
		return nil, err
	}

	if err := rule.Validate(); err != nil {
		return nil, err
	}

	if err := s.RuleRepo.Create(ctx, rule); err != nil {
		return nil, err
	}

	s.invalidateCandidates(ctx, rule.ID)
	return rule, nil
}

func (s *ruleService) GetRule(ctx context.Context, id string) (*pricingrule.Rule, error) {
	return s.RuleRepo.Get(ctx, id)
}

func (s *ruleService) UpdateRule(ctx context.Context, rule *pricingrule.Rule) (*pricingrule.Rule, error) {
	if rule == nil || rule.ID == "" {
		return nil, ierr.NewError("rule id is required").
			WithHint("Provide the id of the rule to update").
			Mark(ierr.ErrValidation)
	}

	rule.SetPriorityLevel(rule.PriorityLevel)
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	if err := s.RuleRepo.Update(ctx, rule); err != nil {
		return nil, err
	}

	s.invalidateCandidates(ctx, rule.ID)
	return rule, nil
}

func (s *ruleService) DeleteRule(ctx context.Context, id string) error {
	if err := s.RuleRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCandidates(ctx, id)
	return nil
}

func (s *ruleService) ListRules(ctx context.Context) ([]*pricingrule.Rule, error) {
	return s.RuleRepo.List(ctx)
}

// invalidateCandidates drops every cached candidate set. Fingerprints do
// not encode rule identity, so a rule change invalidates the whole
// pricing prefix.
func (s *ruleService) invalidateCandidates(ctx context.Context, ruleID string) {
	cleared := s.Cache.DeleteByPrefix(ctx, cache.PrefixPricing)
	s.Logger.Debugw("candidate cache invalidated", "rule_id", ruleID, "entries", cleared)
}
