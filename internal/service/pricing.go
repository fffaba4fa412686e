package service

import (
	"context"
	"time"

	"github.com/retailcore/pospricing/internal/api/dto"
	"github.com/retailcore/pospricing/internal/cache"
	"github.com/retailcore/pospricing/internal/domain/pricingrule"
	"github.com/retailcore/pospricing/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// PricingService evaluates pricing rules against transaction contexts
// and applies exactly one winning rule per line item.
type PricingService interface {
	// CalculatePrice prices a single line item. It errors only on
	// malformed input; any internal failure past validation is contained
	// and surfaces as a degraded result carrying the original price.
	CalculatePrice(ctx context.Context, req *dto.CalculatePriceRequest) (*dto.PriceResponse, error)

	// CalculateBulkPrices prices up to MaxBulkItems line items sharing
	// one transaction context. Result order matches the request batch.
	CalculateBulkPrices(ctx context.Context, req *dto.CalculateBulkPricesRequest) (*dto.BulkPriceResponse, error)

	// GetApplicableRules lists every rule that matches the context, not
	// just the winner, for device-side inspection.
	GetApplicableRules(ctx context.Context, req *dto.ApplicableRulesRequest) ([]*dto.RuleResponse, error)

	// ValidateConfiguration reports on the health of the rule setup
	// without ever gating a price calculation.
	ValidateConfiguration(ctx context.Context) (*dto.ConfigurationReport, error)

	// ClearCache drops every cached candidate set and returns how many
	// entries were removed.
	ClearCache(ctx context.Context) int
}

type pricingService struct {
	ServiceParams
}

// NewPricingService creates a new pricing service
func NewPricingService(params ServiceParams) PricingService {
	return &pricingService{
		ServiceParams: params,
	}
}

func (s *pricingService) CalculatePrice(ctx context.Context, req *dto.CalculatePriceRequest) (*dto.PriceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.Normalize()

	start := time.Now()
	resp := s.calculate(ctx, req)
	elapsed := time.Since(start)

	if elapsed > s.Config.Pricing.SlowCalculationThreshold {
		s.Logger.Warnw("price calculation slow",
			"item_code", req.ItemCode,
			"elapsed_ms", elapsed.Milliseconds(),
			"threshold_ms", s.Config.Pricing.SlowCalculationThreshold.Milliseconds())
	}

	return resp, nil
}

// calculate runs the fail-open evaluation pipeline: fingerprint, cache,
// store fetch, match, resolve, apply. It never returns an error; a
// failure yields a degraded response at the original price.
func (s *pricingService) calculate(ctx context.Context, req *dto.CalculatePriceRequest) *dto.PriceResponse {
	tc := s.buildContext(ctx, req)

	candidates, err := s.resolveCandidates(ctx, tc)
	if err != nil {
		s.Logger.Errorw("price calculation degraded, returning original price",
			"item_code", req.ItemCode,
			"error", err)
		return s.degradedResponse(req, err)
	}

	matched := pricingrule.FilterMatches(candidates, tc)
	winner := pricingrule.SelectWinner(matched)
	if winner == nil {
		return s.unchangedResponse(req)
	}

	breakdown := winner.CalculatePrice(req.BasePrice, req.Quantity, tc.TotalAmount)

	return &dto.PriceResponse{
		ItemCode:           req.ItemCode,
		Quantity:           req.Quantity,
		OriginalPrice:      breakdown.OriginalPrice,
		FinalPrice:         breakdown.FinalPrice,
		DiscountAmount:     breakdown.DiscountAmount,
		DiscountPercentage: breakdown.DiscountPercentage,
		FreeUnits:          breakdown.FreeUnits,
		RuleApplied:        types.ToNillableString(winner.ID),
		RuleName:           winner.Name,
		PricingType:        winner.PricingType,
		PriorityLevel:      winner.PriorityLevel,
		Timestamp:          types.FromNillableTime(req.Timestamp),
	}
}

// buildContext assembles the transaction context, resolving item and
// customer metadata. Resolver failures are logged and treated as absent
// metadata; pricing must not block on a lookup hiccup.
func (s *pricingService) buildContext(ctx context.Context, req *dto.CalculatePriceRequest) *pricingrule.TransactionContext {
	tc := &pricingrule.TransactionContext{
		ItemCode:    req.ItemCode,
		BranchID:    req.BranchID,
		CustomerID:  req.Customer,
		Quantity:    req.Quantity,
		TotalAmount: req.TotalAmount,
		Timestamp:   *req.Timestamp,
	}
	if tc.BranchID == "" {
		tc.BranchID = types.GetBranchID(ctx)
	}

	if req.ItemCode != "" {
		meta, err := s.ItemRepo.ResolveMeta(ctx, req.ItemCode)
		if err != nil {
			s.Logger.Warnw("item metadata lookup failed", "item_code", req.ItemCode, "error", err)
		} else if meta != nil {
			tc.ItemGroup = meta.ItemGroup
			tc.Brand = meta.Brand
		}
	}

	if req.Customer != "" {
		meta, err := s.CustomerRepo.ResolveMeta(ctx, req.Customer)
		if err != nil {
			s.Logger.Warnw("customer metadata lookup failed", "customer", req.Customer, "error", err)
		} else if meta != nil {
			tc.CustomerGroup = meta.CustomerGroup
			tc.Territory = meta.Territory
		}
	}

	return tc
}

// resolveCandidates returns the candidate rule set for the context,
// serving from cache within the TTL and otherwise fetching from the rule
// store. The cache holds the pre-match candidate set; the matcher always
// re-runs because time-dependent conditions can change between calls.
func (s *pricingService) resolveCandidates(ctx context.Context, tc *pricingrule.TransactionContext) ([]*pricingrule.Rule, error) {
	fingerprint := s.fingerprint(tc)

	if cached, found := s.Cache.Get(ctx, fingerprint); found {
		if rules, ok := cached.([]*pricingrule.Rule); ok {
			return rules, nil
		}
	}

	candidates, err := s.RuleRepo.FetchCandidates(ctx, &pricingrule.CandidateFilter{
		ActiveOnly: true,
		ItemCode:   tc.ItemCode,
		ItemGroup:  tc.ItemGroup,
		Brand:      tc.Brand,
		Limit:      s.Config.Pricing.CandidateFetchLimit,
	})
	if err != nil {
		return nil, err
	}

	// Cache only bounded candidate sets to bound memory.
	if len(candidates) <= s.Config.Cache.MaxCachedCandidates {
		s.Cache.Set(ctx, fingerprint, candidates, s.Config.Cache.TTL)
	}

	return candidates, nil
}

// fingerprint summarizes every context input that affects which
// candidates the store returns. Same context, same key.
func (s *pricingService) fingerprint(tc *pricingrule.TransactionContext) string {
	customer := tc.CustomerID
	if customer == "" {
		customer = "none"
	}
	branch := tc.BranchID
	if branch == "" {
		branch = "none"
	}
	return cache.GenerateFingerprint(cache.PrefixPricing, []interface{}{
		tc.ItemCode,
		tc.Quantity,
		tc.TotalAmount,
		customer,
		branch,
	}, nil)
}

func (s *pricingService) unchangedResponse(req *dto.CalculatePriceRequest) *dto.PriceResponse {
	return &dto.PriceResponse{
		ItemCode:           req.ItemCode,
		Quantity:           req.Quantity,
		OriginalPrice:      req.BasePrice,
		FinalPrice:         req.BasePrice,
		DiscountAmount:     decimal.Zero,
		DiscountPercentage: decimal.Zero,
		RuleApplied:        nil,
		Timestamp:          types.FromNillableTime(req.Timestamp),
	}
}

func (s *pricingService) degradedResponse(req *dto.CalculatePriceRequest, err error) *dto.PriceResponse {
	resp := s.unchangedResponse(req)
	resp.CalculationDegraded = true
	resp.DegradedReason = err.Error()
	return resp
}

func (s *pricingService) CalculateBulkPrices(ctx context.Context, req *dto.CalculateBulkPricesRequest) (*dto.BulkPriceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()

	timestamp := req.Timestamp
	if timestamp == nil {
		timestamp = lo.ToPtr(time.Now().UTC())
	}

	// The shared transaction total is fixed up front over the whole
	// batch; it is not a running sum over already-priced items.
	sharedTotal := decimal.Zero
	for _, itm := range req.Items {
		quantity := itm.Quantity
		if quantity.IsZero() {
			quantity = decimal.NewFromInt(1)
		}
		sharedTotal = sharedTotal.Add(itm.BasePrice.Mul(quantity))
	}

	resp := &dto.BulkPriceResponse{
		Items:         make([]*dto.PriceResponse, 0, len(req.Items)),
		TotalOriginal: decimal.Zero,
		TotalFinal:    decimal.Zero,
		TotalDiscount: decimal.Zero,
	}

	ruleIDs := make([]string, 0, len(req.Items))
	for _, itm := range req.Items {
		itemReq := &dto.CalculatePriceRequest{
			ItemCode:    itm.ItemCode,
			BasePrice:   itm.BasePrice,
			Quantity:    itm.Quantity,
			TotalAmount: sharedTotal,
			Customer:    req.Customer,
			BranchID:    req.BranchID,
			Timestamp:   timestamp,
		}

		itemResp, err := s.CalculatePrice(ctx, itemReq)
		if err != nil {
			// One bad item must not abort the batch.
			itemReq.Normalize()
			itemResp = s.degradedResponse(itemReq, err)
		}

		resp.Items = append(resp.Items, itemResp)
		resp.TotalOriginal = resp.TotalOriginal.Add(itemResp.OriginalPrice)
		resp.TotalFinal = resp.TotalFinal.Add(itemResp.FinalPrice)
		resp.TotalDiscount = resp.TotalDiscount.Add(itemResp.DiscountAmount)
		if id := types.FromNillableString(itemResp.RuleApplied); id != "" {
			ruleIDs = append(ruleIDs, id)
		}
	}

	resp.RulesApplied = lo.Uniq(ruleIDs)
	resp.CalculationTime = float64(time.Since(start).Microseconds()) / 1000.0

	return resp, nil
}

func (s *pricingService) GetApplicableRules(ctx context.Context, req *dto.ApplicableRulesRequest) ([]*dto.RuleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.Normalize()

	tc := s.buildContext(ctx, &dto.CalculatePriceRequest{
		ItemCode:    req.ItemCode,
		Quantity:    req.Quantity,
		TotalAmount: req.TotalAmount,
		Customer:    req.Customer,
		BranchID:    req.BranchID,
		Timestamp:   req.Timestamp,
	})

	candidates, err := s.resolveCandidates(ctx, tc)
	if err != nil {
		return nil, err
	}

	matched := pricingrule.FilterMatches(candidates, tc)
	return lo.Map(matched, func(r *pricingrule.Rule, _ int) *dto.RuleResponse {
		return dto.NewRuleResponse(r)
	}), nil
}

func (s *pricingService) ValidateConfiguration(ctx context.Context) (*dto.ConfigurationReport, error) {
	report := &dto.ConfigurationReport{
		Issues: []string{},
		Statistics: dto.ConfigurationStatistics{
			PriorityDistribution: map[types.PriorityLevel]int{},
		},
	}

	activeRules, err := s.RuleRepo.CountActive(ctx)
	if err != nil {
		report.Issues = append(report.Issues, "rule store unavailable: "+err.Error())
	} else {
		report.Statistics.ActiveRules = activeRules
		if activeRules == 0 {
			report.Issues = append(report.Issues, "no active pricing rules found")
		}
	}

	distribution, err := s.RuleRepo.CountByPriorityLevel(ctx)
	if err == nil {
		report.Statistics.PriorityDistribution = distribution
		if len(distribution) == 0 && activeRules > 0 {
			report.Issues = append(report.Issues, "no pricing rules with priority levels found")
		}
	}

	// Probe the calculation path end to end. Counts can succeed while the
	// candidate query is broken; a degraded probe catches that.
	probe, err := s.CalculatePrice(ctx, &dto.CalculatePriceRequest{
		ItemCode:  "__config_probe__",
		BasePrice: decimal.NewFromInt(100),
	})
	if err != nil {
		report.Issues = append(report.Issues, "test calculation failed: "+err.Error())
	} else if probe.CalculationDegraded {
		report.Issues = append(report.Issues, "test calculation degraded: "+probe.DegradedReason)
	}

	report.Status = "success"
	if len(report.Issues) > 0 {
		report.Status = "error"
	}

	return report, nil
}

func (s *pricingService) ClearCache(ctx context.Context) int {
	cleared := s.Cache.DeleteByPrefix(ctx, cache.PrefixPricing)
	s.Logger.Infow("pricing cache cleared", "entries", cleared)
	return cleared
}
