package testutil

import (
	"context"
	"time"

	"github.com/retailcore/pospricing/internal/cache"
	"github.com/retailcore/pospricing/internal/config"
	"github.com/retailcore/pospricing/internal/logger"
	"github.com/retailcore/pospricing/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds the in-memory repository implementations for testing
type Stores struct {
	RuleRepo     *InMemoryRuleStore
	ItemRepo     *InMemoryItemStore
	CustomerRepo *InMemoryCustomerStore
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	cache  *cache.InMemoryCache
	logger *logger.Logger
	config *config.Configuration
	now    time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	// Initialize validator
	validator.NewValidator()

	s.config = config.GetDefaultConfig()

	var err error
	s.logger, err = logger.NewLogger(s.config)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.stores = Stores{
		RuleRepo:     NewInMemoryRuleStore(),
		ItemRepo:     NewInMemoryItemStore(),
		CustomerRepo: NewInMemoryCustomerStore(),
	}
	s.cache = cache.NewInMemoryCache(s.config)
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.stores.RuleRepo.Clear()
	s.stores.ItemRepo.Clear()
	s.stores.CustomerRepo.Clear()
	s.cache.Flush(s.ctx)
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

func (s *BaseServiceTestSuite) GetCache() *cache.InMemoryCache {
	return s.cache
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}
