package service

import (
	"github.com/retailcore/pospricing/internal/cache"
	"github.com/retailcore/pospricing/internal/config"
	"github.com/retailcore/pospricing/internal/domain/customer"
	"github.com/retailcore/pospricing/internal/domain/item"
	"github.com/retailcore/pospricing/internal/domain/pricingrule"
	"github.com/retailcore/pospricing/internal/logger"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	Cache  cache.Cache

	// Repositories
	RuleRepo     pricingrule.Repository
	ItemRepo     item.Repository
	CustomerRepo customer.Repository
}
