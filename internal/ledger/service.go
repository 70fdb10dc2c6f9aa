package ledger

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
)

// Service orchestrates account store calls around the aggregation engine.
type Service struct {
	repo             Repository
	classifier       *Classifier
	cfg              ClassifierConfig
	logger           *slog.Logger
	observeRecompute func(error)
}

// NewService constructs a Service with the given classifier configuration.
func NewService(repo Repository, cfg ClassifierConfig, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		classifier: NewClassifier(cfg),
		cfg:        cfg,
		logger:     logger,
	}
}

// WithRecomputeObserver installs a hook called with the outcome of every
// recompute trigger, for metrics.
func (s *Service) WithRecomputeObserver(fn func(error)) {
	s.observeRecompute = fn
}

func (s *Service) recompute(ctx context.Context) error {
	err := s.repo.TriggerRecompute(ctx)
	if s.observeRecompute != nil {
		s.observeRecompute(err)
	}
	return err
}

// ClassifierConfig exposes the code sets so presentation consumers can
// derive the depreciable display column without re-declaring them.
func (s *Service) ClassifierConfig() ClassifierConfig {
	return s.cfg
}

// AccountByCode looks up one account by catalog code.
func (s *Service) AccountByCode(ctx context.Context, code string) (Account, error) {
	return s.repo.GetByCode(ctx, code)
}

// Accounts returns the full account list in code order.
func (s *Service) Accounts(ctx context.Context) ([]Account, error) {
	return s.repo.List(ctx)
}

// AssignmentResult reports where an amount assignment landed and whether
// the follow-up recompute succeeded.
type AssignmentResult struct {
	Field          Field
	RecomputeError error
}

// AssignAmount writes an amount to the account's routed monetary field and
// triggers the server-side rollup recompute. A recompute failure is
// returned inside the result, not as the method error: the field write has
// already committed and the two are independent failure domains.
func (s *Service) AssignAmount(ctx context.Context, id int64, amount decimal.Decimal) (AssignmentResult, error) {
	acc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return AssignmentResult{}, err
	}

	field := s.classifier.Classify(acc.Code)
	affected, err := s.repo.UpdateField(ctx, id, field, amount)
	if err != nil {
		return AssignmentResult{}, err
	}
	if affected == 0 {
		return AssignmentResult{}, ErrAccountNotFound
	}

	result := AssignmentResult{Field: field}
	if err := s.recompute(ctx); err != nil {
		s.logger.Error("recompute after amount assignment", slog.Int64("account_id", id), slog.Any("error", err))
		result.RecomputeError = err
	}
	return result, nil
}

// Catalog returns the slim by-type catalog of typed accounts.
func (s *Service) Catalog(ctx context.Context) (Catalog, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return Catalog{}, err
	}
	var cat Catalog
	for _, acc := range accounts {
		entry := CatalogEntry{Code: acc.Code, Name: acc.Name, Type: acc.Type}
		switch acc.Type {
		case TypeAsset:
			cat.Assets = append(cat.Assets, entry)
		case TypeLiability:
			cat.Liabilities = append(cat.Liabilities, entry)
		case TypeEquity:
			cat.Equity = append(cat.Equity, entry)
		}
	}
	return cat, nil
}

// GroupedCatalog fetches the account snapshot and rolls it up. Every
// presentation surface consumes this tree; none recomputes totals.
func (s *Service) GroupedCatalog(ctx context.Context) (GroupedTotals, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return GroupedTotals{}, err
	}
	return Aggregate(accounts), nil
}

// Reset zeroes every monetary field across the catalog. Rollups are stale
// until the next recompute, so one is triggered immediately; a failure
// there is reported the same way as in AssignAmount.
func (s *Service) Reset(ctx context.Context) (AssignmentResult, error) {
	if err := s.repo.ResetAll(ctx); err != nil {
		return AssignmentResult{}, err
	}
	var result AssignmentResult
	if err := s.recompute(ctx); err != nil {
		s.logger.Error("recompute after reset", slog.Any("error", err))
		result.RecomputeError = err
	}
	return result, nil
}
