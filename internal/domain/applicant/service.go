package applicant

import (
	"context"
	"fmt"
	"time"

	"github.com/honeycarbs/recruit-dash/internal/domain"
	"github.com/honeycarbs/recruit-dash/pkg/logging"
)

type Service interface {
	List(ctx context.Context) (domain.ApplicantSnapshot, error)
}

// Option configures Service
type Option func(*config)

type config struct {
	provider Provider
	clock    func() time.Time
	logger   *logging.Logger
}

// WithProvider sets the applicant source
func WithProvider(p Provider) Option {
	return func(c *config) {
		c.provider = p
	}
}

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithLogger sets the logger
func WithLogger(l *logging.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// NewService builds Service from options
func NewService(opts ...Option) (Service, error) {
	cfg := &config{
		clock:  time.Now,
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.provider == nil {
		return nil, fmt.Errorf("applicant.Service: provider is required")
	}

	return &service{
		provider: cfg.provider,
		clock:    cfg.clock,
		logger:   cfg.logger,
	}, nil
}

// NewServiceWithDeps creates a Service with direct dependencies (Wire-compatible)
func NewServiceWithDeps(provider Provider, logger *logging.Logger) (Service, error) {
	return NewService(WithProvider(provider), WithLogger(logger))
}

type service struct {
	provider Provider
	clock    func() time.Time
	logger   *logging.Logger
}

// List fetches the full applicant set from the provider
func (s *service) List(ctx context.Context) (domain.ApplicantSnapshot, error) {
	started := s.clock()

	applicants, err := s.provider.Fetch(ctx)
	if err != nil {
		s.logger.Warn("applicant fetch failed", "provider", s.provider.Name(), "err", err)
		return domain.ApplicantSnapshot{}, err
	}
	if applicants == nil {
		applicants = []domain.Applicant{}
	}

	fetchedAt := s.clock()
	s.logger.Info("applicants fetched",
		"provider", s.provider.Name(),
		"count", len(applicants),
		"elapsed", fetchedAt.Sub(started),
	)

	return domain.ApplicantSnapshot{
		Applicants: applicants,
		FetchedAt:  fetchedAt,
		Source:     s.provider.Name(),
	}, nil
}
