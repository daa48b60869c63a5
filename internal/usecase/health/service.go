package health

import (
	"context"

	"github.com/kailas-cloud/essaysim/internal/domain/method"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the lexicon backend is unreachable; SMPC comparisons will fail.
	Degraded Status = "degraded"
	// Unhealthy indicates configured methods cannot be scored at all.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	lexicon LexiconPinger
	scorers ScorerChecker
	methods []method.Method
}

// New creates a Service. lexicon is nil when the lexicon is in-process.
func New(lexicon LexiconPinger, scorers ScorerChecker, methods []method.Method) *Service {
	return &Service{lexicon: lexicon, scorers: scorers, methods: methods}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	status := Healthy

	if err := s.scorers.Require(s.methods); err != nil {
		checks["scorers"] = CheckError
		status = Unhealthy
	} else {
		checks["scorers"] = CheckOK
	}

	if s.lexicon != nil {
		if err := s.lexicon.Ping(ctx); err != nil {
			checks["lexicon"] = CheckError
			if status == Healthy {
				status = Degraded
			}
		} else {
			checks["lexicon"] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
