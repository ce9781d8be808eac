package audit

import (
	"context"
	"strings"

	"github.com/NeuralTrust/ComplianceHawk/pkg/app/model"
	"github.com/NeuralTrust/ComplianceHawk/pkg/app/prompt"
	"github.com/NeuralTrust/ComplianceHawk/pkg/app/verdict"
	domainAudit "github.com/NeuralTrust/ComplianceHawk/pkg/domain/audit"
	"github.com/NeuralTrust/ComplianceHawk/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
)

const maxLoggedRaw = 512

//go:generate mockery --name=Service --dir=. --output=./mocks --filename=service_mock.go --case=underscore --with-expecter

// Service runs one audit: build the prompt, ask the model, read the answer.
// Unreadable answers are results, not errors; an unreachable model is an error.
type Service interface {
	Audit(ctx context.Context, req domainAudit.Request) (domainAudit.Verdict, error)
}

type service struct {
	logger      *logrus.Logger
	adapter     model.Adapter
	builder     prompt.Builder
	interpreter verdict.Interpreter
	defaultRule string
}

func NewService(
	logger *logrus.Logger,
	adapter model.Adapter,
	builder prompt.Builder,
	interpreter verdict.Interpreter,
	defaultRule string,
) Service {
	return &service{
		logger:      logger,
		adapter:     adapter,
		builder:     builder,
		interpreter: interpreter,
		defaultRule: defaultRule,
	}
}

func (s *service) Audit(ctx context.Context, req domainAudit.Request) (domainAudit.Verdict, error) {
	if !s.adapter.Available() {
		return domainAudit.Verdict{}, domainAudit.NewUnavailableError(s.adapter.Reason())
	}
	if strings.TrimSpace(req.ContractText) == "" {
		return domainAudit.Verdict{}, domainAudit.ErrEmptyContract
	}

	req = req.WithDefaultRule(s.defaultRule)
	p := s.builder.Build(req.ContractText, req.RegulationRule)

	raw, err := s.adapter.Generate(ctx, p)
	if err != nil {
		return domainAudit.Verdict{}, err
	}

	result := s.interpreter.Interpret(raw)
	if result.Outcome == verdict.OutcomeUnparseable {
		s.logger.WithError(result.Err).
			WithField("provider", s.adapter.Provider()).
			WithField("raw", truncate(raw, maxLoggedRaw)).
			Warn("model output could not be parsed, returning fail-safe verdict")
	}

	tier := prometheus.RiskTier(result.Verdict.RiskScore)
	if result.Outcome == verdict.OutcomeUnparseable {
		tier = "error"
	}
	prometheus.VerdictsTotal.WithLabelValues(result.Outcome.String(), tier).Inc()

	return result.Verdict, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
