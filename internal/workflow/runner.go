// File path: internal/workflow/runner.go
package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/NicoLafakis/HubAuditor9001/internal/audit"
	"github.com/NicoLafakis/HubAuditor9001/internal/common"
	"github.com/NicoLafakis/HubAuditor9001/internal/llm"
	"github.com/NicoLafakis/HubAuditor9001/internal/report"
)

// Report is the complete audit result envelope: the raw metrics (for the
// sidebar), the generated analysis, and its consolidated, rendered sections
// (for the main panel).
type Report struct {
	AuditType      audit.Type            `json:"auditType"`
	Timestamp      time.Time             `json:"timestamp"`
	Metrics        audit.Metrics         `json:"metrics"`
	MetricGroups   []audit.MetricGroup   `json:"metricGroups"`
	Analysis       string                `json:"analysis"`
	Sections       []report.Section      `json:"sections"`
	AccountContext *audit.AccountContext `json:"accountContext,omitempty"`
}

// Runner drives one audit end to end: fetch records, compute metrics, format
// the sidebar groups, generate the narrative, consolidate and render it.
type Runner struct {
	provider llm.Provider
}

func NewRunner(provider llm.Provider) *Runner {
	return &Runner{provider: provider}
}

// Run executes the audit pipeline. Calculator and formatter steps are pure;
// the only failure sources are the record fetches and the generation call,
// whose errors propagate typed for the API layer to map.
func (r *Runner) Run(ctx context.Context, auditType audit.Type, source audit.RecordSource, acct *audit.AccountContext) (*Report, error) {
	logger := common.Logger()
	now := time.Now()

	var (
		metrics audit.Metrics
		groups  []audit.MetricGroup
	)

	switch auditType {
	case audit.TypeContactQuality:
		contacts, err := source.FetchContacts(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch contacts: %w", err)
		}
		m := audit.CalculateContactQuality(contacts, now)
		metrics, groups = m, audit.FormatContactQuality(m)

	case audit.TypePipelineHealth:
		deals, err := source.FetchDeals(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch deals: %w", err)
		}
		m := audit.CalculatePipelineHealth(deals, now)
		metrics, groups = m, audit.FormatPipelineHealth(m)

	case audit.TypeCompanyEnrichment:
		companies, err := source.FetchCompanies(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch companies: %w", err)
		}
		contacts, err := source.FetchContacts(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch contacts: %w", err)
		}
		m := audit.CalculateCompanyEnrichment(companies, contacts)
		metrics, groups = m, audit.FormatCompanyEnrichment(m)

	case audit.TypeLeadScoring:
		contacts, err := source.FetchContacts(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch contacts: %w", err)
		}
		m := audit.CalculateLeadScoring(contacts, now)
		metrics, groups = m, audit.FormatLeadScoring(m)

	case audit.TypeSyncIntegrity:
		// No integration feed yet; the calculator returns a displayable
		// placeholder rather than failing the audit.
		m := audit.CalculateSyncIntegrity(nil)
		metrics, groups = m, audit.FormatSyncIntegrity(m)

	default:
		return nil, fmt.Errorf("unsupported audit type %q", auditType)
	}

	prompt := report.BuildPrompt(auditType, metrics, acct)
	logger.Debug("workflow: generating analysis", "audit_type", string(auditType), "prompt_len", len(prompt))

	analysis, err := r.provider.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}})
	if err != nil {
		return nil, fmt.Errorf("generate analysis: %w", err)
	}

	sections := report.RenderSections(report.Consolidate(analysis))
	logger.Info("workflow: audit complete",
		"audit_type", string(auditType), "sections", len(sections))

	return &Report{
		AuditType:      auditType,
		Timestamp:      now.UTC(),
		Metrics:        metrics,
		MetricGroups:   groups,
		Analysis:       analysis,
		Sections:       sections,
		AccountContext: acct,
	}, nil
}
