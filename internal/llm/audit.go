package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"studycoach/internal/store"
)

// AuditLog receives one row per LLM request.
type AuditLog interface {
	Append(ctx context.Context, row store.LLMRequestRow) error
}

// AuditProvider is a decorator that records every request in the store's
// llm_requests table. A failed audit write never fails the request.
type AuditProvider struct {
	inner    Provider
	provider string
	log      AuditLog
}

// WithAudit wraps a Provider with request auditing. A nil log returns the
// provider unchanged.
func WithAudit(p Provider, providerName string, log AuditLog) Provider {
	if log == nil {
		return p
	}
	return &AuditProvider{inner: p, provider: providerName, log: log}
}

func (a *AuditProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := a.inner.Generate(ctx, req)

	row := store.LLMRequestRow{
		Provider:  a.provider,
		Model:     a.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		row.Model = resp.Model
		row.InputTokens = resp.Usage.InputTokens
		row.OutputTokens = resp.Usage.OutputTokens
	}
	if err != nil {
		row.ErrorMessage = err.Error()
	}

	if logErr := a.log.Append(ctx, row); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to audit LLM request: %v\n", logErr)
	}

	return resp, err
}

func (a *AuditProvider) ModelID() string {
	return a.inner.ModelID()
}
