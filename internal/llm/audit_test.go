package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"studycoach/internal/store"
)

type recordingAuditLog struct {
	rows []store.LLMRequestRow
	err  error
}

func (l *recordingAuditLog) Append(_ context.Context, row store.LLMRequestRow) error {
	l.rows = append(l.rows, row)
	return l.err
}

func TestAudit_RecordsSuccess(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: miniQuizJSON(),
		Usage:   Usage{InputTokens: 10, OutputTokens: 20},
	})
	log := &recordingAuditLog{}
	p := WithAudit(mock, "openai", log)

	ctx := WithPurpose(context.Background(), "quiz-gen")
	if _, err := p.Generate(ctx, genRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(log.rows) != 1 {
		t.Fatalf("expected 1 audit row, got %d", len(log.rows))
	}
	row := log.rows[0]
	if row.Provider != "openai" || row.Purpose != "quiz-gen" {
		t.Errorf("row = %+v", row)
	}
	if !row.Success || row.InputTokens != 10 || row.OutputTokens != 20 {
		t.Errorf("row = %+v", row)
	}
}

func TestAudit_RecordsFailure(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: errors.New("boom")})
	log := &recordingAuditLog{}
	p := WithAudit(mock, "openai", log)

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}

	if len(log.rows) != 1 {
		t.Fatalf("expected 1 audit row, got %d", len(log.rows))
	}
	row := log.rows[0]
	if row.Success {
		t.Error("failed request recorded as success")
	}
	if row.ErrorMessage == "" {
		t.Error("error message not recorded")
	}
	if row.Purpose != "unknown" {
		t.Errorf("purpose = %q", row.Purpose)
	}
}

func TestAudit_LogFailureDoesNotFailRequest(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	log := &recordingAuditLog{err: errors.New("disk full")}
	p := WithAudit(mock, "openai", log)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Errorf("audit failure surfaced to caller: %v", err)
	}
}

func TestAudit_NilLogPassthrough(t *testing.T) {
	mock := NewMockProvider()
	if p := WithAudit(mock, "openai", nil); p != Provider(mock) {
		t.Error("nil audit log must return the provider unchanged")
	}
}
