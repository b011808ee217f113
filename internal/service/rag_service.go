package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vaultify/backend/internal/adapter/store"
	"github.com/vaultify/backend/internal/chunk"
	"github.com/vaultify/backend/internal/domain"
	"github.com/vaultify/backend/internal/port"
)

// Fixed responses for the empty-store branch.
const (
	noEventsAnswer  = "No security events have been logged yet."
	noEventsSummary = "No security events logged yet."
)

// RAGConfig tunes retrieval and indexing behavior.
type RAGConfig struct {
	Chunking    chunk.Config
	AskTopK     int
	SummaryTopK int
	Timeout     time.Duration
}

// DefaultRAGConfig returns the retrieval defaults.
func DefaultRAGConfig() RAGConfig {
	return RAGConfig{
		Chunking:    chunk.DefaultConfig(),
		AskTopK:     8,
		SummaryTopK: 10,
		Timeout:     30 * time.Second,
	}
}

// RAGService answers questions and produces summaries over the log store,
// using retrieval-augmented generation when an AI provider is configured and
// deterministic fallback rules when it is not.
//
// Indexing is incremental: each ingested entry is chunked, embedded, and
// appended to the index. The index is never rebuilt from scratch, so chunk
// boundaries stay consistent for the lifetime of one index.
type RAGService struct {
	ai    port.AIProvider // nil when AI is disabled
	logs  *store.LogStore
	index *store.VectorIndex
	cfg   RAGConfig
}

// NewRAGService creates the answer/summary engine. ai may be nil, which
// disables the generative branches for the lifetime of the service.
func NewRAGService(ai port.AIProvider, logs *store.LogStore, index *store.VectorIndex, cfg RAGConfig) *RAGService {
	def := DefaultRAGConfig()
	if cfg.AskTopK <= 0 {
		cfg.AskTopK = def.AskTopK
	}
	if cfg.SummaryTopK <= 0 {
		cfg.SummaryTopK = def.SummaryTopK
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	return &RAGService{ai: ai, logs: logs, index: index, cfg: cfg}
}

// AIEnabled reports whether a generative backend was configured at startup.
func (s *RAGService) AIEnabled() bool {
	return s.ai != nil
}

// IndexActive reports whether the embedding index holds at least one chunk.
func (s *RAGService) IndexActive() bool {
	return s.index.Len() > 0
}

// ResetIndex discards the embedding index. Called when the log store is cleared.
func (s *RAGService) ResetIndex() {
	s.index.Reset()
}

// IndexEntry embeds the entry's text and extends the index. Best-effort:
// on failure the index keeps its last-good state and the error is returned
// for the caller to log; ingestion of the entry itself has already succeeded.
func (s *RAGService) IndexEntry(ctx context.Context, entry domain.LogEntry) error {
	if s.ai == nil {
		return nil
	}

	chunks := chunk.Split(entry.IndexText(), s.cfg.Chunking)
	if len(chunks) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	vectors, err := s.ai.EmbedBatch(ctx, chunks)
	if err != nil {
		return fmt.Errorf("embed log entry: %w", err)
	}
	return s.index.Add(chunks, vectors)
}

// Answer resolves a question about the logged events. It never returns an
// error: AI failures are folded into the answer text so the transport layer
// can keep a uniform response shape.
func (s *RAGService) Answer(ctx context.Context, question string) string {
	if s.logs.Len() == 0 {
		return noEventsAnswer
	}
	if s.ai == nil {
		return fallbackAnswer(question, s.logs.List("", 0))
	}

	answer, err := s.generate(ctx, question, question, s.cfg.AskTopK, s.answerPrompt)
	if err != nil {
		slog.Error("answer generation failed", "question", question, "error", err)
		return fmt.Sprintf("Error processing question: %v", err)
	}
	return answer
}

// Summarize produces an overview of all logged events, highlighting concerns.
func (s *RAGService) Summarize(ctx context.Context) string {
	if s.logs.Len() == 0 {
		return noEventsSummary
	}
	if s.ai == nil {
		return fallbackSummary(s.logs.List("", 0))
	}

	const (
		summaryQuestion = "Provide a comprehensive security summary highlighting any concerns"
		summaryQuery    = "Summarize all security events with focus on threats"
	)
	summary, err := s.generate(ctx, summaryQuestion, summaryQuery, s.cfg.SummaryTopK, s.summaryPrompt)
	if err != nil {
		slog.Error("summary generation failed", "error", err)
		return fmt.Sprintf("Error generating summary: %v", err)
	}
	return summary
}

// promptBuilder renders the final model prompt. contextText holds either the
// retrieved chunks or, when the index is absent, the full log text.
type promptBuilder func(contextText, question string) string

// generate runs the model branch: direct prompting over all log text while
// the index is absent, retrieval-augmented prompting once it is present.
// question goes into the prompt; retrievalQuery is what gets embedded for
// similarity search (they differ only for the fixed summary flow).
func (s *RAGService) generate(ctx context.Context, question, retrievalQuery string, topK int, build promptBuilder) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	var contextText string
	if !s.IndexActive() {
		contextText = allLogText(s.logs.List("", 0))
	} else {
		queryVector, err := s.ai.Embed(ctx, retrievalQuery)
		if err != nil {
			return "", fmt.Errorf("embed question: %w", err)
		}
		scored := s.index.Search(queryVector, topK)
		parts := make([]string, len(scored))
		for i, c := range scored {
			parts[i] = c.Content
		}
		contextText = strings.Join(parts, "\n")
	}

	return s.ai.Generate(ctx, build(contextText, question))
}

func (s *RAGService) answerPrompt(contextText, question string) string {
	return fmt.Sprintf(`You are analyzing security system logs. Answer the question using only this data:

%s

Question: %s

Provide a clear, specific answer:`, contextText, question)
}

func (s *RAGService) summaryPrompt(contextText, _ string) string {
	return fmt.Sprintf(`Analyze these security system events and provide a concise summary:

%s

Provide:
1. Overview of activity
2. Notable security concerns
3. System status assessment

Summary:`, contextText)
}

// allLogText renders every entry for direct (non-retrieval) prompting.
func allLogText(entries []domain.LogEntry) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.IndexText()
	}
	return strings.Join(lines, "\n")
}
