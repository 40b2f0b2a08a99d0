package queue

import (
	"context"
	"encoding/json"
	"log"

	"trustlens/api"
	"trustlens/engine"
	"trustlens/storage"
)

// AnalysisHandler runs the engine for each queued request and archives the
// result. It uses the same message shape as the HTTP API.
type AnalysisHandler struct {
	engine   *engine.Engine
	archiver *storage.Archiver
}

// NewAnalysisHandler creates the handler. archiver may be nil to disable
// archiving.
func NewAnalysisHandler(eng *engine.Engine, archiver *storage.Archiver) *AnalysisHandler {
	return &AnalysisHandler{engine: eng, archiver: archiver}
}

// HandleMessage implements MessageHandler. Malformed messages are marked so
// they do not poison the partition; the engine itself never fails, so the
// only retryable outcome is an archive error.
func (h *AnalysisHandler) HandleMessage(ctx context.Context, message []byte) (bool, error) {
	var req api.AnalyzeRequest
	if err := json.Unmarshal(message, &req); err != nil {
		log.Printf("Warning: skipping unparseable analysis request: %v", err)
		return true, nil
	}

	content, problem := req.ToVariant()
	if problem != "" {
		log.Printf("Warning: skipping invalid analysis request: %s", problem)
		return true, nil
	}

	result := h.engine.Analyze(ctx, content)

	if h.archiver != nil {
		if err := h.archiver.Archive(ctx, result); err != nil {
			return false, err
		}
	}
	return true, nil
}
