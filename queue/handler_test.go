package queue

import (
	"context"
	"testing"

	"trustlens/collaborators"
	"trustlens/engine"
	"trustlens/presentation"
	"trustlens/signals"
)

func testHandler() *AnalysisHandler {
	collector := signals.NewCollector(collaborators.Set{}, nil)
	assembler := presentation.NewAssembler(nil, nil)
	return NewAnalysisHandler(engine.New(collector, assembler), nil)
}

func TestHandleMessageMarksGarbage(t *testing.T) {
	h := testHandler()

	for _, payload := range []string{"not json at all", `{"content_type": "hologram"}`, `{"content_type": "text"}`} {
		mark, err := h.HandleMessage(context.Background(), []byte(payload))
		if err != nil {
			t.Errorf("payload %q: err = %v", payload, err)
		}
		if !mark {
			t.Errorf("payload %q: bad messages must be marked, not retried", payload)
		}
	}
}

func TestHandleMessageRunsAnalysis(t *testing.T) {
	h := testHandler()

	payload := `{"content_type": "text", "text": "The dam was completed in 1975 according to state records and has held since."}`
	mark, err := h.HandleMessage(context.Background(), []byte(payload))
	if err != nil {
		t.Fatalf("HandleMessage returned error: %v", err)
	}
	if !mark {
		t.Error("successful analysis must mark the message")
	}
}
