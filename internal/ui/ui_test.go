package ui

import (
	"context"
	"testing"
	"time"

	"github.com/sablewood/rymx/internal/models"
	"github.com/sablewood/rymx/internal/tasks"
	tu "github.com/sablewood/rymx/internal/testing"
)

func TestStartBuildOutcomeArrivesAsMessage(t *testing.T) {
	entries := []models.Entry{
		{Artist: "Radiohead", Title: "Kid A", Kind: models.KindAlbum},
		{Artist: "Burial", Title: "Archangel", Kind: models.KindTrack},
	}
	engine := tasks.NewBuildEngine(&tu.MockCatalog{}, tasks.BuildOpts{
		Threshold: 0.95,
		Pacer:     tasks.NopPacer{},
	})

	m := NewModel(context.Background(), entries, engine)
	m.nameInput.SetValue("My Chart")
	m.view = BuildView

	cmd := m.startBuild()

	deadline := time.Now().Add(5 * time.Second)
	for {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for build completion")
		}

		msg := cmd()
		if msg == nil {
			t.Fatal("unexpected nil message while the build is running")
		}

		if done, ok := msg.(buildCompleteMsg); ok {
			// The goroutine communicates only through the message; the model
			// must stay untouched until Update consumes it.
			if m.result != nil || m.playlist != nil || m.err != nil {
				t.Error("model fields set before the completion message was handled")
			}

			model, _ := m.Update(done)
			m = model.(*Model)

			if m.view != ResultView {
				t.Errorf("expected ResultView after completion, got %v", m.view)
			}
			if m.result == nil {
				t.Error("expected a run result on the model")
			}
			if m.result != nil && m.result.TotalEntries != 2 {
				t.Errorf("expected 2 entries in the result, got %d", m.result.TotalEntries)
			}
			return
		}

		model, next := m.Update(msg)
		m = model.(*Model)
		if next == nil {
			t.Fatalf("expected a follow-up command after %T", msg)
		}
		cmd = next
	}
}
