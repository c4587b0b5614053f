package detect

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"tally/internal/domain"
	"tally/internal/llm"
)

// fakeClient returns a canned response or error for every call.
type fakeClient struct {
	text  string
	err   error
	calls int
}

func (f *fakeClient) Generate(_ context.Context, _ llm.GenerateRequest) (*llm.GenerateResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &llm.GenerateResponse{Text: f.text}, nil
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "wurth", NormalizeText("Würth"))
	assert.Equal(t, "strasse", NormalizeText("Straße"))
	assert.Equal(t, "cafe a clichy", NormalizeText("Café à Clichy"))
}

func TestMatchCompanyKeywords(t *testing.T) {
	companies := []string{"Michelin", "Würth Industrie", "BSH Hausgeräte"}

	t.Run("whole name in title", func(t *testing.T) {
		assert.Equal(t, "Michelin", MatchCompanyKeywords("Demo for Michelin fleet team", companies))
	})

	t.Run("accent folded word match", func(t *testing.T) {
		assert.Equal(t, "Würth Industrie", MatchCompanyKeywords("Wurth onboarding call", companies))
	})

	t.Run("short words ignored", func(t *testing.T) {
		// "BSH" is only three characters, so it must match as part of the
		// full name, not as a standalone word.
		assert.Equal(t, "", MatchCompanyKeywords("BSH sync", companies))
	})

	t.Run("no match", func(t *testing.T) {
		assert.Equal(t, "", MatchCompanyKeywords("Internal planning", companies))
	})
}

func TestDetectClientModelFirst(t *testing.T) {
	client := &fakeClient{text: "michelin"}
	det := NewDetector(client, []string{"Michelin", "Veronesi"}, true)

	got := det.DetectClient(context.Background(), "Kickoff with fleet team", "michelin.com")
	assert.Equal(t, "Michelin", got, "model answer is matched case-insensitively")
	assert.Equal(t, 1, client.calls)
}

func TestDetectClientRejectsUnlistedAnswer(t *testing.T) {
	client := &fakeClient{text: "Continental"}
	det := NewDetector(client, []string{"Michelin", "Veronesi"}, true)

	got := det.DetectClient(context.Background(), "Veronesi feed demo", "")
	assert.Equal(t, "Veronesi", got, "hallucinated name falls through to keywords")
}

func TestDetectClientModelErrorFallsBack(t *testing.T) {
	client := &fakeClient{err: llm.ErrUnavailable}
	det := NewDetector(client, []string{"Michelin"}, true)

	got := det.DetectClient(context.Background(), "Michelin workshop prep", "")
	assert.Equal(t, "Michelin", got)
}

func TestDetectClientDisabledSkipsModel(t *testing.T) {
	client := &fakeClient{text: "Michelin"}
	det := NewDetector(client, []string{"Michelin"}, false)

	got := det.DetectClient(context.Background(), "Michelin workshop", "")
	assert.Equal(t, "Michelin", got)
	assert.Zero(t, client.calls)
}

func TestDetectClientEmptyInputs(t *testing.T) {
	det := NewDetector(nil, []string{"Michelin"}, true)
	assert.Equal(t, "", det.DetectClient(context.Background(), "", ""))

	det = NewDetector(nil, nil, true)
	assert.Equal(t, "", det.DetectClient(context.Background(), "Michelin demo", ""))
}

func TestAutofillComment(t *testing.T) {
	t.Run("model text used", func(t *testing.T) {
		client := &fakeClient{text: "Prepared demo environment for upcoming sessions"}
		com := NewCommenter(client, true)

		got := com.AutofillComment(context.Background(), domain.CategoryPrep, "Michelin", "Demo prep; Kickoff")
		assert.Equal(t, "Prepared demo environment for upcoming sessions", got)
	})

	t.Run("fallback on error", func(t *testing.T) {
		client := &fakeClient{err: llm.ErrTimeout}
		com := NewCommenter(client, true)

		got := com.AutofillComment(context.Background(), domain.CategoryAdmin, "", "General work")
		assert.Equal(t, "Admin work", got)
	})

	t.Run("disabled", func(t *testing.T) {
		com := NewCommenter(nil, true)
		got := com.AutofillComment(context.Background(), domain.CategoryTraining, "", "")
		assert.Equal(t, "Training work", got)
	})
}
