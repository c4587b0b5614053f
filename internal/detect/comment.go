package detect

import (
	"context"
	"fmt"
	"strings"

	"tally/internal/domain"
	"tally/internal/llm"
)

// Commenter generates comments for synthesized time entries. Like Detector
// it never fails: when the model is disabled or errors out it falls back to
// a plain "{category} work" comment.
type Commenter struct {
	client  llm.Client
	enabled bool
}

// NewCommenter creates a Commenter. A nil client or enabled=false yields
// fallback comments only.
func NewCommenter(client llm.Client, enabled bool) *Commenter {
	return &Commenter{client: client, enabled: enabled && client != nil}
}

// AutofillComment returns a short comment for a generated entry, using the
// week's real meeting titles as context for the model.
func (c *Commenter) AutofillComment(ctx context.Context, category domain.Category, client, weekContext string) string {
	if c.enabled {
		if comment := c.generate(ctx, category, client, weekContext); comment != "" {
			return comment
		}
	}
	return fmt.Sprintf("%s work", category)
}

func (c *Commenter) generate(ctx context.Context, category domain.Category, client, weekContext string) string {
	clientLabel := client
	if clientLabel == "" {
		clientLabel = "Internal"
	}

	prompt := fmt.Sprintf(autofillCommentPrompt, category, clientLabel, weekContext)

	resp, err := c.client.Generate(ctx, llm.GenerateRequest{
		Task:   llm.TaskComment,
		Prompt: prompt,
	})
	if err != nil {
		return ""
	}
	return strings.TrimSpace(resp.Text)
}
