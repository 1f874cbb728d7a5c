package advisor

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"ledgerly/internal/core"
)

const systemPrompt = "You are a professional financial advisor. Analyze the " +
	"transaction history and provide 3 concise, actionable pieces of advice to " +
	"improve the user's financial health. Format the response as a bulleted " +
	"list. Keep it encouraging."

// recentLines caps how many individual transactions are spelled out in the
// prompt; aggregates cover the rest.
const recentLines = 20

// OpenAISummarizer generates insight text through a chat-completion API.
type OpenAISummarizer struct {
	client *openai.Client
	model  string
}

// NewOpenAISummarizer builds a summarizer for the given model. baseURL may
// be empty to use the default endpoint, or point at any OpenAI-compatible
// server.
func NewOpenAISummarizer(apiKey, model, baseURL string) *OpenAISummarizer {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAISummarizer{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (o *OpenAISummarizer) Summarize(ctx context.Context, txs []core.Transaction) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: 0.7,
		MaxTokens:   500,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(txs)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// buildPrompt renders the snapshot as aggregate stats plus the most recent
// entries, one signed line per transaction.
func buildPrompt(txs []core.Transaction) string {
	stats := core.Stats(txs)

	var b strings.Builder
	fmt.Fprintf(&b, "Transaction history: %d entries, total income %.2f, total expense %.2f, net balance %.2f.\n",
		len(txs), stats.TotalIncome, stats.TotalExpense, stats.NetBalance)

	b.WriteString("\nExpenses by category:\n")
	for _, ca := range core.ExpenseDistribution(txs) {
		fmt.Fprintf(&b, "- %s: %.2f\n", ca.Name, ca.Amount)
	}

	b.WriteString("\nRecent transactions:\n")
	n := len(txs)
	if n > recentLines {
		n = recentLines
	}
	for _, t := range txs[len(txs)-n:] {
		sign := "-"
		if t.Type == core.Income {
			sign = "+"
		}
		fmt.Fprintf(&b, "%s: %s%.2f (%s - %s)\n", t.Date, sign, t.Amount, t.Category, t.Title)
	}
	return b.String()
}
