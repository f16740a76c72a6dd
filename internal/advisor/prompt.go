package advisor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mmynk/familyfinance/internal/models"
)

const systemPrompt = `You are FinPal, a friendly personal finance advisor for a family.
Answer using only the transaction data below: compute totals, averages and
differences from it, point out spending patterns, and give short, actionable advice.
If there are no transactions, say so and encourage the family to add some.

Transactions (JSON):
%s`

// SystemPrompt renders the system message for txns.
func SystemPrompt(txns []models.Transaction) (string, error) {
	if txns == nil {
		txns = []models.Transaction{}
	}
	data, err := json.MarshalIndent(txns, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode transactions: %w", err)
	}
	return fmt.Sprintf(systemPrompt, data), nil
}

// Conversation assembles the messages for one question: the system prompt,
// the earlier turns with unknown roles dropped, and the question.
func Conversation(system string, history []Message, question string) []Message {
	msgs := make([]Message, 0, len(history)+2)
	msgs = append(msgs, Message{Role: RoleSystem, Content: system})
	for _, m := range history {
		if m.Role != RoleUser && m.Role != RoleAssistant {
			continue
		}
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		msgs = append(msgs, m)
	}
	return append(msgs, Message{Role: RoleUser, Content: question})
}
