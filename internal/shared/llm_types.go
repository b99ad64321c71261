package shared

import (
	"time"
)

// TokenUsage tracks the tokens consumed by a single generation request.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Model            string
}

// AgentMeta holds operational metadata for one generation call.
type AgentMeta struct {
	AgentName string
	Usage     TokenUsage
	Latency   time.Duration
}

// Meta builds an AgentMeta with latency measured from start.
func Meta(agentName string, usage TokenUsage, start time.Time) AgentMeta {
	return AgentMeta{
		AgentName: agentName,
		Usage:     usage,
		Latency:   time.Since(start),
	}
}
