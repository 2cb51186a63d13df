package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Synthesizer turns collected market facts into structured insight via the
// generative-text provider.
type Synthesizer struct {
	client    Client
	retry     retryConfig
	swotRetry retryConfig
}

func NewSynthesizer(client Client) *Synthesizer {
	return &Synthesizer{
		client:    client,
		retry:     insightRetry,
		swotRetry: swotRetry,
	}
}

func (s *Synthesizer) Synthesize(
	ctx context.Context,
	term, location, businessType, competitorListing string,
	meanRating float64,
) (*StructuredInsight, error) {

	prompt := BuildInsightPrompt(businessType, term, location, competitorListing, meanRating)

	raw, err := completeWithRetry(ctx, s.client, prompt, s.retry)
	if err != nil {
		return nil, fmt.Errorf("insight synthesis: %w", err)
	}

	return ParseInsight(raw)
}

// SynthesizeSWOT is an independent failure domain: a SWOT failure never
// invalidates the already-persisted base snapshot.
func (s *Synthesizer) SynthesizeSWOT(
	ctx context.Context,
	term, location, summary string,
) (*SWOT, error) {

	prompt := BuildSWOTPrompt(term, location, summary)

	raw, err := completeWithRetry(ctx, s.client, prompt, s.swotRetry)
	if err != nil {
		return nil, fmt.Errorf("swot synthesis: %w", err)
	}

	var swot SWOT
	if err := json.Unmarshal([]byte(CleanJSONResponse(raw)), &swot); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &swot, nil
}
