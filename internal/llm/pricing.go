package llm

import "strings"

// ModelCost holds per-million-token pricing in USD.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// modelCosts is a best-effort pricing table for the models coachiz is
// usually run with. Prices drift; treat the output as an estimate.
var modelCosts = map[string]ModelCost{
	"claude-sonnet-4-20250514":  {InputPerMTok: 3.00, OutputPerMTok: 15.00},
	"claude-haiku-4-5-20251001": {InputPerMTok: 1.00, OutputPerMTok: 5.00},
	"gpt-4o":                    {InputPerMTok: 2.50, OutputPerMTok: 10.00},
	"gpt-4o-mini":               {InputPerMTok: 0.15, OutputPerMTok: 0.60},
	"gemini-2.0-flash":          {InputPerMTok: 0.10, OutputPerMTok: 0.40},
	"gemini-2.0-pro":            {InputPerMTok: 1.25, OutputPerMTok: 5.00},
}

// LookupCost returns the pricing for a model ID, matching on prefix so
// dated model revisions still resolve. ok is false for unknown models.
func LookupCost(model string) (ModelCost, bool) {
	if c, ok := modelCosts[model]; ok {
		return c, true
	}
	for id, c := range modelCosts {
		if strings.HasPrefix(model, id) || strings.HasPrefix(id, model) {
			return c, true
		}
	}
	return ModelCost{}, false
}

// EstimateCost computes the USD cost of a request from token counts.
// Returns 0 for unknown models.
func EstimateCost(model string, inputTokens, outputTokens int) float64 {
	c, ok := LookupCost(model)
	if !ok {
		return 0
	}
	return float64(inputTokens)/1e6*c.InputPerMTok + float64(outputTokens)/1e6*c.OutputPerMTok
}
