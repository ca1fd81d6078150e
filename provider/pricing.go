package provider

// modelRate is the USD price per one million tokens for a model.
type modelRate struct {
	input  float64
	output float64
}

// rateTable holds the static per-model prices (USD per 1M tokens).
var rateTable = map[string]modelRate{
	"gpt-4":           {input: 30, output: 60},
	"gpt-4-turbo":     {input: 10, output: 30},
	"gpt-3.5-turbo":   {input: 0.5, output: 1.5},
	"claude-3-opus":   {input: 15, output: 75},
	"claude-3-sonnet": {input: 3, output: 15},
	"claude-3-haiku":  {input: 0.25, output: 1.25},
	"llama3-70b":      {input: 0.59, output: 0.79},
	"mixtral-8x7b":    {input: 0.24, output: 0.24},
}

// Default fallback rates applied to models missing from the table, so unknown
// models are billed conservatively instead of silently costing zero.
const (
	defaultInputRate  = 1
	defaultOutputRate = 2
)

// Cost prices a call from its reported token usage. Unknown models fall back
// to the default rates.
func Cost(model string, inputTokens, outputTokens int) float64 {
	rate, ok := rateTable[model]
	if !ok {
		rate = modelRate{input: defaultInputRate, output: defaultOutputRate}
	}
	return float64(inputTokens)/1e6*rate.input + float64(outputTokens)/1e6*rate.output
}

// KnownModel reports whether the model has an entry in the rate table.
func KnownModel(model string) bool {
	_, ok := rateTable[model]
	return ok
}
