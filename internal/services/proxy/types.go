package proxy

// CostReport is the proxy's cost_report response.
type CostReport struct {
	Data []CostBucket `json:"data"`
}

// CostBucket is one day of the cost report. Amounts are decimal strings.
type CostBucket struct {
	StartingAt string       `json:"starting_at"`
	EndingAt   string       `json:"ending_at"`
	Results    []CostResult `json:"results"`
}

// CostResult is a single cost line item.
type CostResult struct {
	Amount string `json:"amount"`
}

// UsageReport is the proxy's usage_report/messages response.
type UsageReport struct {
	Data []UsageBucket `json:"data"`
}

// UsageBucket is one day of the usage report.
type UsageBucket struct {
	StartingAt string        `json:"starting_at"`
	EndingAt   string        `json:"ending_at"`
	Results    []UsageResult `json:"results"`
}

// UsageResult is a single token usage line item.
type UsageResult struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
}

// DayCost is the parsed cost for one day.
type DayCost struct {
	Date string
	Cost float64
}

// DayTokens is the parsed token usage for one day.
type DayTokens struct {
	Date         string
	InputTokens  int64
	OutputTokens int64
}
