package display

import (
	"encoding/json"
	"io"

	"github.com/dando385/esplora-cli/internal/dispatch"
)

// JSONResult is the machine-readable output envelope.
type JSONResult struct {
	Operation string `json:"operation"`
	Provider  string `json:"provider,omitempty"`
	LatencyMs int64  `json:"latency_ms"`
	Result    any    `json:"result"`
}

func renderJSON(w io.Writer, res *dispatch.Result, opts Options) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(JSONResult{
		Operation: res.Op,
		Provider:  opts.Provider,
		LatencyMs: res.Latency.Milliseconds(),
		Result:    View(res.Value, opts.Net),
	})
}
