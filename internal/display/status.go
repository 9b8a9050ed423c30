package display

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

// StatusRow is one provider's answer to the status check.
type StatusRow struct {
	Provider string
	URL      string
	Height   uint32
	TipHash  string
	Latency  time.Duration
	Err      error
}

// StatusFormatter renders the status table and flags providers that
// disagree on the tip.
type StatusFormatter struct {
	Rows []StatusRow
}

func (f *StatusFormatter) Format(w io.Writer) error {
	var best uint32
	for _, r := range f.Rows {
		if r.Err == nil && r.Height > best {
			best = r.Height
		}
	}

	fmt.Fprintf(w, "\n%s\n", Bold("Provider Status"))
	tbl := newTable(w, "Provider", "URL", "Height", "Lag", "Tip Hash", "Latency")
	for _, r := range f.Rows {
		if r.Err != nil {
			tbl.AddRow(r.Provider, r.URL, Red("✗ DOWN"), "—", Dim(r.Err.Error()), ColorLatency(r.Latency.Milliseconds()))
			continue
		}
		tbl.AddRow(r.Provider, r.URL, FormatNumber(uint64(r.Height)), colorLag(best-r.Height),
			r.TipHash, ColorLatency(r.Latency.Milliseconds()))
	}
	tbl.Print()
	fmt.Fprintln(w)

	// hash disagreement only matters between providers at the same height
	groups := make(map[uint32]map[string][]string)
	for _, r := range f.Rows {
		if r.Err != nil {
			continue
		}
		if groups[r.Height] == nil {
			groups[r.Height] = make(map[string][]string)
		}
		groups[r.Height][r.TipHash] = append(groups[r.Height][r.TipHash], r.Provider)
	}

	heights := make([]uint32, 0, len(groups))
	for h := range groups {
		heights = append(heights, h)
	}
	sort.Slice(heights, func(i, j int) bool { return heights[i] > heights[j] })

	for _, h := range heights {
		if len(groups[h]) < 2 {
			continue
		}
		fmt.Fprintf(w, "%s TIP HASH MISMATCH at height %s\n", Red("✗"), FormatNumber(uint64(h)))
		hashes := make([]string, 0, len(groups[h]))
		for hash := range groups[h] {
			hashes = append(hashes, hash)
		}
		sort.Strings(hashes)
		for _, hash := range hashes {
			fmt.Fprintf(w, "  %s  →  %s\n", hash, strings.Join(groups[h][hash], ", "))
		}
		fmt.Fprintln(w)
	}
	return nil
}

// StatusRecord is the JSON form of a StatusRow.
type StatusRecord struct {
	Provider  string `json:"provider"`
	URL       string `json:"url"`
	Height    uint32 `json:"height"`
	TipHash   string `json:"tip_hash,omitempty"`
	LatencyMs int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

// Records converts the rows in provider order.
func (f *StatusFormatter) Records() []StatusRecord {
	out := make([]StatusRecord, 0, len(f.Rows))
	for _, r := range f.Rows {
		rec := StatusRecord{
			Provider:  r.Provider,
			URL:       r.URL,
			LatencyMs: r.Latency.Milliseconds(),
		}
		if r.Err != nil {
			rec.Error = r.Err.Error()
		} else {
			rec.Height = r.Height
			rec.TipHash = r.TipHash
		}
		out = append(out, rec)
	}
	return out
}

func (f *StatusFormatter) FormatJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(f.Records())
}

func colorLag(lag uint32) string {
	switch {
	case lag == 0:
		return Dim("—")
	case lag <= 1:
		return Yellow(fmt.Sprintf("-%d", lag))
	default:
		return Red(fmt.Sprintf("-%d", lag))
	}
}
