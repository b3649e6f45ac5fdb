package dump

import (
	"encoding/json"
	"io"

	"github.com/spanlex/spanlex/driver"
	"github.com/spanlex/spanlex/errors"
)

// TokenJSON is the wire shape of one token. The web playground and the
// scan --format json output share it.
type TokenJSON struct {
	Kind   string `json:"kind"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Text   string `json:"text"`
}

// StatsJSON is the wire shape of driver.Stats.
type StatsJSON struct {
	Tokens         int    `json:"tokens"`
	TextBytes      int    `json:"textBytes"`
	ScanCalls      int    `json:"scanCalls"`
	Declined       int    `json:"declined"`
	LookaheadBytes int    `json:"lookaheadBytes"`
	ReusedTokens   int    `json:"reusedTokens"`
	RescannedBytes int    `json:"rescannedBytes"`
	Elapsed        string `json:"elapsed"`
}

// StreamJSON is the wire shape of a scanned document.
type StreamJSON struct {
	Filename    string             `json:"filename,omitempty"`
	Tokens      []TokenJSON        `json:"tokens"`
	Diagnostics []errors.ErrorJSON `json:"diagnostics"`
	Stats       StatsJSON          `json:"stats"`
}

// ToJSON converts a stream into its wire shape.
func ToJSON(st *driver.Stream) StreamJSON {
	tokens := make([]TokenJSON, 0, len(st.Tokens))
	for _, tok := range st.Tokens {
		tokens = append(tokens, TokenJSON{
			Kind:   driver.KindName(tok.Type),
			Start:  tok.Start,
			End:    tok.End,
			Line:   tok.Line,
			Column: tok.Column,
			Text:   st.TokenText(tok),
		})
	}

	diags := make([]error, 0, len(st.Diagnostics))
	for _, d := range st.Diagnostics {
		diags = append(diags, d)
	}

	return StreamJSON{
		Filename:    st.Filename,
		Tokens:      tokens,
		Diagnostics: errors.NewJSONFormatter().FormatAllToSlice(diags),
		Stats: StatsJSON{
			Tokens:         st.Stats.Tokens,
			TextBytes:      st.Stats.TextBytes,
			ScanCalls:      st.Stats.ScanCalls,
			Declined:       st.Stats.Declined,
			LookaheadBytes: st.Stats.LookaheadBytes,
			ReusedTokens:   st.Stats.ReusedTokens,
			RescannedBytes: st.Stats.RescannedBytes,
			Elapsed:        st.Stats.Elapsed.String(),
		},
	}
}

// FormatJSON writes the stream as indented JSON.
func FormatJSON(st *driver.Stream, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ToJSON(st))
}
