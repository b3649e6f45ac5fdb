package driver

import (
	"context"
	"testing"

	"github.com/spanlex/spanlex/scanner"
)

var fuzzSeeds = []string{
	"",
	"plain text with no delimiters",
	"*bold* and _italic_",
	"***nested***",
	"`code` and ``longer ` code``",
	"`unclosed",
	"$math$ costs $5",
	"~~gone~~ H~2~O e^x^",
	"'single' \"double\" it's",
	"@doe [-@smith] @{braced",
	"{{< figure src=\"a.png\" >}}",
	"{{{< raw >}}} {{< a {{< b >}} >}}",
	"mixed *a `b* c` d_ e",
	"line one\nline *two*\nline `three`\n",
	"^[footnote] stays^super^",
}

func FuzzScanStream(f *testing.F) {
	for _, seed := range fuzzSeeds {
		f.Add([]byte(seed))
	}

	d := New()

	f.Fuzz(func(t *testing.T, data []byte) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("Scan panicked on input %q: %v", data, r)
			}
		}()

		st, err := d.Scan(context.Background(), data)
		if err != nil {
			t.Errorf("Scan failed on input %q: %v", data, err)
			return
		}

		// Tokens must tile the input exactly: contiguous, in order, no gaps.
		offset := 0
		for i, tok := range st.Tokens {
			if tok.Start != offset {
				t.Errorf("Token %d starts at %d, want %d", i, tok.Start, offset)
			}
			if tok.End <= tok.Start {
				t.Errorf("Token %d is empty or reversed: [%d,%d)", i, tok.Start, tok.End)
			}
			if tok.Line < 1 || tok.Column < 1 {
				t.Errorf("Token %d has invalid position %d:%d", i, tok.Line, tok.Column)
			}
			offset = tok.End
		}
		if offset != len(data) {
			t.Errorf("Tokens cover %d bytes, input has %d", offset, len(data))
		}

		// The scanner's context flags and sentinels never reach the stream.
		for i, tok := range st.Tokens {
			if tok.Type.IsFlag() || tok.Type == scanner.Error || tok.Type == scanner.ForcedError {
				t.Errorf("Token %d has internal kind %v", i, tok.Type)
			}
		}

		// Checkpoints must be monotone and point at real tokens.
		prevIndex, prevOffset, prevLookahead := 0, 0, 0
		for i, cp := range st.Checkpoints {
			if cp.TokenIndex <= prevIndex {
				t.Errorf("Checkpoint %d token index %d not increasing", i, cp.TokenIndex)
			}
			if cp.Offset < prevOffset {
				t.Errorf("Checkpoint %d offset %d decreased", i, cp.Offset)
			}
			if cp.Lookahead < prevLookahead {
				t.Errorf("Checkpoint %d lookahead %d decreased", i, cp.Lookahead)
			}
			if cp.TokenIndex > len(st.Tokens) {
				t.Errorf("Checkpoint %d token index %d out of range", i, cp.TokenIndex)
			}
			if cp.Lookahead < cp.Offset {
				t.Errorf("Checkpoint %d lookahead %d before its own offset %d", i, cp.Lookahead, cp.Offset)
			}
			prevIndex, prevOffset, prevLookahead = cp.TokenIndex, cp.Offset, cp.Lookahead
		}

		for i, diag := range st.Diagnostics {
			if diag.Pos.Offset < 0 || diag.Pos.Offset >= len(data) {
				t.Errorf("Diagnostic %d offset %d out of range", i, diag.Pos.Offset)
			}
		}
	})
}

func FuzzRescanMatchesFreshScan(f *testing.F) {
	for _, seed := range fuzzSeeds {
		f.Add([]byte(seed), uint16(0), []byte("*x*"))
		f.Add([]byte(seed), uint16(5), []byte("`"))
	}
	f.Add([]byte("``ab`` cd"), uint16(7), []byte("~~"))
	f.Add([]byte("{{< a >}}"), uint16(4), []byte("\""))

	d := New()

	f.Fuzz(func(t *testing.T, data []byte, at uint16, insert []byte) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("Rescan panicked on input %q at %d insert %q: %v", data, at, insert, r)
			}
		}()

		pos := 0
		if len(data) > 0 {
			pos = int(at) % (len(data) + 1)
		}
		edited := make([]byte, 0, len(data)+len(insert))
		edited = append(edited, data[:pos]...)
		edited = append(edited, insert...)
		edited = append(edited, data[pos:]...)

		ctx := context.Background()
		prev, err := d.Scan(ctx, data)
		if err != nil {
			t.Errorf("Scan failed on %q: %v", data, err)
			return
		}
		inc, err := d.Rescan(ctx, prev, edited)
		if err != nil {
			t.Errorf("Rescan failed on %q: %v", edited, err)
			return
		}
		fresh, err := d.Scan(ctx, edited)
		if err != nil {
			t.Errorf("Scan failed on %q: %v", edited, err)
			return
		}

		if len(inc.Tokens) != len(fresh.Tokens) {
			t.Errorf("Rescan of %q -> %q produced %d tokens, fresh scan %d",
				data, edited, len(inc.Tokens), len(fresh.Tokens))
			return
		}
		for i := range fresh.Tokens {
			if inc.Tokens[i] != fresh.Tokens[i] {
				t.Errorf("Token %d differs after rescan of %q -> %q: got %+v, want %+v",
					i, data, edited, inc.Tokens[i], fresh.Tokens[i])
			}
		}

		if len(inc.Diagnostics) != len(fresh.Diagnostics) {
			t.Errorf("Rescan produced %d diagnostics, fresh scan %d",
				len(inc.Diagnostics), len(fresh.Diagnostics))
			return
		}
		for i := range fresh.Diagnostics {
			if inc.Diagnostics[i].Message != fresh.Diagnostics[i].Message ||
				inc.Diagnostics[i].Pos != fresh.Diagnostics[i].Pos {
				t.Errorf("Diagnostic %d differs after rescan: got %v at %v, want %v at %v",
					i, inc.Diagnostics[i].Message, inc.Diagnostics[i].Pos,
					fresh.Diagnostics[i].Message, fresh.Diagnostics[i].Pos)
			}
		}
	})
}
