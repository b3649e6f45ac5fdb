package scanner

import (
	"strings"
	"testing"
)

func BenchmarkScanEmphasis(b *testing.B) {
	src := []byte("*bold*")
	valid := NewTokenSet(EmphasisOpenStar, EmphasisCloseStar, LastTokenWhitespace)
	s := New()
	cur := NewCursor(src)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Reset()
		cur.Seek(0)
		if _, ok := s.Scan(cur, valid); !ok {
			b.Fatal("scan declined")
		}
	}
}

func BenchmarkScanCodeSpanLookahead(b *testing.B) {
	src := []byte("`" + strings.Repeat("a", 4096) + "`")
	valid := NewTokenSet(CodeSpanOpen, CodeSpanClose)
	s := New()
	cur := NewCursor(src)
	b.SetBytes(int64(len(src)))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Reset()
		cur.Seek(0)
		if _, ok := s.Scan(cur, valid); !ok {
			b.Fatal("scan declined")
		}
	}
}

func BenchmarkScanUnclosedSpanLookahead(b *testing.B) {
	// Worst case: the forward scan walks to EOF and finds nothing.
	src := []byte("`" + strings.Repeat("a", 4096))
	valid := NewTokenSet(CodeSpanOpen, CodeSpanClose, UnclosedSpan)
	s := New()
	cur := NewCursor(src)
	b.SetBytes(int64(len(src)))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Reset()
		cur.Seek(0)
		tok, ok := s.Scan(cur, valid)
		if !ok || tok != UnclosedSpan {
			b.Fatal("expected unclosed span")
		}
	}
}

func BenchmarkStateSerialize(b *testing.B) {
	st := State{EmphasisOpening: true, CodeSpanRun: 2, ShortcodeDepth: 1}
	var buf [StateSize]byte

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		st.Serialize(buf[:])
		st.Deserialize(buf[:])
	}
}
