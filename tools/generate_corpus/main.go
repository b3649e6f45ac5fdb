// Large Corpus Generator
//
// This tool generates a large markdown document for performance testing and
// profiling. It mixes every inline construct the scanner recognizes, and keeps
// all delimiters balanced so the output scans clean.
//
// Usage:
//
//	go run main.go > large.md
//	go run main.go 20000000 > large.md  # Specify target size in bytes
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultTargetSize = 10 * 1024 * 1024 // 10MB
)

var (
	words = []string{
		"the", "a", "scanner", "grammar", "token", "delimiter", "span",
		"inline", "text", "stream", "parser", "buffer", "run", "state",
		"byte", "offset", "line", "column", "document", "paragraph",
		"emphasis", "nested", "incremental", "rescan", "checkpoint",
		"lookahead", "balanced", "markup", "render", "output", "input",
		"editor", "anchor", "window", "narrow", "wide", "stable", "prose",
	}

	citeKeys = []string{
		"knuth1984", "gruber2004", "macfarlane2013", "lamport1994",
		"wirth1976", "pike2012", "ritchie1978", "hoare1978",
	}

	codeSnippets = []string{
		"cur.Advance()", "len(buf)", "make([]byte, 0, 64)", "io.EOF",
		"state.Serialize(rec)", "scan(src, valid)", "tok.End - tok.Start",
		"O(n log n)",
	}

	mathExprs = []string{
		"E = mc^2", "a^2 + b^2 = c^2", "x_{i+1} = x_i + h",
		"\\sum_{k=1}^{n} k", "f(x) = x^2 - 1", "\\alpha < \\beta",
		"e^{i\\pi} + 1 = 0",
	}

	shortcodeNames = []string{
		"video", "figure", "tweet", "youtube", "gallery", "callout",
	}

	shortcodeArgs = []string{
		"intro.mp4", "figure-one.png", "posts/first-post",
		"diagrams/state-machine.svg", "talks/keynote",
	}
)

func main() {
	targetSize := defaultTargetSize
	if len(os.Args) > 1 {
		if size, err := strconv.Atoi(os.Args[1]); err == nil {
			targetSize = size
		}
	}

	// Write header
	writeHeader()

	bytesWritten := 0
	paragraphCount := 0

	for bytesWritten < targetSize {
		// Mix different kinds of paragraphs
		switch rand.Intn(10) {
		case 0: // 10% - Section heading with a lead paragraph
			output := generateSection()
			fmt.Print(output)
			bytesWritten += len(output)
			paragraphCount++

		case 1, 2: // 20% - Plain prose
			output := generatePlainParagraph()
			fmt.Print(output)
			bytesWritten += len(output)
			paragraphCount++

		case 3, 4: // 20% - Emphasis runs, star and underscore
			output := generateEmphasisParagraph()
			fmt.Print(output)
			bytesWritten += len(output)
			paragraphCount++

		case 5: // 10% - Code spans of varying run length
			output := generateCodeParagraph()
			fmt.Print(output)
			bytesWritten += len(output)
			paragraphCount++

		case 6: // 10% - Math spans, inline and display
			output := generateMathParagraph()
			fmt.Print(output)
			bytesWritten += len(output)
			paragraphCount++

		case 7: // 10% - Strikeout, superscript, subscript
			output := generateToggleParagraph()
			fmt.Print(output)
			bytesWritten += len(output)
			paragraphCount++

		case 8: // 10% - Smart quotes and citations
			output := generateQuoteCiteParagraph()
			fmt.Print(output)
			bytesWritten += len(output)
			paragraphCount++

		case 9: // 10% - Shortcode block
			output := generateShortcodeBlock()
			fmt.Print(output)
			bytesWritten += len(output)
			paragraphCount++
		}
	}

	fmt.Fprintf(os.Stderr, "\nGenerated %d bytes with %d paragraphs\n", bytesWritten, paragraphCount)
}

func writeHeader() {
	fmt.Println("# Inline Scanning Corpus")
	fmt.Println()
	fmt.Println("Generated:", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Println()
}

func generateSection() string {
	return fmt.Sprintf("## %s\n\n%s", phrase(2, 4), generatePlainParagraph())
}

func generatePlainParagraph() string {
	n := rand.Intn(3) + 2
	sentences := make([]string, n)
	for i := range sentences {
		sentences[i] = sentence()
	}
	return strings.Join(sentences, " ") + "\n\n"
}

func generateEmphasisParagraph() string {
	return fmt.Sprintf("%s %s %s %s. %s\n\n",
		phrase(2, 4), emphasisSpan(), phrase(1, 3), emphasisSpan(), sentence())
}

func generateCodeParagraph() string {
	return fmt.Sprintf("%s Call %s before %s %s\n\n",
		sentence(), codeSpan(), codeSpan(), sentence())
}

func generateMathParagraph() string {
	return fmt.Sprintf("%s Here %s holds whenever %s %s\n\n",
		sentence(), mathSpan(), mathSpan(), sentence())
}

func generateToggleParagraph() string {
	return fmt.Sprintf("%s ~~%s~~ became x^%d^ and H~%d~O %s\n\n",
		sentence(), phrase(1, 3), rand.Intn(9)+1, rand.Intn(9)+1, sentence())
}

func generateQuoteCiteParagraph() string {
	key1 := citeKeys[rand.Intn(len(citeKeys))]
	key2 := citeKeys[rand.Intn(len(citeKeys))]
	key3 := citeKeys[rand.Intn(len(citeKeys))]

	return fmt.Sprintf("\"%s\" wrote @%s [-@%s, p. %d]. The term '%s' first appears in @{%s}.\n\n",
		phrase(2, 5), key1, key2, rand.Intn(400)+1, word(), key3)
}

func generateShortcodeBlock() string {
	name := shortcodeNames[rand.Intn(len(shortcodeNames))]
	arg := shortcodeArgs[rand.Intn(len(shortcodeArgs))]

	switch rand.Intn(3) {
	case 0:
		return fmt.Sprintf("{{< %s src=\"%s\" >}}\n\n", name, arg)
	case 1:
		return fmt.Sprintf("{{{< %s \"%s\" >}}}\n\n", name, arg)
	default:
		snippet := codeSnippets[rand.Intn(len(codeSnippets))]
		return fmt.Sprintf("{{< highlight go >}}\n%s\n{{< /highlight >}}\n\n", snippet)
	}
}

// Helper functions

func word() string {
	return words[rand.Intn(len(words))]
}

func phrase(min, max int) string {
	n := min + rand.Intn(max-min+1)
	parts := make([]string, n)
	for i := range parts {
		parts[i] = word()
	}
	return strings.Join(parts, " ")
}

func sentence() string {
	return phrase(6, 12) + "."
}

// emphasisSpan keeps every delimiter run flanked by a word character on the
// inside, so the run opens on the left edge and closes on the right.
func emphasisSpan() string {
	delim := "*"
	if rand.Intn(2) == 1 {
		delim = "_"
	}
	run := strings.Repeat(delim, rand.Intn(3)+1)
	if rand.Intn(5) == 0 {
		inner := "*"
		if delim == "*" {
			inner = "_"
		}
		return run + word() + " " + inner + word() + inner + " " + word() + run
	}
	return run + phrase(1, 3) + run
}

func codeSpan() string {
	run := strings.Repeat("`", rand.Intn(3)+1)
	return run + codeSnippets[rand.Intn(len(codeSnippets))] + run
}

func mathSpan() string {
	run := "$"
	if rand.Intn(4) == 0 {
		run = "$$"
	}
	return run + mathExprs[rand.Intn(len(mathExprs))] + run
}
