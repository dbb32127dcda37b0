package filter

import (
	"strings"
	"testing"
)

// wordSet builds a lookup of the whitespace-split words of s.
func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}

func TestCompress_KeepsRatio(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TargetRatio = 0.5
	f := New(cfg)

	var sb strings.Builder
	words := []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta", "theta"}
	for i := 0; i < 40; i++ {
		sb.WriteString(words[i%len(words)])
		sb.WriteString(" ")
	}
	input := strings.TrimSpace(sb.String())

	out := f.Compress(input)
	n := len(strings.Fields(input))
	kept := len(strings.Fields(out))

	if kept < (n+1)/2 {
		t.Errorf("kept %d of %d, want at least ceil(N/2)", kept, n)
	}
	if kept >= n {
		t.Errorf("kept %d of %d, expected some reduction", kept, n)
	}
}

func TestCompress_CodeBlockPreserved(t *testing.T) {
	f := New(DefaultConfig())

	fence := "```fn main() { println!(\"Hello\"); }```"
	var sb strings.Builder
	for i := 0; i < 20; i++ {
		sb.WriteString("the developer must preserve the block carefully across many versions ")
	}
	sb.WriteString(fence)
	for i := 0; i < 20; i++ {
		sb.WriteString(" for correctness across versions the team repeats this sentence again")
	}
	input := sb.String()

	out := f.Compress(input)
	if !strings.Contains(out, fence) {
		t.Errorf("fenced region not contiguous in output:\n%s", out)
	}
}

func TestCompress_NegationsNeverDropped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TargetRatio = 0.2
	f := New(cfg)

	input := strings.TrimSpace(strings.Repeat("do not remove this statement ", 200))
	out := f.Compress(input)

	wantNots := strings.Count(input, "not")
	gotNots := 0
	for _, w := range strings.Fields(out) {
		if w == "not" {
			gotNots++
		}
	}
	if gotNots != wantNots {
		t.Errorf("kept %d of %d occurrences of 'not'", gotNots, wantNots)
	}
}

func TestCompress_DomainTermOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TargetRatio = 0.1
	cfg.DomainTerms = []string{"Vectorizer"}
	f := New(cfg)

	var words []string
	for i := 0; i < 150; i++ {
		if i == 75 {
			words = append(words, "Vectorizer")
		}
		words = append(words, "filler")
	}
	out := f.Compress(strings.Join(words, " "))

	if !wordSet(out)["Vectorizer"] {
		t.Errorf("domain term missing from output:\n%s", out)
	}
}

func TestCompress_OrderPreserved(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TargetRatio = 0.3
	f := New(cfg)

	alphabet := []string{
		"Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot", "Golf",
		"Hotel", "India", "Juliett", "Kilo", "Lima", "Mike", "November",
		"Oscar", "Papa", "Quebec", "Romeo", "Sierra", "Tango", "Uniform",
		"Victor", "Whiskey", "Xray", "Yankee", "Zulu",
	}
	var words []string
	for i := 0; i < 5; i++ {
		words = append(words, alphabet...)
	}
	input := strings.Join(words, " ")

	out := f.Compress(input)

	// Verify the output is a subsequence of the input word tokens.
	inWords := strings.Fields(input)
	outWords := strings.Fields(out)
	j := 0
	for _, w := range outWords {
		for j < len(inWords) && inWords[j] != w {
			j++
		}
		if j == len(inWords) {
			t.Fatalf("output word %q breaks subsequence order", w)
		}
		j++
	}
}

func TestCompress_Deterministic(t *testing.T) {
	f := New(DefaultConfig())

	var sb strings.Builder
	for i := 0; i < 50; i++ {
		sb.WriteString("systems that repeat common words compress very predictably indeed ")
	}
	input := sb.String()

	first := f.Compress(input)
	for i := 0; i < 3; i++ {
		if got := f.Compress(input); got != first {
			t.Fatal("repeated invocations differ")
		}
	}
}

func TestCompress_EmptyAndWhitespace(t *testing.T) {
	f := New(DefaultConfig())

	if got := f.Compress(""); got != "" {
		t.Errorf("empty input: %q", got)
	}
	if got := f.Compress("   \n "); got != "   \n " {
		t.Errorf("whitespace-only input should pass through, got %q", got)
	}
}

func TestCompress_ProtectionDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableProtectionMasks = false
	cfg.TargetRatio = 0.2
	f := New(cfg)

	// With masks off nothing is pinned, so the identifier-heavy filler can
	// be dropped like any other token.
	var sb strings.Builder
	for i := 0; i < 100; i++ {
		sb.WriteString("value_a value_b value_c value_d value_e ")
	}
	out := f.Compress(strings.TrimSpace(sb.String()))

	if kept := len(strings.Fields(out)); kept > 150 {
		t.Errorf("masks disabled but %d of 500 tokens kept", kept)
	}
}

func TestCompress_SingleToken(t *testing.T) {
	f := New(DefaultConfig())
	if got := f.Compress("lonely"); got != "lonely" {
		t.Errorf("single token input: %q", got)
	}
}
