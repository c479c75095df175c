package normalize

import "testing"

func TestCleanStripsURLsAndMentions(t *testing.T) {
	t.Parallel()

	in := "RT @fan123 Tina Fey killed it http://t.co/abc123 #GoldenGlobes"
	got := Clean(in)
	want := "Tina Fey killed it GoldenGlobes"
	if got != want {
		t.Fatalf("Clean = %q, want %q", got, want)
	}
}

func TestCleanPreservesCase(t *testing.T) {
	t.Parallel()

	got := Clean("Jodie Foster wins the award!!!")
	if got != "Jodie Foster wins the award!!!" {
		t.Fatalf("case or keep-punct damaged: %q", got)
	}
}

func TestCleanTransliteratesAccents(t *testing.T) {
	t.Parallel()

	got := Clean("Penélope Cruz looked great")
	if got != "Penelope Cruz looked great" {
		t.Fatalf("Clean = %q", got)
	}
}

func TestCleanFoldsCurlyQuotesAndDashes(t *testing.T) {
	t.Parallel()

	got := Clean("“Argo” wins — drama")
	if got != `"Argo" wins - drama` {
		t.Fatalf("Clean = %q", got)
	}
}

func TestCleanDeterministic(t *testing.T) {
	t.Parallel()

	in := "élégant   text\twith junk https://x.co/a @who #tag"
	a := Clean(in)
	b := Clean(in)
	if a != b {
		t.Fatalf("Clean not deterministic: %q vs %q", a, b)
	}
}

func TestFoldLowercases(t *testing.T) {
	t.Parallel()

	if got := Fold("Best MOTION Picture"); got != "best motion picture" {
		t.Fatalf("Fold = %q", got)
	}
}
