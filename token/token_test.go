package token

import "testing"

func TestKindStringKnownAndUnknown(t *testing.T) {
	if got := EqEq.String(); got != "EqEq" {
		t.Errorf("EqEq.String() = %q, want %q", got, "EqEq")
	}
	if got := Kind(999).String(); got != "Kind(999)" {
		t.Errorf("unknown kind String() = %q, want %q", got, "Kind(999)")
	}
}

func TestTokenIs(t *testing.T) {
	tok := Token{Kind: BareWord, Text: "project"}
	if !tok.Is(BareWord) {
		t.Errorf("expected Is(BareWord) to be true")
	}
	if tok.Is(Number) {
		t.Errorf("expected Is(Number) to be false")
	}
}

func TestTwoCharOperatorsCoverAllComparisonSpellings(t *testing.T) {
	for _, spelling := range []string{"==", "!=", "=~", "!~"} {
		if _, ok := TwoCharOperators[spelling]; !ok {
			t.Errorf("expected TwoCharOperators to contain %q", spelling)
		}
	}
}

func TestStageKeywordsOmitsMakeAlone(t *testing.T) {
	if StageKeywords["make"] {
		t.Errorf("\"make\" alone must not be a recognised stage keyword; only \"make-series\" is")
	}
	if !StageKeywords["make-series"] {
		t.Errorf("expected \"make-series\" to be a recognised stage keyword")
	}
}
