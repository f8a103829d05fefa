package function

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/kqlbridge/kqlbridge/alias"
)

// freshCtx builds a Context with its own counter so callers can reproduce
// the exact alias sequence a sibling call will see, for structural
// before/after comparisons.
func freshCtx(args ...string) *Context {
	return &Context{Args: args, Counter: alias.NewCounter()}
}

var aliasDecl = regexp.MustCompile(`AS (\w+)`)

func duplicateAliases(sql string) []string {
	seen := map[string]bool{}
	var dups []string
	for _, m := range aliasDecl.FindAllStringSubmatch(sql, -1) {
		name := m[1]
		if seen[name] {
			dups = append(dups, name)
		}
		seen[name] = true
	}
	return dups
}

func TestFormatIPv4BoundDefaultsTo32(t *testing.T) {
	// spec invariant: an explicit bound equal to the default must reduce
	// to the exact same expression as omitting it.
	withDefault := formatIPv4(freshCtx("addr"))
	withExplicit := formatIPv4(freshCtx("addr", "32"))
	if withDefault != withExplicit {
		t.Errorf("default bound diverges from explicit /32:\n got default:  %s\n got explicit: %s", withDefault, withExplicit)
	}
}

func TestFormatIPv4DifferentBoundChangesExpansion(t *testing.T) {
	at32 := formatIPv4(freshCtx("addr", "32"))
	at24 := formatIPv4(freshCtx("addr", "24"))
	if at32 == at24 {
		t.Errorf("expected a narrower bound to change the rendered expression")
	}
}

func TestFormatIPv4WrapsNullAsEmptyString(t *testing.T) {
	got := formatIPv4(freshCtx("addr"))
	want := "ifNull("
	if got[:len(want)] != want {
		t.Errorf("format_ipv4 must coerce NULL to '' at its own top level, got %q", got)
	}
}

func TestFormatIPv4MaskGuardsBoundRange(t *testing.T) {
	got := formatIPv4Mask(freshCtx("addr"))
	if !contains(got, "NOT(") {
		t.Errorf("format_ipv4_mask should guard against an out-of-range bound, got %q", got)
	}
}

func TestIPv4CompareAndIsMatchShareRangeExpressions(t *testing.T) {
	parts := freshCtx("a", "b")
	lhsRange, rhsRange, lhsIP, rhsIP := ipv4CompareParts(parts)

	compareGot := ipv4Compare(freshCtx("a", "b"))
	compareWant := nullIfAny([]string{isNull(lhsIP), isNull(rhsIP)}, fmt.Sprintf("sign(%s - %s)", lhsRange, rhsRange))
	if compareGot != compareWant {
		t.Errorf("ipv4_compare diverged from ipv4CompareParts:\n got:  %s\n want: %s", compareGot, compareWant)
	}

	matchGot := ipv4IsMatch(freshCtx("a", "b"))
	matchWant := falseIfAny([]string{isNull(lhsIP), isNull(rhsIP)}, fmt.Sprintf("%s = %s", lhsRange, rhsRange))
	if matchGot != matchWant {
		t.Errorf("ipv4_is_match diverged from ipv4CompareParts:\n got:  %s\n want: %s", matchGot, matchWant)
	}
}

func TestIPv4CompareAliasesNeverCollide(t *testing.T) {
	got := ipv4Compare(freshCtx("a", "b"))
	if dups := duplicateAliases(got); len(dups) > 0 {
		t.Errorf("ipv4_compare re-used alias name(s) %v in one expansion: %s", dups, got)
	}
}

func TestIPv4IsPrivateChecksAllThreeBlocks(t *testing.T) {
	got := ipv4IsPrivate(freshCtx("addr"))
	for _, block := range []string{"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"} {
		if !contains(got, block) {
			t.Errorf("ipv4_is_private missing RFC-1918 block %q in %s", block, got)
		}
	}
}

func TestIPv4NetmaskSuffixDefaultsWhenBare(t *testing.T) {
	got := ipv4NetmaskSuffix(freshCtx("addr"))
	if !contains(got, "toUInt8(32)") {
		t.Errorf("a bare address (no '/') should report the full /32 suffix, got %q", got)
	}
}

func TestParseIPv4MaskTakesPlainAddressAndDirectMask(t *testing.T) {
	// parse_ipv4_mask(A, B): A is the plain address (never CIDR-split), B
	// is the mask directly, clamped into [0, 32].
	got := parseIPv4Mask(freshCtx("addr", "mask"))
	if !contains(got, "toIPv4OrNull(addr)") {
		t.Errorf("parse_ipv4_mask should parse A directly with toIPv4OrNull, got %q", got)
	}
	if contains(got, "splitByChar") {
		t.Errorf("parse_ipv4_mask must not CIDR-split A, got %q", got)
	}
	if !contains(got, "toUInt8OrNull(toString(mask))") {
		t.Errorf("parse_ipv4_mask should parse B as the mask directly, got %q", got)
	}
	if !contains(got, "max2(0, min2(32,") {
		t.Errorf("parse_ipv4_mask should clamp the mask into [0, 32], got %q", got)
	}
	if !contains(got, "IS NULL") {
		t.Errorf("parse_ipv4_mask should guard on both the parsed ip and mask aliases, got %q", got)
	}
}

func TestParseIPv4SupportsBareAndCIDRForms(t *testing.T) {
	// rule 3/12: a bare address parses numerically; a CIDR-form address
	// (A/n) parses to its canonical range-start address instead of NULL.
	got := parseIPv4(freshCtx("addr"))
	if !contains(got, "IPv4StringToNumOrNull(") {
		t.Errorf("parse_ipv4 should parse a bare address numerically, got %q", got)
	}
	if !contains(got, "IPv4CIDRToRange(") {
		t.Errorf("parse_ipv4 must support the CIDR-form branch, got %q", got)
	}
	if !contains(got, "multiIf(") {
		t.Errorf("parse_ipv4 should dispatch on token count via multiIf, got %q", got)
	}
}

func contains(haystack, needle string) bool {
	return regexp.MustCompile(regexp.QuoteMeta(needle)).MatchString(haystack)
}
