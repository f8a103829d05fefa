package function

import (
	"fmt"
	"strings"
)

// nullIfAny wraps expr so the whole thing becomes NULL if any of conds
// holds (spec.md §4.D rule 1, format/parse/compare family). An empty
// conds list returns expr unwrapped.
func nullIfAny(conds []string, expr string) string {
	if len(conds) == 0 {
		return expr
	}
	return fmt.Sprintf("if(%s, NULL, %s)", strings.Join(conds, " OR "), expr)
}

// falseIfAny is nullIfAny's counterpart for the match/predicate family,
// which propagates to `false` rather than NULL (spec.md §4.D rule 1).
func falseIfAny(conds []string, expr string) string {
	if len(conds) == 0 {
		return expr
	}
	return fmt.Sprintf("if(%s, false, %s)", strings.Join(conds, " OR "), expr)
}

// isNull renders a NULL-check on an already-aliased subexpression.
func isNull(name string) string {
	return fmt.Sprintf("(%s) IS NULL", name)
}

// boundOrDefault implements spec.md §4.D rule 5: an explicit bound
// argument (arg) replaces the literal default everywhere the default
// would otherwise appear, so templates must thread a single boundExpr
// string rather than inlining 32/128.
func boundOrDefault(arg string, def int) string {
	if strings.TrimSpace(arg) == "" {
		return fmt.Sprintf("%d", def)
	}
	return arg
}

// ipv4CIDR expands spec.md §4.D rule 3 (the CIDR-parsing template shared
// by every IPv4-aware function): splitting raw on "/", producing the
// canonical address. bound is the mask's upper clamp (normally "32", or a
// caller-supplied bound expression per rule 5). prefix distinguishes the
// tokens_/mask_/ip_ alias family when a single expansion needs more than
// one independent CIDR parse in scope at once (e.g. ipv4_compare's
// "lhs_"/"rhs_" pair, spec.md §8 scenario 2); pass "" when only one parse
// is in play. Returns the full expression string (with the tokens/mask
// aliases assigned inline, at their first use) and the fresh ip alias and
// mask alias it was assigned under, for later reuse and NULL-guarding.
func ipv4CIDR(ctx *Context, raw, bound, prefix string) (expr, ipAlias, maskAlias string) {
	tokens := ctx.alias(prefix + "tokens")
	mask := ctx.alias(prefix + "mask")
	ip := ctx.alias(prefix + "ip")
	maskExpr := fmt.Sprintf("toUInt8(min2(toUInt32OrZero(%s[2]), %s)) AS %s", tokens, bound, mask)
	expr = fmt.Sprintf(
		"multiIf(length(splitByChar('/', %s) AS %s) = 1, IPv4StringToNumOrNull(%s[1]), length(%s) = 2, IPv4CIDRToRange(%s[1], %s).1, NULL) AS %s",
		raw, tokens, tokens, tokens, tokens, maskExpr, ip,
	)
	return expr, ip, mask
}

// ipv6DualForm implements spec.md §4.D rule 4: an IPv6 mask applied to an
// IPv4-literal token must be offset by 96, since an IPv4 address embedded
// in IPv6 space occupies the low 32 bits of a 128-bit prefix.
func ipv6DualForm(raw, mask string) string {
	return fmt.Sprintf("(if(isIPv4String(%s), 96, 0) + %s)", raw, mask)
}

// ipv6CIDR is ipv4CIDR's IPv6 counterpart: splits raw on "/", parses the
// address half with toIPv6OrNull (which itself accepts either textual
// form), and folds the dual-form offset (rule 4) into the mask clamp
// before it's ever compared against bound, so a bare IPv4 literal
// compared in IPv6 space is clamped against its 96-bit-shifted prefix
// rather than its native /32.
func ipv6CIDR(ctx *Context, raw, bound, prefix string) (expr, ipAlias, maskAlias string) {
	tokens := ctx.alias(prefix + "tokens")
	mask := ctx.alias(prefix + "mask")
	ip := ctx.alias(prefix + "ip")
	effBound := ipv6DualForm(raw, bound)
	maskExpr := fmt.Sprintf("toUInt8(min2(toUInt32OrZero(%s[2]), %s)) AS %s", tokens, effBound, mask)
	expr = fmt.Sprintf(
		"multiIf(length(splitByChar('/', %s) AS %s) = 1, toIPv6OrNull(%s[1]), length(%s) = 2, IPv6CIDRToRange(toIPv6OrNull(%s[1]), %s).1, NULL) AS %s",
		raw, tokens, tokens, tokens, tokens, maskExpr, ip,
	)
	return expr, ip, mask
}

// formatIPv6Core renders a masked IPv6 address as a colon-grouped hex
// string: the IPv6CIDRToRange truncation followed by the
// hex/extractAll/arrayStringConcat pipeline original_source uses to
// regroup a raw 32-hex-digit string into the canonical ":"-joined form.
func formatIPv6Core(ctx *Context, ipv6Expr, maskExpr string) string {
	masked := ctx.alias("masked_ip")
	maskedAssigned := fmt.Sprintf("IPv6CIDRToRange(%s, %s).1 AS %s", ipv6Expr, maskExpr, masked)
	return fmt.Sprintf("arrayStringConcat(extractAll(lower(hex(%s)), '([0-9a-f]{4})'), ':')", maskedAssigned)
}

// formatIPv4Core implements spec.md §4.D rule 6 verbatim (up to alias
// numbering): the IPv4NumToString/bitAnd/bitNot/intExp2 expression,
// guarded by a NULL check on the ip_as_number intermediate. ipNumberExpr
// must already evaluate to a nullable UInt32 (or NULL on parse failure).
func formatIPv4Core(ctx *Context, ipNumberExpr, bound string) string {
	ipAsNumber := ctx.alias("ip_as_number")
	core := fmt.Sprintf(
		"IPv4NumToString(bitAnd(%s AS %s, bitNot(toUInt32(intExp2(32 - %s) - 1))))",
		ipNumberExpr, ipAsNumber, bound,
	)
	return nullIfAny([]string{isNull(ipAsNumber)}, core)
}
