package function

import "fmt"

func init() {
	Register("parse_ipv6", parseIPv6)
	Register("parse_ipv6_mask", parseIPv6Mask)
	Register("ipv6_compare", ipv6Compare)
	Register("ipv6_is_match", ipv6IsMatch)
}

// parseIPv6 implements spec.md §4.D rule 12 (IPv6 half). toIPv6OrNull
// accepts both textual forms, so a bare IPv4 literal is accepted and
// mapped into IPv6 space the way rule 4 requires.
func parseIPv6(ctx *Context) string {
	return fmt.Sprintf("toIPv6OrNull(toString(%s))", ctx.Arg(0))
}

// ipv6CompareParts mirrors ipv4CompareParts (spec.md §4.D rule 8, IPv6
// half): distinct lhs_/rhs_ CIDR parses, an effective mask of
// min2(bound, min2(lhs_mask, rhs_mask)), and each range endpoint aliased
// once so the two comparisons in ipv6_compare's multiIf can reuse it.
func ipv6CompareParts(ctx *Context) (lhsRange, rhsRange, lhsRangeAlias, rhsRangeAlias, lhsIP, rhsIP string) {
	lhsExpr, lhsIPAlias, lhsMask := ipv6CIDR(ctx, ctx.Arg(0), "128", "lhs_")
	rhsExpr, rhsIPAlias, rhsMask := ipv6CIDR(ctx, ctx.Arg(1), "128", "rhs_")
	bound := boundOrDefault(ctx.Arg(2), 128)
	effMask := ctx.alias("mask")
	effMaskAssigned := fmt.Sprintf("toUInt8(min2(%s, min2(%s, %s))) AS %s", bound, lhsMask, rhsMask, effMask)

	lhsRangeAlias = ctx.alias("lhs_range")
	lhsRange = fmt.Sprintf("IPv6CIDRToRange(%s, %s).1 AS %s", lhsExpr, effMaskAssigned, lhsRangeAlias)
	rhsRangeAlias = ctx.alias("rhs_range")
	rhsRange = fmt.Sprintf("IPv6CIDRToRange(%s, %s).1 AS %s", rhsExpr, effMask, rhsRangeAlias)
	return lhsRange, rhsRange, lhsRangeAlias, rhsRangeAlias, lhsIPAlias, rhsIPAlias
}

func ipv6Compare(ctx *Context) string {
	lhsRange, rhsRange, lhsAlias, rhsAlias, lhsIP, rhsIP := ipv6CompareParts(ctx)
	compare := fmt.Sprintf("multiIf(%s < %s, -1, %s > %s, 1, 0)", lhsRange, rhsRange, lhsAlias, rhsAlias)
	return nullIfAny([]string{isNull(lhsIP), isNull(rhsIP)}, compare)
}

// ipv6IsMatch implements spec.md §8 invariant 6 for the IPv6 family:
// equivalent to ipv6_compare(...) = 0, propagating `false` rather than
// NULL.
func ipv6IsMatch(ctx *Context) string {
	lhsRange, rhsRange, _, _, lhsIP, rhsIP := ipv6CompareParts(ctx)
	match := fmt.Sprintf("%s = %s", lhsRange, rhsRange)
	return falseIfAny([]string{isNull(lhsIP), isNull(rhsIP)}, match)
}

// parseIPv6Mask implements spec.md §4.D rule 13 (IPv6 half): compose the
// parse family with the format family into a canonical prefix string. A is
// tried first as a plain IPv4 literal (parse_ipv4_mask), reformatted back
// to dotted text and re-parsed as the IPv6 dual form ("ip/mask" through the
// same splitByChar path parse_ipv6 uses); only when that fails does A get
// parsed directly as IPv6 (spec.md §8 scenario 5, SPEC_FULL.md §4.D,
// gtest_KQL_IP.cpp's parse_ipv6_mask case).
func parseIPv6Mask(ctx *Context) string {
	bound := boundOrDefault(ctx.Arg(1), 128)

	directExpr, directIP, directMask := ipv6CIDR(ctx, ctx.Arg(0), bound, "direct_")
	directFormatted := formatIPv6Core(ctx, directExpr, directMask)
	direct := nullIfAny(
		[]string{isNull(directIP)},
		fmt.Sprintf("concat(%s, '/', toString(%s))", directFormatted, directMask),
	)

	ipv4Ctx := &Context{Args: []string{ctx.Arg(0), bound}, Counter: ctx.Counter}
	ipv4Alias := ctx.alias("ipv4")
	ipv4Assigned := fmt.Sprintf("%s AS %s", parseIPv4Mask(ipv4Ctx), ipv4Alias)

	// ipv4Alias is already a parsed UInt32, not address text, so it is
	// reformatted with IPv4NumToString rather than routed back through
	// format_ipv4's string-parsing entry point.
	composed := fmt.Sprintf(
		"concat(ifNull(IPv4NumToString(%s), ''), '/', ifNull(toString(%s), ''))",
		ipv4Alias, bound,
	)
	composedExpr, composedIP, composedMask := ipv6CIDR(ctx, composed, "128", "v4_")
	composedFormatted := formatIPv6Core(ctx, composedExpr, composedMask)
	viaIPv4 := nullIfAny(
		[]string{isNull(composedIP)},
		fmt.Sprintf("concat(%s, '/', toString(%s))", composedFormatted, composedMask),
	)

	return fmt.Sprintf("if((%s) IS NULL, %s, %s)", ipv4Assigned, direct, viaIPv4)
}
