package function

import (
	"fmt"
	"strings"
)

func init() {
	Register("format_ipv4", formatIPv4)
	Register("format_ipv4_mask", formatIPv4Mask)
	Register("ipv4_compare", ipv4Compare)
	Register("ipv4_is_match", ipv4IsMatch)
	Register("ipv4_is_in_range", ipv4IsInRange)
	Register("ipv4_is_private", ipv4IsPrivate)
	Register("ipv4_netmask_suffix", ipv4NetmaskSuffix)
	Register("parse_ipv4", parseIPv4)
	Register("parse_ipv4_mask", parseIPv4Mask)
}

// formatIPv4 implements spec.md §4.D rules 1 and 6: format_ipv4(ip[, bound]).
func formatIPv4(ctx *Context) string {
	bound := boundOrDefault(ctx.Arg(1), 32)
	ipNum := fmt.Sprintf("IPv4StringToNumOrNull(toString(%s))", ctx.Arg(0))
	core := formatIPv4Core(ctx, ipNum, bound)
	return fmt.Sprintf("ifNull(%s, '')", core)
}

// formatIPv4Mask implements spec.md §4.D rule 7.
func formatIPv4Mask(ctx *Context) string {
	bound := boundOrDefault(ctx.Arg(1), 32)
	ipNum := fmt.Sprintf("IPv4StringToNumOrNull(toString(%s))", ctx.Arg(0))
	core := formatIPv4Core(ctx, ipNum, bound)
	formatted := ctx.alias("formatted_ip")
	assigned := fmt.Sprintf("ifNull(%s, '') AS %s", core, formatted)
	boundCond := fmt.Sprintf("NOT(%s >= 0 AND %s <= 32)", bound, bound)
	return fmt.Sprintf("if(empty(%s) OR %s, '', concat(%s, '/', toString(%s)))", assigned, boundCond, formatted, bound)
}

// ipv4CompareParts builds the shared lhs/rhs CIDR range expressions used
// by both ipv4_compare and ipv4_is_match (spec.md §4.D rule 8): distinct
// `lhs_`/`rhs_` alias prefixes, an effective mask of
// min2(bound, min2(lhs_mask, rhs_mask)) assigned inline at its first use.
func ipv4CompareParts(ctx *Context) (lhsRange, rhsRange, lhsIP, rhsIP string) {
	lhsExpr, lhsIPAlias, lhsMask := ipv4CIDR(ctx, ctx.Arg(0), "32", "lhs_")
	rhsExpr, rhsIPAlias, rhsMask := ipv4CIDR(ctx, ctx.Arg(1), "32", "rhs_")
	bound := boundOrDefault(ctx.Arg(2), 32)
	effMask := ctx.alias("mask")
	effMaskAssigned := fmt.Sprintf("toUInt8(min2(%s, min2(%s, %s))) AS %s", bound, lhsMask, rhsMask, effMask)
	lhsRange = fmt.Sprintf("toInt64(IPv4CIDRToRange(%s, %s).1)", lhsExpr, effMaskAssigned)
	rhsRange = fmt.Sprintf("toInt64(IPv4CIDRToRange(%s, %s).1)", rhsExpr, effMask)
	return lhsRange, rhsRange, lhsIPAlias, rhsIPAlias
}

func ipv4Compare(ctx *Context) string {
	lhsRange, rhsRange, lhsIP, rhsIP := ipv4CompareParts(ctx)
	compare := fmt.Sprintf("sign(%s - %s)", lhsRange, rhsRange)
	return nullIfAny([]string{isNull(lhsIP), isNull(rhsIP)}, compare)
}

// ipv4IsMatch implements spec.md §8 invariant 6: equivalent to
// ipv4_compare(...) = 0, but propagating `false` rather than NULL.
func ipv4IsMatch(ctx *Context) string {
	lhsRange, rhsRange, lhsIP, rhsIP := ipv4CompareParts(ctx)
	match := fmt.Sprintf("%s = %s", lhsRange, rhsRange)
	return falseIfAny([]string{isNull(lhsIP), isNull(rhsIP)}, match)
}

// ipv4IsInRange implements spec.md §4.D rule 9.
func ipv4IsInRange(ctx *Context) string {
	ip := ctx.alias("ip")
	ipAssigned := fmt.Sprintf("IPv4StringToNumOrNull(toString(%s)) AS %s", ctx.Arg(0), ip)
	rangeExpr, rangeIP, rangeMask := ipv4CIDR(ctx, ctx.Arg(1), "32", "range_")
	test := fmt.Sprintf(
		"bitXor(%s, bitAnd(%s, bitNot(toUInt32(intExp2(32 - %s) - 1)))) = 0",
		rangeExpr, ipAssigned, rangeMask,
	)
	return falseIfAny([]string{isNull(ip), isNull(rangeIP)}, test)
}

// ipv4IsPrivate implements spec.md §4.D rule 10: membership of both
// endpoints of the parsed (possibly CIDR) address within each of the
// three RFC-1918 blocks.
func ipv4IsPrivate(ctx *Context) string {
	arg := ctx.Arg(0)
	tokens := ctx.alias("tokens")
	mask := ctx.alias("mask")
	ipNum := ctx.alias("ip_as_number")
	rng := ctx.alias("range")

	tokensDecl := fmt.Sprintf("splitByChar('/', %s) AS %s", arg, tokens)
	maskExpr := fmt.Sprintf(
		"multiIf(length(%s) = 1, toUInt8(32), toUInt8(min2(toUInt32OrZero(%s[2]), 32))) AS %s",
		tokens, tokens, mask,
	)
	ipNumExpr := fmt.Sprintf("IPv4StringToNumOrNull(%s[1]) AS %s", tokens, ipNum)
	rangeExpr := fmt.Sprintf("IPv4CIDRToRange(IPv4NumToString(%s), %s) AS %s", ipNumExpr, maskExpr, rng)

	blocks := []string{"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}
	var checks []string
	for i, b := range blocks {
		begin, end := rng+".1", rng+".2"
		if i == 0 {
			// First textual occurrence carries the alias definitions.
			begin = "(" + rangeExpr + ").1"
		}
		checks = append(checks, fmt.Sprintf(
			"(isIPAddressInRange(IPv4NumToString(%s), '%s') AND isIPAddressInRange(IPv4NumToString(%s), '%s'))",
			begin, b, end, b,
		))
	}
	body := strings.Join(checks, " OR ")

	return fmt.Sprintf(
		"multiIf(length(%s) > 2, NULL, %s IS NULL, NULL, %s)",
		tokensDecl, ipNum, body,
	)
}

// ipv4NetmaskSuffix implements spec.md §4.D rule 11.
func ipv4NetmaskSuffix(ctx *Context) string {
	arg := ctx.Arg(0)
	tokens := ctx.alias("tokens")
	tokensDecl := fmt.Sprintf("splitByChar('/', %s) AS %s", arg, tokens)
	return fmt.Sprintf(
		"multiIf(length(%s) > 2, NULL, length(%s) = 1, toUInt8(32), toUInt8(min2(toUInt32OrZero(%s[2]), 32)))",
		tokensDecl, tokens, tokens,
	)
}

// parseIPv4 implements spec.md §4.D rule 12 (IPv4 half) and rule 3: a bare
// address parses straight to its numeric form, a CIDR-form address parses
// to the canonical range-start address, anything else (more than one "/",
// an unparseable mask) is NULL.
func parseIPv4(ctx *Context) string {
	expr, _, _ := ipv4CIDR(ctx, ctx.Arg(0), "32", "")
	return expr
}

// parseIPv4Mask implements spec.md §4.D rule 13 (IPv4 half): A is the plain
// address and B is the mask directly — unlike parse_ipv4/ipv4_compare, A is
// never split on "/" here (gtest_KQL_IP.cpp's parse_ipv4_mask case). The
// mask is clamped into [0, 32] before it's applied.
func parseIPv4Mask(ctx *Context) string {
	ip := ctx.alias("ip")
	mask := ctx.alias("mask")
	ipAssigned := fmt.Sprintf("toIPv4OrNull(%s) AS %s", ctx.Arg(0), ip)
	maskAssigned := fmt.Sprintf("toUInt8OrNull(toString(%s)) AS %s", ctx.Arg(1), mask)
	result := fmt.Sprintf(
		"toUInt32(IPv4CIDRToRange(assumeNotNull(%s), toUInt8(max2(0, min2(32, assumeNotNull(%s))))).1)",
		ip, mask,
	)
	return nullIfAny([]string{isNull(ipAssigned), isNull(maskAssigned)}, result)
}
