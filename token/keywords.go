package token

// TwoCharOperators maps two-character operator spellings to the Kind the
// tokeniser should emit for them, checked before falling back to the
// single-character Eq/Tilde/Bang kinds. Longest-prefix-first, mirroring the
// operator library's own tie-break rule (spec.md §4.B).
var TwoCharOperators = map[string]Kind{
	"==": EqEq,
	"!=": NotEq,
	"=~": EqTilde,
	"!~": NotTilde,
}

// StageKeywords are the bare words the pipeline dispatcher (component E)
// recognises as the start of a stage, before synonym folding. "make" is
// handled separately: it is only a stage keyword when followed by `-`
// `series` (spec.md §4.E).
var StageKeywords = map[string]bool{
	"filter":      true,
	"where":       true,
	"limit":       true,
	"take":        true,
	"project":     true,
	"sort":        true,
	"order":       true,
	"summarize":   true,
	"make-series": true,
}
