package compiler

import "github.com/emberlang/go-ember/internal/token"

// Precedence orders operator binding strength from weakest to strongest.
type Precedence int

const (
	PrecNone       Precedence = iota
	PrecAssignment            // =
	PrecOr                    // or
	PrecAnd                   // and
	PrecEquality              // == !=
	PrecComparison            // < > <= >=
	PrecTerm                  // + -
	PrecFactor                // * /
	PrecUnary                 // ! -
	PrecCall                  // . ()
	PrecPrimary
)

// next returns the successor level. Binary operators parse their right
// operand one level above their own, which keeps operators of equal
// precedence left-associative.
func (p Precedence) next() Precedence {
	return p + 1
}

// action tags a parse behavior. Rules carry tags instead of function values
// so dispatch happens through an exhaustive switch that the compiler can
// verify covers every case.
type action int

const (
	actNone action = iota
	actNumber
	actGrouping
	actUnary
	actBinary
)

// rule describes how a token kind behaves in expression position.
// Kinds with neither action and precedence PrecNone carry the null rule,
// which terminates precedence climbing without being consumed.
type rule struct {
	prefix action
	infix  action
	prec   Precedence
}

// rules maps every token kind to its parse rule. A kind missing from this
// table is a defect; TestRuleTableCoversAllKinds enforces coverage.
var rules = map[token.Type]rule{
	token.LParen:    {actGrouping, actNone, PrecNone},
	token.RParen:    {actNone, actNone, PrecNone},
	token.Minus:     {actUnary, actBinary, PrecTerm},
	token.Plus:      {actNone, actBinary, PrecTerm},
	token.Slash:     {actNone, actBinary, PrecFactor},
	token.Star:      {actNone, actBinary, PrecFactor},
	token.Number:    {actNumber, actNone, PrecNone},
	token.Comma:     {actNone, actNone, PrecNone},
	token.Semicolon: {actNone, actNone, PrecNone},
	token.Illegal:   {actNone, actNone, PrecNone},
	token.EOF:       {actNone, actNone, PrecNone},
}

// lookupRule never fails: the zero value of rule is the null rule.
func lookupRule(t token.Type) rule {
	return rules[t]
}
