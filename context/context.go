// Package context implements tib's variable store: the 26 single-letter
// reals plus θ, and the read-only Ans slot.
//
// Grounded on MongooseMoo-barn's eval.Environment (a name -> Value map with
// Get/Set), simplified from Environment's arbitrary-name, lexically-nested
// scopes down to tib's fixed, flat, single-letter variable space (spec.md
// §3, §4.2) and extended with the spec's "reading an unset real punishes you
// with a random value" rule.
package context

import (
	"math/rand"

	"github.com/jaydenmilne/tib/errs"
	"github.com/jaydenmilne/tib/value"
)

// unsetReadBound is the half-width of the interval unset real reads are
// drawn from (±10^20), per spec.md §4.2.
const unsetReadBound = 1e20

// Context holds the mutable state of a running program: its variables and
// the current Ans.
//
// Grounded on eval.Environment's map-backed storage, without a parent chain
// — tib has no lexical nesting (spec.md's Non-goals exclude user-defined
// functions, so there is only ever one scope).
type Context struct {
	vars map[rune]value.Value
	ans  value.Value
	rng  *rand.Rand
}

// New creates a Context with an empty variable store and Ans defaulted to
// 0.0, using a process-seeded random source for unset-variable reads.
func New() *Context {
	return &Context{
		vars: make(map[rune]value.Value),
		ans:  value.NewNumber(0),
		rng:  rand.New(rand.NewSource(rand.Int63())),
	}
}

// NewSeeded creates a Context whose unset-variable RNG is deterministically
// seeded, for reproducible tests and for config.Config's seed override.
func NewSeeded(seed uint64) *Context {
	c := New()
	c.rng = rand.New(rand.NewSource(int64(seed)))
	return c
}

// Get reads var. An unset RealVar/θ returns a random Number uniformly drawn
// from [-unsetReadBound, unsetReadBound) instead of erroring — the spec's
// intentional "punish uninitialized reads" behavior (spec.md §3, §4.2, §9).
func (c *Context) Get(v value.Variable) value.Value {
	if v.IsAns() {
		return c.ans
	}
	if val, ok := c.vars[v.Key()]; ok {
		return val
	}
	return value.NewNumber(c.rng.Float64()*2*unsetReadBound - unsetReadBound)
}

// Set writes val to v, returning val (so callers can chain it as the result
// of a Store expression). Writing to Ans fails with ImmutableVariable
// (spec.md §3, §4.2).
func (c *Context) Set(v value.Variable, val value.Value) (value.Value, error) {
	if v.IsAns() {
		return nil, errs.New(errs.ImmutableVariable, "cannot store to Ans")
	}
	c.vars[v.Key()] = val
	return val, nil
}

// SetAns updates Ans to val. Called by the executor after every top-level
// expression statement (spec.md §4.2, §4.3).
func (c *Context) SetAns(val value.Value) {
	c.ans = val
}

// Ans returns the current value of Ans.
func (c *Context) Ans() value.Value {
	return c.ans
}
