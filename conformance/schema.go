// Package conformance runs YAML-described end-to-end programs against the
// real parser/executor/context stack and checks the result.
//
// Grounded on MongooseMoo-barn's conformance package: TestSuite/TestCase/
// Expectation mirror barn's conformance/schema.go shape (a YAML file holds
// a named suite of named cases, each with a code fragment and an
// expectation), adapted from MOO's object/verb/permission model to tib's
// flat program-and-final-Ans model.
package conformance

// TestSuite is one YAML fixture file: a named group of related cases.
type TestSuite struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Tests       []TestCase `yaml:"tests"`
}

// TestCase is a single program and what running it to completion must
// produce.
type TestCase struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Skip        interface{} `yaml:"skip,omitempty"` // bool or string, as barn's TestCase.Skip
	Program     string      `yaml:"program"`
	Expect      Expectation `yaml:"expect"`
}

// Expectation describes the one outcome a TestCase checks. Exactly one of
// Ans or Error is normally set; Output, when set, is checked in addition
// to whichever of those fires.
type Expectation struct {
	// Ans is the expected final Ans, compared to the float64 stored in the
	// Number returned by Context.Ans(). A pointer so "0.0 expected" and
	// "no Ans expectation" are distinguishable.
	Ans *float64 `yaml:"ans,omitempty"`

	// Output, if non-empty, is the expected exact text written by Disp
	// statements (newline-joined, matching executor.Program's io.Writer).
	Output string `yaml:"output,omitempty"`

	// Error, if non-empty, names the errs.Kind the run is expected to
	// fail with (e.g. "DivideByZero", "UnexpectedEof").
	Error string `yaml:"error,omitempty"`
}

// IsSkipped reports whether tc should be skipped, and why.
func (tc *TestCase) IsSkipped() (bool, string) {
	switch v := tc.Skip.(type) {
	case nil:
		return false, ""
	case bool:
		return v, "skipped"
	case string:
		return true, v
	default:
		return false, ""
	}
}
