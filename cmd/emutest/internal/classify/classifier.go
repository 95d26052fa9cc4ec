package classify

import (
	"github.com/RenzRoos/test/cmd/emutest/internal/normalize"
	"github.com/RenzRoos/test/cmd/emutest/internal/process"
)

// Classifier turns a process result into an Outcome.
type Classifier struct {
	acceptable map[int]struct{}
	normalizer *normalize.Engine
}

// New creates a classifier. acceptable lists exit codes that do not by
// themselves fail a test; a nil normalizer means line-ending normalization only.
func New(acceptable []int, normalizer *normalize.Engine) *Classifier {
	if normalizer == nil {
		normalizer = normalize.NewEngine()
	}

	set := make(map[int]struct{}, len(acceptable))
	for _, code := range acceptable {
		set[code] = struct{}{}
	}

	return &Classifier{acceptable: set, normalizer: normalizer}
}

// Classify compares the result of running a test case against expected.
// A timeout wins over everything, then an unacceptable exit code; only then
// is stdout followed by stderr compared with the expected text.
func (c *Classifier) Classify(expected string, res *process.Result) Outcome {
	if res.TimedOut() {
		return Timeout()
	}

	code := *res.ExitCode
	if _, ok := c.acceptable[code]; !ok {
		return Exit(code)
	}

	actual := c.normalizer.Normalize(string(res.Stdout)) + c.normalizer.Normalize(string(res.Stderr))
	expected = c.normalizer.Normalize(expected)

	if actual == expected {
		return Pass()
	}
	return Mismatch(UnifiedDiff(expected, actual))
}
