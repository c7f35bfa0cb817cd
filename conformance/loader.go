package conformance

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// LoadedTest pairs a parsed TestCase with the suite and file it came from,
// so failures can be reported with useful context.
type LoadedTest struct {
	File  string
	Suite TestSuite
	Test  TestCase
}

// fixturesDir locates the "fixtures" directory next to this source file.
// Grounded on barn's LoadAllTests, which tries several relative candidates
// because tests run from different working directories; tib's fixtures
// live inside the package itself, so runtime.Caller pins the path exactly
// instead of guessing.
func fixturesDir() (string, error) {
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("conformance: could not determine source location")
	}
	dir := filepath.Join(filepath.Dir(thisFile), "fixtures")
	if _, err := os.Stat(dir); err != nil {
		return "", fmt.Errorf("conformance: fixtures directory: %w", err)
	}
	return dir, nil
}

// LoadAllTests walks the fixtures directory and loads every *.yaml file.
func LoadAllTests() ([]LoadedTest, error) {
	dir, err := fixturesDir()
	if err != nil {
		return nil, err
	}

	var loaded []LoadedTest
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".yaml" {
			return nil
		}

		tests, err := loadTestFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}
		for _, t := range tests {
			t.File = rel
			loaded = append(loaded, t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loaded, nil
}

func loadTestFile(path string) ([]LoadedTest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var suite TestSuite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, err
	}
	tests := make([]LoadedTest, 0, len(suite.Tests))
	for _, tc := range suite.Tests {
		tests = append(tests, LoadedTest{Suite: suite, Test: tc})
	}
	return tests, nil
}
