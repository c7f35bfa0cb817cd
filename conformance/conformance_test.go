package conformance

import "testing"

func TestConformance(t *testing.T) {
	tests, err := LoadAllTests()
	if err != nil {
		t.Fatalf("LoadAllTests: %v", err)
	}
	if len(tests) == 0 {
		t.Fatal("no fixtures loaded")
	}

	runner := NewRunner()
	for _, test := range tests {
		test := test
		t.Run(test.File+"/"+test.Test.Name, func(t *testing.T) {
			result := runner.Run(test)
			if result.Skipped {
				t.Skipf("skipped: %s", result.Reason)
				return
			}
			if !result.Passed {
				t.Errorf("%s", result.Err)
			}
		})
	}
}
