package domain

// TestFailure represents a test that did not pass in a saved run
type TestFailure struct {
	TestName string `json:"test_name"`
	Position int    `json:"position"` // Registration index of the test
	Outcome  string `json:"outcome"`  // "failed" or "errored"
	Message  string `json:"message"`
	Extra    string `json:"extra,omitempty"`
	Resolved bool   `json:"resolved,omitempty"` // Track if the failure is marked as resolved
}
