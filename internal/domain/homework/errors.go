package homework

import (
	"fmt"
	"strings"
)

// MalformedResponseError reports an API response that decoded as JSON but
// does not have the expected shape (missing keys, or homeworks not a list).
type MalformedResponseError struct {
	MissingKeys []string
	Reason      string
}

func (e *MalformedResponseError) Error() string {
	if len(e.MissingKeys) > 0 {
		return fmt.Sprintf("malformed API response: missing required key(s) %s", strings.Join(e.MissingKeys, ", "))
	}
	return "malformed API response: " + e.Reason
}

// MalformedSubmissionError reports a submission record missing its name or
// carrying a review status outside the known vocabulary.
type MalformedSubmissionError struct {
	Reason string
}

func (e *MalformedSubmissionError) Error() string {
	return "malformed submission: " + e.Reason
}
