// internal/domain/homework/response.go
package homework

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RawResponse is a decoded-but-unvalidated API response body. Keeping the
// values as raw JSON lets CheckResponse distinguish a missing key from a
// key with the wrong type.
type RawResponse map[string]json.RawMessage

// expectedKeys are the top-level keys a well-formed status response carries.
var expectedKeys = []string{"current_date", "homeworks"}

// CheckResponse validates the shape of an API response and extracts the
// server timestamp and the homeworks list (possibly empty). It is
// side-effect-free; all violations surface as *MalformedResponseError.
func CheckResponse(raw RawResponse) (currentDate int64, subs []Submission, err error) {
	var missing []string
	for _, key := range expectedKeys {
		if _, ok := raw[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return 0, nil, &MalformedResponseError{MissingKeys: missing}
	}

	if isJSONNull(raw["current_date"]) {
		return 0, nil, &MalformedResponseError{Reason: "current_date is not an integer timestamp"}
	}
	if err := json.Unmarshal(raw["current_date"], &currentDate); err != nil {
		return 0, nil, &MalformedResponseError{Reason: "current_date is not an integer timestamp"}
	}

	if isJSONNull(raw["homeworks"]) {
		return 0, nil, &MalformedResponseError{Reason: "homeworks is not a list of submissions"}
	}
	if err := json.Unmarshal(raw["homeworks"], &subs); err != nil {
		return 0, nil, &MalformedResponseError{Reason: "homeworks is not a list of submissions"}
	}

	return currentDate, subs, nil
}

// isJSONNull reports whether a raw value is the literal null token.
// Unmarshal treats null as a no-op for any target (the int stays 0, the
// slice stays nil, no error), so null must be rejected explicitly or it
// would slip through as a valid value.
func isJSONNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

// ParseStatus maps one submission to the notification sentence for its
// review status. Pure function: a non-empty name and a status from the
// fixed vocabulary are required, anything else is a *MalformedSubmissionError.
func ParseStatus(sub Submission) (string, error) {
	if sub.Name == "" {
		return "", &MalformedSubmissionError{Reason: "submission has no homework_name"}
	}

	verdict, ok := verdicts[sub.Status]
	if !ok {
		return "", &MalformedSubmissionError{Reason: fmt.Sprintf("unknown review status %q", sub.Status)}
	}

	return fmt.Sprintf("Изменился статус проверки работы \"%s\". %s", sub.Name, verdict), nil
}
