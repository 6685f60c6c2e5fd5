package homework

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func rawFromJSON(t *testing.T, body string) RawResponse {
	t.Helper()
	var raw RawResponse
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		t.Fatalf("test fixture is not valid JSON: %v", err)
	}
	return raw
}

func TestCheckResponse_ValidWithHomeworks(t *testing.T) {
	raw := rawFromJSON(t, `{"current_date": 1000, "homeworks": [{"homework_name":"hw1","status":"approved"}]}`)

	currentDate, subs, err := CheckResponse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if currentDate != 1000 {
		t.Errorf("currentDate = %d, want 1000", currentDate)
	}
	if len(subs) != 1 {
		t.Fatalf("got %d submissions, want 1", len(subs))
	}
	if subs[0].Name != "hw1" || subs[0].Status != StatusApproved {
		t.Errorf("unexpected submission: %+v", subs[0])
	}
}

func TestCheckResponse_ValidWithEmptyHomeworks(t *testing.T) {
	raw := rawFromJSON(t, `{"current_date": 42, "homeworks": []}`)

	currentDate, subs, err := CheckResponse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if currentDate != 42 {
		t.Errorf("currentDate = %d, want 42", currentDate)
	}
	if len(subs) != 0 {
		t.Errorf("got %d submissions, want 0", len(subs))
	}
}

func TestCheckResponse_MissingKeys(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantMissing string
	}{
		{"missing homeworks", `{"current_date": 1000}`, "homeworks"},
		{"missing current_date", `{"homeworks": []}`, "current_date"},
		{"missing both", `{}`, "current_date, homeworks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := CheckResponse(rawFromJSON(t, tt.body))

			var malformed *MalformedResponseError
			if !errors.As(err, &malformed) {
				t.Fatalf("error = %v, want *MalformedResponseError", err)
			}
			if got := strings.Join(malformed.MissingKeys, ", "); got != tt.wantMissing {
				t.Errorf("missing keys = %q, want %q", got, tt.wantMissing)
			}
		})
	}
}

func TestCheckResponse_HomeworksNotAList(t *testing.T) {
	raw := rawFromJSON(t, `{"current_date": 1000, "homeworks": {"homework_name":"hw1"}}`)

	_, _, err := CheckResponse(raw)

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("error = %v, want *MalformedResponseError", err)
	}
	if !strings.Contains(malformed.Error(), "homeworks") {
		t.Errorf("error %q should name the homeworks key", malformed.Error())
	}
}

func TestCheckResponse_CurrentDateNotAnInteger(t *testing.T) {
	raw := rawFromJSON(t, `{"current_date": "not-a-number", "homeworks": []}`)

	_, _, err := CheckResponse(raw)

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("error = %v, want *MalformedResponseError", err)
	}
}

func TestCheckResponse_NullValuesAreMalformed(t *testing.T) {
	// Unmarshal leaves the target untouched on a JSON null, so without an
	// explicit check a null current_date would validate as timestamp 0 and
	// a null homeworks as a valid empty sequence.
	tests := []struct {
		name string
		body string
	}{
		{"null current_date", `{"current_date": null, "homeworks": []}`},
		{"null homeworks", `{"current_date": 1000, "homeworks": null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			currentDate, subs, err := CheckResponse(rawFromJSON(t, tt.body))

			var malformed *MalformedResponseError
			if !errors.As(err, &malformed) {
				t.Fatalf("error = %v, want *MalformedResponseError", err)
			}
			if currentDate != 0 || subs != nil {
				t.Errorf("got currentDate=%d subs=%v, want zero values on error", currentDate, subs)
			}
		})
	}
}

func TestParseStatus_KnownVerdicts(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusApproved, `Изменился статус проверки работы "hw1". Работа проверена: ревьюеру всё понравилось. Ура!`},
		{StatusReviewing, `Изменился статус проверки работы "hw1". Работа взята на проверку ревьюером.`},
		{StatusRejected, `Изменился статус проверки работы "hw1". Работа проверена: у ревьюера есть замечания.`},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			got, err := ParseStatus(Submission{Name: "hw1", Status: tt.status})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("message = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseStatus_UnknownStatus(t *testing.T) {
	_, err := ParseStatus(Submission{Name: "hw1", Status: "on_fire"})

	var malformed *MalformedSubmissionError
	if !errors.As(err, &malformed) {
		t.Fatalf("error = %v, want *MalformedSubmissionError", err)
	}
	if !strings.Contains(malformed.Error(), "on_fire") {
		t.Errorf("error %q should name the unknown status", malformed.Error())
	}
}

func TestParseStatus_EmptyName(t *testing.T) {
	_, err := ParseStatus(Submission{Name: "", Status: StatusApproved})

	var malformed *MalformedSubmissionError
	if !errors.As(err, &malformed) {
		t.Fatalf("error = %v, want *MalformedSubmissionError", err)
	}
}
