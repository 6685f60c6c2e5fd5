// internal/domain/homework/submission.go
package homework

// Status is the review state of a submission as reported by the Practicum API.
type Status string

const (
	StatusReviewing Status = "reviewing"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

// verdicts is the fixed vocabulary mapping each known review status to the
// display text relayed to the chat. A status outside this map is treated as
// a malformed submission, not silently forwarded.
var verdicts = map[Status]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// Submission is one homework entry from the API response. Transient: it is
// decoded from a single poll and never persisted.
type Submission struct {
	Name   string `json:"homework_name"`
	Status Status `json:"status"`
}
