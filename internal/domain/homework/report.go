package homework

// Report holds the most recently sent notification content: the submission
// it was about and the exact message text. The poller compares a candidate
// Report against the last sent one to decide whether to notify again.
type Report struct {
	SubmissionName string
	Message        string
}
