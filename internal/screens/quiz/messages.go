package quiz

// sessionStartedMsg is sent once the start event has been recorded.
type sessionStartedMsg struct {
	Err error
}
