package practice

import "github.com/abhisek/prepdeck/internal/session"

// answerResultMsg carries the stored outcome of one submitted answer.
type answerResultMsg struct {
	Result *session.Result
	Err    error
}

// placementDoneMsg carries the calibration written after a placement run.
type placementDoneMsg struct {
	Level int
	Err   error
}
