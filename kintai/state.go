package kintai

type State string

const (
	StateNotStarted = State("not_started")
	StateWorking    = State("working")
	StateOnBreak    = State("on_break")
	StateCompleted  = State("completed")
)
