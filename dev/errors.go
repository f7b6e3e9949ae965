package dev

// error definitions
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrDriverBusy = Error("measurement already in flight")
	ErrNoPulldown = Error("no pulldown on pin; 1Mohm to ground recommended")
)
