package blazetopic

import "errors"

var (
	ErrInvalidFilter    = errors.New("invalid filter")
	ErrInvalidTopic     = errors.New("invalid topic")
	ErrBadParam         = errors.New("bad topic type")
	ErrStoreCompiled    = errors.New("store already compiled")
	ErrDispatcherClosed = errors.New("dispatcher closed")
)
