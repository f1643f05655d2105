package service

import "encoding/json"

// Result is either a value or a user-facing message. Both encode as bare
// JSON: the value as itself, the message as a string.
type Result[T any] struct {
	value   T
	message string
	ok      bool
}

func Ok[T any](v T) Result[T] {
	return Result[T]{value: v, ok: true}
}

func Fail[T any](message string) Result[T] {
	return Result[T]{message: message}
}

func (r Result[T]) IsOk() bool { return r.ok }

func (r Result[T]) Value() T { return r.value }

func (r Result[T]) Message() string { return r.message }

func (r Result[T]) MarshalJSON() ([]byte, error) {
	if r.ok {
		return json.Marshal(r.value)
	}
	return json.Marshal(r.message)
}
