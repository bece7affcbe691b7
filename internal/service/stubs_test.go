package service

import "context"

type fakeThrottle struct {
	locked   bool
	failures int
	resets   int
}

func (f *fakeThrottle) Locked(context.Context, string) bool { return f.locked }
func (f *fakeThrottle) RecordFailure(context.Context, string) { f.failures++ }
func (f *fakeThrottle) Reset(context.Context, string) { f.resets++ }

func ptr[T any](v T) *T { return &v }
