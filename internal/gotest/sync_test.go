// SPDX-License-Identifier: MPL-2.0

package gotest

import (
	"sync"
	"testing"
)

// The subsystem is published once and read by many workers; resolution must
// be safe without any locking because nothing mutates after construction.
func TestSubsystem_ConcurrentReads(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.Args = []string{"-run", "TestFoo", "-v"}
	opts.ForceRace = true
	s, err := NewSubsystem(opts)
	if err != nil {
		t.Fatalf("NewSubsystem returned error: %v", err)
	}

	want := s.ResolveEffective(true, PerTargetOverride{Msan: true}, "dist", "example.com/foo/bar")

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				got := s.ResolveEffective(true, PerTargetOverride{Msan: true}, "dist", "example.com/foo/bar")
				if got != want {
					t.Errorf("concurrent resolution diverged: %+v vs %+v", got, want)
					return
				}
				if args := s.Args(); len(args) != 3 {
					t.Errorf("concurrent Args() read returned %v", args)
					return
				}
			}
		}()
	}
	wg.Wait()
}
