package features

import (
	"sync"
	"testing"
)

func TestSetEnabled(t *testing.T) {
	if Enabled(ParallelDispatch) {
		t.Fatal("feature on by default")
	}
	Set(ParallelDispatch, true)
	if !Enabled(ParallelDispatch) {
		t.Fatal("feature not enabled")
	}
	Set(ParallelDispatch, false)
	if Enabled(ParallelDispatch) {
		t.Fatal("feature not disabled")
	}
}

func TestConcurrentToggle(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(on bool) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				Set(DebugMode, on)
				Enabled(DebugMode)
			}
		}(i%2 == 0)
	}
	wg.Wait()
	Set(DebugMode, false)
}
