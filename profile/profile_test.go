package profile

import "testing"

func TestProfiler_EmptyModeIsNoop(t *testing.T) {
	s := Profiler{Dir: t.TempDir()}.Start()

	if _, ok := s.(ignore); !ok {
		t.Fatalf("Start() = %T, want no-op", s)
	}

	s.Stop()
	s.Stop()
}

func TestProfiler_UnknownModeIsNoop(t *testing.T) {
	s := Profiler{Mode: "bogus", Dir: t.TempDir(), Quiet: true}.Start()

	if _, ok := s.(ignore); !ok {
		t.Fatalf("Start() = %T, want no-op", s)
	}

	s.Stop()
}
