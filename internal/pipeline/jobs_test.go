package pipeline

import (
	"testing"
	"time"
)

func TestNewJob(t *testing.T) {
	docs := []Document{{Name: "a.txt"}, {Name: "b.txt"}}
	j := NewJob("Analyst", "review contracts", docs)

	if j.Status != StatusQueued {
		t.Errorf("new job status = %q, want %q", j.Status, StatusQueued)
	}
	if len(j.ID) != 26 {
		t.Errorf("job ID length = %d, want 26", len(j.ID))
	}
	if len(j.Filenames) != 2 || j.Filenames[0] != "a.txt" {
		t.Errorf("unexpected filenames: %v", j.Filenames)
	}
	if got := j.Documents(); len(got) != 2 {
		t.Errorf("documents lost: %d", len(got))
	}
}

func TestJobIDs_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := newJobID()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate job ID %q", id)
		}
		seen[id] = struct{}{}
		for _, c := range id {
			if c == 'I' || c == 'L' || c == 'O' || c == 'U' {
				t.Fatalf("ID %q contains excluded Base32 character %q", id, c)
			}
		}
	}
}

func TestJob_Lifecycle(t *testing.T) {
	j := NewJob("Analyst", "review", nil)

	j.SetStatus(StatusProcessing)
	if s := j.Snapshot(); s.Status != StatusProcessing {
		t.Errorf("status = %q, want processing", s.Status)
	}
	if j.Result() != nil {
		t.Error("result should be nil while processing")
	}

	j.Fail("parse error")
	s := j.Snapshot()
	if s.Status != StatusFailed || s.Error != "parse error" {
		t.Errorf("failed snapshot = %+v", s)
	}
}

func TestJobStore_Cleanup(t *testing.T) {
	store := NewJobStore(time.Minute)

	fresh := NewJob("Analyst", "review", nil)
	stale := NewJob("Analyst", "review", nil)
	stale.UpdatedAt = time.Now().Add(-2 * time.Minute)
	store.Put(fresh)
	store.Put(stale)

	store.Cleanup()
	if store.Get(stale.ID) != nil {
		t.Error("expired job should be evicted")
	}
	if store.Get(fresh.ID) == nil {
		t.Error("fresh job should survive cleanup")
	}
}

func TestJobStore_GetUnknown(t *testing.T) {
	store := NewJobStore(time.Minute)
	if store.Get("no-such-id") != nil {
		t.Error("unknown ID should return nil")
	}
}
