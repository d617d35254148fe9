package enroll

import (
	"sync"
	"testing"
)

func TestStoreGetDefaultsToFreshSession(t *testing.T) {
	st := NewStore()

	s := st.Get(42)
	if s != (Session{}) {
		t.Fatalf("expected zero session, got %+v", s)
	}
	if st.Has(42) {
		t.Fatalf("Get must not create a session")
	}
}

func TestStoreSetClear(t *testing.T) {
	st := NewStore()

	st.Set(42, Session{Name: "Ali", Stage: StageCourse})
	if !st.Has(42) {
		t.Fatalf("expected session to exist")
	}
	if got := st.Get(42); got.Name != "Ali" || got.Stage != StageCourse {
		t.Fatalf("got %+v", got)
	}
	if st.Len() != 1 {
		t.Fatalf("Len = %d", st.Len())
	}

	st.Clear(42)
	if st.Has(42) || st.Len() != 0 {
		t.Fatalf("clear did not remove the session")
	}
}

func TestStoreConcurrentUsers(t *testing.T) {
	st := NewStore()

	var wg sync.WaitGroup
	for i := int64(0); i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			st.Set(id, Session{Name: "user", Stage: StagePhone})
			_ = st.Get(id)
		}(i)
	}
	wg.Wait()

	if st.Len() != 50 {
		t.Fatalf("Len = %d, want 50", st.Len())
	}
}

func TestSessionLangDefaultsToRU(t *testing.T) {
	if (Session{}).Lang() != LangRU {
		t.Fatalf("unset language must default to ru")
	}
	if (Session{Language: LangUZ}).Lang() != LangUZ {
		t.Fatalf("uz language must be kept")
	}
}
