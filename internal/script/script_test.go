package script

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/avrillon/encore/internal/timing"
)

func TestExportImportRoundTrip(t *testing.T) {
	store := timing.NewMockStore()
	store.SetSequence("talk-1",
		timing.Entry{TargetID: "slide-1", Duration: 2 * time.Second, PositionHint: 0},
		timing.Entry{TargetID: "slide-2", Duration: 3500 * time.Millisecond, PositionHint: 120, LoopMarker: 2},
	)
	if err := store.SetTotalDuration("talk-1", 90*time.Second); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Export(store, "talk-1", &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	fresh := timing.NewMockStore()
	subjectID, n, err := Import(fresh, &buf)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if subjectID != "talk-1" {
		t.Errorf("subject = %q, want talk-1", subjectID)
	}
	if n != 2 {
		t.Errorf("imported %d entries, want 2", n)
	}

	seq, err := fresh.GetSequence("talk-1")
	if err != nil {
		t.Fatal(err)
	}
	if seq.Len() != 2 {
		t.Fatalf("stored %d entries, want 2", seq.Len())
	}
	if got := seq.Entry(1).Duration; got != 3500*time.Millisecond {
		t.Errorf("duration = %v, want 3.5s", got)
	}
	if got := seq.Entry(1).LoopMarker; got != 2 {
		t.Errorf("loop marker = %d, want 2", got)
	}

	total, ok := fresh.StoredTotal("talk-1")
	if !ok {
		t.Fatal("total not imported")
	}
	if total != 90*time.Second {
		t.Errorf("total = %v, want 90s", total)
	}
}

func TestExportEmptySubject(t *testing.T) {
	store := timing.NewMockStore()

	var buf bytes.Buffer
	if err := Export(store, "nobody", &buf); !errors.Is(err, timing.ErrNoTimingData) {
		t.Errorf("Export() error = %v, want ErrNoTimingData", err)
	}
}

func TestImportMintsSubjectID(t *testing.T) {
	store := timing.NewMockStore()

	in := strings.NewReader(`
entries:
  - target: slide-1
    seconds: 2
`)
	subjectID, n, err := Import(store, in)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if subjectID == "" {
		t.Error("no subject id minted")
	}
	if n != 1 {
		t.Errorf("imported %d entries, want 1", n)
	}
}

func TestImportRejectsMissingTarget(t *testing.T) {
	store := timing.NewMockStore()

	in := strings.NewReader(`
subject: talk-1
entries:
  - seconds: 2
`)
	if _, _, err := Import(store, in); err == nil {
		t.Error("Import() accepted an entry without a target")
	}
}

func TestImportEmptyScript(t *testing.T) {
	store := timing.NewMockStore()

	in := strings.NewReader("subject: talk-1\nentries: []\n")
	if _, _, err := Import(store, in); !errors.Is(err, timing.ErrNoTimingData) {
		t.Errorf("Import() error = %v, want ErrNoTimingData", err)
	}
}

func TestImportClampsNegativeDurations(t *testing.T) {
	store := timing.NewMockStore()

	in := strings.NewReader(`
subject: talk-1
entries:
  - target: slide-1
    seconds: -3
`)
	if _, _, err := Import(store, in); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	seq, _ := store.GetSequence("talk-1")
	if got := seq.Entry(0).Duration; got != 0 {
		t.Errorf("duration = %v, want 0", got)
	}
}
