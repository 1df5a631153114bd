// Package script serializes timing sequences to a portable YAML form
// so recorded scripts can be versioned and moved between machines.
package script

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/avrillon/encore/internal/timing"
)

// File is the on-disk script format.
type File struct {
	Subject      string  `yaml:"subject"`
	TotalSeconds float64 `yaml:"total_seconds,omitempty"`
	Entries      []Entry `yaml:"entries"`
}

// Entry is one dwell interval in the script.
type Entry struct {
	Target   string  `yaml:"target"`
	Seconds  float64 `yaml:"seconds"`
	Position float64 `yaml:"position,omitempty"`
	Loop     int     `yaml:"loop,omitempty"`
}

// Export writes the subject's stored sequence to w.
func Export(store timing.Store, subjectID string, w io.Writer) error {
	seq, err := store.GetSequence(subjectID)
	if err != nil {
		return err
	}
	if seq.Len() == 0 {
		return timing.ErrNoTimingData
	}

	f := File{Subject: subjectID}
	if total, ok, err := store.TotalDuration(subjectID); err == nil && ok {
		f.TotalSeconds = total.Seconds()
	}
	for _, e := range seq.Entries() {
		f.Entries = append(f.Entries, Entry{
			Target:   e.TargetID,
			Seconds:  e.Duration.Seconds(),
			Position: e.PositionHint,
			Loop:     e.LoopMarker,
		})
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(f)
}

// Import reads a script from r and stores it, replacing any existing
// sequence for the subject (same intent as a fresh recording). A
// script without a subject id gets a fresh one minted. Returns the
// subject id and the number of entries imported.
func Import(store timing.Store, r io.Reader) (string, int, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return "", 0, fmt.Errorf("decode script: %w", err)
	}
	if len(f.Entries) == 0 {
		return "", 0, timing.ErrNoTimingData
	}

	subjectID := f.Subject
	if subjectID == "" {
		subjectID = uuid.NewString()
	}

	now := time.Now()
	entries := make([]timing.Entry, 0, len(f.Entries))
	for i, e := range f.Entries {
		if e.Target == "" {
			return "", 0, fmt.Errorf("entry %d: missing target", i)
		}
		d := time.Duration(e.Seconds * float64(time.Second))
		if d < 0 {
			d = 0
		}
		entries = append(entries, timing.Entry{
			TargetID:      e.Target,
			Duration:      d,
			SequenceOrder: i,
			PositionHint:  e.Position,
			LoopMarker:    e.Loop,
			RecordedAt:    now,
		})
	}

	if err := store.BatchSave(subjectID, entries); err != nil {
		return "", 0, err
	}
	if f.TotalSeconds > 0 {
		if err := store.SetTotalDuration(subjectID, time.Duration(f.TotalSeconds*float64(time.Second))); err != nil {
			return "", 0, err
		}
	}
	return subjectID, len(entries), nil
}
