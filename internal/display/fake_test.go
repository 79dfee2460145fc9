package display

import (
	"errors"
	"testing"
)

func TestFakeRecordsFrames(t *testing.T) {
	f := NewFake()

	f.Clear()
	f.DrawText("Vagas: 9", 5, 20)
	f.DrawText("Ocupado: 1", 5, 44)
	if err := f.Flush(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f.Clear()
	f.DrawText("LOTADO", 35, 30)
	f.Flush()

	frames := f.Frames()
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	if len(frames[0]) != 2 || frames[0][0] != (Text{"Vagas: 9", 5, 20}) {
		t.Errorf("frame 0: got %+v", frames[0])
	}
	last := f.Last()
	if len(last) != 1 || last[0].Text != "LOTADO" {
		t.Errorf("last frame: got %+v", last)
	}
	if f.Interleaved() {
		t.Error("sequential frames should not be interleaved")
	}
}

func TestFakeDetectsInterleaving(t *testing.T) {
	f := NewFake()

	f.Clear()
	f.DrawText("a", 0, 0)
	f.Clear() // second frame opened before the first was flushed
	f.Flush()
	f.Flush()

	if !f.Interleaved() {
		t.Error("expected overlapping frames to be detected")
	}
}

func TestFakeFlushError(t *testing.T) {
	f := NewFake()
	f.FlushError = errors.New("i2c nack")

	f.Clear()
	f.DrawText("x", 0, 0)
	if err := f.Flush(); err == nil {
		t.Error("expected error")
	}
	if len(f.Frames()) != 0 {
		t.Error("failed flush should not record a frame")
	}
	if f.Last() != nil {
		t.Error("expected no last frame")
	}
}
