package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sweeney/occupancy-sensor/internal/logic"
)

func TestDisplayFlushPrintsFrame(t *testing.T) {
	var buf bytes.Buffer
	d := NewDisplay(NewTerminal(&buf))

	d.Clear()
	d.DrawText("Vagas: 7", 5, 20)
	d.DrawText("Ocupado: 3", 5, 44)
	if err := d.Flush(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "[display] Vagas: 7 | Ocupado: 3\r\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestDisplayClearStartsNewFrame(t *testing.T) {
	var buf bytes.Buffer
	d := NewDisplay(NewTerminal(&buf))

	d.DrawText("old", 0, 0)
	d.Clear()
	d.DrawText("LOTADO", 35, 30)
	d.Flush()

	if got := buf.String(); got != "[display] LOTADO\r\n" {
		t.Errorf("got %q", got)
	}
}

func TestLightSet(t *testing.T) {
	var buf bytes.Buffer
	l := NewLight(NewTerminal(&buf))

	l.Set(logic.LevelAlmostFull)

	if got := buf.String(); !strings.Contains(got, "ALMOST_FULL") || !strings.Contains(got, "yellow") {
		t.Errorf("unexpected output %q", got)
	}
}

func TestColorName(t *testing.T) {
	tests := []struct {
		level logic.Level
		want  string
	}{
		{logic.LevelEmpty, "blue"},
		{logic.LevelAvailable, "green"},
		{logic.LevelAlmostFull, "yellow"},
		{logic.LevelFull, "red"},
		{logic.Level("bogus"), "off"},
	}
	for _, tt := range tests {
		if got := ColorName(tt.level); got != tt.want {
			t.Errorf("ColorName(%s) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestBuzzer(t *testing.T) {
	var buf bytes.Buffer
	b := NewBuzzer(NewTerminal(&buf))

	b.ToneOn()
	b.ToneOff()
	if got := buf.String(); got != "[buzzer]  on\r\n[buzzer]  off\r\n" {
		t.Errorf("got %q", got)
	}

	buf.Reset()
	b.Bell = true
	b.ToneOn()
	if !strings.HasPrefix(buf.String(), "\a") {
		t.Errorf("expected bell, got %q", buf.String())
	}
}

func TestTerminalWriteTranslatesNewlines(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	n, err := term.Write([]byte("one\ntwo\r\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 9 {
		t.Errorf("n: got %d, want 9", n)
	}
	if got := buf.String(); got != "one\r\ntwo\r\n" {
		t.Errorf("got %q", got)
	}
}
