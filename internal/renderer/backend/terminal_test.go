package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/jot/internal/renderer/core"
)

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name     string
		key      tcell.Key
		r        rune
		mod      tcell.ModMask
		wantKey  Key
		wantRune rune
	}{
		{"rune", tcell.KeyRune, 'a', tcell.ModNone, KeyRune, 'a'},
		{"shifted rune", tcell.KeyRune, 'A', tcell.ModShift, KeyRune, 'A'},
		{"enter", tcell.KeyEnter, 0, tcell.ModNone, KeyEnter, 0},
		{"tab", tcell.KeyTab, 0, tcell.ModNone, KeyTab, 0},
		{"backspace", tcell.KeyBackspace, 0, tcell.ModNone, KeyBackspace, 0},
		{"backspace2", tcell.KeyBackspace2, 0, tcell.ModNone, KeyBackspace, 0},
		{"down", tcell.KeyDown, 0, tcell.ModNone, KeyDown, 0},
		{"f5", tcell.KeyF5, 0, tcell.ModNone, KeyF5, 0},
		{"ctrl-s code", tcell.KeyCtrlS, 0, tcell.ModCtrl, KeyCtrl, 's'},
		{"ctrl-x code", tcell.KeyCtrlX, 0, tcell.ModCtrl, KeyCtrl, 'x'},
		{"ctrl rune", tcell.KeyRune, 'S', tcell.ModCtrl, KeyCtrl, 's'},
		{"unknown", tcell.KeyF40, 0, tcell.ModNone, KeyNone, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, r := convertKey(tt.key, tt.r, tt.mod)
			if k != tt.wantKey || r != tt.wantRune {
				t.Errorf("convertKey(%v, %q) = (%v, %q), want (%v, %q)", tt.key, tt.r, k, r, tt.wantKey, tt.wantRune)
			}
		})
	}
}

func TestConvertEventNilIsClosed(t *testing.T) {
	if ev := convertEvent(nil); ev.Type != EventClosed {
		t.Errorf("convertEvent(nil) = %+v, want EventClosed", ev)
	}
}

func TestConvertEventResize(t *testing.T) {
	ev := convertEvent(tcell.NewEventResize(120, 40))
	if ev.Type != EventResize || ev.Width != 120 || ev.Height != 40 {
		t.Errorf("convertEvent(resize) = %+v", ev)
	}
}

func TestConvertMod(t *testing.T) {
	got := convertMod(tcell.ModCtrl | tcell.ModAlt)
	if !got.Has(ModCtrl) || !got.Has(ModAlt) || got.Has(ModShift) {
		t.Errorf("convertMod = %v", got)
	}
}

func TestStyleRoundTrip(t *testing.T) {
	styles := []core.Style{
		core.DefaultStyle(),
		core.DefaultStyle().Bold(),
		core.DefaultStyle().WithForeground(core.ColorFromRGB(10, 20, 30)),
		core.DefaultStyle().WithForeground(core.ColorFromIndex(4)),
	}

	for _, s := range styles {
		back := convertTcellStyle(convertStyle(s))
		if !back.Equals(s) {
			t.Errorf("style round trip: %+v -> %+v", s, back)
		}
	}
}

func TestTerminalSimulationScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	term := newTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	screen.SetSize(20, 5)

	w, h := term.Size()
	if w != 20 || h != 5 {
		t.Errorf("Size() = (%d, %d), want (20, 5)", w, h)
	}

	term.SetCell(2, 1, core.NewStyledCell('Z', core.DefaultStyle()))
	term.Show()
	if got := term.GetCell(2, 1); got.Rune != 'Z' {
		t.Errorf("GetCell rune = %q, want 'Z'", got.Rune)
	}

	term.Shutdown()

	// Resize events queued by Init may still be delivered first.
	for i := 0; i < 10; i++ {
		if ev := term.PollEvent(); ev.Type == EventClosed {
			return
		}
	}
	t.Error("PollEvent never reported EventClosed after Shutdown")
}
