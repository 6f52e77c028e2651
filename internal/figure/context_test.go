package figure

import (
	"errors"
	"testing"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
)

func TestContext_EnterRestore(t *testing.T) {
	oldHandler := plot.DefaultTextHandler
	oldFont := plot.DefaultFont
	oldBackend := ActiveBackend()

	restore := NewContext("").Enter()

	if ActiveBackend() != BackendTeX {
		t.Errorf("expected backend %s, got %s", BackendTeX, ActiveBackend())
	}
	if _, ok := plot.DefaultTextHandler.(text.Latex); !ok {
		t.Errorf("expected LaTeX text handler, got %T", plot.DefaultTextHandler)
	}

	restore()
	restore()

	if ActiveBackend() != oldBackend {
		t.Errorf("expected backend %s after restore, got %s", oldBackend, ActiveBackend())
	}
	if plot.DefaultTextHandler != oldHandler {
		t.Error("expected text handler to be restored")
	}
	if plot.DefaultFont != oldFont {
		t.Error("expected default font to be restored")
	}
}

func TestContext_Options(t *testing.T) {
	mono := font.Font{Typeface: "Liberation", Variant: "Mono"}
	plain := text.Plain{Fonts: font.DefaultCache}

	c := NewContext(BackendPNG, WithFont(mono), WithTextHandler(plain))
	err := c.Run(func() error {
		if ActiveBackend() != BackendPNG {
			t.Errorf("expected backend %s, got %s", BackendPNG, ActiveBackend())
		}
		if plot.DefaultFont != mono {
			t.Errorf("expected font %v, got %v", mono, plot.DefaultFont)
		}
		if _, ok := plot.DefaultTextHandler.(text.Plain); !ok {
			t.Errorf("expected plain text handler, got %T", plot.DefaultTextHandler)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestContext_RunRestoresOnError(t *testing.T) {
	oldBackend := ActiveBackend()
	sentinel := errors.New("boom")

	err := With(func() error {
		if ActiveBackend() != BackendTeX {
			t.Errorf("expected backend %s inside context", BackendTeX)
		}
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Errorf("expected sentinel error, got %v", err)
	}
	if ActiveBackend() != oldBackend {
		t.Errorf("expected backend %s after error, got %s", oldBackend, ActiveBackend())
	}
}

func TestContext_RunRestoresOnPanic(t *testing.T) {
	oldBackend := ActiveBackend()
	oldHandler := plot.DefaultTextHandler

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Error("expected panic to propagate")
			}
		}()
		_ = With(func() error {
			panic("boom")
		})
	}()

	if ActiveBackend() != oldBackend {
		t.Errorf("expected backend %s after panic, got %s", oldBackend, ActiveBackend())
	}
	if plot.DefaultTextHandler != oldHandler {
		t.Error("expected text handler to be restored after panic")
	}
}

func TestWrap(t *testing.T) {
	var inside Backend
	fn := Wrap(func() error {
		inside = ActiveBackend()
		return nil
	})

	if err := fn(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inside != BackendTeX {
		t.Errorf("expected backend %s inside wrapped function, got %s", BackendTeX, inside)
	}
}

func TestUseBackend(t *testing.T) {
	old := UseBackend(BackendTeX)
	defer UseBackend(old)

	if prev := UseBackend(BackendPNG); prev != BackendTeX {
		t.Errorf("expected previous backend %s, got %s", BackendTeX, prev)
	}
}
