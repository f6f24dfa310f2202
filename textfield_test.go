package vrtk

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// typeKeys presses each key on tf's widget.
func typeKeys(tf *TextField, mods KeyModifiers, keys ...int) {
	for _, k := range keys {
		tf.widget.handleKeyPress(KeyContext{Widget: tf.widget, Key: k, Modifiers: mods})
	}
}

func typeString(tf *TextField, s string) {
	for _, r := range s {
		typeKeys(tf, 0, int(r))
	}
}

func TestNewButton(t *testing.T) {
	b := NewButton("ok")
	if b.Shape() == nil || b.Shape().Type() != ShapeCapsuloid {
		t.Fatal("button should carry a capsule shape")
	}
	if !b.Contains(mgl32.Vec3{1.2, 0, 0}) || b.Contains(mgl32.Vec3{0, 0.6, 0}) {
		t.Error("button extent mismatch")
	}
}

func TestNewTextField(t *testing.T) {
	tf, w := NewTextField("name")
	if tf.Widget() != w || w.UserData != tf {
		t.Error("field and widget should reference each other")
	}
	if !w.FocusOnActivate {
		t.Error("text field should take focus on activate")
	}
	if tf.Text() != "" || tf.Cursor() != 0 {
		t.Error("new field should be empty")
	}
}

func TestTextFieldEditing(t *testing.T) {
	tests := []struct {
		name   string
		start  string
		cursor int
		keys   []int
		want   string
		wantAt int
	}{
		{"append", "", 0, []int{'h', 'i'}, "hi", 2},
		{"insert middle", "ac", 1, []int{'b'}, "abc", 2},
		{"backspace", "abc", 3, []int{KeyBackspace}, "ab", 2},
		{"backspace at start", "abc", 0, []int{KeyBackspace}, "abc", 0},
		{"delete", "abc", 1, []int{KeyDelete}, "ac", 1},
		{"delete at end", "abc", 3, []int{KeyDelete}, "abc", 3},
		{"left right", "abc", 3, []int{KeyLeft, KeyLeft, KeyRight}, "abc", 2},
		{"left clamps", "a", 0, []int{KeyLeft}, "a", 0},
		{"right clamps", "a", 1, []int{KeyRight}, "a", 1},
		{"home end", "abc", 1, []int{KeyHome, 'x', KeyEnd, 'y'}, "xabcy", 5},
		{"control keys ignored", "a", 1, []int{KeyEsc, KeyUp, KeyLShift}, "a", 1},
		{"unicode", "", 0, []int{'é', 'ß'}, "éß", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tf, _ := NewTextField("f")
			tf.SetText(tt.start)
			tf.SetCursor(tt.cursor)
			typeKeys(tf, 0, tt.keys...)
			if tf.Text() != tt.want {
				t.Errorf("Text = %q, want %q", tf.Text(), tt.want)
			}
			if tf.Cursor() != tt.wantAt {
				t.Errorf("Cursor = %d, want %d", tf.Cursor(), tt.wantAt)
			}
		})
	}
}

func TestTextFieldModifiersSuppressInsert(t *testing.T) {
	tf, _ := NewTextField("f")
	typeKeys(tf, ModCtrl, 'c')
	typeKeys(tf, ModAlt, 'x')
	typeKeys(tf, ModShift, 'A')
	if tf.Text() != "A" {
		t.Errorf("Text = %q, want %q", tf.Text(), "A")
	}
}

func TestTextFieldMaxLength(t *testing.T) {
	tf, _ := NewTextField("f")
	tf.MaxLength = 3
	typeString(tf, "abcdef")
	if tf.Text() != "abc" {
		t.Errorf("Text = %q, want %q", tf.Text(), "abc")
	}
	tf.SetText("wxyz")
	if tf.Text() != "wxy" || tf.Cursor() != 3 {
		t.Errorf("SetText should truncate: %q cursor %d", tf.Text(), tf.Cursor())
	}
}

func TestTextFieldCallbacks(t *testing.T) {
	tf, _ := NewTextField("f")
	changes := 0
	var submitted string
	tf.OnChange = func(*TextField) { changes++ }
	tf.OnSubmit = func(f *TextField) { submitted = f.Text() }

	tf.SetText("ab")
	if changes != 0 {
		t.Error("SetText should not report a change")
	}
	typeKeys(tf, 0, 'c', KeyLeft, KeyBackspace, KeyHome, KeyBackspace, KeyEnter)
	if changes != 2 {
		t.Errorf("changes = %d, want 2", changes)
	}
	if submitted != "ac" {
		t.Errorf("submitted = %q, want %q", submitted, "ac")
	}
}

func TestSetCursorClamps(t *testing.T) {
	tf, _ := NewTextField("f")
	tf.SetText("abc")
	tf.SetCursor(-4)
	if tf.Cursor() != 0 {
		t.Errorf("Cursor = %d, want 0", tf.Cursor())
	}
	tf.SetCursor(10)
	if tf.Cursor() != 3 {
		t.Errorf("Cursor = %d, want 3", tf.Cursor())
	}
}

func TestTextFieldFocusAndTyping(t *testing.T) {
	ui := NewUI()
	tf, w := NewTextField("f")
	ui.AddWidget(w)
	d := NewDispatcher(ui)

	d.InputRayPointer(eyeA, down)
	d.InputButton(ButtonPrimary, true)
	d.InputButton(ButtonPrimary, false)
	if d.KeyboardFocus() != w {
		t.Fatal("clicking the field should focus it")
	}
	for _, k := range []int{'o', 'k'} {
		d.InputKeyboard(k, true)
		d.InputKeyboard(k, false)
	}
	if tf.Text() != "ok" {
		t.Errorf("Text = %q, want %q", tf.Text(), "ok")
	}

	d.SetKeyboardFocus(nil)
	d.InputKeyboard('!', true)
	if tf.Text() != "ok" {
		t.Error("unfocused field should ignore keys")
	}
}
