package vrtk

import "github.com/go-gl/mathgl/mgl32"

const (
	textFieldHalfLength float32 = 2
	textFieldRadius     float32 = 0.35
)

// TextField is a single-line text editor. It takes keyboard focus when
// activated and consumes key presses while focused.
type TextField struct {
	widget *Widget
	text   []rune
	cursor int

	// MaxLength limits the number of runes; zero means unlimited.
	MaxLength int

	// OnChange is called after every edit.
	OnChange func(tf *TextField)
	// OnSubmit is called when Enter is pressed.
	OnSubmit func(tf *TextField)
}

// NewTextField creates a text field and the capsule-shaped widget hosting it.
// The widget's UserData points back at the TextField.
func NewTextField(name string) (*TextField, *Widget) {
	w := NewWidget(name)
	w.SetShape(NewCapsule(
		mgl32.Vec3{-textFieldHalfLength, 0, 0},
		mgl32.Vec3{textFieldHalfLength, 0, 0},
		textFieldRadius,
	))
	w.FocusOnActivate = true

	tf := &TextField{widget: w}
	w.UserData = tf
	w.OnKeyPress = tf.keyPress
	return tf, w
}

// Widget returns the widget hosting the field.
func (tf *TextField) Widget() *Widget {
	return tf.widget
}

// Text returns the current contents.
func (tf *TextField) Text() string {
	return string(tf.text)
}

// SetText replaces the contents and moves the cursor to the end. OnChange is
// not called.
func (tf *TextField) SetText(s string) {
	tf.text = []rune(s)
	if tf.MaxLength > 0 && len(tf.text) > tf.MaxLength {
		tf.text = tf.text[:tf.MaxLength]
	}
	tf.cursor = len(tf.text)
}

// Cursor returns the cursor position in runes.
func (tf *TextField) Cursor() int {
	return tf.cursor
}

// SetCursor moves the cursor, clamped to the text.
func (tf *TextField) SetCursor(pos int) {
	tf.cursor = max(0, min(pos, len(tf.text)))
}

func (tf *TextField) keyPress(ctx KeyContext) {
	switch ctx.Key {
	case KeyBackspace:
		if tf.cursor > 0 {
			tf.text = append(tf.text[:tf.cursor-1], tf.text[tf.cursor:]...)
			tf.cursor--
			tf.changed()
		}
	case KeyDelete:
		if tf.cursor < len(tf.text) {
			tf.text = append(tf.text[:tf.cursor], tf.text[tf.cursor+1:]...)
			tf.changed()
		}
	case KeyLeft:
		if tf.cursor > 0 {
			tf.cursor--
		}
	case KeyRight:
		if tf.cursor < len(tf.text) {
			tf.cursor++
		}
	case KeyHome:
		tf.cursor = 0
	case KeyEnd:
		tf.cursor = len(tf.text)
	case KeyEnter:
		if tf.OnSubmit != nil {
			tf.OnSubmit(tf)
		}
	default:
		if ctx.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0 || !printable(ctx.Key) {
			return
		}
		tf.insert(rune(ctx.Key))
	}
}

func (tf *TextField) insert(r rune) {
	if tf.MaxLength > 0 && len(tf.text) >= tf.MaxLength {
		return
	}
	tf.text = append(tf.text, 0)
	copy(tf.text[tf.cursor+1:], tf.text[tf.cursor:])
	tf.text[tf.cursor] = r
	tf.cursor++
	tf.changed()
}

func (tf *TextField) changed() {
	if tf.OnChange != nil {
		tf.OnChange(tf)
	}
}

// printable reports whether key is a character code rather than a control or
// function key.
func printable(key int) bool {
	return (key >= 0x20 && key < 0x7f) || (key >= 0xa0 && key < 0xff00)
}
