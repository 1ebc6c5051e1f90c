package keymap

// Button is one on-screen keypad key. Key is resolved through Lookup, so a
// click behaves exactly like the matching key press.
type Button struct {
	Label string
	Key   string
}

// Command resolves the button through the dispatch table.
func (b Button) Command() Command {
	c, _ := Lookup(b.Key)
	return c
}

// Keypad is the on-screen layout, row by row.
var Keypad = [][]Button{
	{{"C", "c"}, {"⌫", "backspace"}, {"%", "%"}, {"÷", "÷"}},
	{{"7", "7"}, {"8", "8"}, {"9", "9"}, {"×", "×"}},
	{{"4", "4"}, {"5", "5"}, {"6", "6"}, {"−", "−"}},
	{{"1", "1"}, {"2", "2"}, {"3", "3"}, {"+", "+"}},
	{{"±", "n"}, {"0", "0"}, {".", "."}, {"=", "="}},
	{{"√", "s"}, {"x²", "q"}, {"1/x", "r"}, {"◐", "t"}},
}

// ButtonAt returns the button at row/col of Keypad.
func ButtonAt(row, col int) (Button, bool) {
	if row < 0 || row >= len(Keypad) {
		return Button{}, false
	}
	if col < 0 || col >= len(Keypad[row]) {
		return Button{}, false
	}
	return Keypad[row][col], true
}

// Columns returns the widest row length.
func Columns() int {
	n := 0
	for _, row := range Keypad {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}
