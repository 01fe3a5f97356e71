package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// field is either a free text input or, when choices is set, a selector
// cycled with left/right.
type field struct {
	label   string
	input   textinput.Model
	choices []string
	choice  int
}

func textField(label, placeholder string, limit int) field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = ""
	return field{label: label, input: ti}
}

func secretField(label string) field {
	f := textField(label, "", 128)
	f.input.EchoMode = textinput.EchoPassword
	f.input.EchoCharacter = '*'
	return f
}

func choiceField(label string, choices ...string) field {
	return field{label: label, choices: choices}
}

type form struct {
	fields []field
	focus  int
}

func newForm(fields ...field) form {
	f := form{fields: fields}
	f.setFocus(0)
	return f
}

func (f *form) setFocus(i int) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	for i < 0 {
		i += len(f.fields)
	}
	i %= len(f.fields)

	f.focus = i
	var cmd tea.Cmd
	for idx := range f.fields {
		if f.fields[idx].choices != nil {
			continue
		}
		if idx == i {
			cmd = f.fields[idx].input.Focus()
		} else {
			f.fields[idx].input.Blur()
		}
	}
	return cmd
}

// Update handles one key and reports whether the form was submitted.
func (f *form) Update(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return false, f.setFocus(f.focus + 1)
	case "shift+tab", "up":
		return false, f.setFocus(f.focus - 1)
	case "enter":
		if f.focus == len(f.fields)-1 {
			return true, nil
		}
		return false, f.setFocus(f.focus + 1)
	}

	cur := &f.fields[f.focus]
	if cur.choices != nil {
		switch msg.String() {
		case "left", "h":
			cur.choice = (cur.choice - 1 + len(cur.choices)) % len(cur.choices)
		case "right", "l", " ":
			cur.choice = (cur.choice + 1) % len(cur.choices)
		}
		return false, nil
	}

	var cmd tea.Cmd
	cur.input, cmd = cur.input.Update(msg)
	return false, cmd
}

// Value is the trimmed text or selected choice of field i.
func (f form) Value(i int) string {
	fl := f.fields[i]
	if fl.choices != nil {
		return fl.choices[fl.choice]
	}
	return strings.TrimSpace(fl.input.Value())
}

// Raw is the untrimmed text of field i.
func (f form) Raw(i int) string {
	return f.fields[i].input.Value()
}

func (f *form) SetValue(i int, v string) {
	fl := &f.fields[i]
	if fl.choices == nil {
		fl.input.SetValue(v)
		return
	}
	for idx, c := range fl.choices {
		if c == v {
			fl.choice = idx
			return
		}
	}
}

func (f form) View() string {
	var b strings.Builder
	for i, fl := range f.fields {
		focused := i == f.focus
		b.WriteString(cursorPrefix(focused))
		b.WriteString(labelStyle.Render(padRight(fl.label, 14)))
		if fl.choices != nil {
			value := "< " + fl.choices[fl.choice] + " >"
			if focused {
				value = selectedStyle.Render(value)
			}
			b.WriteString(value)
		} else {
			b.WriteString(fl.input.View())
		}
		b.WriteString("\n")
	}
	return b.String()
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s + " "
	}
	return s + strings.Repeat(" ", n-len(s))
}
