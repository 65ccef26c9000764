package tui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/tenantadmin/internal/management"
)

// addForm holds the widgets of the add company dialog. The values themselves
// live in the console; the widgets only mirror them.
type addForm struct {
	inputs  []textinput.Model // name, email, password
	focus   int               // len(inputs) is the plan picker
	planIdx int               // -1 until a plan is chosen
}

var textFields = []struct {
	Field string
	Label string
}{
	{management.FieldCompanyName, "Company name"},
	{management.FieldEmail, "Email"},
	{management.FieldPassword, "Password"},
}

func newAddForm() addForm {
	f := addForm{planIdx: -1}
	for i, tf := range textFields {
		inp := textinput.New()
		inp.Prompt = ""
		inp.Placeholder = tf.Label
		inp.CharLimit = 128
		inp.Cursor.SetMode(cursor.CursorStatic)
		if tf.Field == management.FieldPassword {
			inp.EchoMode = textinput.EchoPassword
			inp.EchoCharacter = '•'
		}
		if i == 0 {
			inp.Focus()
		}
		f.inputs = append(f.inputs, inp)
	}
	return f
}

func (f *addForm) onPlan() bool { return f.focus == len(f.inputs) }

func (f *addForm) move(dir int) {
	n := len(f.inputs) + 1
	if !f.onPlan() {
		f.inputs[f.focus].Blur()
	}
	f.focus = (f.focus + dir + n) % n
	if !f.onPlan() {
		f.inputs[f.focus].Focus()
	}
}

// cyclePlan steps through plans and returns the selected id.
func (f *addForm) cyclePlan(plans []management.SubscriptionPlan, dir int) (string, bool) {
	if len(plans) == 0 {
		return "", false
	}
	if f.planIdx < 0 {
		f.planIdx = 0
		if dir < 0 {
			f.planIdx = len(plans) - 1
		}
	} else {
		f.planIdx = (f.planIdx + dir + len(plans)) % len(plans)
	}
	return plans[f.planIdx].ID, true
}

// update feeds a key to the focused input and reports the field and its new value.
func (f *addForm) update(msg tea.Msg) (string, string, tea.Cmd) {
	if f.onPlan() {
		return "", "", nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return textFields[f.focus].Field, f.inputs[f.focus].Value(), cmd
}
