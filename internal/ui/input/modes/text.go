package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"outlooker/internal/ui/input/types"
)

// TextMode is the shared handler for all single-line text-entry modes:
// search, jump-to-page, batch/row tag editing, login password, the
// verification email and the email-limit field. Enter submits, Esc
// cancels; everything else flows into the text input.
type TextMode struct {
	mode      types.Mode
	name      string
	textInput *textinput.Model
}

func NewTextMode(mode types.Mode, name string, ti *textinput.Model) *TextMode {
	return &TextMode{mode: mode, name: name, textInput: ti}
}

func (m *TextMode) Name() string {
	return m.name
}

func (m *TextMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *TextMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *TextMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyEsc:
		return []types.Action{
			types.CancelTextAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true

	case tea.KeyEnter:
		return []types.Action{
			types.SubmitTextAction{Text: m.textInput.Value(), Mode: m.mode},
		}, true

	case tea.KeyTab:
		// Inside the batch tag modal, Tab cycles add/remove/set
		if m.mode == types.ModeTagBatch {
			return []types.Action{types.CycleTagModeAction{}}, true
		}
	}

	// Not consumed: the handler feeds the key to the text input
	return nil, false
}
