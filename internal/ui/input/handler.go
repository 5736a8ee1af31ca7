package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"outlooker/internal/ui/input/modes"
	"outlooker/internal/ui/input/types"
)

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model // shared text input for all text modes
}

func New() *Handler {
	ti := textinput.New()
	ti.CharLimit = 256

	h := &Handler{
		currentMode: types.ModeNormal,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeNormal] = modes.NewNormalMode()
	h.modes[types.ModeDeleteConfirm] = modes.NewConfirmMode()
	h.modes[types.ModeSearch] = modes.NewTextMode(types.ModeSearch, "search", h.textInput)
	h.modes[types.ModeJump] = modes.NewTextMode(types.ModeJump, "jump", h.textInput)
	h.modes[types.ModeTagBatch] = modes.NewTextMode(types.ModeTagBatch, "batch-tags", h.textInput)
	h.modes[types.ModeTagRow] = modes.NewTextMode(types.ModeTagRow, "row-tags", h.textInput)
	h.modes[types.ModeLogin] = modes.NewTextMode(types.ModeLogin, "login", h.textInput)
	h.modes[types.ModeEmail] = modes.NewTextMode(types.ModeEmail, "email", h.textInput)
	h.modes[types.ModeEmailLimit] = modes.NewTextMode(types.ModeEmailLimit, "email-limit", h.textInput)

	return h
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	var cmd tea.Cmd
	var allActions []types.Action

	if !consumed && !h.isTextMode(h.currentMode) {
		return nil, nil
	}

	for _, action := range actions {
		if changeMode, ok := action.(types.ChangeModeAction); ok {
			if h.modes[h.currentMode] != nil {
				exitActions := h.modes[h.currentMode].Exit(ctx)
				allActions = append(allActions, exitActions...)
			}

			h.ChangeMode(changeMode.Mode, changeMode.Data)

			if h.modes[h.currentMode] != nil {
				enterActions := h.modes[h.currentMode].Enter(ctx)
				allActions = append(allActions, enterActions...)
			}

			if h.isTextMode(h.currentMode) {
				cmd = textinput.Blink
			}
		} else {
			allActions = append(allActions, action)
		}
	}

	// Unconsumed keys in a text mode flow into the text input
	if h.isTextMode(h.currentMode) && !consumed {
		var textCmd tea.Cmd
		*h.textInput, textCmd = h.textInput.Update(msg)
		cmd = textCmd
		allActions = append(allActions, types.UpdateTextAction{Text: h.textInput.Value()})
	}

	return allActions, cmd
}

func (h *Handler) CurrentMode() types.Mode {
	return h.currentMode
}

// ChangeMode switches modes directly, prefilling the text input with data
// for text modes (row tag editing opens with the row's current tags).
func (h *Handler) ChangeMode(mode types.Mode, data string) {
	h.currentMode = mode
	if h.isTextMode(mode) {
		h.textInput.Reset()
		h.textInput.SetValue(data)
		h.textInput.CursorEnd()
		if mode == types.ModeLogin {
			h.textInput.EchoMode = textinput.EchoPassword
		} else {
			h.textInput.EchoMode = textinput.EchoNormal
		}
		h.textInput.Focus()
	} else {
		h.textInput.Blur()
	}
}

func (h *Handler) TextInput() *textinput.Model {
	return h.textInput
}

func (h *Handler) TextValue() string {
	return h.textInput.Value()
}

func (h *Handler) isTextMode(mode types.Mode) bool {
	switch mode {
	case types.ModeSearch, types.ModeJump, types.ModeTagBatch, types.ModeTagRow,
		types.ModeLogin, types.ModeEmail, types.ModeEmailLimit:
		return true
	default:
		return false
	}
}

func (h *Handler) Reset() {
	h.currentMode = types.ModeNormal
	h.textInput.Reset()
	h.textInput.Blur()
}

// Update handles non-keyboard messages (cursor blink) for the text input.
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.isTextMode(h.currentMode) {
		var cmd tea.Cmd
		*h.textInput, cmd = h.textInput.Update(msg)
		return cmd
	}
	return nil
}
