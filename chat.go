package main

import (
	"regexp"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	resistorReply = "A resistor is a passive two-terminal electrical component that implements electrical resistance as a circuit element."
	fallbackReply = "Sorry, I don't understand that question yet!"
)

type replyRule struct {
	pattern *regexp.Regexp
	reply   string
}

// replyRules are tried in order; the first match answers.
var replyRules = []replyRule{
	{regexp.MustCompile(`(?i)resistor`), resistorReply},
	{regexp.MustCompile(`(?i)capacitor`), "A capacitor stores energy in an electric field between two plates and blocks direct current while passing alternating current."},
	{regexp.MustCompile(`(?i)\bleds?\b`), "An LED is a diode that emits light when current flows through it in the forward direction."},
	{regexp.MustCompile(`(?i)battery`), "A battery converts stored chemical energy into a steady voltage that drives current around a circuit."},
	{regexp.MustCompile(`(?i)transistor`), "A transistor is a semiconductor device that amplifies or switches signals; a small base or gate current controls a larger one."},
	{regexp.MustCompile(`(?i)diode`), "A diode lets current flow in one direction only."},
	{regexp.MustCompile(`(?i)switch`), "A switch opens or closes a circuit, interrupting or allowing the flow of current."},
	{regexp.MustCompile(`(?i)ground`), "Ground is the common reference point from which voltages in a circuit are measured."},
}

func botReply(input string) string {
	for _, rule := range replyRules {
		if rule.pattern.MatchString(input) {
			return rule.reply
		}
	}
	return fallbackReply
}

func (s Sender) String() string {
	if s == SenderBot {
		return "Bot"
	}
	return "You"
}

// Transcript is the append-only chat history.
type Transcript struct {
	messages []Message
}

// Submit appends the user's message and the bot's reply. Blank input is
// ignored.
func (t *Transcript) Submit(input string) bool {
	if strings.TrimSpace(input) == "" {
		return false
	}
	t.messages = append(t.messages,
		Message{Text: input, Sender: SenderUser},
		Message{Text: botReply(input), Sender: SenderBot},
	)
	return true
}

func (t *Transcript) Messages() []Message {
	return append([]Message(nil), t.messages...)
}

func (t *Transcript) LastBotReply() (string, bool) {
	for i := len(t.messages) - 1; i >= 0; i-- {
		if t.messages[i].Sender == SenderBot {
			return t.messages[i].Text, true
		}
	}
	return "", false
}

// clipboardWriter is swapped out in tests.
var clipboardWriter = clipboard.WriteAll

type Chat struct {
	transcript Transcript
	input      textinput.Model
	history    viewport.Model
	status     string
	width      int
}

var (
	chatTitleStyle  = lipgloss.NewStyle().Bold(true)
	chatUserStyle   = lipgloss.NewStyle().Align(lipgloss.Right)
	chatBotStyle    = lipgloss.NewStyle().Align(lipgloss.Left)
	chatSenderStyle = lipgloss.NewStyle().Bold(true)
	chatStatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	chatButtonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#1976d2")).Bold(true).Align(lipgloss.Center)
)

func newChat() Chat {
	ti := textinput.New()
	ti.Placeholder = "Type your message..."
	ti.Prompt = "> "
	ti.CharLimit = 500

	vp := viewport.New(defaultChatWidth, 10)
	vp.SetContent("")

	return Chat{input: ti, history: vp, width: defaultChatWidth}
}

// SetSize fits the chat into a pane content area of w x h cells.
func (c *Chat) SetSize(w, h int) {
	c.width = w
	c.input.Width = w - len(c.input.Prompt) - 1
	// title, blank, input, button, status
	vh := h - 5
	if vh < 1 {
		vh = 1
	}
	c.history.Width = w
	c.history.Height = vh
	c.refresh()
}

func (c *Chat) Focus() tea.Cmd {
	return c.input.Focus()
}

func (c *Chat) Blur() {
	c.input.Blur()
}

func (c *Chat) Focused() bool {
	return c.input.Focused()
}

// Send submits whatever is in the input field.
func (c *Chat) Send() bool {
	if !c.transcript.Submit(c.input.Value()) {
		return false
	}
	c.input.SetValue("")
	c.status = ""
	c.refresh()
	return true
}

func (c *Chat) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			c.Send()
			return nil
		case "ctrl+v":
			c.paste()
			return nil
		case "ctrl+y":
			c.copyLastReply()
			return nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			c.history, cmd = c.history.Update(msg)
			return cmd
		}
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return cmd
	case tea.MouseMsg:
		var cmd tea.Cmd
		c.history, cmd = c.history.Update(msg)
		return cmd
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

func (c *Chat) paste() {
	text, err := readClipboardText()
	if err != nil {
		c.status = "paste failed: " + err.Error()
		return
	}
	text = cleanClipboardText(text)
	if text == "" {
		return
	}
	c.input.SetValue(c.input.Value() + text)
	c.input.CursorEnd()
}

func (c *Chat) copyLastReply() {
	reply, ok := c.transcript.LastBotReply()
	if !ok {
		c.status = "nothing to copy"
		return
	}
	if err := clipboardWriter(reply); err != nil {
		c.status = "copy failed: " + err.Error()
		return
	}
	c.status = "reply copied"
}

func (c *Chat) refresh() {
	c.history.SetContent(c.renderHistory())
	c.history.GotoBottom()
}

func (c *Chat) renderHistory() string {
	var b strings.Builder
	for i, msg := range c.transcript.messages {
		style := chatUserStyle
		if msg.Sender == SenderBot {
			style = chatBotStyle
		}
		line := chatSenderStyle.Render(msg.Sender.String()+":") + " " + msg.Text
		b.WriteString(style.Width(c.width).Render(line))
		if i < len(c.transcript.messages)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (c Chat) View() string {
	var b strings.Builder
	b.WriteString(chatTitleStyle.Render("AI Chat Assistant"))
	b.WriteString("\n")
	b.WriteString(c.history.View())
	b.WriteString("\n\n")
	b.WriteString(c.input.View())
	b.WriteString("\n")
	b.WriteString(chatButtonStyle.Width(c.width).Render("Send (enter)"))
	b.WriteString("\n")
	b.WriteString(chatStatusStyle.Render(c.status))
	return b.String()
}
