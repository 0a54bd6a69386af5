// Package preview provides the live query rewriting view for the TUI.
package preview

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/querytrans/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/querytrans/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/querytrans/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/querytrans/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/querytrans/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/querytrans/internal/core/domain"
	"github.com/custodia-labs/querytrans/internal/core/ports/driving"
)

// View shows a query input and, below it, the rewritten query or the
// parse error. Every edit re-runs the transform.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	statusbar *status.Bar

	queryService driving.QueryService
	ctx          context.Context

	// seq numbers transform requests; only the latest result is shown.
	seq         int
	shown       string
	explanation *domain.Explanation
	err         error
	showTrees   bool

	width  int
	height int
}

// NewView creates a new preview view.
func NewView(s *styles.Styles, km *keymap.KeyMap, queryService driving.QueryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:       s,
		keymap:       km,
		input:        input.NewQueryInput(s),
		statusbar:    status.NewBar(s, km),
		queryService: queryService,
		ctx:          context.Background(),
		width:        80,
		height:       24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the preview view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.TransformCompleted:
		v.handleTransformCompleted(msg)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.statusbar.SetInfo("settings unavailable")
			return v, nil
		}
		v.statusbar.SetInfo(settingsSummary(msg.Settings))
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case keymap.Matches(msg.String(), v.keymap.Explain):
		v.showTrees = !v.showTrees
		return v, nil
	case keymap.Matches(msg.String(), v.keymap.Clear):
		v.input.Reset()
		return v, v.requestTransform()
	}

	before := v.input.Value()
	var inputCmd tea.Cmd
	v.input, inputCmd = v.input.Update(msg)
	if v.input.Value() == before {
		return v, inputCmd
	}
	return v, tea.Batch(inputCmd, v.requestTransform())
}

// requestTransform starts a transform of the current input.
func (v *View) requestTransform() tea.Cmd {
	v.seq++
	seq := v.seq
	query := v.input.Value()

	if query == "" || v.queryService == nil {
		return func() tea.Msg {
			return messages.TransformCompleted{Seq: seq, Input: query}
		}
	}

	ctx := v.ctx
	svc := v.queryService
	return func() tea.Msg {
		exp, err := svc.Explain(ctx, query)
		return messages.TransformCompleted{Seq: seq, Input: query, Explanation: exp, Err: err}
	}
}

func (v *View) handleTransformCompleted(msg messages.TransformCompleted) {
	if msg.Seq != v.seq {
		return
	}

	v.shown = msg.Input
	v.explanation = msg.Explanation
	v.err = msg.Err
	v.statusbar.SetMessage("")

	switch {
	case msg.Failed():
		v.explanation = nil
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(errorSummary(msg.Err))
	case msg.Input == "":
		v.statusbar.SetState(status.StateEmpty)
	default:
		v.statusbar.SetState(status.StateReady)
	}
}

// View renders the preview view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("querytrans"))
	b.WriteString("\n\n")
	b.WriteString(v.input.View())
	b.WriteString("\n\n")
	b.WriteString(v.renderResult())

	if v.showTrees && v.explanation != nil {
		b.WriteString("\n\n")
		b.WriteString(v.styles.Subtitle.Render("Parsed"))
		b.WriteString("\n")
		b.WriteString(v.renderTree(v.explanation.Parsed))
		b.WriteString(v.styles.Subtitle.Render("Expanded"))
		b.WriteString("\n")
		b.WriteString(v.renderTree(v.explanation.Expanded))
	}

	body := b.String()
	gap := v.height - lipgloss.Height(body) - 1
	if gap > 0 {
		body += strings.Repeat("\n", gap)
	}
	return body + "\n" + v.statusbar.View()
}

func (v *View) renderResult() string {
	var pe *domain.ParseError
	switch {
	case errors.As(v.err, &pe):
		pointer := strings.Repeat(" ", lipgloss.Width(v.shown[:clamp(pe.Offset, len(v.shown))]))
		return v.styles.Error.Render(pe.Reason) + "\n" +
			v.styles.Muted.Render(v.shown) + "\n" +
			v.styles.Error.Render(pointer+"^")
	case v.err != nil:
		return v.styles.Error.Render(v.err.Error())
	case v.explanation == nil:
		return v.styles.Muted.Render("Rewritten query appears here.")
	}
	return v.renderOutput(v.explanation.Output)
}

// renderOutput highlights the OR markers of the rewritten query.
func (v *View) renderOutput(out string) string {
	words := strings.Split(out, " ")
	for i, w := range words {
		if w == domain.OrMarker {
			words[i] = v.styles.Marker.Render(w)
			continue
		}
		words[i] = v.styles.Normal.Render(w)
	}
	return lipgloss.NewStyle().Width(v.width).Render(strings.Join(words, " "))
}

func (v *View) renderTree(n domain.NodeView) string {
	var b strings.Builder
	var walk func(n domain.NodeView, depth int)
	walk = func(n domain.NodeView, depth int) {
		indent := strings.Repeat("  ", depth+1)
		if n.Kind == domain.NodeKindTerm {
			b.WriteString(indent + v.styles.Normal.Render(n.Text) + "\n")
			return
		}
		b.WriteString(indent + v.styles.Muted.Render(n.Kind) + "\n")
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(n, 0)
	return b.String()
}

// SetDimensions sets the width and height of the view.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
}

// Query returns the current input.
func (v *View) Query() string {
	return v.input.Value()
}

// Output returns the latest rewritten query, or "" when there is none.
func (v *View) Output() string {
	if v.explanation == nil {
		return ""
	}
	return v.explanation.Output
}

// Err returns the latest transform error.
func (v *View) Err() error {
	return v.err
}

// ShowTrees reports whether the trees are visible.
func (v *View) ShowTrees() bool {
	return v.showTrees
}

// settingsSummary renders the active schemes and ordering.
func settingsSummary(s *domain.Settings) string {
	if s == nil {
		return ""
	}
	if len(s.Transform.Schemes) == 0 {
		return "no schemes"
	}
	names := make([]string, len(s.Transform.Schemes))
	for i, scheme := range s.Transform.Schemes {
		names[i] = scheme.String()
	}
	return fmt.Sprintf("%s (%s)", strings.Join(names, ","), s.Transform.Ordering)
}

func errorSummary(err error) string {
	var pe *domain.ParseError
	if errors.As(err, &pe) {
		return fmt.Sprintf("%s at byte %d", pe.Reason, pe.Offset)
	}
	return err.Error()
}

func clamp(n, limit int) int {
	if n < 0 {
		return 0
	}
	if n > limit {
		return limit
	}
	return n
}
