package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/querytrans/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/querytrans/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/querytrans/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/querytrans/internal/adapters/driving/tui/views/preview"
)

// App is the TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	keymap *keymap.KeyMap

	preview *preview.View

	width  int
	height int

	// ready is set by the first window size message.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	km := keymap.DefaultKeyMap()
	return &App{
		ports:   ports,
		ctx:     context.Background(),
		keymap:  km,
		preview: preview.NewView(styles.DefaultStyles(), km, ports.Query),
	}, nil
}

// WithContext sets the context for the app and its transforms.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.preview.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle("querytrans"),
		a.preview.Init(),
	}
	if a.ports.Settings != nil {
		cmds = append(cmds, a.loadSettings())
	}
	return tea.Batch(cmds...)
}

func (a *App) loadSettings() tea.Cmd {
	svc := a.ports.Settings
	return func() tea.Msg {
		settings, err := svc.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		a.ready = true
		return a, nil

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), a.keymap.Quit) {
			return a, tea.Quit
		}
	}

	var cmd tea.Cmd
	a.preview, cmd = a.preview.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	return a.preview.View()
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.preview.SetDimensions(width, height)
}

// Ready reports whether the first window size has arrived.
func (a *App) Ready() bool {
	return a.ready
}

// Preview returns the preview view.
func (a *App) Preview() *preview.View {
	return a.preview
}
