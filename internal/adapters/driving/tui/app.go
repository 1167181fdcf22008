package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/productsearch/internal/adapters/driven/memory"
	"github.com/custodia-labs/productsearch/internal/adapters/driving/tui/components/cards"
	"github.com/custodia-labs/productsearch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/productsearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/productsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/productsearch/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/productsearch/internal/core/domain"
	"github.com/custodia-labs/productsearch/internal/core/ports/driving"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the key bindings.
	keymap *keymap.KeyMap

	// page holds the form elements the client reads and writes.
	page *memory.Page

	// client drives the form.
	client driving.SearchClient

	// searchView is the search form.
	searchView *search.View

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports. The search
// client is created and bound here; Close releases it.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	page := memory.NewPage(ports.Search.Collections(), ports.Search.Defaults())
	renderer := cards.NewRenderer(s, 80)

	client, err := ports.NewClient(ports.Search, page.Elements(), renderer)
	if err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if err := client.Bind(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	searchView, err := search.NewView(s, km, page, client, renderer)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("creating app: %w", err)
	}

	return &App{
		ports:      ports,
		ctx:        context.Background(),
		styles:     s,
		keymap:     km,
		page:       page,
		client:     client,
		searchView: searchView,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.client.SetContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("productsearch"),
		a.searchView.Init(),
		a.waitForReload(),
	)
}

// waitForReload blocks on the reload channel inside a command.
func (a *App) waitForReload() tea.Cmd {
	if a.ports.Reloads == nil {
		return nil
	}
	reloads := a.ports.Reloads
	return func() tea.Msg {
		cols, ok := <-reloads
		if !ok {
			return nil
		}
		return messages.CollectionsReloaded{Collections: cols}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.searchView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), a.keymap.Quit) {
			return a, tea.Quit
		}

	case messages.CollectionsReloaded:
		a.searchView, cmd = a.searchView.Update(msg)
		return a, tea.Batch(cmd, a.waitForReload())

	case messages.Quit:
		return a, tea.Quit
	}

	a.searchView, cmd = a.searchView.Update(msg)
	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	return a.searchView.View()
}

// Run starts the TUI application and releases the client when it exits.
func (a *App) Run() error {
	defer func() { _ = a.Close() }()

	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Close unbinds the search client and cancels any in-flight search.
func (a *App) Close() error {
	return a.client.Close()
}

// Page returns the form elements.
func (a *App) Page() *memory.Page {
	return a.page
}

// SearchView returns the search form view.
func (a *App) SearchView() *search.View {
	return a.searchView
}

// Collections returns the collections currently offered by the form.
func (a *App) Collections() []domain.Collection {
	return a.page.Collection.Options()
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.searchView.SetDimensions(width, height)
}
