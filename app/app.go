package app

import (
	"context"
	"fmt"
	"time"

	"keyclaim/config"
	"keyclaim/dispatch"
	"keyclaim/hotkey"
	"keyclaim/hotkey/help"
	"keyclaim/layout"
	"keyclaim/log"
	"keyclaim/route"
	"keyclaim/ui/debounce"

	tea "github.com/charmbracelet/bubbletea"
)

// saveDelay batches layout changes before they are written to the state file.
const saveDelay = 300 * time.Millisecond

// Run is the main entrypoint into the application.
func Run(ctx context.Context, h *Home) error {
	p := tea.NewProgram(h, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Home is the root bubbletea model. It owns the layout controller, the
// hotkey chain and the dispatcher, and wires the UI regions to them.
type Home struct {
	cfg   *config.Config
	state *config.State

	layout     *layout.Controller
	chain      *hotkey.Chain
	dispatcher *dispatch.Dispatcher
	help       *help.Generator
	route      route.Slot
	saver      *debounce.Debouncer

	modal  *modal
	drawer *drawer
	menu   *userMenu
	page   *page

	disposers   []func()
	unsubscribe func()

	width, height int
	// hint is shown in the footer after a key nothing handled.
	hint string
}

// New builds the application. cfg may be nil for defaults; state may be nil
// to run without persisting the layout.
func New(cfg *config.Config, state *config.State) *Home {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	h := &Home{
		cfg:    cfg,
		state:  state,
		layout: layout.NewController(cfg.Layout),
		chain:  hotkey.NewChain(),
		saver:  debounce.New(saveDelay),
		width:  100,
		height: 30,
	}
	if h.persisting() && state.Saved {
		h.layout.Restore(state.Layout)
	}

	h.dispatcher = dispatch.New(h.chain, cfg.RawKeyMap())
	h.help = help.NewGenerator(h.chain, h.dispatcher.Table())

	h.modal = newModal(&h.route)
	h.page = newPage(h.layout, &h.route, h.modal.isOpen)
	h.drawer = &drawer{layout: h.layout, nav: h.page, covered: h.modal.isOpen}
	h.menu = newUserMenu(h.modal.isOpen)
	for _, r := range []region{h.modal, h.drawer, h.menu, h.page} {
		h.mount(r)
	}

	h.unsubscribe = h.layout.Subscribe(h.layoutChanged)

	for _, issue := range h.help.ValidateChain() {
		log.WarningLog.Printf("hotkeys: %s", issue)
	}
	return h
}

func (h *Home) persisting() bool {
	return h.state != nil && h.cfg.Layout.RememberLayout
}

// mount registers every claim of r.
func (h *Home) mount(r region) {
	for _, b := range r.bindings() {
		cl := b.claim
		cl.OwnerID = r.owner()
		cl.Priority = r.priority()
		h.disposers = append(h.disposers, h.chain.Register(b.key, cl))
	}
}

func (h *Home) layoutChanged(c layout.Change) {
	log.InfoLog.Printf("layout: %s -> %s", c.Before, c.After)
	if h.persisting() {
		h.saver.Trigger(h.saveLayout)
	}
}

func (h *Home) saveLayout() {
	if err := h.state.SaveLayout(h.layout.Snapshot()); err != nil {
		log.ErrorLog.Printf("failed to save layout: %v", err)
	}
}

// Layout returns the layout controller.
func (h *Home) Layout() *layout.Controller {
	return h.layout
}

// Chain returns the hotkey chain.
func (h *Home) Chain() *hotkey.Chain {
	return h.chain
}

// Help returns the help generator for the app's chain.
func (h *Home) Help() *help.Generator {
	return h.help
}

// Route returns the route failure slot.
func (h *Home) Route() route.Context {
	return &h.route
}

// Quitting reports whether a quit key was handled.
func (h *Home) Quitting() bool {
	return h.page.quitting
}

// SetSize records the terminal size and applies the layout breakpoint.
func (h *Home) SetSize(width, height int) {
	h.width, h.height = width, height
	h.layout.Resize(width)
}

// Send dispatches a raw key string as if it had been typed.
func (h *Home) Send(raw string) dispatch.Result {
	res := h.dispatcher.HandleRaw(raw)
	h.afterDispatch(res)
	return res
}

func (h *Home) afterDispatch(res dispatch.Result) {
	switch {
	case res.Handled:
		h.hint = ""
	case res.Mapped:
		h.hint = fmt.Sprintf("%s: nothing to do", res.Key)
	}
}

// Close removes the app's claims, writes any pending layout change once a
// save already in progress has finished, and releases the state lock.
func (h *Home) Close() error {
	for _, dispose := range h.disposers {
		dispose()
	}
	h.disposers = nil
	if h.unsubscribe != nil {
		h.unsubscribe()
		h.unsubscribe = nil
	}
	if h.persisting() {
		h.saver.Flush()
		return h.state.Close()
	}
	return nil
}

func (h *Home) Init() tea.Cmd {
	return nil
}

func (h *Home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		h.afterDispatch(h.dispatcher.HandleMsg(msg))
	}
	if h.page.quitting {
		return h, tea.Quit
	}
	return h, nil
}
