package ui

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/atomicstack/minimenu/internal/config"
	"github.com/atomicstack/minimenu/internal/dom"
	"github.com/atomicstack/minimenu/internal/menu"
	"github.com/atomicstack/minimenu/internal/render"
	"github.com/atomicstack/minimenu/internal/theme"
	"github.com/atomicstack/minimenu/internal/ui/command"
	"github.com/atomicstack/minimenu/internal/watch"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	infoTTL       = 5 * time.Second
)

type msgHandler func(tea.Msg) tea.Cmd

// Config carries everything NewModel needs. Zero sizes track the terminal;
// until the first resize the document uses the Initial sizes, when set.
type Config struct {
	Width         int
	Height        int
	InitialWidth  int
	InitialHeight int
	ShowFooter    bool
	Verbose       bool
	Offset        int
	Menus         config.MenuFile
	Observer      menu.Observer
	Watcher       *watch.Watcher
	Bus           *command.Bus
	Styles        *theme.Styles
}

// Model implements the Bubble Tea model hosting the panels and their menus.
type Model struct {
	doc      *dom.Document
	surface  *render.Surface
	registry *menu.Registry
	scene    *scene
	styles   *theme.Styles
	keys     keyMap

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	focus      int
	typeahead  string
	typeMenu   string
	errMsg     string
	infoMsg    string
	infoExpire time.Time

	watcher *watch.Watcher
	bus     *command.Bus
	ctx     context.Context
	pending []tea.Cmd

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the document, the registry and the scene described by
// cfg.Menus.
func NewModel(cfg Config) (*Model, error) {
	styles := cfg.Styles
	if styles == nil {
		styles = theme.Default()
	}
	width := firstPositive(cfg.Width, cfg.InitialWidth, defaultWidth)
	height := firstPositive(cfg.Height, cfg.InitialHeight, defaultHeight)
	doc := dom.NewDocument(width, height)
	surface := render.NewSurface(doc, render.WithStyles(styles))
	opts := []menu.Option{menu.WithOffset(cfg.Offset)}
	if cfg.Observer != nil {
		opts = append(opts, menu.WithObserver(cfg.Observer))
	}
	registry, err := menu.NewRegistry(doc, surface, opts...)
	if err != nil {
		return nil, fmt.Errorf("new registry: %w", err)
	}
	bus := cfg.Bus
	if bus == nil {
		bus = command.New()
	}
	m := &Model{
		doc:         doc,
		surface:     surface,
		registry:    registry,
		styles:      styles,
		keys:        defaultKeyMap(),
		width:       width,
		height:      height,
		fixedWidth:  cfg.Width > 0,
		fixedHeight: cfg.Height > 0,
		showFooter:  cfg.ShowFooter,
		verbose:     cfg.Verbose,
		watcher:     cfg.Watcher,
		bus:         bus,
		ctx:         context.Background(),
	}
	sc, err := buildScene(m, cfg.Menus)
	if err != nil {
		return nil, err
	}
	m.scene = sc
	m.layout()
	m.setFocus(0)
	m.registerHandlers()
	return m, nil
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.watcher != nil {
		return waitForWatchEvent(m.watcher)
	}
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.BlurMsg{}):       m.handleBlurMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(command.ResultMsg{}): m.handleActionResultMsg,
		reflect.TypeOf(watchEventMsg{}):     m.handleWatchEventMsg,
		reflect.TypeOf(watchDoneMsg{}):      m.handleWatchDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// finishUpdate appends the commands queued by document handlers during the
// update (token actions) to the handler's own.
func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if len(m.pending) > 0 {
		cmds = append(cmds, m.pending...)
		m.pending = nil
	}
	if len(cmds) == 0 {
		return nil
	}
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

// Registry exposes the menu registry.
func (m *Model) Registry() *menu.Registry {
	return m.registry
}

// Document exposes the element tree.
func (m *Model) Document() *dom.Document {
	return m.doc
}

// Status returns the current error, or else the current info message.
func (m *Model) Status() string {
	if m.errMsg != "" {
		return m.errMsg
	}
	return m.currentInfo()
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.dismiss()
	m.layout()
	return nil
}

func (m *Model) setError(err error) {
	if err == nil {
		m.errMsg = ""
		return
	}
	m.errMsg = err.Error()
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(infoTTL)
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}
