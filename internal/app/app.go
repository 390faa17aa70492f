// Package app contains the Bubble Tea model that draws an editing session
// and feeds it key presses.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/scrawl/internal/cachemanager"
	"github.com/zjrosen/scrawl/internal/keys"
	"github.com/zjrosen/scrawl/internal/log"
	"github.com/zjrosen/scrawl/internal/pubsub"
	"github.com/zjrosen/scrawl/internal/session"
	"github.com/zjrosen/scrawl/internal/ui/styles"
	"github.com/zjrosen/scrawl/internal/watcher"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// blinkPeriod is how long the cursor stays on, then off.
	blinkPeriod = 530 * time.Millisecond
)

// Options configures the model.
type Options struct {
	FrameInterval time.Duration
	TabWidth      int
	ShowHeader    bool
	// Watcher, when set, reports changes to the bound file. The caller
	// starts and stops it.
	Watcher *watcher.Watcher
}

// frameMsg is an idle frame.
type frameMsg time.Time

// Model is the root application state.
type Model struct {
	ctx     context.Context
	cancel  context.CancelFunc
	session *session.Session
	opts    Options

	width  int
	height int
	top    int // first buffer line in the body
	left   int // first screen column in the body
	frames int // idle frames since the last key press

	lines    *cachemanager.ReadThroughCache[string, string, lineRequest]
	listener *pubsub.ContinuousListener[watcher.Change]
}

// New creates a model that drives s.
func New(ctx context.Context, s *session.Session, opts Options) Model {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = time.Second / 60
	}
	if opts.TabWidth <= 0 {
		opts.TabWidth = 4
	}

	ctx, cancel := context.WithCancel(ctx)
	cache := cachemanager.NewInMemoryCacheManager[string, string](
		"render", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)

	m := Model{
		ctx:     ctx,
		cancel:  cancel,
		session: s,
		opts:    opts,
		width:   defaultWidth,
		height:  defaultHeight,
		lines:   cachemanager.NewReadThroughCache[string, string, lineRequest](cache, renderPlainLine, false),
	}
	if opts.Watcher != nil {
		m.listener = pubsub.NewContinuousListener(ctx, opts.Watcher.Broker())
	}
	m.scroll()
	return m
}

// Session is the session being edited.
func (m Model) Session() *session.Session { return m.session }

func (m Model) frame() tea.Cmd {
	return tea.Tick(m.opts.FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Init implements tea.Model. It starts idle frames and, when a watcher is
// configured, the change listener.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.frame()}
	if m.listener != nil {
		cmds = append(cmds, m.listener.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.frames++
		return m, m.frame()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.lines.Invalidate(m.ctx)
		m.scroll()
		return m, nil

	case tea.KeyMsg:
		for _, k := range keys.ToKeys(msg) {
			m.session.HandleKey(m.ctx, k)
			if !m.session.Running() {
				break
			}
		}
		m.frames = 0
		m.scroll()
		if !m.session.Running() {
			log.Info(log.CatUI, "Quit", "session", m.session.ID())
			return m, tea.Quit
		}
		return m, nil

	case pubsub.Event[watcher.Change]:
		switch msg.Type {
		case pubsub.UpdatedEvent:
			m.session.NotifyExternalChange()
		case pubsub.DeletedEvent:
			m.session.NotifyExternalRemoval()
		case pubsub.ErrorEvent:
			log.Warn(log.CatWatcher, "Watcher error received", "error", msg.Payload.Err)
		}
		return m, m.listener.Listen()
	}
	return m, nil
}

func (m Model) headerRows() int {
	if m.opts.ShowHeader {
		return 1
	}
	return 0
}

// bodyHeight is the number of buffer lines on screen, at least one.
func (m Model) bodyHeight() int {
	return max(m.height-m.headerRows()-1, 1)
}

// scroll moves the viewport so the cursor cell is visible.
func (m *Model) scroll() {
	line, col := m.session.Cursor()

	h := m.bodyHeight()
	switch {
	case line < m.top:
		m.top = line
	case line >= m.top+h:
		m.top = line - h + 1
	}

	x, w := span(layout(m.session.Line(line), m.opts.TabWidth), col)
	switch {
	case x < m.left:
		m.left = x
	case x+w > m.left+m.width:
		m.left = x + w - m.width
	}
}

// CursorCell is the cursor's screen position, counting the header row.
func (m Model) CursorCell() (x, y int) {
	line, col := m.session.Cursor()
	sx, _ := span(layout(m.session.Line(line), m.opts.TabWidth), col)
	return sx - m.left, m.headerRows() + line - m.top
}

func (m Model) cursorVisible() bool {
	elapsed := time.Duration(m.frames) * m.opts.FrameInterval
	return (elapsed/blinkPeriod)%2 == 0
}

// View implements tea.Model.
func (m Model) View() string {
	rows := make([]string, 0, m.height)

	if m.opts.ShowHeader {
		rows = append(rows, renderHeader(m.session.Binding().Display(), m.session.Dirty(), m.width))
	}

	cursorLine, cursorCol := m.session.Cursor()
	for row := 0; row < m.bodyHeight(); row++ {
		i := m.top + row
		if i >= m.session.LineCount() {
			rows = append(rows, styles.FillerStyle.Render(filler))
			continue
		}

		req := lineRequest{text: m.session.Line(i), left: m.left, width: m.width, tab: m.opts.TabWidth}
		if i == cursorLine {
			rows = append(rows, renderCursorLine(req, cursorCol, m.cursorVisible()))
			continue
		}
		line, err := m.lines.Get(m.ctx, req.key(), req, cachemanager.DefaultExpiration)
		if err != nil {
			log.ErrorErr(log.CatUI, "Render line failed", err, "line", i)
		}
		rows = append(rows, line)
	}

	position := fmt.Sprintf("%d:%d", cursorLine+1, cursorCol+1)
	rows = append(rows, renderFooter(
		m.session.Mode(), m.session.ModeLabel(),
		m.session.Status(), m.session.Failed(),
		position, m.width,
	))
	return strings.Join(rows, "\n")
}

// Close stops listening for watcher events.
func (m Model) Close() {
	m.cancel()
}
