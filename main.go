package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avrillon/encore/internal/config"
	"github.com/avrillon/encore/internal/errmsg"
	"github.com/avrillon/encore/internal/keymap"
	"github.com/avrillon/encore/internal/notify"
	"github.com/avrillon/encore/internal/playback"
	"github.com/avrillon/encore/internal/recording"
	"github.com/avrillon/encore/internal/store"
	"github.com/avrillon/encore/internal/timing"
	"github.com/avrillon/encore/internal/ui/cuebar"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	recStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type tickMsg time.Time

type jumpMsg struct {
	target   string
	hint     float64
	animated bool
}

type progressMsg playback.Progress

type stateMsg playback.StateChange

type completedMsg playback.Completed

type errMsg playback.ErrorEvent

// stagePort implements the presentation contract for the terminal: a
// "jump" is a status line change, the scrollable extent is a fixed
// stand-in since nothing real is scrolled.
type stagePort struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func (p *stagePort) bind(send func(tea.Msg)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.send = send
}

func (p *stagePort) JumpTo(targetID string, hint float64, animated bool) {
	p.mu.Lock()
	send := p.send
	p.mu.Unlock()
	if send != nil {
		send(jumpMsg{target: targetID, hint: hint, animated: animated})
	}
}

func (p *stagePort) ScrollableExtent() float64 {
	return 1000
}

type model struct {
	cfg      *config.Config
	stateMgr *store.Manager
	notifier notify.Notifier
	port     *stagePort

	recorders *recording.Registry
	players   *playback.Registry
	keys      *keymap.Resolver

	subject textinput.Model
	kind    timing.SubjectKind

	width  int
	height int

	display   string // what the "stage" currently shows
	lastJump  string
	marks     int
	lastError string
}

func initialModel() (*model, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	var mgr *store.Manager
	if cfg.DatabasePath != "" {
		mgr, err = store.OpenAt(cfg.DatabasePath)
	} else {
		mgr, err = store.Open()
	}
	if err != nil {
		return nil, err
	}

	notifier, err := notify.New()
	if err != nil {
		mgr.Close()
		return nil, err
	}

	port := &stagePort{}
	players := playback.NewRegistry(func(kind timing.SubjectKind) *playback.Session {
		return playback.NewSession(mgr, port, playback.Options{
			Kind:         kind,
			TargetRounds: cfg.Rounds(),
			Tick:         cfg.Tick(),
			DefaultTotal: cfg.DefaultTotal(),
		})
	})

	subject := textinput.New()
	subject.Placeholder = "subject id"
	subject.CharLimit = 64
	subject.Focus()

	return &model{
		cfg:       cfg,
		stateMgr:  mgr,
		notifier:  notifier,
		port:      port,
		recorders: recording.NewRegistry(mgr),
		players:   players,
		keys:      keymap.NewResolver(keymap.Bindings),
		subject:   subject,
		kind:      timing.SubjectKeyframe,
	}, nil
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) session() *playback.Session {
	return m.players.Session(m.kind)
}

func (m *model) recorder() *recording.Session {
	return m.recorders.Session(m.kind)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case jumpMsg:
		m.display = msg.target
		if msg.animated {
			m.lastJump = "animated"
		} else {
			m.lastJump = "direct"
		}

	case progressMsg, stateMsg:
		return m, m.tickWhileActive()

	case completedMsg:
		if m.cfg.NotificationsEnabled() {
			_, _ = m.notifier.Notify(notify.Notification{
				Title:   "Playback finished",
				Body:    fmt.Sprintf("%s: %d rounds", msg.SubjectID, msg.Rounds),
				Timeout: 5000,
			})
		}

	case errMsg:
		m.lastError = fmt.Sprintf("%s: %v", msg.Operation, msg.Err)

	case tickMsg:
		return m, m.tickWhileActive()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.subject, cmd = m.subject.Update(msg)
	return m, cmd
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.subject.Focused() {
		switch msg.String() {
		case "enter":
			m.subject.Blur()
			return m, nil
		case "ctrl+c":
			return m.quit()
		}
		var cmd tea.Cmd
		m.subject, cmd = m.subject.Update(msg)
		return m, cmd
	}

	switch m.keys.Resolve(msg.String()) {
	case keymap.ActionQuit:
		return m.quit()

	case keymap.ActionFocusSubject:
		m.subject.Focus()
		return m, textinput.Blink

	case keymap.ActionCycleMode:
		m.kind = (m.kind + 1) % 3

	case keymap.ActionToggleRecord:
		rec := m.recorder()
		if rec.IsRecording() {
			if n, err := rec.Stop(); err != nil {
				m.lastError = errmsg.Format(errmsg.OpRecordStop, err)
			} else {
				m.lastError = ""
				m.display = fmt.Sprintf("saved %d entries", n)
			}
			m.marks = 0
		} else if err := rec.Start(m.subject.Value()); err != nil {
			m.lastError = errmsg.FormatWith(errmsg.OpRecordStart, m.subject.Value(), err)
		} else {
			m.lastError = ""
		}

	case keymap.ActionMark:
		rec := m.recorder()
		target := fmt.Sprintf("mark-%02d", m.marks)
		if _, ok := rec.Mark(target, float64(m.marks)*100); ok {
			m.marks++
			m.display = target
		}

	case keymap.ActionLoopMarker:
		rec := m.recorder()
		if m.marks > 0 {
			rec.SetLoopMarker(fmt.Sprintf("mark-%02d", m.marks-1), 2)
		}

	case keymap.ActionPlay:
		if err := m.session().Start(m.subject.Value()); err != nil {
			m.lastError = errmsg.FormatWith(errmsg.OpPlaybackStart, m.subject.Value(), err)
		} else {
			m.lastError = ""
			return m, m.tickWhileActive()
		}

	case keymap.ActionPlayPause:
		s := m.session()
		switch s.State() {
		case playback.StatePlaying:
			if err := s.Pause(); err != nil {
				m.lastError = errmsg.Format(errmsg.OpPlaybackPause, err)
			}
		case playback.StatePaused:
			if err := s.Resume(); err != nil {
				m.lastError = errmsg.Format(errmsg.OpPlaybackResume, err)
			}
		}

	case keymap.ActionOverride:
		// Operator override: navigate away from the scripted target.
		s := m.session()
		if target := s.CurrentTarget(); target != "" {
			s.NotifyManualNavigation(target)
		}

	case keymap.ActionStop:
		m.session().Stop()
	}

	return m, nil
}

func (m *model) quit() (tea.Model, tea.Cmd) {
	m.players.Close()
	m.recorders.AbortAll()
	m.stateMgr.Close()
	return m, tea.Quit
}

func (m *model) tickWhileActive() tea.Cmd {
	if !m.session().State().IsActive() {
		return nil
	}
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *model) View() string {
	s := m.session()

	view := titleStyle.Render("encore — stage monitor") + "\n\n"

	view += statusStyle.Render(fmt.Sprintf("subject: %s   mode: %s", m.subject.View(), m.kind)) + "\n"

	if rec := m.recorder(); rec.IsRecording() {
		view += recStyle.Render(fmt.Sprintf("● REC %s — %d marks", rec.SubjectID(), m.marks)) + "\n"
	}

	if m.display != "" {
		view += fmt.Sprintf("\nstage: %s (%s)\n", m.display, m.lastJump)
	}

	if s.State() != playback.StateIdle {
		width := m.width
		if width <= 0 {
			width = 80
		}
		view += "\n" + cuebar.Render(s.State(), s.CurrentTarget(), s.Remaining(), s.Duration(),
			s.CompletedRounds(), width) + "\n"
	}

	if m.lastError != "" {
		view += "\n" + errorStyle.Render(m.lastError) + "\n"
	}

	view += "\n" + helpStyle.Render(keymap.HelpLine())
	return view
}

func main() {
	m, err := initialModel()
	if err != nil {
		fmt.Printf("Error initializing: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	m.port.bind(p.Send)

	// Forward engine events for every subject kind into the program.
	for _, kind := range []timing.SubjectKind{timing.SubjectKeyframe, timing.SubjectComposite, timing.SubjectOriginalImage} {
		sub := m.players.Session(kind).Subscribe()
		go forwardEvents(p, sub)
	}

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}

func forwardEvents(p *tea.Program, sub *playback.Subscription) {
	for {
		select {
		case e := <-sub.Progressed:
			p.Send(progressMsg(e))
		case e := <-sub.StateChanged:
			p.Send(stateMsg(e))
		case e := <-sub.Completed:
			p.Send(completedMsg(e))
		case e := <-sub.Error:
			p.Send(errMsg(e))
		case <-sub.Done:
			return
		}
	}
}
