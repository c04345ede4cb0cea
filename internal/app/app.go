package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog/log"

	"github.com/abhisek/nanoclass/internal/credential"
	"github.com/abhisek/nanoclass/internal/gateway"
	"github.com/abhisek/nanoclass/internal/lesson"
	"github.com/abhisek/nanoclass/internal/llm"
	"github.com/abhisek/nanoclass/internal/router"
	"github.com/abhisek/nanoclass/internal/screen"
	"github.com/abhisek/nanoclass/internal/screens/apikey"
	"github.com/abhisek/nanoclass/internal/screens/editor"
	"github.com/abhisek/nanoclass/internal/screens/generating"
	"github.com/abhisek/nanoclass/internal/screens/history"
	"github.com/abhisek/nanoclass/internal/screens/player"
	"github.com/abhisek/nanoclass/internal/screens/topic"
	"github.com/abhisek/nanoclass/internal/screens/welcome"
	"github.com/abhisek/nanoclass/internal/screens/wizard"
	"github.com/abhisek/nanoclass/internal/stage"
	"github.com/abhisek/nanoclass/internal/store"
	"github.com/abhisek/nanoclass/internal/ui/layout"
	wiz "github.com/abhisek/nanoclass/internal/wizard"
)

// FinalDelay is how long the final render takes before the player opens.
const FinalDelay = 2500 * time.Millisecond

// Options holds the dependencies the app needs.
type Options struct {
	// Client is the gateway to start with. Leave it Unconfigured when no
	// key is known yet.
	Client gateway.Client

	// HasKey skips API key entry.
	HasKey bool

	// LLMConfig is used to build a client once a key is entered.
	LLMConfig llm.Config

	Credentials *credential.Store
	EventRepo   store.EventRepo
	Wizard      wiz.Options

	// FinalDelay overrides the final render delay when non-zero.
	FinalDelay time.Duration

	// SkipSplash opens the first stage directly.
	SkipSplash bool
}

type draftResultMsg struct {
	token  uint64
	lesson lesson.Lesson
	err    error
}

type clientReadyMsg struct {
	client gateway.Client
}

type finalReadyMsg struct{}

// queuedDraft is a draft requested while the client was still connecting.
type queuedDraft struct {
	token   uint64
	topic   string
	profile lesson.TeacherProfile
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	stage  *stage.Controller
	client gateway.Client
	opts   Options
	width  int
	height int

	connecting bool
	queued     *queuedDraft
}

// newAppModel creates an AppModel at the first stage.
func newAppModel(opts Options) AppModel {
	if opts.FinalDelay <= 0 {
		opts.FinalDelay = FinalDelay
	}
	m := AppModel{
		stage:  stage.New(opts.HasKey),
		client: opts.Client,
		opts:   opts,
	}

	first := m.screenForStage()
	if opts.SkipSplash {
		m.router = router.New(first)
	} else {
		m.router = router.New(welcome.New(func() screen.Screen { return first }))
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

// screenForStage builds the screen for the controller's current stage.
func (m AppModel) screenForStage() screen.Screen {
	c := m.stage
	switch c.Stage() {
	case stage.ApiEntry:
		return apikey.New(c.Error())
	case stage.Onboarding:
		return wizard.New(m.opts.Wizard)
	case stage.TopicInput:
		return topic.New(c.Error())
	case stage.GeneratingDraft:
		return generating.Draft(c.Topic())
	case stage.Editor:
		return editor.New(c.Lesson(), c.Profile().Style, m.client)
	case stage.GeneratingFinal:
		return generating.NewTimed(generating.FinalHeading, generating.FinalDetail, m.opts.FinalDelay)
	case stage.Player:
		return player.New(c.Lesson())
	}
	return topic.New(c.Error())
}

// enterStage swaps the active screen for the current stage's screen.
func (m AppModel) enterStage() tea.Cmd {
	return m.router.Replace(m.screenForStage())
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}

	case apikey.SubmittedMsg:
		if err := m.stage.SubmitKey(msg.Key); err != nil {
			log.Warn().Err(err).Msg("api key rejected")
			return m, nil
		}
		m.connecting = true
		return m, tea.Batch(m.enterStage(), m.connect(msg.Key))

	case clientReadyMsg:
		m.client = msg.client
		m.connecting = false
		if q := m.queued; q != nil {
			m.queued = nil
			return m, m.draft(q.token, q.topic, q.profile)
		}
		return m, nil

	case wizard.CompletedMsg:
		if err := m.stage.CompleteProfile(msg.Profile); err != nil {
			log.Warn().Err(err).Msg("profile ignored")
			return m, nil
		}
		return m, m.enterStage()

	case topic.ChosenMsg:
		token, err := m.stage.ChooseTopic(msg.Topic)
		if err != nil {
			return m, m.enterStage()
		}
		if m.connecting {
			m.queued = &queuedDraft{token: token, topic: m.stage.Topic(), profile: m.stage.Profile()}
			return m, m.enterStage()
		}
		return m, tea.Batch(m.enterStage(), m.draft(token, m.stage.Topic(), m.stage.Profile()))

	case topic.DismissErrorMsg:
		m.stage.DismissError()
		return m, nil

	case topic.ShowHistoryMsg:
		return m, m.router.Push(history.New(m.opts.EventRepo))

	case draftResultMsg:
		return m, m.handleDraft(msg)

	case editor.ChangedMsg:
		if err := m.stage.UpdateLesson(msg.Lesson); err != nil {
			log.Debug().Err(err).Msg("late editor change dropped")
		}
		return m, nil

	case editor.ConfirmedMsg:
		if err := m.stage.UpdateLesson(msg.Lesson); err != nil {
			return m, nil
		}
		if err := m.stage.ConfirmLesson(); err != nil {
			return m, nil
		}
		l := m.stage.Lesson()
		delay := m.opts.FinalDelay
		return m, tea.Batch(
			m.enterStage(),
			m.record(l, store.LessonConfirmed, ""),
			tea.Tick(delay, func(time.Time) tea.Msg { return finalReadyMsg{} }),
		)

	case finalReadyMsg:
		if err := m.stage.FinalReady(); err != nil {
			return m, nil
		}
		return m, m.enterStage()

	case player.ClosedMsg:
		l := m.stage.Lesson()
		if err := m.stage.ClosePlayer(); err != nil {
			return m, nil
		}
		return m, tea.Batch(m.enterStage(), m.record(l, store.LessonClosed, ""))
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) handleDraft(msg draftResultMsg) tea.Cmd {
	if msg.err != nil {
		topicName := m.stage.Topic()
		if !m.stage.DraftFailed(msg.token, msg.err) {
			return nil
		}
		log.Warn().Err(msg.err).Str("topic", topicName).Msg("draft failed")
		failed := lesson.Lesson{Topic: topicName}
		return tea.Batch(m.enterStage(), m.record(failed, store.LessonDraftFailed, msg.err.Error()))
	}

	if !m.stage.DraftSucceeded(msg.token, msg.lesson) {
		return nil
	}
	return tea.Batch(m.enterStage(), m.record(msg.lesson, store.LessonDrafted, ""))
}

// draft requests a lesson in the background.
func (m AppModel) draft(token uint64, topicName string, profile lesson.TeacherProfile) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		l, err := client.GenerateDraft(context.Background(), gateway.DraftRequest{
			Topic:   topicName,
			Profile: profile,
		})
		return draftResultMsg{token: token, lesson: l, err: err}
	}
}

// connect stores key and builds a client for it. A client that cannot be
// built stays Unconfigured; drafts then fail with a key error.
func (m AppModel) connect(key string) tea.Cmd {
	creds, cfg, events := m.opts.Credentials, m.opts.LLMConfig, m.opts.EventRepo
	return func() tea.Msg {
		ctx := context.Background()
		if creds != nil {
			if err := creds.Save(ctx, key); err != nil {
				log.Warn().Err(err).Msg("could not store API key")
			}
		}
		if cfg.Provider == "" {
			cfg = llm.DefaultConfig()
		}
		client, err := gateway.NewFromConfig(ctx, cfg.WithAPIKey(key), events)
		if err != nil {
			log.Warn().Err(err).Msg("AI client not configured")
		}
		return clientReadyMsg{client: client}
	}
}

// record appends a lesson event. Failures are logged, never shown.
func (m AppModel) record(l lesson.Lesson, action, detail string) tea.Cmd {
	repo := m.opts.EventRepo
	if repo == nil {
		return nil
	}
	data := store.LessonEventData{
		LessonID:   l.ID,
		Topic:      l.Topic,
		Action:     action,
		SlideCount: len(l.Slides),
		Detail:     detail,
	}
	return func() tea.Msg {
		if err := repo.AppendLessonEvent(context.Background(), data); err != nil {
			log.Warn().Err(err).Str("action", action).Msg("record lesson event")
		}
		return nil
	}
}

// profileInfo summarizes the teacher profile for the header.
func (m AppModel) profileInfo() string {
	if m.stage.Stage() <= stage.Onboarding {
		return ""
	}
	p := m.stage.Profile()
	grades := "All grades"
	if len(p.Grades) > 0 {
		grades = strings.Join(p.Grades, ", ")
	}
	return grades + " • " + string(p.Language)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.profileInfo(), m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(footerHints, p.KeyHints()...)
	} else if m.router.Depth() > 1 {
		footerHints = append(footerHints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}
	footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
