// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Timur Karaev

package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tkaraev/go-progress-tracker/internal/service"
	"github.com/tkaraev/go-progress-tracker/internal/store"
	"github.com/tkaraev/go-progress-tracker/models"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type loopStage int

const (
	stageDashboard loopStage = iota
	stageJournal
	stageSweep
	stageCreateCounter
	stageIncrement
	stageSummary
)

type dashboardKeyMap struct {
	up      key.Binding
	down    key.Binding
	journal key.Binding
	summary key.Binding
	create  key.Binding
	update  key.Binding
	logout  key.Binding
	quit    key.Binding
}

var dashboardKeys = dashboardKeyMap{
	up:      key.NewBinding(key.WithKeys("up", "k")),
	down:    key.NewBinding(key.WithKeys("down", "j")),
	journal: key.NewBinding(key.WithKeys("r")),
	summary: key.NewBinding(key.WithKeys("s")),
	create:  key.NewBinding(key.WithKeys("n")),
	update:  key.NewBinding(key.WithKeys("u")),
	logout:  key.NewBinding(key.WithKeys("l")),
	quit:    key.NewBinding(key.WithKeys("q", "ctrl+c")),
}

// journalPrompts label the fixed journal questions, in form order. The last
// prompt (free thoughts) is a multi-line textarea, the rest are single-line
// inputs.
var journalPrompts = []string{
	"Did you show up today? (yes/no)",
	"One thing you learned",
	"A small thing you finished",
	"Did you avoid quitting? (yes/no)",
	"Idea of the day",
	"Bible study",
}

type mainLoopModel struct {
	ctx      context.Context
	services *service.Services
	user     models.User

	counters []models.Counter
	idx      int
	loading  bool
	status   string
	errMsg   string

	stage loopStage

	journalInputs []textinput.Model
	thoughtsArea  textarea.Model
	journalFocus  int

	sweepInputs []textinput.Model
	sweepFocus  int
	sweepErr    string
	recording   bool
	pendingDay  models.DayAnswers

	nameInput textinput.Model
	creating  bool
	createErr string

	amountInput  textinput.Model
	updateTarget string
	updating     bool
	updateErr    string

	summary models.Summary

	logout bool
}

type countersLoadedMsg struct {
	counters []models.Counter
	err      error
}

type recordDoneMsg struct {
	entry models.DailyProgress
	err   error
}

type counterCreatedMsg struct {
	err error
}

type incrementDoneMsg struct {
	err error
}

type summaryLoadedMsg struct {
	summary models.Summary
	err     error
}

var errUserIDNotSet = errors.New("user id is not set")

func newMainLoopModel(ctx context.Context, services *service.Services, user models.User) mainLoopModel {
	if user.UserID > 0 {
		setSessionUserID(user.UserID)
	}

	return mainLoopModel{
		ctx:      ctx,
		services: services,
		user:     user,
		loading:  true,
	}
}

func (m mainLoopModel) Init() tea.Cmd {
	return m.cmdLoadCounters()
}

func (m mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case countersLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeStorageError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.counters = msg.counters
		if m.idx >= len(m.counters) {
			m.idx = len(m.counters) - 1
		}
		if m.idx < 0 {
			m.idx = 0
		}
		return m, nil
	case recordDoneMsg:
		m.recording = false
		if msg.err != nil {
			m.sweepErr = recordErrorMessage(msg.err)
			return m, nil
		}
		m.stage = stageDashboard
		m.status = "Day recorded: " + msg.entry.Day.Format("2006-01-02")
		m.errMsg = ""
		m.loading = true
		return m, m.cmdLoadCounters()
	case counterCreatedMsg:
		m.creating = false
		if msg.err != nil {
			m.createErr = createErrorMessage(msg.err)
			return m, nil
		}
		m.stage = stageDashboard
		m.status = "Counter created"
		m.errMsg = ""
		m.loading = true
		return m, m.cmdLoadCounters()
	case incrementDoneMsg:
		m.updating = false
		if msg.err != nil {
			m.updateErr = incrementErrorMessage(msg.err)
			return m, nil
		}
		m.stage = stageDashboard
		m.status = "Counter updated"
		m.errMsg = ""
		m.loading = true
		return m, m.cmdLoadCounters()
	case summaryLoadedMsg:
		if msg.err != nil {
			m.stage = stageDashboard
			m.errMsg = humanizeStorageError(msg.err)
			return m, nil
		}
		m.summary = msg.summary
		m.stage = stageSummary
		return m, nil
	}

	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey && keyMsg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.stage {
	case stageJournal:
		return m.updateJournal(msg)
	case stageSweep:
		return m.updateSweep(msg)
	case stageCreateCounter:
		return m.updateCreateCounter(msg)
	case stageIncrement:
		return m.updateIncrement(msg)
	case stageSummary:
		return m.updateSummary(msg)
	}

	if !isKey {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, dashboardKeys.quit):
		return m, tea.Quit
	case key.Matches(keyMsg, dashboardKeys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(keyMsg, dashboardKeys.down):
		if m.idx < len(m.counters)-1 {
			m.idx++
		}
	case key.Matches(keyMsg, dashboardKeys.journal):
		m.startJournal()
		return m, textarea.Blink
	case key.Matches(keyMsg, dashboardKeys.summary):
		m.status = ""
		return m, m.cmdLoadSummary()
	case key.Matches(keyMsg, dashboardKeys.create):
		m.startCreateCounter()
		return m, textinput.Blink
	case key.Matches(keyMsg, dashboardKeys.update):
		counter, ok := m.current()
		if !ok {
			m.status = "No counters yet"
			return m, nil
		}
		m.startIncrement(counter.Name)
		return m, textinput.Blink
	case key.Matches(keyMsg, dashboardKeys.logout):
		clearSessionUserID()
		m.logout = true
		return m, tea.Quit
	}

	return m, nil
}

// ── Journal form ─────────────────────────────────────────────────────────────

func (m *mainLoopModel) startJournal() {
	inputs := make([]textinput.Model, len(journalPrompts))
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = "-"
		inputs[i].Width = 48
	}
	inputs[0].Focus()

	area := textarea.New()
	area.Placeholder = "free thoughts"
	area.SetWidth(52)
	area.SetHeight(4)

	m.journalInputs = inputs
	m.thoughtsArea = area
	m.journalFocus = 0
	m.status = ""
	m.stage = stageJournal
}

func (m mainLoopModel) updateJournal(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.stage = stageDashboard
			return m, nil
		case "tab":
			m.journalFocusNext()
			return m, nil
		case "shift+tab":
			m.journalFocusPrev()
			return m, nil
		case "ctrl+s":
			m.pendingDay = models.DayAnswers{
				ShowUp:        m.journalInputs[0].Value(),
				LearnThing:    m.journalInputs[1].Value(),
				FinishSmall:   m.journalInputs[2].Value(),
				AvoidQuitting: m.journalInputs[3].Value(),
				IdeaDay:       m.journalInputs[4].Value(),
				BibleStudy:    m.journalInputs[5].Value(),
				Thoughts:      m.thoughtsArea.Value(),
			}
			m.startSweep()
			return m, textinput.Blink
		case "enter":
			// enter inside the textarea inserts a newline
			if m.journalFocus < len(m.journalInputs) {
				m.journalFocusNext()
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	if m.journalFocus < len(m.journalInputs) {
		m.journalInputs[m.journalFocus], cmd = m.journalInputs[m.journalFocus].Update(msg)
	} else {
		m.thoughtsArea, cmd = m.thoughtsArea.Update(msg)
	}
	return m, cmd
}

func (m *mainLoopModel) journalFocusNext() {
	m.journalBlur()
	m.journalFocus = (m.journalFocus + 1) % (len(m.journalInputs) + 1)
	m.journalFocusCurrent()
}

func (m *mainLoopModel) journalFocusPrev() {
	m.journalBlur()
	m.journalFocus = (m.journalFocus - 1 + len(m.journalInputs) + 1) % (len(m.journalInputs) + 1)
	m.journalFocusCurrent()
}

func (m *mainLoopModel) journalBlur() {
	if m.journalFocus < len(m.journalInputs) {
		m.journalInputs[m.journalFocus].Blur()
	} else {
		m.thoughtsArea.Blur()
	}
}

func (m *mainLoopModel) journalFocusCurrent() {
	if m.journalFocus < len(m.journalInputs) {
		m.journalInputs[m.journalFocus].Focus()
	} else {
		m.thoughtsArea.Focus()
	}
}

// ── Counter sweep ────────────────────────────────────────────────────────────

func (m *mainLoopModel) startSweep() {
	inputs := make([]textinput.Model, len(m.counters))
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = "0"
		inputs[i].CharLimit = 12
		inputs[i].Width = 12
	}
	if len(inputs) > 0 {
		inputs[0].Focus()
	}

	m.sweepInputs = inputs
	m.sweepFocus = 0
	m.sweepErr = ""
	m.stage = stageSweep
}

func (m mainLoopModel) updateSweep(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			// back to the journal form, answers are kept
			m.stage = stageJournal
			return m, nil
		case "tab":
			m.sweepFocusNext()
			return m, nil
		case "shift+tab":
			m.sweepFocusPrev()
			return m, nil
		case "enter", "ctrl+s":
			return m.submitDay()
		}
	}

	if len(m.sweepInputs) == 0 {
		return m, nil
	}

	var cmd tea.Cmd
	m.sweepInputs[m.sweepFocus], cmd = m.sweepInputs[m.sweepFocus].Update(msg)
	return m, cmd
}

// submitDay collects sweep amounts and dispatches the atomic record command.
// Blank and non-integer amounts skip that counter rather than failing the
// whole day.
func (m mainLoopModel) submitDay() (tea.Model, tea.Cmd) {
	if m.recording {
		return m, nil
	}

	sweep := make([]models.CounterIncrement, 0, len(m.sweepInputs))
	for i, input := range m.sweepInputs {
		raw := strings.TrimSpace(input.Value())
		if raw == "" {
			continue
		}
		amount, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || amount < 0 {
			continue
		}
		sweep = append(sweep, models.CounterIncrement{
			Name:   m.counters[i].Name,
			Amount: amount,
		})
	}

	m.sweepErr = ""
	m.recording = true
	return m, m.cmdRecordDay(m.pendingDay, sweep)
}

func (m *mainLoopModel) sweepFocusNext() {
	if len(m.sweepInputs) == 0 {
		return
	}
	m.sweepInputs[m.sweepFocus].Blur()
	m.sweepFocus = (m.sweepFocus + 1) % len(m.sweepInputs)
	m.sweepInputs[m.sweepFocus].Focus()
}

func (m *mainLoopModel) sweepFocusPrev() {
	if len(m.sweepInputs) == 0 {
		return
	}
	m.sweepInputs[m.sweepFocus].Blur()
	m.sweepFocus = (m.sweepFocus - 1 + len(m.sweepInputs)) % len(m.sweepInputs)
	m.sweepInputs[m.sweepFocus].Focus()
}

// ── Create counter ───────────────────────────────────────────────────────────

func (m *mainLoopModel) startCreateCounter() {
	input := textinput.New()
	input.Placeholder = "counter name, e.g. pages read"
	input.CharLimit = 64
	input.Width = 40
	input.Focus()

	m.nameInput = input
	m.creating = false
	m.createErr = ""
	m.status = ""
	m.stage = stageCreateCounter
}

func (m mainLoopModel) updateCreateCounter(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.stage = stageDashboard
			return m, nil
		case "enter":
			if m.creating {
				return m, nil
			}
			name := strings.TrimSpace(m.nameInput.Value())
			if name == "" {
				m.createErr = "counter name is required"
				return m, nil
			}
			m.createErr = ""
			m.creating = true
			return m, m.cmdCreateCounter(name)
		}
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// ── Update counter ───────────────────────────────────────────────────────────

func (m *mainLoopModel) startIncrement(name string) {
	input := textinput.New()
	input.Placeholder = "amount"
	input.CharLimit = 12
	input.Width = 12
	input.Focus()

	m.amountInput = input
	m.updateTarget = name
	m.updating = false
	m.updateErr = ""
	m.status = ""
	m.stage = stageIncrement
}

func (m mainLoopModel) updateIncrement(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.stage = stageDashboard
			return m, nil
		case "enter":
			if m.updating {
				return m, nil
			}
			amount, err := strconv.ParseInt(strings.TrimSpace(m.amountInput.Value()), 10, 64)
			if err != nil {
				m.updateErr = "amount must be an integer"
				return m, nil
			}
			if amount < 0 {
				m.updateErr = "amount must be non-negative"
				return m, nil
			}
			m.updateErr = ""
			m.updating = true
			return m, m.cmdIncrement(m.updateTarget, amount)
		}
	}

	var cmd tea.Cmd
	m.amountInput, cmd = m.amountInput.Update(msg)
	return m, cmd
}

// ── Summary ──────────────────────────────────────────────────────────────────

func (m mainLoopModel) updateSummary(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc", "enter", "q":
		m.stage = stageDashboard
	}
	return m, nil
}

// ── Views ────────────────────────────────────────────────────────────────────

func (m mainLoopModel) View() string {
	switch m.stage {
	case stageJournal:
		return m.viewJournal()
	case stageSweep:
		return m.viewSweep()
	case stageCreateCounter:
		return m.viewCreateCounter()
	case stageIncrement:
		return m.viewIncrement()
	case stageSummary:
		return m.viewSummary()
	}

	out := ""

	if m.loading {
		out += "Loading counters...\n"
		return renderPage("DASHBOARD", strings.TrimRight(out, "\n"), dashboardHotKeys)
	}

	if m.errMsg != "" {
		out += errorStyle.Render("Error: "+m.errMsg) + "\n"
	}
	if m.status != "" {
		out += "Status: " + m.status + "\n"
	}

	out += "Signed in as " + m.user.Username + "\n\n"

	if len(m.counters) == 0 {
		out += "No counters yet, press n to create one\n"
	} else {
		out += "Counter                    │ Total\n"
		out += "───────────────────────────┼──────────────\n"
		for i, counter := range m.counters {
			cursor := " "
			if i == m.idx {
				cursor = ">"
			}
			out += fmt.Sprintf("%s %-24s │ %d\n", cursor, fitText(counter.Name, 24), counter.Total)
		}
	}

	return renderPage("DASHBOARD", strings.TrimRight(out, "\n"), dashboardHotKeys)
}

const dashboardHotKeys = "r: record today │ s: summary │ n: new counter │ u: update counter │ l: log out │ ↑/↓: move"

func (m mainLoopModel) viewJournal() string {
	out := ""
	for i, prompt := range journalPrompts {
		out += prompt + "\n"
		out += "  [" + m.journalInputs[i].View() + "]\n"
	}
	out += "Free thoughts\n"
	out += m.thoughtsArea.View() + "\n"

	return renderPage("TODAY'S JOURNAL", strings.TrimRight(out, "\n"), "tab: next field │ ctrl+s: continue to sweep │ esc: cancel")
}

func (m mainLoopModel) viewSweep() string {
	out := "How much to add to each counter today?\n"
	out += "Blank or non-numeric input skips the counter.\n\n"

	if len(m.counters) == 0 {
		out += "No counters to sweep.\n"
	} else {
		for i, counter := range m.counters {
			out += fmt.Sprintf("%-24s │ [%s]\n", fitText(counter.Name, 24), m.sweepInputs[i].View())
		}
	}

	if m.recording {
		out += "\nSaving...\n"
	}
	if m.sweepErr != "" {
		out += "\n" + errorStyle.Render("Error: "+m.sweepErr) + "\n"
	}

	return renderPage("COUNTER SWEEP", strings.TrimRight(out, "\n"), "tab: next field │ enter: save the day │ esc: back to journal")
}

func (m mainLoopModel) viewCreateCounter() string {
	out := "Name      │ [" + m.nameInput.View() + "]\n"
	if m.creating {
		out += "Action    │ [Creating...]\n"
	} else {
		out += "Action    │ [Create]\n"
	}
	if m.createErr != "" {
		out += "\n" + errorStyle.Render("Error: "+m.createErr) + "\n"
	}

	return renderPage("NEW COUNTER", strings.TrimRight(out, "\n"), "enter: create │ esc: back")
}

func (m mainLoopModel) viewIncrement() string {
	out := "Counter   │ " + m.updateTarget + "\n"
	out += "Amount    │ [" + m.amountInput.View() + "]\n"
	if m.updating {
		out += "Action    │ [Saving...]\n"
	} else {
		out += "Action    │ [Add]\n"
	}
	if m.updateErr != "" {
		out += "\n" + errorStyle.Render("Error: "+m.updateErr) + "\n"
	}

	return renderPage("UPDATE COUNTER", strings.TrimRight(out, "\n"), "enter: add │ esc: back")
}

func (m mainLoopModel) viewSummary() string {
	out := "[ COUNTERS ]\n"
	if len(m.summary.Counters) == 0 {
		out += "No counters yet\n"
	} else {
		for _, counter := range m.summary.Counters {
			out += fmt.Sprintf("%-24s │ %d\n", fitText(counter.Name, 24), counter.Total)
		}
	}

	out += "\n[ JOURNAL ]\n"
	if len(m.summary.Entries) == 0 {
		out += "No entries yet\n"
	} else {
		for _, entry := range m.summary.Entries {
			out += entry.Day.Format("2006-01-02") + "\n"
			out += "  showed up       : " + valueOrDash(entry.Answers.ShowUp) + "\n"
			out += "  learned         : " + valueOrDash(entry.Answers.LearnThing) + "\n"
			out += "  finished        : " + valueOrDash(entry.Answers.FinishSmall) + "\n"
			out += "  avoided quitting: " + valueOrDash(entry.Answers.AvoidQuitting) + "\n"
			out += "  idea            : " + valueOrDash(entry.Answers.IdeaDay) + "\n"
			out += "  bible study     : " + valueOrDash(entry.Answers.BibleStudy) + "\n"
			out += "  thoughts        : " + valueOrDash(fitText(entry.Answers.Thoughts, 60)) + "\n"
		}
	}

	return renderPage("SUMMARY", strings.TrimRight(out, "\n"), "esc/enter: back")
}

// ── Commands ─────────────────────────────────────────────────────────────────

func (m mainLoopModel) current() (models.Counter, bool) {
	if len(m.counters) == 0 || m.idx < 0 || m.idx >= len(m.counters) {
		return models.Counter{}, false
	}
	return m.counters[m.idx], true
}

func (m mainLoopModel) cmdLoadCounters() tea.Cmd {
	ctx := m.ctx
	svc := m.services.CounterService

	return func() tea.Msg {
		userID := m.activeUserID()
		if userID <= 0 {
			return countersLoadedMsg{err: errUserIDNotSet}
		}
		counters, err := svc.List(ctx, userID)
		return countersLoadedMsg{counters: counters, err: err}
	}
}

func (m mainLoopModel) cmdRecordDay(answers models.DayAnswers, sweep []models.CounterIncrement) tea.Cmd {
	ctx := m.ctx
	svc := m.services.JournalService

	return func() tea.Msg {
		userID := m.activeUserID()
		if userID <= 0 {
			return recordDoneMsg{err: errUserIDNotSet}
		}
		entry, err := svc.RecordDay(ctx, userID, answers, sweep)
		return recordDoneMsg{entry: entry, err: err}
	}
}

func (m mainLoopModel) cmdCreateCounter(name string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.CounterService

	return func() tea.Msg {
		userID := m.activeUserID()
		if userID <= 0 {
			return counterCreatedMsg{err: errUserIDNotSet}
		}
		err := svc.Create(ctx, userID, name)
		return counterCreatedMsg{err: err}
	}
}

func (m mainLoopModel) cmdIncrement(name string, amount int64) tea.Cmd {
	ctx := m.ctx
	svc := m.services.CounterService

	return func() tea.Msg {
		userID := m.activeUserID()
		if userID <= 0 {
			return incrementDoneMsg{err: errUserIDNotSet}
		}
		err := svc.Increment(ctx, userID, name, amount)
		return incrementDoneMsg{err: err}
	}
}

func (m mainLoopModel) cmdLoadSummary() tea.Cmd {
	ctx := m.ctx
	svc := m.services.JournalService

	return func() tea.Msg {
		userID := m.activeUserID()
		if userID <= 0 {
			return summaryLoadedMsg{err: errUserIDNotSet}
		}
		summary, err := svc.Summary(ctx, userID)
		return summaryLoadedMsg{summary: summary, err: err}
	}
}

func (m mainLoopModel) activeUserID() int64 {
	if sid := getSessionUserID(); sid > 0 {
		return sid
	}
	if m.user.UserID > 0 {
		return m.user.UserID
	}
	return 0
}

func recordErrorMessage(err error) string {
	switch {
	case errors.Is(err, store.ErrAlreadyLogged):
		return "today is already logged"
	case errors.Is(err, store.ErrCounterNotFound):
		return "a swept counter no longer exists, nothing was saved"
	}
	return humanizeStorageError(err)
}

func createErrorMessage(err error) string {
	if errors.Is(err, store.ErrCounterExists) {
		return "a counter with that name already exists"
	}
	return humanizeStorageError(err)
}

func incrementErrorMessage(err error) string {
	switch {
	case errors.Is(err, store.ErrCounterNotFound):
		return "that counter does not exist"
	case errors.Is(err, service.ErrInvalidAmount):
		return "amount must be non-negative"
	}
	return humanizeStorageError(err)
}
