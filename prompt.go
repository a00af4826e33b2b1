package enquire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

// Common errors
var (
	// ErrInvalidQuestion is returned by New when the question lacks a name or message
	ErrInvalidQuestion = errors.New("invalid question")
	// ErrEOF is returned when input ends before an answer is submitted
	ErrEOF = errors.New("EOF")
	// ErrInterrupted is returned when the user presses Ctrl+C
	ErrInterrupted = errors.New("interrupted")
	// ErrSessionEnded is returned by Ask when End is called before an answer is submitted
	ErrSessionEnded = errors.New("prompt ended before an answer was submitted")
)

const (
	defaultLimit        = 7
	defaultPrefix       = "?"
	defaultErrorMessage = "Invalid input"
)

// Observer event names. A keypress is also announced under its key name
// ("up", "space", "a", ...).
const (
	OnAsk      = "ask"      // payload: *Prompt
	OnAnswer   = "answer"   // payload: the submitted answer
	OnError    = "error"    // payload: error
	OnKeypress = "keypress" // payload: *KeyEvent
	OnLine     = "line"     // payload: string
)

// Status is the lifecycle state of a prompt session.
type Status int

// Statuses in session order. Help and Interacted are both reached by the
// first render; Help when there is a hint to show.
const (
	StatusPending Status = iota
	StatusInitialized
	StatusHelp
	StatusInteracted
	StatusSubmitted
	StatusAnswered
)

var statusNames = [...]string{"pending", "initialized", "help", "interacted", "submitted", "answered"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// Prompt is a single question driven by an event loop.
//
// Ask starts a session: input events are consumed one at a time from the
// UI and routed to the keypress, line and error handlers until an answer
// is submitted, an error ends the session, or End is called. A prompt may
// be asked again; every session starts from a clean state.
type Prompt struct {
	question    Question
	ui          UI
	ownsUI      bool
	answers     Answers
	choices     *ChoiceList
	actions     *Actions
	colorScheme *ColorScheme
	errOut      io.Writer

	status   Status
	position int
	offset   int // First visible row of the choice list
	limit    int
	answer   any
	state    *Verdict
	called   int

	listeners map[string][]Listener
	handlers  map[EventKind]handlerFunc
	session   int
	pending   *outcome
	result    *outcome
	ended     bool
}

type handlerFunc func(ctx context.Context, ev Event)

type outcome struct {
	answer any
	err    error
}

// Config holds the configuration for a prompt.
type Config struct {
	UI          UI           // Shared UI (nil opens the terminal)
	Answers     Answers      // Accumulator used when Run is given nil
	ColorScheme *ColorScheme // Color scheme (nil for default)
	KeyMap      *KeyMap      // Key bindings for the terminal the prompt opens
	Actions     *Actions     // Dispatch table, copied into the prompt (nil for default)
	ErrorOutput io.Writer    // Destination of unhandled errors (nil for stderr)
}

// Option represents a configuration option for prompt
type Option func(*Config)

// WithUI makes the prompt use ui instead of opening the terminal. A shared
// UI stays in raw mode between answers and is not closed by Close.
func WithUI(ui UI) Option {
	return func(c *Config) {
		c.UI = ui
	}
}

// WithAnswers sets the accumulator Run uses when it is given nil answers.
func WithAnswers(answers Answers) Option {
	return func(c *Config) {
		c.Answers = answers
	}
}

// WithColorScheme sets the color scheme
func WithColorScheme(colorScheme *ColorScheme) Option {
	return func(c *Config) {
		c.ColorScheme = colorScheme
	}
}

// WithTheme is an alias for WithColorScheme
func WithTheme(theme *ColorScheme) Option {
	return WithColorScheme(theme)
}

// WithKeyMap sets the key bindings of the terminal opened by the prompt.
// It has no effect together with WithUI.
func WithKeyMap(keyMap *KeyMap) Option {
	return func(c *Config) {
		c.KeyMap = keyMap
	}
}

// WithActions sets the key dispatch table.
func WithActions(actions *Actions) Option {
	return func(c *Config) {
		c.Actions = actions
	}
}

// WithErrorOutput sets where errors are written when no error listener is
// registered.
func WithErrorOutput(w io.Writer) Option {
	return func(c *Config) {
		c.ErrorOutput = w
	}
}

// New creates a prompt for q.
//
// Example:
//
//	p, err := enquire.New(enquire.Question{
//		Name:    "color",
//		Message: "Favorite color?",
//		Choices: enquire.Options("red", "green", "blue"),
//		Radio:   true,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer p.Close()
//
//	answer, err := p.Run(context.Background(), nil)
func New(q Question, options ...Option) (*Prompt, error) {
	var config Config
	for _, option := range options {
		option(&config)
	}
	return newFromConfig(q, config)
}

func newFromConfig(q Question, config Config) (*Prompt, error) {
	if err := q.check(); err != nil {
		return nil, err
	}

	if config.ColorScheme == nil {
		config.ColorScheme = ThemeDefault
	}
	if config.ErrorOutput == nil {
		config.ErrorOutput = os.Stderr
	}
	if config.Answers == nil {
		config.Answers = Answers{}
	}
	actions := NewActions()
	if config.Actions != nil {
		actions = config.Actions.clone()
	}

	p := &Prompt{
		question:    q,
		answers:     config.Answers,
		actions:     actions,
		colorScheme: config.ColorScheme,
		errOut:      config.ErrorOutput,
		limit:       q.Limit,
		listeners:   make(map[string][]Listener),
	}
	if p.limit == 0 {
		p.limit = defaultLimit
	}
	if err := p.loadChoices(p.answers); err != nil {
		return nil, err
	}
	p.Default()

	if config.UI != nil {
		p.ui = config.UI
	} else {
		ui, err := NewTerminalUI(config.KeyMap)
		if err != nil {
			return nil, err
		}
		p.ui = ui
		p.ownsUI = true
	}
	return p, nil
}

// Close releases the terminal opened by the prompt. Shared UIs are left open.
func (p *Prompt) Close() error {
	if !p.ownsUI {
		return nil
	}
	return p.ui.Close()
}

// Ask starts a session and blocks until it settles. callback receives the
// submitted answer, or nil when an unhandled error ended the session, in
// which case the error is also returned. ErrSessionEnded is returned
// without calling callback when End stops the session first.
func (p *Prompt) Ask(ctx context.Context, callback func(answer any)) error {
	p.begin()
	session := p.session

	if err := p.ui.Resume(); err != nil {
		p.End(false)
		return err
	}
	p.status = StatusInitialized
	if p.choices.Len() > 0 {
		p.warn("failed to hide cursor", p.ui.HideCursor())
	}
	p.registerHandlers(map[EventKind]handlerFunc{
		EventKeypress: p.onKeypress,
		EventLine:     p.onLine,
		EventError:    p.onError,
	})

	p.emit(OnAsk, p)
	if p.active(session) {
		p.render()
	}
	return p.loop(ctx, session, callback)
}

func (p *Prompt) begin() {
	p.session++
	p.unregisterHandlers()
	p.status = StatusPending
	p.state = nil
	p.pending = nil
	p.result = nil
	p.ended = false
	p.offset = 0
	p.Default()
}

// loop consumes events while the session's handlers are registered.
func (p *Prompt) loop(ctx context.Context, session int, callback func(answer any)) error {
	for p.active(session) {
		if err := ctx.Err(); err != nil {
			p.End(false)
			return err
		}

		ev, err := p.ui.Next(ctx)
		if err != nil {
			p.End(false)
			if errors.Is(err, io.EOF) {
				return ErrEOF
			}
			return err
		}
		if ev.Kind == EventKeypress && ev.Key != nil {
			key := normalize(*ev.Key)
			ev.Key = &key
		}

		p.notify(ev)
		if h := p.handlers[ev.Kind]; h != nil {
			h(ctx, ev)
		}
		// Submission is finished only after the handler has returned
		if p.pending != nil && p.session == session {
			p.submit()
		}
	}

	if p.session != session || p.result == nil {
		return ErrSessionEnded
	}
	result := *p.result
	if callback != nil {
		callback(result.answer)
	}
	return result.err
}

func (p *Prompt) active(session int) bool {
	return p.session == session && p.handlers != nil
}

func (p *Prompt) registerHandlers(handlers map[EventKind]handlerFunc) {
	p.handlers = handlers
}

func (p *Prompt) unregisterHandlers() {
	p.handlers = nil
}

func (p *Prompt) notify(ev Event) {
	switch ev.Kind {
	case EventKeypress:
		if ev.Key == nil || isSubmitKey(*ev.Key) {
			return
		}
		p.emit(OnKeypress, ev.Key)
		if name := ev.Key.Name; name != "" && !isReservedEvent(name) {
			p.emit(name, ev.Key)
		}
	case EventLine:
		p.emit(OnLine, ev.Line)
	}
}

func isReservedEvent(name string) bool {
	switch name {
	case OnAsk, OnAnswer, OnError, OnKeypress, OnLine:
		return true
	}
	return false
}

func (p *Prompt) onKeypress(ctx context.Context, ev Event) {
	key := ev.Key
	if key == nil || isSubmitKey(*key) {
		return
	}
	if p.resize(key) {
		p.render()
		return
	}

	session := p.session
	p.status = StatusInteracted
	verdict, err := p.Validate(ctx, ev.Line, key)
	if !p.active(session) {
		return
	}
	if err != nil {
		p.fail(err)
		return
	}
	p.state = &verdict

	if key.Name == "line" && verdict.Valid {
		p.pending = &outcome{answer: p.GetAnswer(ev.Line)}
		return
	}
	p.position = p.actions.Dispatch(p, p.position, key)
	p.render()
}

func (p *Prompt) onLine(ctx context.Context, ev Event) {
	session := p.session
	p.status = StatusSubmitted
	answer := p.GetAnswer(ev.Line)

	verdict, err := p.Validate(ctx, answer, nil)
	if !p.active(session) {
		return
	}
	if err != nil {
		p.fail(err)
		return
	}
	p.state = &verdict

	if verdict.Valid {
		p.pending = &outcome{answer: answer}
		return
	}
	p.status = StatusInteracted
	if p.choices.Len() == 0 && p.ui.Line() == "" {
		p.ui.SetLine(ev.Line)
	}
	p.render()
}

func (p *Prompt) onError(_ context.Context, ev Event) {
	p.fail(ev.Err)
}

// submit settles the session with the pending answer.
func (p *Prompt) submit() {
	answer := p.pending.answer
	p.pending = nil

	p.status = StatusAnswered
	p.answer = answer
	p.called++
	p.unregisterHandlers()
	p.render()
	p.warn("failed to finish prompt", p.ui.End())
	p.result = &outcome{answer: answer}
	p.emit(OnAnswer, answer)
	p.ui.ClearLine()
	if p.ownsUI {
		p.warn("failed to restore terminal", p.ui.Pause())
	}
}

// fail routes err to the error listeners. Without listeners the session
// ends and the error is written to the error output.
func (p *Prompt) fail(err error) {
	if p.hasListeners(OnError) {
		p.emit(OnError, err)
		return
	}
	p.result = &outcome{err: err}
	p.End(true)
	if !errors.Is(err, ErrInterrupted) {
		fmt.Fprintf(p.errOut, "Error: %v\n", err)
	}
}

// End stops the current session: handlers are unsubscribed, the prompt is
// optionally rendered one last time and input is paused. Calling End again
// in the same session does nothing.
func (p *Prompt) End(render bool) {
	if p.ended {
		return
	}
	p.ended = true
	p.unregisterHandlers()
	if render && p.status != StatusAnswered && p.status != StatusPending {
		p.render()
	}
	p.warn("failed to finish prompt", p.ui.End())
	p.warn("failed to restore terminal", p.ui.Pause())
}

// Mute suppresses output until the returned function is called.
func (p *Prompt) Mute() (unmute func()) {
	return p.ui.Mute()
}

// On registers fn for event.
func (p *Prompt) On(event string, fn Listener) *Prompt {
	p.listeners[event] = append(p.listeners[event], fn)
	return p
}

// Only replaces every listener of event with fn.
func (p *Prompt) Only(event string, fn Listener) *Prompt {
	p.listeners[event] = []Listener{fn}
	return p
}

// Off removes every listener of event.
func (p *Prompt) Off(event string) *Prompt {
	delete(p.listeners, event)
	return p
}

func (p *Prompt) emit(event string, payload any) {
	for _, fn := range slices.Clone(p.listeners[event]) {
		fn(payload)
	}
	if fn := p.question.On[event]; fn != nil {
		fn(payload)
	}
}

func (p *Prompt) hasListeners(event string) bool {
	return len(p.listeners[event]) > 0 || p.question.On[event] != nil
}

func (p *Prompt) warn(what string, err error) {
	if err != nil {
		fmt.Fprintf(p.errOut, "Warning: %s: %v\n", what, err)
	}
}

// resize handles Shift+Up/Down on expandable choice lists.
func (p *Prompt) resize(key *KeyEvent) bool {
	if !p.question.Expandable || !key.Shift || p.choices.Len() == 0 {
		return false
	}
	switch key.Name {
	case "up":
		p.limit = max(1, p.limit-1)
	case "down":
		p.limit = min(p.limit+1, len(p.choices.Items()))
	default:
		return false
	}
	return true
}

func (p *Prompt) loadChoices(answers Answers) error {
	choices := p.question.Choices
	if p.question.ChoicesFunc != nil {
		loaded, err := p.question.ChoicesFunc(answers)
		if err != nil {
			return fmt.Errorf("failed to load choices: %w", err)
		}
		choices = loaded
	}
	p.useChoices(choices)
	return nil
}

// useChoices replaces the choice list, keeping the cursor when it is still
// in range.
func (p *Prompt) useChoices(choices []Choice) {
	if len(choices) == 0 {
		p.choices = nil
		p.position = 0
		return
	}
	p.choices = NewChoiceList(choices)
	if p.position >= p.choices.Len() {
		p.position = 0
	}
}

// Validate runs the question's validator. Without one every input is valid.
func (p *Prompt) Validate(ctx context.Context, input any, key *KeyEvent) (Verdict, error) {
	if p.question.Validate == nil {
		return Accept, nil
	}
	verdict, err := p.question.Validate(ctx, input, key)
	if err != nil {
		return Verdict{}, fmt.Errorf("validate %s: %w", p.question.Name, err)
	}
	return verdict, nil
}

// When reports whether the question should be asked given answers.
func (p *Prompt) When(ctx context.Context, answers Answers) (bool, error) {
	if p.question.When == nil {
		return true, nil
	}
	ok, err := p.question.When(ctx, answers)
	if err != nil {
		return false, fmt.Errorf("when %s: %w", p.question.Name, err)
	}
	return ok, nil
}

// Transform applies Filter and then Transform to answer.
func (p *Prompt) Transform(ctx context.Context, answer any) (any, error) {
	for _, fn := range []TransformFunc{p.question.Filter, p.question.Transform} {
		if fn == nil {
			continue
		}
		var err error
		answer, err = fn(ctx, answer)
		if err != nil {
			return nil, fmt.Errorf("transform %s: %w", p.question.Name, err)
		}
		if answer == nil {
			return nil, nil
		}
	}
	return answer, nil
}

// Default returns the effective default. A numeric default on a choice
// list resolves to the name of that choice; the cursor moves to the
// choice the default selects.
func (p *Prompt) Default() any {
	def, pos := resolveDefault(p.question.Default, p.choices)
	if pos >= 0 {
		p.position = pos
	}
	return def
}

// SetDefault replaces the default used by the next session.
func (p *Prompt) SetDefault(def any) {
	p.question.Default = def
}

// GetAnswer resolves the answer for input.
//
// Text questions answer input, or the default when input is empty.
// Checkbox questions answer the checked names, falling back to the
// default when nothing is checked. Radio questions answer the checked
// name or the choice under the cursor; a disabled cursor choice falls
// back to the default and then to the first enabled choice.
func (p *Prompt) GetAnswer(input string) any {
	def, _ := resolveDefault(p.question.Default, p.choices)

	if p.choices.Len() == 0 {
		if input != "" {
			return input
		}
		if def != nil {
			return def
		}
		return ""
	}

	if p.question.Radio {
		if checked := p.choices.Checked(); len(checked) > 0 {
			return checked[0]
		}
		if c, ok := p.choices.At(p.position); ok && !c.Disabled {
			return c.Name
		}
		if name, ok := def.(string); ok {
			if c, ok := p.choices.At(p.choices.IndexOf(name)); ok && !c.Disabled {
				return c.Name
			}
		}
		for pos := 0; pos < p.choices.Len(); pos++ {
			if c, _ := p.choices.At(pos); !c.Disabled {
				return c.Name
			}
		}
		return nil
	}

	checked := p.choices.Checked()
	if len(checked) == 0 {
		switch d := def.(type) {
		case string:
			return []string{d}
		case []string:
			return d
		}
	}
	return checked
}

// Name returns the question name.
func (p *Prompt) Name() string {
	return p.question.Name
}

// Message returns the formatted question line.
func (p *Prompt) Message() string {
	return p.Format(p.question.Message)
}

// SetMessage replaces the question text.
func (p *Prompt) SetMessage(message string) {
	p.question.Message = message
}

// Prefix returns the marker shown before the message.
func (p *Prompt) Prefix() string {
	if p.question.Prefix == "" {
		return defaultPrefix
	}
	return p.question.Prefix
}

// SetPrefix replaces the marker shown before the message.
func (p *Prompt) SetPrefix(prefix string) {
	p.question.Prefix = prefix
}

// SetTheme changes the color scheme
func (p *Prompt) SetTheme(theme *ColorScheme) {
	if theme != nil {
		p.colorScheme = theme
	}
}

// Choices returns the choice list, nil for text questions.
func (p *Prompt) Choices() *ChoiceList {
	return p.choices
}

// SetChoices replaces the choice list.
func (p *Prompt) SetChoices(choices []Choice) {
	p.question.Choices = choices
	p.question.ChoicesFunc = nil
	p.useChoices(choices)
}

// Actions returns the prompt's own dispatch table.
func (p *Prompt) Actions() *Actions {
	return p.actions
}

// UI returns the collaborator the prompt drives.
func (p *Prompt) UI() UI {
	return p.ui
}

// Status returns the session status.
func (p *Prompt) Status() Status {
	return p.status
}

// Position returns the cursor position in the choice list.
func (p *Prompt) Position() int {
	return p.position
}

// Answer returns the last answer, nil before the first one.
func (p *Prompt) Answer() any {
	return p.answer
}

// State returns the last validation verdict, nil before any validation.
func (p *Prompt) State() *Verdict {
	return p.state
}

// Called returns how many answers have been submitted.
func (p *Prompt) Called() int {
	return p.called
}

// Format renders the question line for message.
func (p *Prompt) Format(message string) string {
	var b strings.Builder
	b.WriteString(p.colorScheme.Prefix.Paint(p.Prefix()))
	b.WriteString(" ")
	b.WriteString(p.colorScheme.Message.Paint(message))
	b.WriteString(" ")
	if p.status == StatusAnswered {
		return b.String()
	}
	if def, _ := resolveDefault(p.question.Default, p.choices); def != nil {
		b.WriteString(p.colorScheme.Default.Paint("(" + displayAnswer(def) + ")"))
		b.WriteString(" ")
	}
	if p.status == StatusHelp && p.choices.Len() > 0 {
		b.WriteString(p.colorScheme.Hint.Paint(p.helpText()))
	}
	return b.String()
}
