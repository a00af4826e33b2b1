package enquire

import (
	"context"
	"sync"
)

// EventKind identifies the class of an input event.
type EventKind int

const (
	// EventKeypress is a single normalized key.
	EventKeypress EventKind = iota
	// EventLine is a submitted line of input.
	EventLine
	// EventError is an error raised by the input collaborator.
	EventError
)

// String returns the event class name.
func (k EventKind) String() string {
	switch k {
	case EventKeypress:
		return "keypress"
	case EventLine:
		return "line"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is an entry in the input event queue.
type Event struct {
	Kind EventKind
	Key  *KeyEvent // set for EventKeypress
	Line string    // line buffer snapshot for EventKeypress, submitted text for EventLine
	Err  error     // set for EventError
}

// stream is the FIFO event queue shared by the terminal reader and
// scripted emitters. It also owns the line buffer: printable keys are
// inserted, backspace deletes, enter queues a line event and resets.
type stream struct {
	mu     sync.Mutex
	queue  []Event
	line   []rune
	err    error
	ready  chan struct{}
	keyMap *KeyMap
}

func newStream(keyMap *KeyMap) *stream {
	if keyMap == nil {
		keyMap = NewDefaultKeyMap()
	}
	return &stream{
		ready:  make(chan struct{}, 1),
		keyMap: keyMap,
	}
}

// next blocks until an event is queued, the input is exhausted or ctx is done.
// Queued events are always delivered before the terminal error.
func (s *stream) next(ctx context.Context) (Event, error) {
	for {
		s.mu.Lock()
		if len(s.queue) > 0 {
			ev := s.queue[0]
			s.queue = s.queue[1:]
			s.mu.Unlock()
			return ev, nil
		}
		err := s.err
		s.mu.Unlock()
		if err != nil {
			return Event{}, err
		}

		select {
		case <-ctx.Done():
			return Event{}, ctx.Err()
		case <-s.ready:
		}
	}
}

func (s *stream) push(evs ...Event) {
	s.mu.Lock()
	s.queue = append(s.queue, evs...)
	s.mu.Unlock()
	s.signal()
}

func (s *stream) signal() {
	select {
	case s.ready <- struct{}{}:
	default:
	}
}

// close marks the input as exhausted. Only the first error is kept.
func (s *stream) close(err error) {
	s.mu.Lock()
	if s.err == nil {
		s.err = err
	}
	s.mu.Unlock()
	s.signal()
}

// pending returns the number of queued events.
func (s *stream) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// keypress emits value as key input. Without an explicit key descriptor
// every rune of value is decoded and fed separately, so "foo\n" becomes
// four keypresses followed by a line event.
func (s *stream) keypress(value string, key *KeyEvent) {
	if key == nil {
		for _, r := range value {
			s.feed(s.keyMap.Decode(r))
		}
		return
	}

	k := *key
	if k.Value == "" {
		k.Value = value
	}
	if k.Name == "" {
		for _, r := range k.Value {
			decoded := s.keyMap.Decode(r)
			k.Name = decoded.Name
			k.Ctrl = k.Ctrl || decoded.Ctrl
			k.Shift = k.Shift || decoded.Shift
			break
		}
	}
	s.feed(k)
}

// feed applies a decoded key to the line buffer and queues the resulting events.
func (s *stream) feed(k KeyEvent) {
	s.mu.Lock()
	switch {
	case isSubmitKey(k):
		line := string(s.line)
		s.line = s.line[:0]
		s.queue = append(s.queue,
			Event{Kind: EventKeypress, Key: &k, Line: line},
			Event{Kind: EventLine, Line: line},
		)
	case k.Ctrl && k.Name == "c":
		s.queue = append(s.queue,
			Event{Kind: EventKeypress, Key: &k, Line: string(s.line)},
			Event{Kind: EventError, Err: ErrInterrupted},
		)
	case k.Name == "backspace":
		if len(s.line) > 0 {
			s.line = s.line[:len(s.line)-1]
		}
		s.queue = append(s.queue, Event{Kind: EventKeypress, Key: &k, Line: string(s.line)})
	default:
		if insertable(k) {
			s.line = append(s.line, []rune(k.Value)...)
		}
		s.queue = append(s.queue, Event{Kind: EventKeypress, Key: &k, Line: string(s.line)})
	}
	s.mu.Unlock()
	s.signal()
}

func (s *stream) getLine() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.line)
}

func (s *stream) setLine(line string) {
	s.mu.Lock()
	s.line = []rune(line)
	s.mu.Unlock()
}
