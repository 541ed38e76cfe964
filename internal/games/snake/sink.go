package snake

import "sync"

// EventSink receives engine events. Publish must not block.
type EventSink interface {
	Publish(evt Event)
}

// ChannelSink is an EventSink backed by a buffered channel.
// When the buffer is full the oldest event is dropped so the tick loop never waits.
type ChannelSink struct {
	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
}

// NewChannelSink creates a sink. bufferSize controls how many events can be
// buffered before dropping.
func NewChannelSink(bufferSize int) *ChannelSink {
	if bufferSize < 1 {
		bufferSize = 256 // Default buffer size
	}
	return &ChannelSink{
		events: make(chan Event, bufferSize),
		done:   make(chan struct{}),
	}
}

// Publish sends an event, dropping the oldest one if the buffer is full.
func (s *ChannelSink) Publish(evt Event) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- evt:
	default:
		// Buffer full, drop oldest and retry
		select {
		case <-s.events:
		default:
		}
		select {
		case s.events <- evt:
		default:
		}
	}
}

// Events returns the channel to receive events from.
func (s *ChannelSink) Events() <-chan Event {
	return s.events
}

// Drain returns every buffered event without blocking.
func (s *ChannelSink) Drain() []Event {
	var out []Event
	for {
		select {
		case evt := <-s.events:
			out = append(out, evt)
		default:
			return out
		}
	}
}

// Close stops accepting events. Safe to call multiple times.
func (s *ChannelSink) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

// Done returns a channel that closes when the sink is closed.
func (s *ChannelSink) Done() <-chan struct{} {
	return s.done
}

type discardSink struct{}

func (discardSink) Publish(Event) {}
