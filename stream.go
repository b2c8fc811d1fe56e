package auth

import "sync"

// userStream is the one piece of shared mutable state in the core: the
// current user, written only by the Service and read by arbitrarily many
// subscribers. Each subscriber gets a buffered channel that immediately
// replays the last published value, mirroring behavior-subject semantics.
type userStream struct {
	mu          sync.RWMutex
	current     *User
	subscribers map[chan *User]struct{}
}

func newUserStream() *userStream {
	return &userStream{
		subscribers: make(map[chan *User]struct{}),
	}
}

func (s *userStream) publish(user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = user
	for ch := range s.subscribers {
		// Drop the stale value if the subscriber has not drained it yet so
		// publish never blocks the writer.
		select {
		case <-ch:
		default:
		}
		ch <- user
	}
}

func (s *userStream) value() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *userStream) subscribe() chan *User {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan *User, 1)
	ch <- s.current
	s.subscribers[ch] = struct{}{}
	return ch
}

func (s *userStream) unsubscribe(ch chan *User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subscribers[ch]; ok {
		delete(s.subscribers, ch)
		close(ch)
	}
}
