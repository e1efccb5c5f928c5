package launch

import (
	"sync"
)

// Stream is an ordered queue of work. Tasks run one at a time, in submission order,
// on the stream's own goroutine.
type Stream struct {
	tasks chan func() error
	wg    sync.WaitGroup

	mu     sync.Mutex
	err    error // first failure since the last Synchronize
	closed bool
}

// NewStream starts a stream whose queue holds up to depth pending tasks.
func NewStream(depth int) *Stream {
	s := &Stream{tasks: make(chan func() error, max(depth, 1))}
	go s.worker()
	return s
}

func (s *Stream) worker() {
	for task := range s.tasks {
		if err := task(); err != nil {
			s.mu.Lock()
			if s.err == nil {
				s.err = err
			}
			s.mu.Unlock()
		}
		s.wg.Done()
	}
}

// Submit enqueues task. It blocks while the queue is full.
func (s *Stream) Submit(task func() error) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStreamClosed
	}
	s.wg.Add(1)
	s.mu.Unlock()

	s.tasks <- task
	return nil
}

// Synchronize waits for every submitted task and returns the first error any of them
// produced since the previous Synchronize.
func (s *Stream) Synchronize() error {
	s.wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.err
	s.err = nil
	return err
}

// Close drains the queue and stops the worker. Submitting afterwards fails.
func (s *Stream) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	err := s.Synchronize()
	close(s.tasks)
	return err
}
