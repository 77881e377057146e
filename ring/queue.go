//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package ring

import (
	"sync"
	"time"
)

// queue implements an unbounded FIFO message queue with a single
// consumer. Pushes never block.
type queue struct {
	m      sync.Mutex
	items  [][]byte
	closed bool
	err    error
	signal chan struct{}
}

func newQueue() *queue {
	return &queue{
		signal: make(chan struct{}, 1),
	}
}

func (q *queue) notify() {
	select {
	case q.signal <- struct{}{}:
	default:
	}
}

func (q *queue) push(data []byte) error {
	q.m.Lock()
	if q.closed {
		err := q.err
		q.m.Unlock()
		return err
	}
	q.items = append(q.items, data)
	q.m.Unlock()

	q.notify()
	return nil
}

// pop removes the oldest message from the queue. It blocks until a
// message is available, the queue is closed, or the timeout expires.
// Zero timeout blocks forever. Messages pushed before close are still
// delivered.
func (q *queue) pop(timeout time.Duration) ([]byte, error) {
	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}
	for {
		q.m.Lock()
		if len(q.items) > 0 {
			data := q.items[0]
			q.items[0] = nil
			q.items = q.items[1:]
			q.m.Unlock()
			return data, nil
		}
		if q.closed {
			err := q.err
			q.m.Unlock()
			return nil, err
		}
		q.m.Unlock()

		select {
		case <-q.signal:
		case <-expired:
			return nil, ErrTimeout
		}
	}
}

func (q *queue) close(err error) {
	q.m.Lock()
	if !q.closed {
		q.closed = true
		q.err = err
	}
	q.m.Unlock()

	q.notify()
}

func (q *queue) len() int {
	q.m.Lock()
	defer q.m.Unlock()
	return len(q.items)
}
