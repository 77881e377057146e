//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package ring implements the channel set connecting the three
// parties into a ring. Each of the six directed edges is FIFO and
// unbounded; there is no ordering between distinct edges.
package ring

import (
	"time"

	"github.com/markkurossi/ringeval/p2p"
	"golang.org/x/xerrors"
)

var (
	// ErrClosed is returned when receiving from or sending to a
	// closed channel.
	ErrClosed = xerrors.New("ring: channel closed")

	// ErrTimeout is returned when a receive timeout expires.
	ErrTimeout = xerrors.New("ring: receive timeout")
)

// Sender is the sending endpoint of a directed ring edge.
type Sender interface {
	Send(data []byte) error
}

// Receiver is the receiving endpoint of a directed ring edge.
type Receiver interface {
	Receive() ([]byte, error)
}

// Channels bundles the endpoints one party owns: a send and a receive
// endpoint towards each of its two neighbors.
type Channels struct {
	ID     PartyID
	TxNext Sender
	RxNext Receiver
	TxPrev Sender
	RxPrev Receiver

	stats func() p2p.IOStats
}

// Tx returns the send endpoint towards the party to.
func (c *Channels) Tx(to PartyID) (Sender, error) {
	switch to {
	case c.ID.Next():
		return c.TxNext, nil
	case c.ID.Prev():
		return c.TxPrev, nil
	default:
		return nil, xerrors.Errorf("%v: no channel to %v", c.ID, to)
	}
}

// Rx returns the receive endpoint from the party from.
func (c *Channels) Rx(from PartyID) (Receiver, error) {
	switch from {
	case c.ID.Next():
		return c.RxNext, nil
	case c.ID.Prev():
		return c.RxPrev, nil
	default:
		return nil, xerrors.Errorf("%v: no channel from %v", c.ID, from)
	}
}

// Stats returns the I/O statistics of the party's endpoints.
func (c *Channels) Stats() p2p.IOStats {
	if c.stats == nil {
		return p2p.NewIOStats()
	}
	return c.stats()
}

// Set is the ring channel set of one session.
type Set struct {
	Parties [NumParties]*Channels
	abort   func()
	close   func() error
}

// Abort closes all edges immediately. Parties blocked in a receive
// return ErrClosed. Abort may be called while parties are running.
func (s *Set) Abort() {
	s.abort()
}

// Close releases the channel set. It must be called after all parties
// have stopped using their endpoints.
func (s *Set) Close() error {
	return s.close()
}

// Option configures a channel set.
type Option func(o *options)

type options struct {
	timeout time.Duration
}

// WithReceiveTimeout sets a receive timeout for all receive
// endpoints. Zero timeout blocks forever.
func WithReceiveTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type queueSender struct {
	q     *queue
	stats p2p.IOStats
}

func (s *queueSender) Send(data []byte) error {
	if err := s.q.push(data); err != nil {
		return err
	}
	s.stats.Sent.Add(uint64(len(data)))
	s.stats.Flushed.Add(1)
	return nil
}

// queueReceiver receives from a queue. The stats are optional and
// they are not updated if the queue is filled by a connection pump.
type queueReceiver struct {
	q       *queue
	stats   p2p.IOStats
	timeout time.Duration
}

func (r *queueReceiver) Receive() ([]byte, error) {
	data, err := r.q.pop(r.timeout)
	if err != nil {
		return nil, err
	}
	if r.stats.Recvd != nil {
		r.stats.Recvd.Add(uint64(len(data)))
	}
	return data, nil
}

// NewChannelSet creates a ring channel set of six in-memory queues.
func NewChannelSet(opts ...Option) *Set {
	o := applyOptions(opts)

	// edges[from][to]
	var edges [NumParties][NumParties]*queue
	var all []*queue
	for _, from := range Parties() {
		for _, to := range []PartyID{from.Next(), from.Prev()} {
			q := newQueue()
			edges[from][to] = q
			all = append(all, q)
		}
	}

	set := new(Set)
	for _, id := range Parties() {
		stats := p2p.NewIOStats()
		set.Parties[id] = &Channels{
			ID: id,
			TxNext: &queueSender{
				q:     edges[id][id.Next()],
				stats: stats,
			},
			RxNext: &queueReceiver{
				q:       edges[id.Next()][id],
				stats:   stats,
				timeout: o.timeout,
			},
			TxPrev: &queueSender{
				q:     edges[id][id.Prev()],
				stats: stats,
			},
			RxPrev: &queueReceiver{
				q:       edges[id.Prev()][id],
				stats:   stats,
				timeout: o.timeout,
			},
			stats: func() p2p.IOStats {
				return stats
			},
		}
	}
	set.abort = func() {
		for _, q := range all {
			q.close(ErrClosed)
		}
	}
	set.close = func() error {
		set.abort()
		return nil
	}
	return set
}
