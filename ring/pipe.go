//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package ring

import (
	"errors"
	"fmt"
	"io"

	"github.com/markkurossi/ringeval/p2p"
	"golang.org/x/xerrors"
)

// Frame types of the pipe transport. Each connection starts with a
// hello frame carrying the sender's party ID, followed by data frames
// and an optional close frame.
const (
	frameHello byte = iota + 1
	frameData
	frameClose
)

func sendHello(conn *p2p.Conn, from PartyID) error {
	if err := conn.NeedSpace(3); err != nil {
		return err
	}
	if err := conn.SendByte(frameHello); err != nil {
		return err
	}
	if err := conn.SendUint16(int(from)); err != nil {
		return err
	}
	return conn.Flush()
}

func sendClose(conn *p2p.Conn, reason string) error {
	if err := conn.SendByte(frameClose); err != nil {
		return err
	}
	if err := conn.SendString(reason); err != nil {
		return err
	}
	return conn.Flush()
}

type connSender struct {
	conn *p2p.Conn
}

func (s *connSender) Send(data []byte) error {
	if err := s.conn.SendByte(frameData); err != nil {
		return err
	}
	if err := s.conn.SendData(data); err != nil {
		return err
	}
	return s.conn.Flush()
}

// pump moves framed messages from the connection into the unbounded
// receive queue so that senders never block on a slow receiver. The
// hello frame must come from the expected peer. On protocol errors the
// connection is aborted so the peer's writes fail.
func pump(conn *p2p.Conn, peer PartyID, q *queue) {
	err := receiveFrames(conn, peer, q)
	q.close(err)
	if !errors.Is(err, ErrClosed) {
		conn.Abort()
	}
}

func receiveFrames(conn *p2p.Conn, peer PartyID, q *queue) error {
	for hello := true; ; hello = false {
		ft, err := conn.ReceiveByte()
		if err != nil {
			return connError(err)
		}
		if hello != (ft == frameHello) {
			return xerrors.Errorf("ring: unexpected frame %d from %v",
				ft, peer)
		}
		switch ft {
		case frameHello:
			from, err := conn.ReceiveUint16()
			if err != nil {
				return connError(err)
			}
			if PartyID(from) != peer {
				return xerrors.Errorf("ring: hello from %v, expected %v",
					PartyID(from), peer)
			}

		case frameData:
			data, err := conn.ReceiveData()
			if err != nil {
				return connError(err)
			}
			if err := q.push(data); err != nil {
				return err
			}

		case frameClose:
			reason, err := conn.ReceiveString()
			if err != nil {
				return connError(err)
			}
			return xerrors.Errorf("%w by %v: %s", ErrClosed, peer, reason)

		default:
			return xerrors.Errorf("ring: unknown frame %d from %v", ft, peer)
		}
	}
}

func connError(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) {
		return ErrClosed
	}
	return err
}

// NewPipeSet creates a ring channel set where each pair of neighbors
// is connected with a framed p2p.Pipe connection.
func NewPipeSet(opts ...Option) *Set {
	o := applyOptions(opts)

	// conns[p][0] connects p to its next, conns[p][1] to its previous.
	var conns [NumParties][2]*p2p.Conn
	for _, id := range Parties() {
		c0, c1 := p2p.Pipe()
		conns[id][0] = c0
		conns[id.Next()][1] = c1
	}

	var queues []*queue
	set := new(Set)
	for _, id := range Parties() {
		next := conns[id][0]
		prev := conns[id][1]

		qNext := newQueue()
		qPrev := newQueue()
		queues = append(queues, qNext, qPrev)
		go pump(next, id.Next(), qNext)
		go pump(prev, id.Prev(), qPrev)

		set.Parties[id] = &Channels{
			ID: id,
			TxNext: &connSender{
				conn: next,
			},
			RxNext: &queueReceiver{
				q:       qNext,
				timeout: o.timeout,
			},
			TxPrev: &connSender{
				conn: prev,
			},
			RxPrev: &queueReceiver{
				q:       qPrev,
				timeout: o.timeout,
			},
			stats: func() p2p.IOStats {
				return next.Stats.Add(prev.Stats)
			},
		}
	}
	for _, id := range Parties() {
		for _, c := range conns[id] {
			if err := sendHello(c, id); err != nil {
				panic(fmt.Sprintf("ring: pipe hello: %v", err))
			}
		}
	}
	set.abort = func() {
		for _, q := range queues {
			q.close(ErrClosed)
		}
		for _, pair := range conns {
			for _, c := range pair {
				c.Abort()
			}
		}
	}
	set.close = func() error {
		var result error
		for _, pair := range conns {
			for _, c := range pair {
				// The peer may have closed first.
				sendClose(c, "session closed")
				if err := c.Close(); err != nil && result == nil &&
					!errors.Is(err, io.ErrClosedPipe) {
					result = err
				}
			}
		}
		for _, q := range queues {
			q.close(ErrClosed)
		}
		return result
	}
	return set
}
