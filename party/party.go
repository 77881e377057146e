//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package party implements the per-party node evaluator that performs
// the ring communication at synchronization nodes.
package party

import (
	"github.com/markkurossi/ringeval/eval"
	"github.com/markkurossi/ringeval/graph"
	"github.com/markkurossi/ringeval/logging"
	"github.com/markkurossi/ringeval/p2p"
	"github.com/markkurossi/ringeval/ring"
	"github.com/markkurossi/ringeval/types"
	"github.com/rs/zerolog"
	"golang.org/x/xerrors"
)

var (
	_ eval.Evaluator = &Evaluator{}
)

// Evaluator evaluates graph nodes for one ring party. It computes node
// values with its local evaluator and exchanges values with its ring
// neighbors at synchronization nodes.
type Evaluator struct {
	id       ring.PartyID
	channels *ring.Channels
	local    eval.Evaluator
	codec    Codec
	log      zerolog.Logger
}

// Option configures an Evaluator.
type Option func(e *Evaluator)

// WithCodec sets the wire codec. The default codec is JSONCodec.
func WithCodec(codec Codec) Option {
	return func(e *Evaluator) {
		e.codec = codec
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Evaluator) {
		e.log = logging.Party(logger, e.id)
	}
}

// WithLocal sets the local node evaluator. The default evaluator is
// eval.Simple seeded with the seed argument of New.
func WithLocal(local eval.Evaluator) Option {
	return func(e *Evaluator) {
		e.local = local
	}
}

// New creates an evaluator for the party id using its ring channel
// endpoints. The seed keys the party's private randomness; nil seed
// selects a random seed.
func New(id ring.PartyID, channels *ring.Channels, seed []byte,
	opts ...Option) (*Evaluator, error) {

	if !id.Valid() {
		return nil, xerrors.Errorf("invalid party %d", id)
	}
	if channels == nil || channels.ID != id {
		return nil, xerrors.Errorf("%v: invalid channels", id)
	}
	e := &Evaluator{
		id:       id,
		channels: channels,
		codec:    JSONCodec{},
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.local == nil {
		local, err := eval.NewSimple(seed)
		if err != nil {
			return nil, err
		}
		e.local = local
	}
	return e, nil
}

// ID returns the party ID.
func (e *Evaluator) ID() ring.PartyID {
	return e.id
}

// Stats returns the I/O statistics of the party's channels.
func (e *Evaluator) Stats() p2p.IOStats {
	return e.channels.Stats()
}

// EvaluateNode implements eval.Evaluator.EvaluateNode.
func (e *Evaluator) EvaluateNode(n *graph.Node, deps []types.Value) (
	types.Value, error) {

	value, err := e.local.EvaluateNode(n, deps)
	if err != nil {
		return types.Value{}, err
	}
	if n.Op != graph.NOP {
		return value, nil
	}
	for _, a := range n.Annotations {
		switch a.Kind {
		case graph.Send:
			switch e.id {
			case a.Sender:
				err = e.send(n, a.Receiver, value)
			case a.Receiver:
				value, err = e.receive(n, a.Sender)
			}
			if err != nil {
				return types.Value{}, err
			}

		default:
			return types.Value{}, xerrors.Errorf("%v: node %d: "+
				"unsupported annotation %v", e.id, n.ID, a)
		}
	}
	return value, nil
}

func (e *Evaluator) send(n *graph.Node, to ring.PartyID,
	value types.Value) error {

	tx, err := e.channels.Tx(to)
	if err != nil {
		return err
	}
	data, err := e.codec.Encode(value)
	if err != nil {
		return xerrors.Errorf("%v: node %d: encode: %w", e.id, n.ID, err)
	}
	e.log.Debug().Int("node", n.ID).Stringer("to", to).
		Int("bytes", len(data)).Msg("send")
	if err := tx.Send(data); err != nil {
		return xerrors.Errorf("%v: node %d: send to %v: %w",
			e.id, n.ID, to, err)
	}
	return nil
}

func (e *Evaluator) receive(n *graph.Node, from ring.PartyID) (
	types.Value, error) {

	rx, err := e.channels.Rx(from)
	if err != nil {
		return types.Value{}, err
	}
	data, err := rx.Receive()
	if err != nil {
		return types.Value{}, xerrors.Errorf("%v: node %d: receive from %v: %w",
			e.id, n.ID, from, err)
	}
	value, err := e.codec.Decode(data)
	if err != nil {
		return types.Value{}, xerrors.Errorf("%v: node %d: decode: %w",
			e.id, n.ID, err)
	}
	e.log.Debug().Int("node", n.ID).Stringer("from", from).
		Int("bytes", len(data)).Msg("receive")
	return value, nil
}
