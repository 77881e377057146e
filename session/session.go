//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package session runs graph evaluation sessions between the three
// ring parties.
package session

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/markkurossi/ringeval/env"
	"github.com/markkurossi/ringeval/eval"
	"github.com/markkurossi/ringeval/graph"
	"github.com/markkurossi/ringeval/logging"
	"github.com/markkurossi/ringeval/p2p"
	"github.com/markkurossi/ringeval/party"
	"github.com/markkurossi/ringeval/ring"
	"github.com/markkurossi/ringeval/types"
	"github.com/rs/xid"
	"golang.org/x/xerrors"
)

// ErrInputCount is returned when the number of inputs and ownership
// tags differ.
var ErrInputCount = xerrors.New("session: input and ownership tag count mismatch")

// Result holds the outputs of a session.
type Result struct {
	ID      string
	Outputs [ring.NumParties]types.Value
	Stats   [ring.NumParties]p2p.IOStats
	Timing  *Timing
}

// Run evaluates the graph g in three concurrent parties connected in
// a ring. The inputs are redacted for each party according to their
// ownership tags. The config may be nil in which case the default
// configuration is used. Run returns an error if any of the parties
// fails.
func Run(g *graph.Graph, inputs []types.Value, tags []Ownership,
	config *env.Config) (*Result, error) {

	if config == nil {
		config = env.Default()
	}
	if len(inputs) != len(tags) {
		return nil, xerrors.Errorf("%d inputs, %d tags: %w",
			len(inputs), len(tags), ErrInputCount)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	codec, err := party.NewCodec(config.Codec)
	if err != nil {
		return nil, err
	}
	seeds, err := partySeeds(config)
	if err != nil {
		return nil, err
	}

	result := &Result{
		ID:     xid.New().String(),
		Timing: NewTiming(),
	}
	log := logging.New(config.LogLevel).With().
		Str("session", result.ID).Logger()

	if config.VerifySchedule {
		sched, err := g.VerifySchedule()
		if err != nil {
			return nil, err
		}
		log.Debug().Int("messages", sched.Total()).Msg("schedule verified")
	}
	result.Timing.Sample("Verify")

	redacted := RedactAll(inputs, tags)
	result.Timing.Sample("Redact")

	var opts []ring.Option
	if config.ReceiveTimeout > 0 {
		opts = append(opts, ring.WithReceiveTimeout(config.ReceiveTimeout))
	}
	var set *ring.Set
	switch config.Transport {
	case env.TransportPipe:
		set = ring.NewPipeSet(opts...)
	default:
		set = ring.NewChannelSet(opts...)
	}

	evaluators := make([]*party.Evaluator, ring.NumParties)
	for _, id := range ring.Parties() {
		evaluators[id], err = party.New(id, set.Parties[id], seeds[id],
			party.WithCodec(codec), party.WithLogger(log))
		if err != nil {
			set.Close()
			return nil, err
		}
	}
	result.Timing.Sample("Init")

	log.Info().Str("graph", g.String()).Msg("session started")

	errs := make([]error, ring.NumParties)
	sample := result.Timing.Sample("Eval")
	var wg sync.WaitGroup
	var m sync.Mutex

	for _, ev := range evaluators {
		wg.Add(1)
		go func(ev *party.Evaluator) {
			defer wg.Done()
			id := ev.ID()
			output, err := runParty(g, redacted[id], ev)
			if err != nil {
				errs[id] = err
				set.Abort()
				return
			}
			result.Outputs[id] = output

			m.Lock()
			sample.SubSample(id.String(), time.Now())
			m.Unlock()
		}(ev)
	}
	wg.Wait()
	sample.End = time.Now()

	for _, ev := range evaluators {
		result.Stats[ev.ID()] = ev.Stats()
	}
	if err := set.Close(); err != nil {
		log.Warn().Err(err).Msg("close failed")
	}

	if err := firstError(errs); err != nil {
		log.Error().Err(err).Msg("session failed")
		return nil, err
	}
	log.Info().Dur("elapsed", result.Timing.Total()).Msg("session completed")

	return result, nil
}

func runParty(g *graph.Graph, inputs []types.Value, ev *party.Evaluator) (
	types.Value, error) {

	output, err := eval.Run(g, inputs, ev)
	if err != nil {
		return types.Value{}, xerrors.Errorf("%v: %w", ev.ID(), err)
	}
	return output, nil
}

// firstError returns the error that caused the session to fail.
// Errors of parties unblocked by the abort are reported only if no
// party failed for another reason.
func firstError(errs []error) error {
	var closed error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if !errors.Is(err, ring.ErrClosed) {
			return err
		}
		if closed == nil {
			closed = err
		}
	}
	return closed
}

// partySeeds returns the randomness seeds of the parties. Seeds not
// set in the configuration are read from the config's entropy source.
func partySeeds(config *env.Config) ([ring.NumParties][]byte, error) {
	var seeds [ring.NumParties][]byte
	for _, id := range ring.Parties() {
		seed, err := config.Seed(int(id))
		if err != nil {
			return seeds, err
		}
		if seed == nil {
			seed = make([]byte, eval.SeedSize)
			if _, err := io.ReadFull(config.GetRandom(), seed); err != nil {
				return seeds, err
			}
		}
		for i := 0; i < int(id); i++ {
			if bytes.Equal(seeds[i], seed) {
				return seeds, xerrors.Errorf("%v and %v have the same seed",
					ring.PartyID(i), id)
			}
		}
		seeds[id] = seed
	}
	return seeds, nil
}
