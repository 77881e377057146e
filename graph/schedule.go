//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package graph

import (
	"fmt"
	"strings"

	"github.com/markkurossi/ringeval/ring"
	"golang.org/x/xerrors"
)

// Schedule describes the message traffic of a graph evaluation.
type Schedule struct {
	// Messages counts the messages sent on each directed edge,
	// indexed by [sender][receiver].
	Messages [ring.NumParties][ring.NumParties]int
	// Steps is the number of simulation rounds until all parties
	// completed.
	Steps int
}

// Total returns the total number of messages.
func (s *Schedule) Total() int {
	var sum int
	for _, row := range s.Messages {
		for _, v := range row {
			sum += v
		}
	}
	return sum
}

// DeadlockError reports parties that can never complete their
// evaluation, and the nodes where they are blocked.
type DeadlockError struct {
	Blocked map[ring.PartyID]int
}

func (e *DeadlockError) Error() string {
	var parts []string
	for _, id := range ring.Parties() {
		node, ok := e.Blocked[id]
		if ok {
			parts = append(parts, fmt.Sprintf("%v at node %d", id, node))
		}
	}
	return "deadlock: " + strings.Join(parts, ", ")
}

type position struct {
	node int
	ann  int
}

// VerifySchedule verifies the schedule where all parties evaluate the
// nodes in graph order.
func (g *Graph) VerifySchedule() (*Schedule, error) {
	var orders [ring.NumParties][]int
	for i := range orders {
		orders[i] = make([]int, len(g.Nodes))
		for id := range g.Nodes {
			orders[i][id] = id
		}
	}
	return g.VerifyOrders(orders)
}

// VerifyOrders simulates the three parties evaluating the nodes in the
// argument per-party orders over unbounded FIFO edges. It returns a
// DeadlockError if some receive can never complete, and an error if a
// receive would get a message sent for a different annotation.
func (g *Graph) VerifyOrders(orders [ring.NumParties][]int) (
	*Schedule, error) {

	if err := g.Validate(); err != nil {
		return nil, err
	}
	for _, id := range ring.Parties() {
		if err := g.checkOrder(orders[id]); err != nil {
			return nil, xerrors.Errorf("%v: %w", id, err)
		}
	}

	sched := new(Schedule)
	var pending [ring.NumParties][ring.NumParties][]position
	var pc [ring.NumParties]int
	var ann [ring.NumParties]int

	done := func(id ring.PartyID) bool {
		return pc[id] >= len(orders[id])
	}

	for {
		progress := false
		finished := true

		for _, id := range ring.Parties() {
			for !done(id) {
				nodeID := orders[id][pc[id]]
				n := g.Nodes[nodeID]
				if n.Op != NOP || ann[id] >= len(n.Annotations) {
					pc[id]++
					ann[id] = 0
					progress = true
					continue
				}
				a := n.Annotations[ann[id]]
				here := position{
					node: nodeID,
					ann:  ann[id],
				}
				if a.Sender == id {
					pending[id][a.Receiver] = append(pending[id][a.Receiver],
						here)
					sched.Messages[id][a.Receiver]++
				} else if a.Receiver == id {
					queue := pending[a.Sender][id]
					if len(queue) == 0 {
						break
					}
					if queue[0] != here {
						return nil, xerrors.Errorf("%v: node %d receives message "+
							"sent at node %d", id, nodeID, queue[0].node)
					}
					pending[a.Sender][id] = queue[1:]
				}
				ann[id]++
				progress = true
			}
			if !done(id) {
				finished = false
			}
		}
		sched.Steps++
		if finished {
			break
		}
		if !progress {
			err := &DeadlockError{
				Blocked: make(map[ring.PartyID]int),
			}
			for _, id := range ring.Parties() {
				if !done(id) {
					err.Blocked[id] = orders[id][pc[id]]
				}
			}
			return nil, err
		}
	}
	return sched, nil
}

// checkOrder verifies that order is a permutation of the graph nodes
// consistent with the node dependencies.
func (g *Graph) checkOrder(order []int) error {
	if len(order) != len(g.Nodes) {
		return xerrors.Errorf("order has %d nodes, graph has %d",
			len(order), len(g.Nodes))
	}
	seen := make([]bool, len(g.Nodes))
	for _, id := range order {
		if id < 0 || id >= len(g.Nodes) || seen[id] {
			return xerrors.Errorf("invalid node %d in order", id)
		}
		for _, dep := range g.Nodes[id].Deps {
			if !seen[dep] {
				return xerrors.Errorf("node %d ordered before its dependency %d",
					id, dep)
			}
		}
		seen[id] = true
	}
	return nil
}
