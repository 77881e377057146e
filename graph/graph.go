//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

// Package graph implements compiled computation graphs evaluated by
// the three ring parties.
package graph

import (
	"fmt"
	"strings"

	"github.com/markkurossi/ringeval/ring"
	"github.com/markkurossi/ringeval/types"
	"golang.org/x/xerrors"
)

// Operation specifies node function.
type Operation byte

// Node functions.
const (
	Input Operation = iota
	Constant
	Random
	Add
	Subtract
	Multiply
	Negate
	MatMul
	Sum
	NOP
)

// NumOperations is the number of node functions.
const NumOperations = int(NOP) + 1

var operationNames = map[Operation]string{
	Input:    "input",
	Constant: "constant",
	Random:   "random",
	Add:      "add",
	Subtract: "subtract",
	Multiply: "multiply",
	Negate:   "negate",
	MatMul:   "matmul",
	Sum:      "sum",
	NOP:      "nop",
}

func (op Operation) String() string {
	name, ok := operationNames[op]
	if ok {
		return name
	}
	return fmt.Sprintf("{Operation %d}", op)
}

// ParseOperation parses the operation name.
func ParseOperation(name string) (Operation, error) {
	for op, n := range operationNames {
		if n == name {
			return op, nil
		}
	}
	return 0, xerrors.Errorf("unknown operation '%s'", name)
}

// Arity returns the number of dependencies the operation takes.
func (op Operation) Arity() int {
	switch op {
	case Input, Constant, Random:
		return 0
	case Negate, Sum, NOP:
		return 1
	case Add, Subtract, Multiply, MatMul:
		return 2
	default:
		return -1
	}
}

// AnnotationKind specifies node annotation types.
type AnnotationKind byte

// Annotation kinds.
const (
	Send AnnotationKind = iota
)

func (k AnnotationKind) String() string {
	switch k {
	case Send:
		return "send"
	default:
		return fmt.Sprintf("{AnnotationKind %d}", k)
	}
}

// Annotation annotates a node. Send annotations specify that at this
// node Sender transmits its value to Receiver, and Receiver replaces
// its local value with the received one.
type Annotation struct {
	Kind     AnnotationKind
	Sender   ring.PartyID
	Receiver ring.PartyID
}

// SendAnnotation creates a Send annotation.
func SendAnnotation(sender, receiver ring.PartyID) Annotation {
	return Annotation{
		Kind:     Send,
		Sender:   sender,
		Receiver: receiver,
	}
}

func (a Annotation) String() string {
	switch a.Kind {
	case Send:
		return fmt.Sprintf("Send(%d→%d)", a.Sender, a.Receiver)
	default:
		return a.Kind.String()
	}
}

// Node specifies a graph node. Node IDs are node indices in the
// graph.
type Node struct {
	ID          int
	Name        string
	Op          Operation
	Deps        []int
	Type        types.Info
	Index       int
	Value       types.Value
	Annotations []Annotation
}

func (n *Node) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s", n.Op)
	switch n.Op {
	case Input:
		fmt.Fprintf(&sb, "[%d] %v", n.Index, n.Type.ShortString())
	case Random:
		fmt.Fprintf(&sb, " %v", n.Type.ShortString())
	case Constant:
		fmt.Fprintf(&sb, " %v", n.Value)
	}
	if len(n.Deps) > 0 {
		fmt.Fprintf(&sb, " %v", n.Deps)
	}
	for _, a := range n.Annotations {
		fmt.Fprintf(&sb, " %v", a)
	}
	return sb.String()
}

// IsSync tests if the node is a synchronization node carrying Send
// annotations.
func (n *Node) IsSync() bool {
	return n.Op == NOP && len(n.Annotations) > 0
}

// Graph specifies a computation graph.
type Graph struct {
	Nodes  []*Node
	Output int
}

func (g *Graph) String() string {
	stats := g.Stats()
	var ops string

	for op := Operation(0); int(op) < NumOperations; op++ {
		v := stats.Ops[op]
		if v == 0 {
			continue
		}
		if len(ops) > 0 {
			ops += " "
		}
		ops += fmt.Sprintf("%s=%d", op, v)
	}
	return fmt.Sprintf("#nodes=%d (%s) #sends=%d", len(g.Nodes), ops,
		stats.Sends)
}

// Dump prints a debug dump of the graph.
func (g *Graph) Dump() {
	fmt.Printf("graph %s\n", g)
	for id, node := range g.Nodes {
		var mark string
		if id == g.Output {
			mark = " <- output"
		}
		fmt.Printf("%04d\t%s%s\n", id, node, mark)
	}
}

// NumInputs returns the number of input values the graph consumes.
func (g *Graph) NumInputs() int {
	var count int
	for _, n := range g.Nodes {
		if n.Op == Input && n.Index+1 > count {
			count = n.Index + 1
		}
	}
	return count
}

// Validate checks that the graph is well-formed: node IDs match their
// positions, dependencies refer to earlier nodes, operations have
// correct arity, and Send annotations appear only on NOP nodes and
// name distinct valid parties.
func (g *Graph) Validate() error {
	if len(g.Nodes) == 0 {
		return xerrors.Errorf("empty graph")
	}
	if g.Output < 0 || g.Output >= len(g.Nodes) {
		return xerrors.Errorf("invalid output node %d", g.Output)
	}
	for id, n := range g.Nodes {
		if n.ID != id {
			return xerrors.Errorf("node %d: invalid ID %d", id, n.ID)
		}
		arity := n.Op.Arity()
		if arity < 0 {
			return xerrors.Errorf("node %d: invalid operation %v", id, n.Op)
		}
		if len(n.Deps) != arity {
			return xerrors.Errorf("node %d: %v expects %d dependencies, got %d",
				id, n.Op, arity, len(n.Deps))
		}
		for _, dep := range n.Deps {
			if dep < 0 || dep >= id {
				return xerrors.Errorf("node %d: invalid dependency %d", id, dep)
			}
		}
		switch n.Op {
		case Input:
			if n.Index < 0 {
				return xerrors.Errorf("node %d: invalid input index %d",
					id, n.Index)
			}
			if n.Type.Undefined() {
				return xerrors.Errorf("node %d: input type undefined", id)
			}
		case Random:
			if n.Type.Undefined() {
				return xerrors.Errorf("node %d: random type undefined", id)
			}
		case Constant:
			if err := n.Value.Check(); err != nil {
				return xerrors.Errorf("node %d: %w", id, err)
			}
		}
		for _, a := range n.Annotations {
			if a.Kind != Send {
				return xerrors.Errorf("node %d: unknown annotation %v", id, a)
			}
			if n.Op != NOP {
				return xerrors.Errorf("node %d: %v on %v node", id, a, n.Op)
			}
			if !a.Sender.Valid() || !a.Receiver.Valid() {
				return xerrors.Errorf("node %d: invalid party in %v", id, a)
			}
			if a.Sender == a.Receiver {
				return xerrors.Errorf("node %d: %v sends to itself", id, a)
			}
		}
	}
	return nil
}
