//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package p2p

import (
	"io"
)

// Pipe creates a bidirectional in-process connection. Data sent to
// one Conn is received from the other. After either end is closed,
// reads of the other end return io.EOF.
func Pipe() (*Conn, *Conn) {
	ar, aw := io.Pipe()
	br, bw := io.Pipe()

	return NewConn(&pipeEnd{r: ar, w: bw}), NewConn(&pipeEnd{r: br, w: aw})
}

type pipeEnd struct {
	r *io.PipeReader
	w *io.PipeWriter
}

func (p *pipeEnd) Read(data []byte) (int, error) {
	return p.r.Read(data)
}

func (p *pipeEnd) Write(data []byte) (int, error) {
	return p.w.Write(data)
}

// Close closes the write direction before the read direction so the
// peer sees io.EOF instead of a broken pipe.
func (p *pipeEnd) Close() error {
	werr := p.w.Close()
	rerr := p.r.Close()
	if werr != nil {
		return werr
	}
	return rerr
}
