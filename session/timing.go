//
// Copyright (c) 2020-2026 Markku Rossi
//
// All rights reserved.
//

package session

import (
	"fmt"
	"io"
	"time"

	"github.com/markkurossi/ringeval/p2p"
	"github.com/markkurossi/ringeval/ring"
	"github.com/markkurossi/tabulate"
)

// FileSize specifies a byte count that is printed with a unit.
type FileSize uint64

func (s FileSize) String() string {
	if s > 1000*1000*1000*1000 {
		return fmt.Sprintf("%dTB", s/(1000*1000*1000*1000))
	} else if s > 1000*1000*1000 {
		return fmt.Sprintf("%dGB", s/(1000*1000*1000))
	} else if s > 1000*1000 {
		return fmt.Sprintf("%dMB", s/(1000*1000))
	} else if s > 1000 {
		return fmt.Sprintf("%dkB", s/1000)
	} else {
		return fmt.Sprintf("%dB", s)
	}
}

// Timing records the session phases.
type Timing struct {
	Start   time.Time
	Samples []*Sample
}

// NewTiming creates a new Timing instance.
func NewTiming() *Timing {
	return &Timing{
		Start: time.Now(),
	}
}

// Sample adds a timing sample ending now.
func (t *Timing) Sample(label string) *Sample {
	start := t.Start
	if len(t.Samples) > 0 {
		start = t.Samples[len(t.Samples)-1].End
	}
	sample := &Sample{
		Label: label,
		Start: start,
		End:   time.Now(),
	}
	t.Samples = append(t.Samples, sample)
	return sample
}

// Total returns the duration from start to the end of the last
// sample.
func (t *Timing) Total() time.Duration {
	if len(t.Samples) == 0 {
		return 0
	}
	return t.Samples[len(t.Samples)-1].End.Sub(t.Start)
}

// Print prints the timing report with the per-party transfer
// statistics.
func (t *Timing) Print(out io.Writer, stats [ring.NumParties]p2p.IOStats) {
	if len(t.Samples) == 0 {
		return
	}

	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Op").SetAlign(tabulate.ML)
	tab.Header("Time").SetAlign(tabulate.MR)
	tab.Header("%").SetAlign(tabulate.MR)
	tab.Header("Xfer").SetAlign(tabulate.MR)

	total := t.Total()
	for _, sample := range t.Samples {
		row := tab.Row()
		row.Column(sample.Label)

		duration := sample.End.Sub(sample.Start)
		row.Column(duration.String())
		row.Column(fmt.Sprintf("%.2f%%",
			float64(duration)/float64(total)*100))
		row.Column("")

		for idx, sub := range sample.Samples {
			row := tab.Row()
			row.Column(treePrefix(idx, len(sample.Samples)) + sub.Label).
				SetFormat(tabulate.FmtItalic)

			d := sub.End.Sub(sub.Start)
			row.Column(d.String()).SetFormat(tabulate.FmtItalic)
			row.Column(
				fmt.Sprintf("%.2f%%", float64(d)/float64(duration)*100)).
				SetFormat(tabulate.FmtItalic)
			row.Column("")
		}
	}

	var sum uint64
	for _, s := range stats {
		sum += s.Sent.Load() + s.Recvd.Load()
	}

	row := tab.Row()
	row.Column("Total").SetFormat(tabulate.FmtBold)
	row.Column(total.String()).SetFormat(tabulate.FmtBold)
	row.Column("").SetFormat(tabulate.FmtBold)
	row.Column(FileSize(sum).String()).SetFormat(tabulate.FmtBold)

	for _, id := range ring.Parties() {
		sent := stats[id].Sent.Load()
		received := stats[id].Recvd.Load()

		row = tab.Row()
		row.Column(treePrefix(int(id), ring.NumParties) + id.String()).
			SetFormat(tabulate.FmtItalic)
		row.Column("")
		if sum > 0 {
			row.Column(fmt.Sprintf("%.2f%%",
				float64(sent+received)/float64(sum)*100)).
				SetFormat(tabulate.FmtItalic)
		} else {
			row.Column("")
		}
		row.Column(fmt.Sprintf("%s/%s", FileSize(sent), FileSize(received))).
			SetFormat(tabulate.FmtItalic)
	}

	tab.Print(out)
}

func treePrefix(idx, count int) string {
	if idx+1 >= count {
		return "╰╴"
	}
	return "├╴"
}

// Sample contains information about one timing sample.
type Sample struct {
	Label   string
	Start   time.Time
	End     time.Time
	Samples []*Sample
}

// SubSample adds a sub-sample ending at end.
func (s *Sample) SubSample(label string, end time.Time) {
	start := s.Start
	if len(s.Samples) > 0 {
		start = s.Samples[len(s.Samples)-1].End
	}
	s.Samples = append(s.Samples, &Sample{
		Label: label,
		Start: start,
		End:   end,
	})
}
