package store

import (
	"bufio"
	"io"
	"strconv"

	"github.com/san-kum/orbitlab/internal/body"
)

// TrajectoryWriter streams body positions as delimited records: a header
// of <Name>X,<Name>Y,<Name>Z, triples per body in ensemble order, then
// one x,y,z, triple per body per step. Every field, including the last,
// is comma-terminated. Only post-step states are recorded; the initial
// state never appears.
//
// It implements the simulator Observer; since OnStep cannot return an
// error, the first write failure is latched and reported by Flush.
type TrajectoryWriter struct {
	w   *bufio.Writer
	err error
}

func NewTrajectoryWriter(w io.Writer) *TrajectoryWriter {
	return &TrajectoryWriter{w: bufio.NewWriter(w)}
}

// WriteHeader emits the column header for the given ensemble order.
func (t *TrajectoryWriter) WriteHeader(bodies []*body.Body) error {
	for _, b := range bodies {
		t.writeString(b.Name + "X," + b.Name + "Y," + b.Name + "Z,")
	}
	t.writeString("\n")
	return t.err
}

// OnStep appends one record with every body's position.
func (t *TrajectoryWriter) OnStep(bodies []*body.Body, step int, tm float64) {
	for _, b := range bodies {
		t.writeFloat(b.Pos.X())
		t.writeFloat(b.Pos.Y())
		t.writeFloat(b.Pos.Z())
	}
	t.writeString("\n")
}

// Flush drains the buffer and returns the first error encountered on any
// write since construction.
func (t *TrajectoryWriter) Flush() error {
	if t.err != nil {
		return t.err
	}
	return t.w.Flush()
}

func (t *TrajectoryWriter) writeString(s string) {
	if t.err != nil {
		return
	}
	_, t.err = t.w.WriteString(s)
}

func (t *TrajectoryWriter) writeFloat(v float64) {
	if t.err != nil {
		return
	}
	// Shortest round-trip formatting keeps records byte-reproducible
	// across runs with identical input.
	if _, t.err = t.w.WriteString(strconv.FormatFloat(v, 'g', -1, 64)); t.err != nil {
		return
	}
	t.err = t.w.WriteByte(',')
}
