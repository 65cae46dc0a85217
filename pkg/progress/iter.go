package progress

import (
	"io"
	"iter"
	"slices"
)

// Tracker is implemented by *Indicator and *Progress.
type Tracker interface {
	Start() error
	Next(n int) error
	Finish() error
	Err() error
	indicator() *Indicator
}

// Iter yields the elements of seq, advancing t by one after the loop body
// handles each element. Start runs before the first element and Finish runs
// however the loop ends: exhaustion, break or panic. A rendering error stops
// the iteration and is reported by t.Err.
//
// The length of seq is unknown, so a bounded indicator keeps its maximum.
func Iter[T any](t Tracker, seq iter.Seq[T]) iter.Seq[T] {
	return iterate(t.indicator(), -1, seq)
}

// IterSlice is Iter over the elements of s. A bounded indicator's maximum is
// set to len(s).
func IterSlice[T any](t Tracker, s []T) iter.Seq[T] {
	return iterate(t.indicator(), len(s), slices.Values(s))
}

// IterN is Iter over a sequence known to produce n elements. A bounded
// indicator's maximum is set to n.
func IterN[T any](t Tracker, n int, seq iter.Seq[T]) iter.Seq[T] {
	return iterate(t.indicator(), n, seq)
}

func iterate[T any](ind *Indicator, length int, seq iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		if length >= 0 {
			ind.kind.inferLength(length)
		}
		if err := ind.Start(); err != nil {
			ind.setErr(err)
			return
		}
		defer func() {
			if err := ind.Finish(); err != nil {
				ind.setErr(err)
			}
		}()

		for v := range seq {
			if !yield(v) {
				return
			}
			if err := ind.Next(1); err != nil {
				ind.setErr(err)
				return
			}
		}
	}
}

// Reader advances a tracker by the number of bytes read through it.
type Reader struct {
	r   io.Reader
	ind *Indicator
}

// NewReader wraps r. Start and Finish are left to the caller.
func NewReader(t Tracker, r io.Reader) *Reader {
	return &Reader{r: r, ind: t.indicator()}
}

func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if n > 0 {
		if nerr := r.ind.Next(n); nerr != nil {
			return n, nerr
		}
	}
	return n, err
}
