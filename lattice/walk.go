package lattice

import (
	"context"
	"fmt"
)

// WalkOption configures Walk.
type WalkOption func(*WalkOptions)

// WalkOptions holds the parameters of a bounded traversal.
type WalkOptions struct {
	// Ctx allows cancellation.
	Ctx context.Context

	// MaxDepth is the largest depth visited. Required; the lattice is infinite.
	MaxDepth int

	// Filter skips a node (and everything only reachable through it) when it
	// returns false. Start nodes are never filtered.
	Filter func(h Handle) bool

	// OnVisit is called for every visited node; an error aborts the walk.
	OnVisit func(h Handle, depth int) error

	err error
}

// DefaultWalkOptions returns options with no depth limit set.
func DefaultWalkOptions() WalkOptions {
	return WalkOptions{
		Ctx:     context.Background(),
		Filter:  func(Handle) bool { return true },
		OnVisit: func(Handle, int) error { return nil },
	}
}

// WithContext sets a context for cancellation.
func WithContext(ctx context.Context) WalkOption {
	return func(o *WalkOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxDepth bounds the traversal. d must be positive.
func WithMaxDepth(d int) WalkOption {
	return func(o *WalkOptions) {
		if d <= 0 {
			o.err = fmt.Errorf("%w: depth %d", ErrUnboundedWalk, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithFilter skips nodes for which fn returns false.
func WithFilter(fn func(h Handle) bool) WalkOption {
	return func(o *WalkOptions) {
		if fn != nil {
			o.Filter = fn
		}
	}
}

// WithOnVisit registers a visit callback.
func WithOnVisit(fn func(h Handle, depth int) error) WalkOption {
	return func(o *WalkOptions) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WalkResult holds the visit order and the depth of every visited node.
type WalkResult struct {
	Order []Handle
	Depth map[Handle]int
}

// walker encapsulates mutable traversal state.
type walker struct {
	l     *Lattice
	opts  WalkOptions
	queue []Handle
	res   *WalkResult
}

// Walk runs a breadth-first traversal from all starts at depth 0.
//
// Errors: ErrUnboundedWalk without a positive WithMaxDepth, ctx errors, or an
// OnVisit error.
func (l *Lattice) Walk(starts []Handle, opts ...WalkOption) (*WalkResult, error) {
	o := DefaultWalkOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if o.MaxDepth <= 0 {
		return nil, ErrUnboundedWalk
	}

	w := &walker{
		l:    l,
		opts: o,
		res:  &WalkResult{Depth: make(map[Handle]int)},
	}
	for _, h := range starts {
		w.enqueue(h, 0)
	}
	return w.res, w.loop()
}

func (w *walker) enqueue(h Handle, depth int) {
	if _, seen := w.res.Depth[h]; seen {
		return
	}
	w.res.Depth[h] = depth
	w.queue = append(w.queue, h)
}

func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.opts.Ctx.Done():
			return w.opts.Ctx.Err()
		default:
		}

		h := w.queue[0]
		w.queue = w.queue[1:]
		depth := w.res.Depth[h]
		w.res.Order = append(w.res.Order, h)
		if err := w.opts.OnVisit(h, depth); err != nil {
			return fmt.Errorf("lattice: OnVisit error at %s: %w", w.l.Coord(h).Format(w.l.Dimension()), err)
		}
		if depth >= w.opts.MaxDepth {
			continue
		}
		for _, nb := range w.l.Neighbors(h) {
			if _, seen := w.res.Depth[nb]; seen || !w.opts.Filter(nb) {
				continue
			}
			w.enqueue(nb, depth+1)
		}
	}
	return nil
}
