package statespace

import (
	"context"
	"errors"
	"fmt"

	"github.com/edwingeng/deque"
	"go.uber.org/zap"

	"github.com/jt05610/statespace"
)

var ErrBudgetExceeded = errors.New("state budget exceeded")

// DefaultMaxStates bounds exploration when no budget is configured.
const DefaultMaxStates = 100000

// Result is the outcome of an exploration. When Saturated is set the graph is
// partial: some states were left unexplored because the budget ran out.
type Result struct {
	Graph     *Graph
	Saturated bool
	Fired     int
}

// Err reports ErrBudgetExceeded for a saturated result.
func (r *Result) Err() error {
	if r.Saturated {
		return fmt.Errorf("%w: stopped at %d states", ErrBudgetExceeded, r.Graph.Len())
	}
	return nil
}

// Explorer builds the reachability graph of a net breadth first.
type Explorer struct {
	net       *petri.Net
	logger    *zap.Logger
	maxStates int
}

type ExplorerOption func(*Explorer)

func WithLogger(logger *zap.Logger) ExplorerOption {
	return func(e *Explorer) {
		e.logger = logger
	}
}

// WithMaxStates sets the state budget. Values below one keep the default.
func WithMaxStates(n int) ExplorerOption {
	return func(e *Explorer) {
		if n > 0 {
			e.maxStates = n
		}
	}
}

func NewExplorer(net *petri.Net, opts ...ExplorerOption) *Explorer {
	e := &Explorer{
		net:       net,
		logger:    zap.NewNop(),
		maxStates: DefaultMaxStates,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Explore seeds the graph with the initial marking as state 1 and fires every
// binding of every transition from each unexplored state until no new state
// appears. A successor that would need a state beyond the budget stops the
// exploration and the result is marked saturated. Firing inconsistencies and
// context cancellation are returned as errors.
func (e *Explorer) Explore(ctx context.Context) (*Result, error) {
	res := &Result{Graph: NewGraph()}
	root, _ := res.Graph.AddState(e.net.Initial)
	frontier := deque.NewDeque()
	frontier.PushBack(root)
	for frontier.Len() != 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src := frontier.PopFront().(int)
		st, _ := res.Graph.State(src)
		succ, err := e.net.Successors(st.Marking)
		if err != nil {
			return nil, fmt.Errorf("exploring state %d: %w", src, err)
		}
		for _, s := range succ {
			id, ok := res.Graph.GetState(s.Marking)
			if !ok {
				if res.Graph.Len() >= e.maxStates {
					res.Saturated = true
					e.logger.Warn("state budget exhausted",
						zap.Int("states", res.Graph.Len()),
						zap.Int("frontier", frontier.Len()),
						zap.Error(ErrBudgetExceeded),
					)
					return res, nil
				}
				id, _ = res.Graph.AddState(s.Marking)
				frontier.PushBack(id)
			}
			if err := res.Graph.AddEdge(src, id, s.Transition.ID); err != nil {
				return nil, err
			}
			res.Fired++
		}
		e.logger.Debug("explored state",
			zap.Int("state", src),
			zap.Int("successors", len(succ)),
		)
	}
	e.logger.Info("exploration complete",
		zap.Int("states", res.Graph.Len()),
		zap.Int("edges", len(res.Graph.Edges())),
	)
	return res, nil
}
