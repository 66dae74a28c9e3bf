// SPDX-License-Identifier: MIT
// Package bnb - search engine (exact DFS with propagation and bounds).
//
// Purpose:
//   - One worker runs a depth-first branch-and-bound over the shared,
//     preprocessed problem. Workers differ only in branching order and value
//     preference; they share the incumbent and the stop signal.
//
// Search:
//  1. Root: every constraint is queued and propagated to a fixpoint. A root
//     conflict proves infeasibility.
//  2. Node: fix the next free variable in the worker's order, propagate, then
//     recurse. Both values are tried; the preferred one first.
//  3. Propagation: for lo ≤ Σ a·x ≤ hi, minAct/maxAct track the reachable
//     activity range. A free variable whose value would leave [lo, hi] is
//     fixed to the other value; when both values leave it, the node fails.
//  4. Bound: fixed objective plus, for each free positive variable, its
//     coefficient minus the penalties of AND partners already at one. When a
//     unit cardinality cap exists only the best k such gains count. The bound
//     never underestimates, so pruning at bound ≤ incumbent keeps optimality.
//  5. Time budget: the deadline and the shared stop are tested on every node
//     and every 1024 constraint visits inside propagation, so a worker
//     returns within one bound evaluation of the deadline.
//
// Complexity:
//   - Worst case exponential in the number of variables.
//   - Per node: O(Σ occurrences touched) propagation + O(Σ_v |conj[v]|) bound,
//     which is O(r²) for the pairwise selection model.
//   - Memory: O(n + m) per worker for assignment, activities and trail.

package bnb

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

const (
	free  int8 = -1
	zero  int8 = 0
	one   int8 = 1
	pollMask   = 1023 // propagation polls the deadline every 1024 constraint visits
)

// shared is the incumbent and stop signal visible to every worker.
type shared struct {
	mu     sync.Mutex
	values []bool
	best   atomic.Int64
	has    atomic.Bool

	stop   atomic.Bool
	proved atomic.Bool
}

// incumbent returns the best objective so far.
func (s *shared) incumbent() (int64, bool) {
	if !s.has.Load() {
		return 0, false
	}

	return s.best.Load(), true
}

// offer records values when they strictly improve the incumbent.
func (s *shared) offer(assign []int8, obj int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.has.Load() && obj <= s.best.Load() {
		return
	}
	if s.values == nil {
		s.values = make([]bool, len(assign))
	}
	for i, a := range assign {
		s.values[i] = a == one
	}
	s.best.Store(obj)
	s.has.Store(true)
}

// worker owns one DFS over the shared problem.
type worker struct {
	p  *problem
	sh *shared

	order   []int
	prefOne []bool

	// Current search state.
	assign   []int8
	minAct   []int64
	maxAct   []int64
	trail    []int
	queue    []int
	inQueue  []bool
	fixedObj int64
	gains    []int64

	// Time budget. halted latches once the deadline or the shared stop fires.
	deadline time.Time
	ticks    int
	halted   bool

	branches  int64
	conflicts int64
	rootBound int64
	rootOK    bool
}

// newWorker prepares worker id. Worker 0 keeps the base order.
func newWorker(p *problem, sh *shared, id int, seed int64, deadline time.Time) *worker {
	w := &worker{
		p:        p,
		sh:       sh,
		assign:   make([]int8, p.n),
		minAct:   make([]int64, len(p.cons)),
		maxAct:   make([]int64, len(p.cons)),
		inQueue:  make([]bool, len(p.cons)),
		deadline: deadline,
	}
	w.order, w.prefOne = p.baseOrder()
	if id > 0 {
		perturb(w.order, w.prefOne, workerRNG(seed, id))
	}
	for v := range w.assign {
		w.assign[v] = free
	}
	for i, c := range p.cons {
		for _, a := range c.coefs {
			if a < 0 {
				w.minAct[i] += a
			} else {
				w.maxAct[i] += a
			}
		}
	}

	return w
}

// expired reports whether the worker must stop: the shared stop is set or
// the deadline has passed. The answer latches.
func (w *worker) expired() bool {
	if w.halted {
		return true
	}
	if w.sh.stop.Load() || time.Now().After(w.deadline) {
		w.halted = true
	}

	return w.halted
}

// set fixes v to val and updates activities; touched constraints are queued.
func (w *worker) set(v int, val int8) {
	w.assign[v] = val
	w.trail = append(w.trail, v)
	if val == one {
		w.fixedObj += w.p.obj[v]
	}
	for _, o := range w.p.occ[v] {
		if val == one {
			w.minAct[o.con] += max(0, o.coef)
			w.maxAct[o.con] += min(0, o.coef)
		} else {
			w.minAct[o.con] -= min(0, o.coef)
			w.maxAct[o.con] -= max(0, o.coef)
		}
		if !w.inQueue[o.con] {
			w.inQueue[o.con] = true
			w.queue = append(w.queue, o.con)
		}
	}
}

// undo pops the trail back to mark.
func (w *worker) undo(mark int) {
	var v int
	var val int8
	for len(w.trail) > mark {
		v = w.trail[len(w.trail)-1]
		w.trail = w.trail[:len(w.trail)-1]
		val = w.assign[v]
		if val == one {
			w.fixedObj -= w.p.obj[v]
		}
		for _, o := range w.p.occ[v] {
			if val == one {
				w.minAct[o.con] -= max(0, o.coef)
				w.maxAct[o.con] -= min(0, o.coef)
			} else {
				w.minAct[o.con] += min(0, o.coef)
				w.maxAct[o.con] += max(0, o.coef)
			}
		}
		w.assign[v] = free
	}
}

// clearQueue drops pending constraints after a conflict.
func (w *worker) clearQueue() {
	for _, c := range w.queue {
		w.inQueue[c] = false
	}
	w.queue = w.queue[:0]
}

// propagate runs activity propagation to a fixpoint. false means conflict,
// or an interrupted fixpoint when w.halted is set.
func (w *worker) propagate() bool {
	var (
		ci          int
		c           *linear
		k, v        int
		a           int64
		oneOK, zeOK bool
	)
	for len(w.queue) > 0 {
		ci = w.queue[len(w.queue)-1]
		w.queue = w.queue[:len(w.queue)-1]
		w.inQueue[ci] = false
		c = &w.p.cons[ci]

		w.ticks++
		if w.ticks&pollMask == 0 && w.expired() {
			w.clearQueue()
			return false
		}

		if w.minAct[ci] > c.hi || w.maxAct[ci] < c.lo {
			w.clearQueue()
			return false
		}
		if w.minAct[ci] >= c.lo && w.maxAct[ci] <= c.hi {
			continue // entailed
		}
		for k, v = range c.vars {
			if w.assign[v] != free {
				continue
			}
			a = c.coefs[k]
			oneOK = w.minAct[ci]+max(0, a) <= c.hi && w.maxAct[ci]+min(0, a) >= c.lo
			zeOK = w.minAct[ci]-min(0, a) <= c.hi && w.maxAct[ci]-max(0, a) >= c.lo
			switch {
			case !oneOK && !zeOK:
				w.clearQueue()
				return false
			case !oneOK:
				w.set(v, zero)
			case !zeOK:
				w.set(v, one)
			}
		}
	}

	return true
}

// bound returns an upper bound on any completion of the current node.
func (w *worker) bound() int64 {
	p := w.p
	b := w.fixedObj
	capK := -1
	if p.card >= 0 {
		capK = int(p.cons[p.card].hi - w.minAct[p.card])
		w.gains = w.gains[:0]
	}

	var g int64
	for _, v := range p.posVars {
		if w.assign[v] != free {
			continue
		}
		g = p.obj[v]
		for _, cj := range p.conj[v] {
			if w.assign[cj.partner] == one && w.assign[cj.aux] == free {
				g += p.obj[cj.aux]
			}
		}
		if g <= 0 {
			continue
		}
		if capK >= 0 && p.inCard[v] {
			w.gains = append(w.gains, g)
			continue
		}
		b += g
	}
	if capK >= 0 && len(w.gains) > 0 {
		slices.Sort(w.gains)
		for i := len(w.gains) - 1; i >= 0 && i >= len(w.gains)-capK; i-- {
			b += w.gains[i]
		}
	}

	return b
}

// dfs explores the subtree below the current node. It returns true when the
// search must stop (deadline or another worker finished).
func (w *worker) dfs(pos int) bool {
	if w.expired() {
		return true
	}
	if best, ok := w.sh.incumbent(); ok && w.bound() <= best {
		return false
	}

	n := len(w.order)
	for pos < n && w.assign[w.order[pos]] != free {
		pos++
	}
	if pos == n {
		w.sh.offer(w.assign, w.fixedObj)
		return false
	}

	v := w.order[pos]
	first := zero
	if w.prefOne[v] {
		first = one
	}
	var mark int
	for _, val := range [2]int8{first, 1 - first} {
		mark = len(w.trail)
		w.branches++
		w.set(v, val)
		if w.propagate() {
			if w.dfs(pos + 1) {
				w.undo(mark)
				return true
			}
		} else if w.halted {
			w.undo(mark)
			return true
		} else {
			w.conflicts++
		}
		w.undo(mark)
	}

	return false
}

// run propagates the root and searches. A worker that exhausts its tree
// marks the result proven and stops the others; a halted worker proves
// nothing.
func (w *worker) run() {
	if w.expired() {
		return
	}
	for i := range w.p.cons {
		w.inQueue[i] = true
		w.queue = append(w.queue, i)
	}
	rootOK := !w.p.trivialConflict && w.propagate()
	if w.halted {
		return
	}
	if !rootOK {
		w.conflicts++
		w.sh.proved.Store(true)
		w.sh.stop.Store(true)
		return
	}
	w.rootBound = w.bound()
	w.rootOK = true

	if !w.dfs(0) {
		w.sh.proved.Store(true)
		w.sh.stop.Store(true)
	}
}
