// SPDX-License-Identifier: MIT

package bnb

import (
	"cmp"
	"slices"
	"sort"

	"github.com/katalvlaran/orssa/ip"
)

// linear is a merged constraint: duplicate variables summed, zero
// coefficients dropped.
type linear struct {
	vars   []int
	coefs  []int64
	lo, hi int64
}

// occurrence links a variable to one constraint it appears in.
type occurrence struct {
	con  int
	coef int64
}

// conjunction records x + partner − aux ≤ 1 with obj[aux] < 0: once partner
// is 1, choosing x also pays obj[aux].
type conjunction struct {
	partner int
	aux     int
}

// problem is the read-only, preprocessed model shared by all workers.
type problem struct {
	n    int
	obj  []int64
	cons []linear
	occ  [][]occurrence

	// Positive-objective variables, scanned by the bound.
	posVars []int
	conj    [][]conjunction

	// Cardinality cap used by the bound: -1 when none exists.
	card   int
	inCard []bool

	// A constraint with no variables whose range excludes 0.
	trivialConflict bool
}

// newProblem merges duplicate terms (sorted by variable) and builds the
// occurrence lists. It assumes m has been validated.
// Complexity: O(Σ t·log t) over constraint sizes t.
func newProblem(m *ip.Model) *problem {
	n := m.NumVars()
	p := &problem{
		n:    n,
		obj:  make([]int64, n),
		occ:  make([][]occurrence, n),
		conj: make([][]conjunction, n),
		card: -1,
	}
	for _, t := range m.Objective() {
		p.obj[t.Var] += t.Coef
	}

	for i := 0; i < m.NumConstraints(); i++ {
		c := m.Constraint(i)
		terms := c.Terms
		slices.SortFunc(terms, func(x, y ip.Term) int { return cmp.Compare(x.Var, y.Var) })
		l := linear{lo: c.Lo, hi: c.Hi}
		for k := 0; k < len(terms); {
			v, a := int(terms[k].Var), terms[k].Coef
			for k++; k < len(terms) && int(terms[k].Var) == v; k++ {
				a += terms[k].Coef
			}
			if a != 0 {
				l.vars = append(l.vars, v)
				l.coefs = append(l.coefs, a)
			}
		}
		if len(l.vars) == 0 {
			if l.lo > 0 || l.hi < 0 {
				p.trivialConflict = true
			}
			continue
		}
		idx := len(p.cons)
		p.cons = append(p.cons, l)
		for k, v := range l.vars {
			p.occ[v] = append(p.occ[v], occurrence{con: idx, coef: l.coefs[k]})
		}
	}

	for v := 0; v < n; v++ {
		if p.obj[v] > 0 {
			p.posVars = append(p.posVars, v)
		}
	}
	p.detectConjunctions()
	p.detectCardinality()

	return p
}

// detectConjunctions finds x + y − aux ≤ 1 patterns with a penalized aux.
func (p *problem) detectConjunctions() {
	var a, b, aux int
	for _, c := range p.cons {
		if len(c.vars) != 3 || c.hi != 1 || c.lo > -1 {
			continue
		}
		a, b, aux = -1, -1, -1
		for k, v := range c.vars {
			switch c.coefs[k] {
			case 1:
				if a < 0 {
					a = v
				} else {
					b = v
				}
			case -1:
				aux = v
			}
		}
		if a < 0 || b < 0 || aux < 0 || p.obj[aux] >= 0 {
			continue
		}
		p.conj[a] = append(p.conj[a], conjunction{partner: b, aux: aux})
		p.conj[b] = append(p.conj[b], conjunction{partner: a, aux: aux})
	}
}

// detectCardinality picks the unit-coefficient ≤ constraint covering the
// largest positive objective mass.
func (p *problem) detectCardinality() {
	var bestMass int64
	for i, c := range p.cons {
		if c.hi >= ip.PosInf || c.hi < 0 {
			continue
		}
		unit := true
		var mass int64
		for k, v := range c.vars {
			if c.coefs[k] != 1 {
				unit = false
				break
			}
			if p.obj[v] > 0 {
				mass += p.obj[v]
			}
		}
		if !unit || int64(len(c.vars)) <= c.hi || mass <= bestMass {
			continue
		}
		bestMass = mass
		p.card = i
	}
	if p.card < 0 {
		return
	}
	p.inCard = make([]bool, p.n)
	for _, v := range p.cons[p.card].vars {
		p.inCard[v] = true
	}
}

// baseOrder returns the deterministic branching order and value preferences:
// degree desc, |obj| desc, index asc; prefer 1 when obj > 0.
func (p *problem) baseOrder() ([]int, []bool) {
	order := make([]int, p.n)
	prefOne := make([]bool, p.n)
	for v := range order {
		order[v] = v
		prefOne[v] = p.obj[v] > 0
	}
	abs := func(x int64) int64 {
		if x < 0 {
			return -x
		}
		return x
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if len(p.occ[a]) != len(p.occ[b]) {
			return len(p.occ[a]) > len(p.occ[b])
		}
		if abs(p.obj[a]) != abs(p.obj[b]) {
			return abs(p.obj[a]) > abs(p.obj[b])
		}
		return a < b
	})

	return order, prefOne
}
