package searcher

import (
	"math"
	"sync"

	"arcade/game"
)

// decision is a tree node. Its rewards are scored for player, the one who
// made the move leading to it.
type decision struct {
	sync.Mutex
	parent   *decision
	player   string
	moves    []game.Move // children[i] follows moves[i]
	children []*decision
	rewards  float64
	visits   float64
}

func newDecision(parent *decision, player string, state State) *decision {
	moves := state.LegalMoves()
	return &decision{
		parent:   parent,
		player:   player,
		moves:    moves,
		children: make([]*decision, 0, len(moves)),
	}
}

// selectOrExpand descends one level. It reports whether the returned child
// was just added; a terminal node returns itself.
func (d *decision) selectOrExpand(state State) (*decision, State, bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.moves) == 0 { // Terminal node
		return d, state, false
	}

	if len(d.moves) > len(d.children) { // Expandable node
		move := d.moves[len(d.children)]
		next := state.Play(move)
		child := newDecision(d, state.Player(), next)
		d.children = append(d.children, child)
		child.applyLoss()
		return child, next, true
	}

	// Fully expanded node
	i := d.pickChild()
	child := d.children[i]
	child.applyLoss()
	return child, state.Play(d.moves[i]), false
}

func (d *decision) pickChild() int {
	normalizer := CSquared * math.Log(math.Max(d.visits, 1))

	maxIndex := 0
	maxScore := math.Inf(-1)
	for i, child := range d.children {
		score := child.score(normalizer)
		if score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += Loss
	d.visits++
}

func (d *decision) score(normalizer float64) float64 {
	d.Lock()
	defer d.Unlock()

	return ucb1(d.rewards, d.visits, normalizer)
}

// backup replaces the virtual loss with the real reward and returns the parent.
func (d *decision) backup(reward func(player string) float64) *decision {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root nodes carry a virtual loss
		d.rewards -= Loss
		d.visits--
	}
	d.rewards += reward(d.player)
	d.visits++

	return d.parent
}

// policy is each explored move's share of the root's visits.
func (d *decision) policy() map[game.Move]float64 {
	d.Lock()
	defer d.Unlock()

	policy := make(map[game.Move]float64, len(d.children))
	for i, child := range d.children {
		child.Lock()
		policy[d.moves[i]] = child.visits / d.visits
		child.Unlock()
	}
	return policy
}

// bestMove is the most visited move, the first one on ties.
func (d *decision) bestMove() (game.Move, bool) {
	d.Lock()
	defer d.Unlock()

	best, maxVisits := -1, -1.0
	for i, child := range d.children {
		child.Lock()
		if child.visits > maxVisits {
			best, maxVisits = i, child.visits
		}
		child.Unlock()
	}
	if best < 0 {
		return game.Move{}, false
	}
	return d.moves[best], true
}
