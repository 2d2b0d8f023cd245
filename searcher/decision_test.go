package searcher

import (
	"sync"
	"testing"

	"arcade/game"

	"github.com/stretchr/testify/require"
)

// mockState alternates players "a" and "b" over a fixed move list.
type mockState struct {
	player string
	moves  []game.Move
	played []game.Move
	winner string
}

func (m mockState) Player() string          { return m.player }
func (m mockState) LegalMoves() []game.Move { return m.moves }
func (m mockState) Winner() string          { return m.winner }

func (m mockState) Play(move game.Move) State {
	next := "a"
	if m.player == "a" {
		next = "b"
	}
	return mockState{player: next, played: append(append([]game.Move{}, m.played...), move)}
}

func TestDecisionSelectOrExpand(t *testing.T) {
	t.Run("expanding the next unexplored move", func(t *testing.T) {
		state := mockState{player: "a", moves: []game.Move{game.Integer(1), game.Integer(2)}}
		node := newDecision(nil, "", state)

		child, childState, expanded := node.selectOrExpand(state)

		require.True(t, expanded)
		require.Len(t, node.children, 1)
		require.Same(t, node, child.parent)
		require.Equal(t, "a", child.player, "Child should be scored for the player who moved")
		require.Equal(t, 1.0, child.visits, "Child should carry a virtual loss")
		require.Equal(t, []game.Move{game.Integer(1)}, childState.(mockState).played)
	})

	t.Run("selecting the max UCB child", func(t *testing.T) {
		state := mockState{player: "a", moves: []game.Move{game.Integer(1), game.Integer(2)}}
		weak := &decision{rewards: 0, visits: 1}
		strong := &decision{rewards: 1, visits: 1}
		node := &decision{
			moves:    state.moves,
			children: []*decision{weak, strong},
			rewards:  1,
			visits:   2,
		}

		child, childState, expanded := node.selectOrExpand(state)

		require.False(t, expanded)
		require.Same(t, strong, child)
		require.Equal(t, 2.0, strong.visits)
		require.Equal(t, []game.Move{game.Integer(2)}, childState.(mockState).played)
		require.Equal(t, 2.0, node.visits, "Parent stats should not change")
	})

	t.Run("terminal node", func(t *testing.T) {
		state := mockState{player: "a"}
		node := newDecision(nil, "", state)

		child, childState, expanded := node.selectOrExpand(state)

		require.False(t, expanded)
		require.Same(t, node, child)
		require.Equal(t, state, childState)
	})
}

func TestBackup(t *testing.T) {
	root := &decision{}
	child := &decision{parent: root, player: "a"}
	grandChild := &decision{parent: child, player: "b"}
	child.applyLoss()
	grandChild.applyLoss()

	backup(grandChild, rewarder("a"))

	require.Equal(t, Win, child.rewards)
	require.Equal(t, 1.0, child.visits, "Virtual loss should be replaced")
	require.Equal(t, Loss, grandChild.rewards)
	require.Equal(t, 1.0, grandChild.visits)
	require.Equal(t, 1.0, root.visits)

	child.applyLoss()
	grandChild.applyLoss()
	backup(grandChild, rewarder(""))

	require.Equal(t, Win+Draw, child.rewards)
	require.Equal(t, 2.0, child.visits)
	require.Equal(t, Loss+Draw, grandChild.rewards)
	require.Equal(t, 2.0, root.visits)
}

func TestConcurrentExpansion(t *testing.T) {
	moves := []game.Move{game.Integer(1), game.Integer(2), game.Integer(3), game.Integer(4)}
	state := mockState{player: "a", moves: moves}
	root := newDecision(nil, "", state)

	var wg sync.WaitGroup
	for range moves {
		wg.Add(1)
		go func() {
			defer wg.Done()
			child, _, _ := root.selectOrExpand(state)
			backup(child, rewarder("a"))
		}()
	}
	wg.Wait()

	require.Len(t, root.children, len(moves), "Each goroutine should expand a different move")
	require.Equal(t, float64(len(moves)), root.visits)
	for _, child := range root.children {
		require.Equal(t, 1.0, child.visits)
	}
}
