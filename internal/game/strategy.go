package game

import "github.com/rocketscienceinc/tictactoe-trainer/internal/tree"

type choice int

const (
	choiceWin choice = iota
	choiceDraw
	choiceUnexplored
	choiceUnknown
	choiceLose
)

// preferences - order in which move categories are tried, per regime.
// Battle plays the best known outcome; training grows the tree first.
var preferences = map[Regime][]choice{
	RegimeBattle:   {choiceWin, choiceDraw, choiceUnexplored, choiceUnknown, choiceLose},
	RegimeTraining: {choiceUnexplored, choiceUnknown, choiceDraw, choiceWin, choiceLose},
}

// choosePosition - picks a free cell; ties inside the preferred category are broken at random.
func (that *Game) choosePosition() int {
	candidates := make(map[choice][]int)

	for _, cell := range that.board.FreeCells() {
		id, ok := that.tree.FindChildNodeWithGivenPosition(cell)
		if !ok {
			candidates[choiceUnexplored] = append(candidates[choiceUnexplored], cell)
			continue
		}

		c := classify(that.tree.Node(id).Status)
		candidates[c] = append(candidates[c], cell)
	}

	for _, c := range preferences[that.regime] {
		if cells := candidates[c]; len(cells) > 0 {
			return cells[that.rnd.Intn(len(cells))]
		}
	}

	// unreachable while the game continues: a free cell always exists
	return -1
}

// classify - node status is seen from the mover, so a WIN node is a winning move.
func classify(status tree.Status) choice {
	switch status {
	case tree.StatusWin:
		return choiceWin
	case tree.StatusDraw:
		return choiceDraw
	case tree.StatusLose:
		return choiceLose
	default:
		return choiceUnknown
	}
}
