package game

// advance passes the turn to the next seat, wrapping around.
func (g *Game) advance() {
	g.Current = (g.Current + 1) % len(g.Players)
	g.emitTurn()
}

// beginTurn schedules the current seat's play if it is a computer. Human
// seats act through RequestFlip.
func (g *Game) beginTurn() {
	if g.Finished || !g.CurrentPlayer().IsComputer() {
		return
	}
	g.after(g.Timing.ComputerThink, g.playComputerTurn)
}

// playComputerTurn flips the computer's first card and, if the turn is still
// open, schedules its second pick.
func (g *Game) playComputerTurn() {
	if g.Finished || g.Locked || g.Phase != Idle {
		return
	}
	player := g.CurrentPlayer()
	if !player.IsComputer() {
		return
	}

	move := player.Policy.Plan(BuildCardViews(g.Board))
	g.log.Debug("computer plan", "player", player.Index, "first", move.First, "second", move.Second, "reason", move.Reason)
	first := move.First
	if !g.RequestFlip(first, OriginComputer) {
		first = g.anyHidden()
		if first < 0 || !g.RequestFlip(first, OriginComputer) {
			g.log.Warn("computer found no card to flip", "player", player.Index)
			return
		}
		move.Second = -1
	}

	if g.Phase != OneSelected {
		return
	}
	turn := g.Current
	g.after(g.Timing.SecondPick, func() {
		g.playComputerSecond(turn, first, move.Second)
	})
}

// playComputerSecond flips the planned partner, falling back to the policy's
// second pick when there was no plan or the planned card is gone.
func (g *Game) playComputerSecond(turn, first, planned int) {
	if g.Finished || g.Phase != OneSelected || g.Current != turn {
		return
	}
	if planned >= 0 && g.RequestFlip(planned, OriginComputer) {
		return
	}
	player := g.CurrentPlayer()
	second := player.Policy.SecondPick(BuildCardViews(g.Board), first)
	if g.RequestFlip(second, OriginComputer) {
		return
	}
	if fallback := g.anyHidden(); fallback >= 0 && g.RequestFlip(fallback, OriginComputer) {
		return
	}
	g.log.Warn("computer found no second card", "player", player.Index, "first", first)
}

func (g *Game) anyHidden() int {
	hidden := g.Board.Hidden()
	if len(hidden) == 0 {
		return -1
	}
	return hidden[0]
}
