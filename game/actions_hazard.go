package game

// revealHazard removes the hazard card without scoring and announces the skipped turn.
func (g *Game) revealHazard() {
	if g.Finished || g.Phase != HazardResolving {
		return
	}
	player := g.CurrentPlayer()
	for _, idx := range g.Selection {
		card := &g.Board.Cards[idx]
		if card.Hazard {
			card.Matched = true
			g.emit(cardEffect(*card))
		}
	}
	g.emit(Effect{Type: EffectMessage, Message: "Oh no! " + player.Label() + " stepped on a hazard! Skip turn!"})
	g.log.Debug("hazard revealed", "player", player.Index)
	g.after(g.Timing.HazardMessage, g.skipAfterHazard)
}

// skipAfterHazard turns back the rest of the selection and passes the turn.
func (g *Game) skipAfterHazard() {
	if g.Finished || g.Phase != HazardResolving {
		return
	}
	for _, idx := range g.Selection {
		card := &g.Board.Cards[idx]
		if !card.Matched {
			card.Flipped = false
			g.emit(cardEffect(*card))
		}
	}
	g.Selection = g.Selection[:0]
	g.advance()
	g.Locked = false
	g.Phase = Idle

	// Human seats may flip immediately.
	if g.CurrentPlayer().IsComputer() {
		g.after(g.Timing.HazardNextTurn, g.beginTurn)
	}
}
