package game

// RequestFlip turns a card face up on behalf of origin. Requests that are not
// valid right now are ignored and reported as false.
func (g *Game) RequestFlip(cardIndex int, origin Origin) bool {
	if reason := g.rejectFlip(cardIndex, origin); reason != "" {
		g.log.Debug("flip ignored", "card", cardIndex, "origin", origin.String(), "reason", reason)
		return false
	}

	card := &g.Board.Cards[cardIndex]
	card.Flipped = true
	g.emit(cardEffect(*card))
	g.observe(*card)
	g.Selection = append(g.Selection, cardIndex)

	if card.Hazard {
		g.Locked = true
		g.Phase = HazardResolving
		g.after(g.Timing.HazardReveal, g.revealHazard)
		return true
	}

	if len(g.Selection) < 2 {
		g.Phase = OneSelected
		return true
	}

	g.Locked = true
	g.Phase = Resolving
	g.after(g.Timing.Resolve, g.resolveSelection)
	return true
}

func (g *Game) rejectFlip(cardIndex int, origin Origin) string {
	switch {
	case g.Finished:
		return "game finished"
	case g.Locked:
		return "locked"
	case g.Phase != Idle && g.Phase != OneSelected:
		return "phase " + g.Phase.String()
	case cardIndex < 0 || cardIndex >= len(g.Board.Cards):
		return "index out of range"
	}
	card := g.Board.Cards[cardIndex]
	if card.Flipped || card.Matched {
		return "card not hidden"
	}
	if g.CurrentPlayer().IsComputer() != (origin == OriginComputer) {
		return "not this origin's turn"
	}
	return ""
}

// observe lets every computer seat see a freshly flipped card.
func (g *Game) observe(card Card) {
	for _, p := range g.Players {
		if p.IsComputer() {
			p.Policy.Observe(card.Index, card.Symbol)
		}
	}
}

// resolveSelection settles a two-card selection once the resolve delay is over.
func (g *Game) resolveSelection() {
	if g.Finished || g.Phase != Resolving || len(g.Selection) != 2 {
		return
	}
	first := &g.Board.Cards[g.Selection[0]]
	second := &g.Board.Cards[g.Selection[1]]
	player := g.CurrentPlayer()
	g.Selection = g.Selection[:0]

	if first.Symbol == second.Symbol {
		first.Matched = true
		second.Matched = true
		g.emit(cardEffect(*first))
		g.emit(cardEffect(*second))
		player.Score++
		g.RemainingPairs--
		g.emit(Effect{Type: EffectScores, Scores: BuildPlayerViews(g.Players)})
		g.log.Debug("pair matched", "player", player.Index, "symbol", first.Symbol, "remaining", g.RemainingPairs)

		if g.RemainingPairs == 0 {
			g.finish()
			return
		}
		g.Phase = InterTurnDelay
		g.after(g.Timing.InterTurn, func() {
			g.Locked = false
			g.Phase = Idle
			g.emitTurn()
			g.beginTurn()
		})
		return
	}

	first.Flipped = false
	second.Flipped = false
	g.emit(cardEffect(*first))
	g.emit(cardEffect(*second))
	g.advance()
	g.Phase = InterTurnDelay
	g.after(g.Timing.InterTurn, func() {
		g.Locked = false
		g.Phase = Idle
		g.beginTurn()
	})
}

// finish ends the game and reports the final standings.
func (g *Game) finish() {
	g.Phase = GameOver
	g.Finished = true
	g.Locked = false

	standings := ComputeStandings(g.Players, g.TotalPairs, g.HazardPairs)
	g.Result = &standings
	g.emit(Effect{Type: EffectGameOver, Message: standings.Summary(), Standings: &standings})
	g.log.Info("game over", "result", standings.Summary(), "winners", standings.Winners)

	if g.OnGameEnd != nil {
		g.OnGameEnd(standings)
	}
}
