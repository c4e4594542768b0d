package engine

// LegalActions computes the action set available to seat, per §4.3.2. The
// caller must confirm seat is who the table/session loop expects to act;
// LegalActions re-validates against the engine's own notion of whose turn
// it is and returns ErrOutOfTurn if they disagree.
func LegalActions(h *HandState, seat int) (*LegalActionSet, error) {
	if h.ended {
		return nil, ErrHandEnded
	}
	if len(h.ToActQueue) == 0 || h.ToActQueue[0] != seat {
		return nil, ErrOutOfTurn
	}
	p, ok := h.Players[seat]
	if !ok || p.HasFolded || p.IsAllIn {
		return nil, InvalidStateError("seat to act is folded or all-in")
	}

	set := &LegalActionSet{Seat: seat, Actions: []Action{ActionFold}}
	toCall := h.CurrentBet - p.CommittedThisStreet
	totalAvailable := p.Stack + p.CommittedThisStreet

	if toCall <= 0 {
		set.Actions = append(set.Actions, ActionCheck)
	} else {
		callAmt := toCall
		if callAmt > p.Stack {
			callAmt = p.Stack
		}
		set.CallAmount = callAmt
		set.Actions = append(set.Actions, ActionCall)
	}

	canRaise := totalAvailable > h.CurrentBet &&
		(h.ReopenAllowed || !p.ClosedAction) &&
		h.nonFoldedNonAllInCount() >= 2
	if canRaise {
		minRaiseTo := h.CurrentBet + h.MinRaiseIncrement
		if minRaiseTo > totalAvailable {
			minRaiseTo = totalAvailable // short all-in raise, below the standard minimum
		}
		set.Actions = append(set.Actions, ActionRaiseTo)
		set.MinRaiseTo = minRaiseTo
		set.MaxRaiseTo = totalAvailable
	}
	return set, nil
}

// Apply validates and applies one seat's action against the current hand
// state, returning the events it produced plus any events cascading from
// street advancement (dealing the next street, or running the showdown)
// that followed automatically because no seat was left to act.
func Apply(h *HandState, seat int, action Action, amount int64) ([]Event, error) {
	legal, err := LegalActions(h, seat)
	if err != nil {
		return nil, err
	}
	if !legal.Has(action) {
		return nil, ErrInvalidAction
	}

	p := h.Players[seat]
	var events []Event

	switch action {
	case ActionFold:
		p.HasFolded = true
		p.LastAction, p.hasLastAction = ActionFold, true
		h.popFromQueue(seat)
		events = append(events, Event{Kind: EventFold, Seat: seat})

	case ActionCheck:
		p.ClosedAction = true
		p.LastAction, p.hasLastAction = ActionCheck, true
		h.popFromQueue(seat)
		events = append(events, Event{Kind: EventCheck, Seat: seat})

	case ActionCall:
		callAmt := legal.CallAmount
		h.commit(p, callAmt)
		p.ClosedAction = true
		p.LastAction, p.hasLastAction = ActionCall, true
		h.popFromQueue(seat)
		events = append(events, Event{Kind: EventCall, Seat: seat, Amount: callAmt})

	case ActionRaiseTo:
		if amount < legal.MinRaiseTo || amount > legal.MaxRaiseTo {
			return nil, ErrInvalidAction
		}
		increment := amount - h.CurrentBet
		additional := amount - p.CommittedThisStreet
		h.commit(p, additional)
		p.ClosedAction = true
		p.LastAction, p.hasLastAction = ActionRaiseTo, true
		h.CurrentBet = amount
		h.LastAggressorSeat = seat

		fullRaise := increment >= h.MinRaiseIncrement
		if fullRaise {
			h.MinRaiseIncrement = increment
			h.ReopenAllowed = true
			for s, other := range h.Players {
				if s != seat && !other.HasFolded && !other.IsAllIn {
					other.ClosedAction = false
				}
			}
		} else {
			// Short all-in raise: does not reopen the RAISE option for seats
			// that already acted at the previous bet level (their
			// ClosedAction stays true), but they still owe a call/fold
			// decision on the new amount, so they are re-queued below too.
			h.ReopenAllowed = false
		}
		// Every raise, full or short, re-opens the queue to every other live
		// seat: they may no longer owe a fresh raise option (ClosedAction),
		// but they always owe a response to the new amount to call.
		queue := make([]int, 0, len(h.seatRing))
		for _, s := range h.activeOnly(rotateAfter(h.seatRing, seat)) {
			if s != seat {
				queue = append(queue, s)
			}
		}
		h.ToActQueue = queue
		events = append(events, Event{Kind: EventBet, Seat: seat, Amount: amount})
	}

	if h.nonFoldedCount() == 1 {
		winEvents, err := h.awardUncontested()
		if err != nil {
			return nil, err
		}
		return append(events, winEvents...), nil
	}

	streetEvents, err := h.advanceUntilActionOrShowdown()
	if err != nil {
		return nil, err
	}
	return append(events, streetEvents...), nil
}

// AdvanceIfSettled deals out remaining streets and/or runs the showdown when
// the current street already has no one left to act — the case StartHand
// hits directly when blinds leave fewer than 2 non-all-in seats before any
// action is taken. Safe to call when a real decision is still owed: it is a
// no-op in that case.
func (h *HandState) AdvanceIfSettled() ([]Event, error) {
	if h.ended || len(h.ToActQueue) > 0 {
		return nil, nil
	}
	return h.advanceUntilActionOrShowdown()
}

// advanceUntilActionOrShowdown deals successive streets while nobody is left
// to act (everyone remaining is all-in), stopping either when a seat has a
// real decision to make or the river has been dealt and showdown runs.
func (h *HandState) advanceUntilActionOrShowdown() ([]Event, error) {
	var events []Event
	for len(h.ToActQueue) == 0 {
		if h.Phase == PhaseRiver {
			showdownEvents, err := h.runShowdown()
			if err != nil {
				return nil, err
			}
			return append(events, showdownEvents...), nil
		}
		dealt, err := h.dealNextStreet()
		if err != nil {
			return nil, err
		}
		events = append(events, dealt)
		h.beginStreet()
	}
	return events, nil
}

func (h *HandState) dealNextStreet() (Event, error) {
	var n int
	var kind EventKind
	switch h.Phase {
	case PhasePreFlop:
		n, kind = 3, EventFlop
		h.Phase = PhaseFlop
	case PhaseFlop:
		n, kind = 1, EventTurn
		h.Phase = PhaseTurn
	case PhaseTurn:
		n, kind = 1, EventRiver
		h.Phase = PhaseRiver
	default:
		return Event{}, InvalidStateError("dealNextStreet called outside betting streets")
	}
	cards, ok := h.Deck.Deal(n)
	if !ok {
		return Event{}, InvalidStateError("deck underflow dealing community cards")
	}
	h.Community = append(h.Community, cards...)
	return Event{Kind: kind, Seat: InvalidSeat, Cards: cards}, nil
}

// awardUncontested ends the hand when every seat but one has folded: the
// last seat wins every pot without a showdown.
func (h *HandState) awardUncontested() ([]Event, error) {
	winner := InvalidSeat
	for seat, p := range h.Players {
		if !p.HasFolded {
			winner = seat
			break
		}
	}
	if winner == InvalidSeat {
		return nil, InvalidStateError("no seats remain after fold cascade")
	}
	var total int64
	for _, p := range h.Players {
		total += p.TotalInPot
	}
	h.Players[winner].Stack += total

	h.ended = true
	h.Phase = PhaseShowdown
	return []Event{{Kind: EventPotAward, PotIdx: 0, Pot: total, Winners: []int{winner}, Seat: winner}}, nil
}
