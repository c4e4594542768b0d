package engine

import "sort"

// buildPots partitions total contributions into the main pot and any side
// pots, per §4.3.5 step 1-3: sort contributions ascending, peel one
// contribution tier at a time, and restrict each tier's eligible winners to
// the non-folded seats that reached it. A tier whose only eligible seat is
// the seat that contributed it (an uncalled raise) is refunded straight to
// that seat's stack instead of becoming a pot, since nobody else can
// contest it.
func buildPots(h *HandState) []Pot {
	contributions := make(map[int]int64)
	for seat, p := range h.Players {
		if p.TotalInPot > 0 {
			contributions[seat] = p.TotalInPot
		}
	}
	if len(contributions) == 0 {
		return nil
	}

	thresholds := make([]int64, 0, len(contributions))
	seen := map[int64]bool{}
	for _, amt := range contributions {
		if !seen[amt] {
			seen[amt] = true
			thresholds = append(thresholds, amt)
		}
	}
	sort.Slice(thresholds, func(i, j int) bool { return thresholds[i] < thresholds[j] })

	var pots []Pot
	var carry int64
	var prev int64
	for _, threshold := range thresholds {
		layerPer := threshold - prev
		if layerPer <= 0 {
			prev = threshold
			continue
		}
		var contributors []int
		for seat, amt := range contributions {
			if amt >= threshold {
				contributors = append(contributors, seat)
			}
		}
		amount := layerPer * int64(len(contributors))

		var eligible []int
		for _, seat := range contributors {
			if !h.Players[seat].HasFolded {
				eligible = append(eligible, seat)
			}
		}

		switch {
		case len(eligible) == 0:
			carry += amount
		case len(eligible) == 1:
			h.Players[eligible[0]].Stack += amount + carry
			carry = 0
		default:
			elig := make(map[int]bool, len(eligible))
			for _, s := range eligible {
				elig[s] = true
			}
			pots = append(pots, Pot{Amount: amount + carry, Eligible: elig})
			carry = 0
		}
		prev = threshold
	}
	if carry > 0 && len(pots) > 0 {
		pots[len(pots)-1].Amount += carry
	}
	return pots
}
