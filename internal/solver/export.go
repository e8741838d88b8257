package solver

// NodeRecord is one node's exported state, matching the external JSON schema.
type NodeRecord struct {
	ID           int                  `json:"id"`
	ActionSeq    []string             `json:"atn-sq"`
	LegalActions []string             `json:"avl-acs"`
	RangeStrat   map[string][]float64 `json:"rg-strat"`
	RangeEVs     map[string]float64   `json:"rg-EVs"`
	ActionEVs    map[string][]float64 `json:"act-EVs"`
}

// Export walks the solved tree and produces one NodeRecord per node, in
// construction (BFS) order. rg-strat reports the converged average
// strategy (not the final instantaneous actions_taken snapshot Run leaves
// in place, which is just a copy of it). rg-EVs and act-EVs are
// recomputed directly from the converged tree rather than cached during
// the iteration loop, since caching only ever held the final iteration's
// values transiently per node.
func (e *Engine) Export() []NodeRecord {
	records := make([]NodeRecord, 0, len(e.Tree.Nodes))

	for _, n := range e.Tree.Nodes {
		hero := n.ToAct
		rec := NodeRecord{
			ID:           n.ID,
			ActionSeq:    n.ActionSeq,
			LegalActions: n.LegalActions,
			RangeStrat:   make(map[string][]float64, len(n.PlayerRange.Tags)),
			RangeEVs:     make(map[string]float64, len(n.PlayerRange.Tags)),
			ActionEVs:    make(map[string][]float64, len(n.PlayerRange.Tags)),
		}

		for _, tag := range n.PlayerRange.Tags {
			h := n.PlayerRange.Hands[tag]
			rec.RangeStrat[tag] = h.AvgStrat
			rec.RangeEVs[tag] = e.evHand(n, tag, h.Hole, hero)

			if n.IsTerminal() {
				rec.ActionEVs[tag] = []float64{rec.RangeEVs[tag]}
				continue
			}
			acts := make([]float64, len(n.LegalActions))
			for i := range n.LegalActions {
				acts[i] = e.evAction(n, tag, h.Hole, i, hero)
			}
			rec.ActionEVs[tag] = acts
		}

		records = append(records, rec)
	}

	return records
}
