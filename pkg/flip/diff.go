package flip

// Diff partitions the ids of two snapshot sets.
type Diff struct {
	// Flipped ids are present in both sets, in current document order.
	Flipped []FlipID

	// Appearing ids are only in the current set and have OnAppear.
	Appearing []FlipID

	// Disappearing ids are only in the previous set and have OnExit.
	Disappearing []FlipID
}

// Classify compares prev and cur by flip id. Ids present on one side only
// and lacking the matching callback are dropped.
func Classify(prev, cur Snapshots, callbacks Callbacks) Diff {
	var d Diff
	for _, id := range cur.order {
		switch {
		case prev.Has(id):
			d.Flipped = append(d.Flipped, id)
		case callbacks[id].OnAppear != nil:
			d.Appearing = append(d.Appearing, id)
		}
	}
	for _, id := range prev.order {
		if !cur.Has(id) && callbacks[id].OnExit != nil {
			d.Disappearing = append(d.Disappearing, id)
		}
	}
	return d
}
