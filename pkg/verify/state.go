package verify

// State accumulates the outcome of one verification run. It is created fresh
// for every run and threaded through the recursive stages.
type State struct {
	ExceedsMaxEdgeCount bool `json:"exceeds_max_edge_count"`
	HasCycle            bool `json:"has_cycle"`
	BadOrder            bool `json:"bad_order"`
	SameLabel           bool `json:"same_label"`
	RedHasRedChildren   bool `json:"red_has_red_children"`
	MissingLabel        bool `json:"missing_label"`
	Disconnected        bool `json:"disconnected"`
	BlackHeightGood     bool `json:"black_height_good"`

	NumVisited int `json:"num_visited"`
}

// Failed reports whether any failure flag is set. BlackHeightGood is an
// outcome, not a failure flag, and is not considered.
func (s *State) Failed() bool {
	return s.ExceedsMaxEdgeCount || s.HasCycle || s.BadOrder || s.SameLabel ||
		s.RedHasRedChildren || s.MissingLabel || s.Disconnected
}

// Flags returns the names of the set failure flags in a fixed order.
func (s *State) Flags() []string {
	var out []string
	add := func(set bool, name string) {
		if set {
			out = append(out, name)
		}
	}
	add(s.ExceedsMaxEdgeCount, "exceedsMaxEdgeCount")
	add(s.HasCycle, "hasCycle")
	add(s.BadOrder, "badOrder")
	add(s.SameLabel, "sameLabel")
	add(s.RedHasRedChildren, "redHasRedChildren")
	add(s.MissingLabel, "missingLabel")
	add(s.Disconnected, "disconnected")
	return out
}
