package cards

// Visibility is the per-viewer state of a single hand or deck slot.
type Visibility int8

const (
	// Public identities are known to every player (the face-up bottom
	// card, any card that has ever sat in a completed pile, any card a
	// trump-reflect has exposed).
	Public Visibility = iota
	// Private identities are known only to the slot's holder.
	Private
	// Unknown is the sentinel: identity unknown to the current viewer,
	// though the holder (or the engine, once determinized) may know it.
	Unknown
)

// Slot is one card-sized unit of a hand or deck. When Visibility is Unknown,
// Card is the zero value and must not be read.
type Slot struct {
	Card       Card
	Visibility Visibility
}

// Resolved reports whether this slot's identity is known to the holder
// (Public or Private); Unknown slots are not.
func (s Slot) Resolved() bool { return s.Visibility != Unknown }

// Hand is the unordered multiset of slots held by one player.
type Hand []Slot

// Count returns the hand size (concrete + unknown slots).
func (h Hand) Count() int { return len(h) }

// CountUnknown returns the number of unknown-identity slots.
func (h Hand) CountUnknown() int {
	n := 0
	for _, s := range h {
		if !s.Resolved() {
			n++
		}
	}
	return n
}

// HasConcrete reports whether the hand holds c as a resolved (Public or
// Private) slot.
func (h Hand) HasConcrete(c Card) bool {
	for _, s := range h {
		if s.Resolved() && s.Card == c {
			return true
		}
	}
	return false
}

// ConcreteCards returns every resolved identity currently in the hand.
func (h Hand) ConcreteCards() []Card {
	out := make([]Card, 0, len(h))
	for _, s := range h {
		if s.Resolved() {
			out = append(out, s.Card)
		}
	}
	return out
}

// RemoveConcrete removes the first resolved slot matching c, reporting
// whether one was found.
func (h *Hand) RemoveConcrete(c Card) bool {
	for i, s := range *h {
		if s.Resolved() && s.Card == c {
			*h = append((*h)[:i], (*h)[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveOneUnknown removes the first unknown-identity slot, reporting
// whether one was found.
func (h *Hand) RemoveOneUnknown() bool {
	for i, s := range *h {
		if !s.Resolved() {
			*h = append((*h)[:i], (*h)[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveEither removes a concrete slot matching c if one exists, otherwise an
// arbitrary unknown slot (the "unknown-slot elimination" rule of spec §5).
// Reports whether anything was removed.
func (h *Hand) RemoveEither(c Card) bool {
	if h.RemoveConcrete(c) {
		return true
	}
	return h.RemoveOneUnknown()
}

// Clone returns an independent copy of the hand.
func (h Hand) Clone() Hand {
	out := make(Hand, len(h))
	copy(out, h)
	return out
}
