package model

// historySize is how many recent generations are kept for cycle detection.
const historySize = 5

// History remembers hashes of recent generations to spot still lifes and
// short oscillators. It is not safe for concurrent use.
type History struct {
	hashes []string
}

// Record adds live to the history and reports whether it repeats one of the
// last three recorded generations, i.e. a cycle of period 1 to 3.
func (h *History) Record(live LiveSet) bool {
	hash := live.Hash()

	stagnant := false
	for i := len(h.hashes) - 1; i >= 0 && i >= len(h.hashes)-3; i-- {
		if h.hashes[i] == hash {
			stagnant = true
			break
		}
	}

	h.hashes = append(h.hashes, hash)
	// Keep only the last states to detect cycles
	if len(h.hashes) > historySize {
		h.hashes = h.hashes[1:]
	}
	return stagnant
}

// Reset forgets all recorded generations.
func (h *History) Reset() {
	h.hashes = nil
}
