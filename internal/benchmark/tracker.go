package benchmark

// Outcome is the classification of a recorded (key, input) pair.
type Outcome int

const (
	NewEntry Outcome = iota
	Repeat
	Collision
)

func (o Outcome) String() string {
	switch o {
	case NewEntry:
		return "new"
	case Repeat:
		return "repeat"
	case Collision:
		return "collision"
	default:
		return "unknown"
	}
}

// CollisionTracker remembers the first input seen for every key. Later inputs
// with the same key are either repeats of that first input or collisions; the
// stored input is never replaced.
type CollisionTracker struct {
	seen       map[string]string
	collisions int
	repeats    int
	processed  int
}

func NewCollisionTracker(sizeHint int) *CollisionTracker {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &CollisionTracker{seen: make(map[string]string, sizeHint)}
}

func (t *CollisionTracker) Record(key, input string) Outcome {
	t.processed++

	first, ok := t.seen[key]
	switch {
	case !ok:
		t.seen[key] = input
		return NewEntry
	case first == input:
		t.repeats++
		return Repeat
	default:
		t.collisions++
		return Collision
	}
}

func (t *CollisionTracker) Collisions() int { return t.collisions }
func (t *CollisionTracker) Repeats() int    { return t.repeats }
func (t *CollisionTracker) Distinct() int   { return len(t.seen) }
func (t *CollisionTracker) Processed() int  { return t.processed }
