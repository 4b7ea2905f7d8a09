package wildlife

// DefaultMaxPopulation caps how many animals can be on the porch at once.
const DefaultMaxPopulation = 8

// Population is an insertion-ordered, capacity-bounded set of animals. The
// front of the slice is the oldest member.
type Population struct {
	max     int
	members []*Animal
	nextSeq uint64
}

// NewPopulation returns an empty population. Non-positive caps use
// DefaultMaxPopulation.
func NewPopulation(max int) *Population {
	if max <= 0 {
		max = DefaultMaxPopulation
	}
	return &Population{max: max}
}

// Max returns the capacity.
func (p *Population) Max() int { return p.max }

// Len returns the number of members.
func (p *Population) Len() int { return len(p.members) }

// Members exposes the members, oldest first. Callers must not retain the
// slice across mutations.
func (p *Population) Members() []*Animal { return p.members }

// Add appends a, stamping it with the next insertion index, then evicts the
// oldest members until the population fits. The evicted animals are returned
// oldest first.
func (p *Population) Add(a *Animal) []*Animal {
	a.Seq = p.nextSeq
	p.nextSeq++
	p.members = append(p.members, a)
	return p.trim()
}

// SetMax changes the capacity, evicting the oldest members if needed.
func (p *Population) SetMax(max int) []*Animal {
	if max <= 0 {
		return nil
	}
	p.max = max
	return p.trim()
}

// Find returns the member with the given string id.
func (p *Population) Find(id string) *Animal {
	for _, a := range p.members {
		if a.ID.String() == id {
			return a
		}
	}
	return nil
}

func (p *Population) trim() []*Animal {
	over := len(p.members) - p.max
	if over <= 0 {
		return nil
	}
	evicted := make([]*Animal, over)
	copy(evicted, p.members[:over])
	remaining := make([]*Animal, len(p.members)-over, p.max)
	copy(remaining, p.members[over:])
	p.members = remaining
	return evicted
}
