package models

// Group represents one independent gift exchange: a roster of participants
// with a shared budget. Groups are defined in the operator config file and
// never change at runtime; redeploying the config is the only way to edit
// a roster.
type Group struct {
	// ID is the unique identifier for the group (a short slug from config,
	// e.g. "family-2026").
	ID string `yaml:"id"`

	// Name is the display name of the group (e.g., "Family Exchange").
	Name string `yaml:"name"`

	// Budget is the suggested gift budget. Must be positive.
	Budget float64 `yaml:"budget"`

	// Currency is the symbol shown next to the budget (e.g., "$", "EUR").
	Currency string `yaml:"currency"`

	// Participants is the ordered roster. At least 2 members; exclusions
	// make anything under 3 practically infeasible.
	Participants []Participant `yaml:"participants"`
}

// Member returns the participant with the given username, or nil if the
// username is not on this group's roster.
func (g *Group) Member(username string) *Participant {
	for i := range g.Participants {
		if g.Participants[i].Username == username {
			return &g.Participants[i]
		}
	}
	return nil
}

// Usernames returns the roster usernames in config order.
func (g *Group) Usernames() []string {
	names := make([]string, len(g.Participants))
	for i, p := range g.Participants {
		names[i] = p.Username
	}
	return names
}

// Exclusions returns the giver -> forbidden recipients mapping for the
// group, in the form the matcher consumes. Self-exclusion is implicit and
// not included.
func (g *Group) Exclusions() map[string][]string {
	exclusions := make(map[string][]string)
	for _, p := range g.Participants {
		if len(p.Exclude) > 0 {
			exclusions[p.Username] = p.Exclude
		}
	}
	return exclusions
}
