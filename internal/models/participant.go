package models

// Participant represents one member of a group.
//
// Participants are identified by username. A person appearing in several
// groups is listed once per group; their username ties the entries (and
// their wish list) together.
type Participant struct {
	// Username is the login identifier, unique within a group.
	Username string `yaml:"username"`

	// Name is the display name shown to other participants.
	Name string `yaml:"name"`

	// Password is the login credential, checked by plain equality against
	// what the user types. It lives only in config, never in the store or
	// in API responses.
	Password string `yaml:"password" json:"-"`

	// Exclude lists usernames this participant must not be assigned to
	// (on top of the implicit self-exclusion). Typically mutual, but
	// stored as a directed list.
	Exclude []string `yaml:"exclude"`
}
