package domain

// Actor is the platform user a request acts on behalf of.
// Identity and team membership arrive from the gateway and are read-only here.
type Actor struct {
	id    string
	teams []string
}

// NewActor validates the supplied identity.
func NewActor(id string, teams []string) (Actor, error) {
	if id == "" {
		return Actor{}, ErrActorRequired
	}
	return Actor{id: id, teams: teams}, nil
}

// ID returns the user identifier.
func (a Actor) ID() string { return a.id }

// Teams returns the user's team memberships.
func (a Actor) Teams() []string { return a.teams }

// InTeam reports whether the actor belongs to the given team.
func (a Actor) InTeam(team string) bool {
	for _, t := range a.teams {
		if t == team {
			return true
		}
	}
	return false
}
