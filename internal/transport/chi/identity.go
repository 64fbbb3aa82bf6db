package chi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/agilesafe/searchd/internal/domain"
)

// Identity headers set by the platform gateway after it authenticates the
// caller. This service trusts them as-is.
const (
	headerUserID    = "X-User-ID"
	headerUserTeams = "X-User-Teams"
)

// actorFromRequest resolves the acting user from the gateway headers.
// X-User-Teams is a comma-separated list; blank entries are dropped.
func actorFromRequest(r *http.Request) (domain.Actor, error) {
	id := strings.TrimSpace(r.Header.Get(headerUserID))

	var teams []string
	if raw := r.Header.Get(headerUserTeams); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				teams = append(teams, t)
			}
		}
	}

	actor, err := domain.NewActor(id, teams)
	if err != nil {
		return domain.Actor{}, fmt.Errorf("resolve identity: %w", err)
	}
	return actor, nil
}
