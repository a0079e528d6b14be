package middleware

import (
	"net/http"
	"strings"

	"github.com/opikzxx/ad-catering/models"
	"github.com/opikzxx/ad-catering/repository"
)

// SessionCookie is the cookie the session login sets. Older deployments used
// the legacy names as well, so the gate clears all of them on expiry.
const SessionCookie = "session_token"

var knownSessionCookies = []string{SessionCookie, "admin_session", "catering_session"}

const (
	adminPrefix  = "/administrator"
	loginPath    = "/login"
	registerPath = "/register"
)

type GateAction int

const (
	GateAllow GateAction = iota
	GateRedirect
	GateRedirectClearCookies
)

type GateDecision struct {
	Action   GateAction
	Location string
}

// Decide is the pure gate rule: given a request path and the role of the
// session owner ("" when unauthenticated), pick allow or redirect.
func Decide(path, role string) GateDecision {
	onAdmin := path == adminPrefix || strings.HasPrefix(path, adminPrefix+"/")
	onAuthPage := path == loginPath || path == registerPath

	switch {
	case onAdmin && role == "":
		return GateDecision{Action: GateRedirectClearCookies, Location: loginPath + "?session=expired"}
	case onAdmin && role != models.RoleAdmin:
		return GateDecision{Action: GateRedirect, Location: "/"}
	case onAuthPage && role == models.RoleAdmin:
		return GateDecision{Action: GateRedirect, Location: adminPrefix}
	case onAuthPage && role != "":
		return GateDecision{Action: GateRedirect, Location: "/"}
	}
	return GateDecision{Action: GateAllow}
}

// Gate intercepts every request and applies Decide using the session cookie.
type Gate struct {
	Sessions repository.SessionRepository
	Users    repository.UserRepository
}

func NewGate(sessions repository.SessionRepository, users repository.UserRepository) *Gate {
	return &Gate{Sessions: sessions, Users: users}
}

func (g *Gate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decision := Decide(r.URL.Path, g.roleFor(r))

		switch decision.Action {
		case GateRedirectClearCookies:
			for _, name := range knownSessionCookies {
				http.SetCookie(w, &http.Cookie{
					Name:     name,
					Value:    "",
					Path:     "/",
					MaxAge:   -1,
					HttpOnly: true,
				})
			}
			http.Redirect(w, r, decision.Location, http.StatusFound)
		case GateRedirect:
			http.Redirect(w, r, decision.Location, http.StatusFound)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

// roleFor resolves the session cookie to a user role, "" when there is no
// valid session.
func (g *Gate) roleFor(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return ""
	}

	session, err := g.Sessions.GetSession(cookie.Value)
	if err != nil || session == nil || session.Expired() {
		return ""
	}

	user, err := g.Users.GetUserByID(session.UserID)
	if err != nil || user == nil {
		return ""
	}
	return user.Role
}
