package entry

import (
	"strings"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

// ErrAccessDenied indicates the knock at the door used the wrong name or code.
var ErrAccessDenied = eris.New("access denied")

// Gatekeeper guards the mansion's front door. Visitors who present the right
// name and permission code receive a session token; everything behind the
// door checks the token. Sessions have no expiry, mirroring the "inside the
// mansion" flag that only clears on an explicit exit.
type Gatekeeper struct {
	name     string
	code     string
	sessions *gocache.Cache
	logger   *logrus.Logger
}

// Settings configures the gatekeeper's expected credentials.
type Settings struct {
	Name   string
	Code   string
	Logger *logrus.Logger
}

// NewGatekeeper constructs the front-door gate.
func NewGatekeeper(settings Settings) (*Gatekeeper, error) {
	if settings.Name == "" {
		return nil, eris.New("entry name is required")
	}
	if settings.Code == "" {
		return nil, eris.New("entry code is required")
	}

	return &Gatekeeper{
		name:     settings.Name,
		code:     settings.Code,
		sessions: gocache.New(gocache.NoExpiration, 0),
		logger:   settings.Logger,
	}, nil
}

// Enter checks the visitor's name and permission code and returns a session
// token on success. The name comparison is case-insensitive, the code is not.
func (g *Gatekeeper) Enter(name, code string) (string, error) {
	if !strings.EqualFold(strings.TrimSpace(name), g.name) || code != g.code {
		if g.logger != nil {
			g.logger.WithField("name", strings.TrimSpace(name)).Warn("entry refused at the door")
		}
		return "", eris.Wrap(ErrAccessDenied, "entering the mansion")
	}

	token := uuid.NewString()
	g.sessions.Set(token, struct{}{}, gocache.NoExpiration)

	if g.logger != nil {
		g.logger.Info("visitor entered the mansion")
	}

	return token, nil
}

// Leave ends the session for the token. Leaving with an unknown token is a
// no-op.
func (g *Gatekeeper) Leave(token string) {
	g.sessions.Delete(token)
}

// IsInside reports whether the token belongs to an active session.
func (g *Gatekeeper) IsInside(token string) bool {
	if token == "" {
		return false
	}
	_, found := g.sessions.Get(token)
	return found
}
