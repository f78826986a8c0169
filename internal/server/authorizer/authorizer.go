// Package authorizer turns bearer token verification into an Allow/Deny
// policy decision, evaluated once per request before any business handler.
package authorizer

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
)

type Effect string

const (
	Allow Effect = "Allow"
	Deny  Effect = "Deny"
)

// Policy is the outcome of Authorize.
type Policy struct {
	PrincipalID string
	Effect      Effect
	Resource    string
}

type verifier interface {
	Verify(ctx context.Context, header string) (*auth.Claims, error)
}

type Authorizer struct {
	verifier verifier
	logger   logging.Logger
}

func New(v verifier, l logging.Logger) *Authorizer {
	return &Authorizer{verifier: v, logger: l.With("module", "authorizer")}
}

// Authorize never fails: any verification error becomes a Deny policy for
// the placeholder principal.
func (a *Authorizer) Authorize(ctx context.Context, header string) Policy {
	claims, err := a.verifier.Verify(ctx, header)
	if err != nil {
		a.logger.Warn(ctx, "User not authorized", "error", err.Error())
		return Policy{PrincipalID: common.DenyPrincipalID, Effect: Deny, Resource: "*"}
	}

	a.logger.Debug(ctx, "User authorized", "principal", claims.Subject)
	return Policy{PrincipalID: claims.Subject, Effect: Allow, Resource: "*"}
}
