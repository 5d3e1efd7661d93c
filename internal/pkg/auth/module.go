package auth

import (
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
)

// Module provides the admin token verifier via fx.
var Module = fx.Provide(newTokenVerifier)

type verifierParams struct {
	fx.In

	Config *config.Config
}

func newTokenVerifier(p verifierParams) (TokenVerifier, error) {
	return NewBcryptVerifier(p.Config.AdminToken, 0)
}
