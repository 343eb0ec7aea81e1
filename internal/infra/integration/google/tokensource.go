package google

import (
	"context"

	"golang.org/x/oauth2"
)

// tokenSource adapts TokenProvider to oauth2.TokenSource so the Sheets client
// can authenticate through oauth2.Transport.
type tokenSource struct {
	provider *TokenProvider
	ctx      context.Context
}

// TokenSource returns an oauth2.TokenSource backed by the provider cache.
func (p *TokenProvider) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &tokenSource{provider: p, ctx: ctx}
}

func (t *tokenSource) Token() (*oauth2.Token, error) {
	return t.provider.token(t.ctx)
}
