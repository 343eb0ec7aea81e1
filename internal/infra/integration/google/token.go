package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"

	"github.com/xavierca1/ligue-landing/internal/logger"
)

const (
	jwtBearerGrantType = "urn:ietf:params:oauth:grant-type:jwt-bearer"

	// margem para não usar um token que expira durante a chamada ao Sheets
	expirySafetyMargin = 5 * time.Second
	defaultExpiresIn   = 3600
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// TokenProvider troca uma assertion assinada por um access token e guarda o
// token em memória até perto de expirar.
//
// O cache é um único *oauth2.Token trocado inteiro sob mutex; token e
// expiração nunca são atualizados separadamente. Renovações concorrentes são
// colapsadas em uma só chamada ao token endpoint.
type TokenProvider struct {
	creds     *Credentials
	tokenURL  string
	client    *resty.Client
	now       func() time.Time
	onRefresh func(err error)
	logger    *logger.Logger

	mu     sync.RWMutex
	cached *oauth2.Token

	group singleflight.Group
}

type TokenOption func(*TokenProvider)

// WithClock injects the time source. Tests use it to move past expiry.
func WithClock(now func() time.Time) TokenOption {
	return func(p *TokenProvider) { p.now = now }
}

// WithTokenURL overrides the token endpoint taken from the key file.
func WithTokenURL(url string) TokenOption {
	return func(p *TokenProvider) {
		if url != "" {
			p.tokenURL = url
		}
	}
}

func WithHTTPTimeout(d time.Duration) TokenOption {
	return func(p *TokenProvider) { p.client.SetTimeout(d) }
}

// WithRefreshHook is called after every token exchange with its outcome.
func WithRefreshHook(fn func(err error)) TokenOption {
	return func(p *TokenProvider) { p.onRefresh = fn }
}

func WithLogger(l *logger.Logger) TokenOption {
	return func(p *TokenProvider) { p.logger = l }
}

func NewTokenProvider(creds *Credentials, opts ...TokenOption) *TokenProvider {
	p := &TokenProvider{
		creds:     creds,
		tokenURL:  creds.TokenURI,
		client:    resty.New().SetTimeout(10 * time.Second),
		now:       time.Now,
		onRefresh: func(error) {},
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AccessToken returns a cached token while it is still valid for at least
// five seconds, otherwise performs one JWT-bearer exchange. It fails with
// *AuthError and leaves the cache untouched when the exchange fails.
func (p *TokenProvider) AccessToken(ctx context.Context) (string, error) {
	tok, err := p.token(ctx)
	if err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

// Cached returns a copy of the cached token, if any.
func (p *TokenProvider) Cached() (oauth2.Token, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.cached == nil {
		return oauth2.Token{}, false
	}
	return *p.cached, true
}

func (p *TokenProvider) token(ctx context.Context) (*oauth2.Token, error) {
	if tok, ok := p.fresh(); ok {
		return tok, nil
	}

	v, err, _ := p.group.Do("token", func() (any, error) {
		// outro chamador pode ter renovado enquanto esperávamos
		if tok, ok := p.fresh(); ok {
			return tok, nil
		}
		// a renovação é compartilhada: não pode morrer com o contexto de um só request
		return p.refresh(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}

	return v.(*oauth2.Token), nil
}

func (p *TokenProvider) fresh() (*oauth2.Token, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.cached == nil || p.cached.AccessToken == "" {
		return nil, false
	}
	if !p.now().Before(p.cached.Expiry.Add(-expirySafetyMargin)) {
		return nil, false
	}

	tok := *p.cached
	return &tok, true
}

func (p *TokenProvider) refresh(ctx context.Context) (*oauth2.Token, error) {
	tok, err := p.exchange(ctx)
	p.onRefresh(err)
	if err != nil {
		p.logger.Error().Err(err).Str("token_url", p.tokenURL).Msg("google token exchange failed")
		return nil, err
	}

	p.mu.Lock()
	p.cached = tok
	p.mu.Unlock()

	p.logger.Info().Time("expiry", tok.Expiry).Msg("google access token renewed")

	copied := *tok
	return &copied, nil
}

func (p *TokenProvider) exchange(ctx context.Context) (*oauth2.Token, error) {
	now := p.now()

	assertion, err := SignAssertion(NewAssertionClaims(p.creds, p.tokenURL, now), p.creds.Key())
	if err != nil {
		return nil, &AuthError{Err: err}
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetFormData(map[string]string{
			"grant_type": jwtBearerGrantType,
			"assertion":  assertion,
		}).
		Post(p.tokenURL)
	if err != nil {
		return nil, &AuthError{Err: fmt.Errorf("token request: %w", err)}
	}

	if !resp.IsSuccess() {
		return nil, &AuthError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}

	var body tokenResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, &AuthError{
			StatusCode: resp.StatusCode(),
			Body:       string(resp.Body()),
			Err:        fmt.Errorf("decode token response: %w", err),
		}
	}
	if body.AccessToken == "" {
		return nil, &AuthError{
			StatusCode: resp.StatusCode(),
			Body:       string(resp.Body()),
			Err:        errors.New("token response without access_token"),
		}
	}

	expiresIn := body.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = defaultExpiresIn
	}
	tokenType := body.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}

	return &oauth2.Token{
		AccessToken: body.AccessToken,
		TokenType:   tokenType,
		Expiry:      now.Add(time.Duration(expiresIn) * time.Second),
	}, nil
}
