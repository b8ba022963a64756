// Package credentials looks up the bearer token attached to outbound API
// requests. Acquiring tokens (login) happens elsewhere; this package only
// reads them.
package credentials

import (
	"golang.org/x/oauth2"
)

// Source is one place a token may be stored.
type Source interface {
	// Name identifies the source in logs.
	Name() string
	// Lookup returns the stored token, or false if there is none.
	Lookup() (string, bool)
}

// Accessor checks its sources in order and uses the first token found.
// It keeps no cache; every call looks the token up again.
type Accessor struct {
	sources []Source
}

// NewAccessor returns an Accessor that consults sources in the given order.
func NewAccessor(sources ...Source) *Accessor {
	return &Accessor{sources: sources}
}

// Token returns the first non-empty token and the name of its source.
func (a *Accessor) Token() (token, source string, ok bool) {
	for _, s := range a.sources {
		if tok, found := s.Lookup(); found && tok != "" {
			return tok, s.Name(), true
		}
	}
	return "", "", false
}

// AuthHeader returns the Authorization header value. Without a token the
// value is "Bearer " and the server is left to reject the request.
func (a *Accessor) AuthHeader() string {
	tok, _, _ := a.Token()
	return "Bearer " + tok
}

// OAuth2Token implements oauth2.TokenSource. It never fails: a missing token
// yields an empty bearer token.
func (a *Accessor) OAuth2Token() (*oauth2.Token, error) {
	tok, _, _ := a.Token()
	return &oauth2.Token{AccessToken: tok, TokenType: "Bearer"}, nil
}

// TokenSource adapts an Accessor to oauth2.TokenSource.
func (a *Accessor) TokenSource() oauth2.TokenSource {
	return tokenSource{a}
}

type tokenSource struct{ a *Accessor }

func (t tokenSource) Token() (*oauth2.Token, error) { return t.a.OAuth2Token() }

// Default returns the standard lookup chain: session, then the environment
// variable envKey, then the persistent token file. The session tier only
// yields a token once the host calls Set on it; the CLI does so from --token.
func Default(session *Session, envKey, tokenFile string, onFileError func(error)) *Accessor {
	return NewAccessor(session, Env{Key: envKey}, File{Path: tokenFile, OnError: onFileError})
}
