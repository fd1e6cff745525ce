package zaim

import "sync/atomic"

// Token is an OAuth token and its secret. It is used for request tokens and
// access tokens alike.
type Token struct {
	Token  string `json:"token"`
	Secret string `json:"secret"`
}

// Credentials holds the consumer key pair, fixed for the lifetime of the
// client, and the current access token pair. The access pair is swapped as a
// whole so a signed request never sees a token from one pair and the secret
// from another.
type Credentials struct {
	consumerKey    string
	consumerSecret string
	access         atomic.Pointer[Token]
}

func newCredentials(consumerKey, consumerSecret, accessToken, accessTokenSecret string) *Credentials {
	c := &Credentials{consumerKey: consumerKey, consumerSecret: consumerSecret}
	c.access.Store(&Token{Token: accessToken, Secret: accessTokenSecret})
	return c
}

func (c *Credentials) ConsumerKey() string { return c.consumerKey }

func (c *Credentials) AccessToken() string { return c.Access().Token }

func (c *Credentials) AccessTokenSecret() string { return c.Access().Secret }

// Access returns a snapshot of the current access token pair.
func (c *Credentials) Access() Token {
	if t := c.access.Load(); t != nil {
		return *t
	}
	return Token{}
}

// SetAccessToken replaces both halves of the access pair at once.
func (c *Credentials) SetAccessToken(token, secret string) {
	c.access.Store(&Token{Token: token, Secret: secret})
}
