package zaim

import (
	"context"
	"net/http"
	"strings"

	"github.com/dghubble/oauth1"
	"github.com/google/uuid"
)

// Signer is the OAuth1.0a primitive the client delegates to: token exchange
// and request signing. Replace it in Config to test without the network.
type Signer interface {
	// RequestToken obtains a temporary request token for callbackURL ("oob"
	// for PIN based authorization).
	RequestToken(ctx context.Context, callbackURL string) (Token, error)

	// AccessToken exchanges an authorized request token and its verifier for
	// an access token.
	AccessToken(ctx context.Context, requestToken Token, verifier string) (Token, error)

	// Client returns an HTTP client that signs every request with access.
	Client(ctx context.Context, access Token) *http.Client
}

// OAuth1Signer signs with HMAC-SHA1 using github.com/dghubble/oauth1.
type OAuth1Signer struct {
	config     *oauth1.Config
	httpClient *http.Client
}

// NewOAuth1Signer returns a Signer for the given consumer key pair and token
// endpoints. httpClient is used as the base for signed requests; nil means
// http.DefaultClient.
func NewOAuth1Signer(consumerKey, consumerSecret string, endpoint oauth1.Endpoint, httpClient *http.Client) *OAuth1Signer {
	return &OAuth1Signer{
		config: &oauth1.Config{
			ConsumerKey:    consumerKey,
			ConsumerSecret: consumerSecret,
			Endpoint:       endpoint,
			Noncer:         uuidNoncer{},
		},
		httpClient: httpClient,
	}
}

// RequestToken implements Signer. oauth1.Config does not take a context for
// token requests so ctx is unused.
func (s *OAuth1Signer) RequestToken(_ context.Context, callbackURL string) (Token, error) {
	cfg := *s.config
	cfg.CallbackURL = callbackURL
	token, secret, err := cfg.RequestToken()
	if err != nil {
		return Token{}, err
	}
	return Token{Token: token, Secret: secret}, nil
}

// AccessToken implements Signer.
func (s *OAuth1Signer) AccessToken(_ context.Context, requestToken Token, verifier string) (Token, error) {
	token, secret, err := s.config.AccessToken(requestToken.Token, requestToken.Secret, verifier)
	if err != nil {
		return Token{}, err
	}
	return Token{Token: token, Secret: secret}, nil
}

// Client implements Signer.
func (s *OAuth1Signer) Client(ctx context.Context, access Token) *http.Client {
	if s.httpClient != nil {
		ctx = context.WithValue(ctx, oauth1.HTTPClient, s.httpClient)
	}
	return s.config.Client(ctx, oauth1.NewToken(access.Token, access.Secret))
}

// uuidNoncer produces oauth_nonce values from random UUIDs.
type uuidNoncer struct{}

func (uuidNoncer) Nonce() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
