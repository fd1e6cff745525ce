// Package zaim is a client for the Zaim household accounting API.
//
// Requests are signed with OAuth1.0a. Construct a Client with NewClient,
// run the handshake once (RequestToken, AuthorizeURL, AccessToken) unless an
// access token is already configured, then use the resource services.
package zaim

import (
	"context"
	"fmt"
	"strings"

	"github.com/dghubble/oauth1"
)

// Client exposes one service per resource. All services share the same
// Credentials, so SetAccessToken affects every later call.
type Client struct {
	Accounts   *AccountService
	Categories *CategoryService
	Genres     *GenreService
	Currencies *CurrencyService
	Money      *MoneyService
	Payments   *PaymentService
	Incomes    *IncomeService
	Transfers  *TransferService
	User       *UserService

	credentials *Credentials
	transport   *Transport
	handshake   *Handshake
}

func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg = cfg.withDefaults()
	baseURL := strings.TrimRight(cfg.BaseURL, "/")

	signer := cfg.Signer
	if signer == nil {
		signer = NewOAuth1Signer(cfg.ConsumerKey, cfg.ConsumerSecret, oauth1.Endpoint{
			RequestTokenURL: baseURL + "/v2/auth/request",
			AuthorizeURL:    cfg.AuthorizeURL,
			AccessTokenURL:  baseURL + "/v2/auth/access",
		}, cfg.HTTPClient)
	}

	credentials := newCredentials(cfg.ConsumerKey, cfg.ConsumerSecret, cfg.AccessToken, cfg.AccessTokenSecret)
	transport := &Transport{
		baseURL:      baseURL,
		signer:       signer,
		credentials:  credentials,
		timeout:      cfg.Timeout,
		userAgent:    cfg.UserAgent,
		deleteViaPut: cfg.DeleteViaPut,
		logger:       cfg.Logger.With("component", "transport"),
	}

	return &Client{
		Accounts:   &AccountService{transport: transport},
		Categories: &CategoryService{transport: transport},
		Genres:     &GenreService{transport: transport},
		Currencies: &CurrencyService{transport: transport},
		Money:      &MoneyService{transport: transport},
		Payments:   &PaymentService{transport: transport},
		Incomes:    &IncomeService{transport: transport},
		Transfers:  &TransferService{transport: transport},
		User:       &UserService{transport: transport},

		credentials: credentials,
		transport:   transport,
		handshake: &Handshake{
			signer:       signer,
			authorizeURL: cfg.AuthorizeURL,
			logger:       cfg.Logger.With("component", "handshake"),
		},
	}, nil
}

func (c *Client) Credentials() *Credentials { return c.credentials }

func (c *Client) Transport() *Transport { return c.transport }

// SetAccessToken replaces the access pair used by every service.
func (c *Client) SetAccessToken(token, secret string) {
	c.credentials.SetAccessToken(token, secret)
}

// RequestToken starts the handshake. See Handshake.RequestToken.
func (c *Client) RequestToken(ctx context.Context, callbackURL string) (Token, error) {
	return c.handshake.RequestToken(ctx, callbackURL)
}

func (c *Client) AuthorizeURL(requestToken string) string {
	return c.handshake.AuthorizeURL(requestToken)
}

// AccessToken finishes the handshake and stores the access pair so later
// calls are signed with it.
func (c *Client) AccessToken(ctx context.Context, requestToken Token, verifier string) (Token, error) {
	token, err := c.handshake.AccessToken(ctx, requestToken, verifier)
	if err != nil {
		return Token{}, err
	}
	c.credentials.SetAccessToken(token.Token, token.Secret)
	return token, nil
}
