package zaim

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
)

// OutOfBand is the callback value for PIN based authorization: the user is
// shown a verifier code instead of being redirected.
const OutOfBand = "oob"

// Handshake walks the three-legged OAuth1.0a flow. It does not store the
// tokens it obtains; Client.AccessToken does that.
type Handshake struct {
	signer       Signer
	authorizeURL string
	logger       *slog.Logger
}

// RequestToken obtains a temporary request token. An empty callbackURL
// selects out-of-band authorization.
func (h *Handshake) RequestToken(ctx context.Context, callbackURL string) (Token, error) {
	if callbackURL == "" {
		callbackURL = OutOfBand
	}
	token, err := h.signer.RequestToken(ctx, callbackURL)
	if err != nil {
		return Token{}, &HandshakeError{Step: "request token", Err: err}
	}
	if token.Token == "" {
		return Token{}, &HandshakeError{Step: "request token", Err: errors.New("empty oauth_token in response")}
	}
	h.logger.Debug("obtained request token", "callback", callbackURL)
	return token, nil
}

// AuthorizeURL is the page the user opens to approve requestToken.
func (h *Handshake) AuthorizeURL(requestToken string) string {
	return h.authorizeURL + "?oauth_token=" + url.QueryEscape(requestToken)
}

// AccessToken exchanges an approved request token and the verifier shown to
// (or redirected for) the user.
func (h *Handshake) AccessToken(ctx context.Context, requestToken Token, verifier string) (Token, error) {
	token, err := h.signer.AccessToken(ctx, requestToken, verifier)
	if err != nil {
		return Token{}, &HandshakeError{Step: "access token", Err: err}
	}
	if token.Token == "" {
		return Token{}, &HandshakeError{Step: "access token", Err: errors.New("empty oauth_token in response")}
	}
	h.logger.Debug("obtained access token")
	return token, nil
}
