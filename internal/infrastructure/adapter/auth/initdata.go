package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/Alex-KostPy/roofnn/internal/domain/entity"
	errs "github.com/Alex-KostPy/roofnn/internal/domain/error"
	coreport "github.com/Alex-KostPy/roofnn/internal/domain/port/core"
)

// webAppDataKey is the fixed HMAC key material defined by the Telegram
// WebApp initData scheme: secret = HMAC-SHA256("WebAppData", botToken)
const webAppDataKey = "WebAppData"

// Authenticator verifies Telegram WebApp initData credentials and extracts a
// typed identity. Any missing or malformed field fails closed with
// ErrAuthenticationFailed; nothing is ever silently defaulted.
type Authenticator struct {
	botToken string
	logger   coreport.Logger
}

// NewAuthenticator creates a new initData authenticator
func NewAuthenticator(botToken string, logger coreport.Logger) *Authenticator {
	return &Authenticator{
		botToken: botToken,
		logger:   logger,
	}
}

// initDataUser is the wire shape of the "user" field inside initData
type initDataUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
}

// Authenticate validates the credential signature and decodes the embedded
// user object into a verified identity
func (a *Authenticator) Authenticate(initData string) (*entity.Identity, error) {
	initData = strings.TrimSpace(initData)
	if initData == "" || a.botToken == "" {
		return nil, errs.ErrAuthenticationFailed
	}

	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, errs.ErrAuthenticationFailed
	}

	receivedHash := values.Get("hash")
	if receivedHash == "" {
		return nil, errs.ErrAuthenticationFailed
	}
	values.Del("hash")

	if !a.verifySignature(values, receivedHash) {
		a.logger.Warn("Rejected initData with invalid signature", nil)
		return nil, errs.ErrAuthenticationFailed
	}

	userJSON := values.Get("user")
	if userJSON == "" {
		return nil, errs.ErrAuthenticationFailed
	}

	var user initDataUser
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil || user.ID == 0 {
		return nil, errs.ErrAuthenticationFailed
	}

	return &entity.Identity{
		TgID:      user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
	}, nil
}

// verifySignature recomputes the HMAC over the sorted key=value lines and
// compares it to the received hash in constant time
func (a *Authenticator) verifySignature(values url.Values, receivedHash string) bool {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s=%s", k, values.Get(k)))
	}
	dataCheckString := strings.Join(lines, "\n")

	secretMac := hmac.New(sha256.New, []byte(webAppDataKey))
	secretMac.Write([]byte(a.botToken))
	secretKey := secretMac.Sum(nil)

	mac := hmac.New(sha256.New, secretKey)
	mac.Write([]byte(dataCheckString))
	computedHash := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(computedHash), []byte(receivedHash))
}
