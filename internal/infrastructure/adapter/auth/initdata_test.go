package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"testing"

	errs "github.com/Alex-KostPy/roofnn/internal/domain/error"
	"github.com/Alex-KostPy/roofnn/internal/infrastructure/adapter/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBotToken = "1234567890:TEST-TOKEN-abcdefghij"

// signInitData builds a credential string signed the way Telegram signs
// WebApp initData
func signInitData(t *testing.T, botToken string, fields map[string]string) string {
	t.Helper()

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s=%s", k, fields[k]))
	}

	secretMac := hmac.New(sha256.New, []byte("WebAppData"))
	secretMac.Write([]byte(botToken))
	mac := hmac.New(sha256.New, secretMac.Sum(nil))
	mac.Write([]byte(strings.Join(lines, "\n")))

	values := url.Values{}
	for k, v := range fields {
		values.Set(k, v)
	}
	values.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return values.Encode()
}

func TestAuthenticate(t *testing.T) {
	authenticator := NewAuthenticator(testBotToken, logger.NewNoopLogger())

	t.Run("should accept a correctly signed credential", func(t *testing.T) {
		initData := signInitData(t, testBotToken, map[string]string{
			"user":      `{"id":42,"username":"roofer","first_name":"Alex"}`,
			"auth_date": "1748779200",
		})

		identity, err := authenticator.Authenticate(initData)

		require.NoError(t, err)
		assert.Equal(t, int64(42), identity.TgID)
		assert.Equal(t, "roofer", identity.Username)
		assert.Equal(t, "Alex", identity.FirstName)
	})

	t.Run("should reject a credential signed with another token", func(t *testing.T) {
		initData := signInitData(t, "9999:OTHER-TOKEN", map[string]string{
			"user":      `{"id":42,"username":"roofer"}`,
			"auth_date": "1748779200",
		})

		identity, err := authenticator.Authenticate(initData)

		assert.Nil(t, identity)
		assert.ErrorIs(t, err, errs.ErrAuthenticationFailed)
	})

	t.Run("should reject tampered fields", func(t *testing.T) {
		initData := signInitData(t, testBotToken, map[string]string{
			"user":      `{"id":42,"username":"roofer"}`,
			"auth_date": "1748779200",
		})
		tampered := strings.Replace(initData, "42", "43", 1)

		identity, err := authenticator.Authenticate(tampered)

		assert.Nil(t, identity)
		assert.ErrorIs(t, err, errs.ErrAuthenticationFailed)
	})

	t.Run("should reject a credential without a hash", func(t *testing.T) {
		identity, err := authenticator.Authenticate("user=%7B%22id%22%3A42%7D&auth_date=1748779200")

		assert.Nil(t, identity)
		assert.ErrorIs(t, err, errs.ErrAuthenticationFailed)
	})

	t.Run("should reject an empty credential", func(t *testing.T) {
		identity, err := authenticator.Authenticate("   ")

		assert.Nil(t, identity)
		assert.ErrorIs(t, err, errs.ErrAuthenticationFailed)
	})

	t.Run("should reject a valid signature without a user field", func(t *testing.T) {
		initData := signInitData(t, testBotToken, map[string]string{
			"auth_date": "1748779200",
		})

		identity, err := authenticator.Authenticate(initData)

		assert.Nil(t, identity)
		assert.ErrorIs(t, err, errs.ErrAuthenticationFailed)
	})

	t.Run("should reject malformed user JSON even when signed", func(t *testing.T) {
		initData := signInitData(t, testBotToken, map[string]string{
			"user":      `{"id":"not-a-number"}`,
			"auth_date": "1748779200",
		})

		identity, err := authenticator.Authenticate(initData)

		assert.Nil(t, identity)
		assert.ErrorIs(t, err, errs.ErrAuthenticationFailed)
	})

	t.Run("should reject a zero user id even when signed", func(t *testing.T) {
		initData := signInitData(t, testBotToken, map[string]string{
			"user":      `{"id":0,"username":"ghost"}`,
			"auth_date": "1748779200",
		})

		identity, err := authenticator.Authenticate(initData)

		assert.Nil(t, identity)
		assert.ErrorIs(t, err, errs.ErrAuthenticationFailed)
	})

	t.Run("should fail closed when no bot token is configured", func(t *testing.T) {
		unconfigured := NewAuthenticator("", logger.NewNoopLogger())
		initData := signInitData(t, testBotToken, map[string]string{
			"user": `{"id":42}`,
		})

		identity, err := unconfigured.Authenticate(initData)

		assert.Nil(t, identity)
		assert.ErrorIs(t, err, errs.ErrAuthenticationFailed)
	})
}
