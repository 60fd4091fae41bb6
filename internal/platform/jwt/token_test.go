package jwtmw

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService(secret string, now *time.Time) *Service {
	return NewService(Config{Secret: secret, Expiration: time.Hour}, WithClock(func() time.Time { return *now }))
}

// TestNewService は設定値が正しく反映され、不正な有効期限はデフォルトに置き換えられることを検証します。
func TestNewService(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		expiration time.Duration
		want       time.Duration
	}{
		{"configured expiration", 2 * time.Hour, 2 * time.Hour},
		{"zero uses default", 0, DefaultExpiration},
		{"negative uses default", -time.Minute, DefaultExpiration},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := NewService(Config{Secret: "s", Expiration: tt.expiration})
			assert.Equal(t, []byte("s"), s.secret)
			assert.Equal(t, tt.want, s.expiration)
		})
	}
}

// TestService_RoundTrip は発行したトークンが有効期限内で同じ識別子に検証されることを検証します。
func TestService_RoundTrip(t *testing.T) {
	t.Parallel()

	now := fixedNow
	s := newTestService("test-secret", &now)

	for _, userID := range []string{"5f1d7f1c-0000-4000-8000-000000000001", "u-42"} {
		tokenStr, err := s.Issue(userID)
		require.NoError(t, err)

		now = fixedNow.Add(59 * time.Minute)
		claims, err := s.Verify(tokenStr)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.User.ID)
		assert.Equal(t, userID, claims.Subject)
		now = fixedNow
	}
}

// TestService_Verify_Expired は有効期限を過ぎたトークンがErrInvalidTokenになることを検証します。
func TestService_Verify_Expired(t *testing.T) {
	t.Parallel()

	now := fixedNow
	s := newTestService("test-secret", &now)

	tokenStr, err := s.IssueWithTTL("user-1", 10*time.Minute)
	require.NoError(t, err)

	now = fixedNow.Add(10*time.Minute + time.Second)
	_, err = s.Verify(tokenStr)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// TestService_Verify_Rejects は本サービス以外が生成したトークンを拒否することを検証します。
func TestService_Verify_Rejects(t *testing.T) {
	t.Parallel()

	now := fixedNow
	s := newTestService("test-secret", &now)
	other := newTestService("other-secret", &now)

	foreign, err := other.Issue("user-1")
	require.NoError(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		User: Identity{ID: "user-1"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(fixedNow.Add(time.Hour)),
		},
	})
	noneToken, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{User: Identity{ID: "user-1"}})
	noExpiryToken, err := noExpiry.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	emptyUser := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(fixedNow.Add(time.Hour))},
	})
	emptyUserToken, err := emptyUser.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	valid, err := s.Issue("user-1")
	require.NoError(t, err)
	tampered := tamperSignature(valid)

	tests := []struct {
		name  string
		token string
	}{
		{"different secret", foreign},
		{"none algorithm", noneToken},
		{"missing expiry", noExpiryToken},
		{"missing user id", emptyUserToken},
		{"tampered signature", tampered},
		{"malformed", "not.a.valid.token"},
		{"random string", "randomstring"},
		{"empty", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

// tamperSignature flips one character inside the signature segment.
func tamperSignature(token string) string {
	i := strings.LastIndex(token, ".") + 5
	b := []byte(token)
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}
	return string(b)
}

func TestService_Issue_EmptyUserID(t *testing.T) {
	t.Parallel()

	s := NewService(Config{Secret: "test-secret"})
	_, err := s.Issue("")
	assert.Error(t, err)
}

// TestService_Issue_PayloadShape はクレームが {"user":{"id":...}} 形式で格納されることを検証します。
func TestService_Issue_PayloadShape(t *testing.T) {
	t.Parallel()

	now := fixedNow
	s := newTestService("test-secret", &now)
	tokenStr, err := s.Issue("user-7")
	require.NoError(t, err)

	token, _, err := jwt.NewParser().ParseUnverified(tokenStr, jwt.MapClaims{})
	require.NoError(t, err)

	claims := token.Claims.(jwt.MapClaims)
	user, ok := claims["user"].(map[string]interface{})
	require.True(t, ok, "user claim should be an object")
	assert.Equal(t, "user-7", user["id"])
	assert.Equal(t, float64(fixedNow.Add(time.Hour).Unix()), claims["exp"])
	assert.Equal(t, float64(fixedNow.Unix()), claims["iat"])
	assert.Equal(t, "HS256", token.Header["alg"])
}

func TestLoadConfig(t *testing.T) {
	t.Setenv(EnvKeyJWTSecret, "from-env")
	t.Setenv(EnvKeyJWTExpiration, "30m")

	cfg := LoadConfig()
	assert.Equal(t, "from-env", cfg.Secret)
	assert.Equal(t, 30*time.Minute, cfg.Expiration)

	t.Setenv(EnvKeyJWTExpiration, "soon")
	assert.Equal(t, DefaultExpiration, LoadConfig().Expiration)
}
