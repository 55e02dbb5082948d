package sessions_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-members-server/sessions"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestNewCookieCodec_ShortSecret(t *testing.T) {
	_, err := sessions.NewCookieCodec([]byte("short"))
	require.Error(t, err)
}

func TestCookieCodec_RoundTrip(t *testing.T) {
	codec, err := sessions.NewCookieCodec(testSecret)
	require.NoError(t, err)

	value, err := codec.Encode("session-1", time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.NotContains(t, value, ";")

	id, err := codec.Decode(value)
	require.NoError(t, err)
	require.Equal(t, "session-1", id)

	_, err = codec.Encode("", time.Now().Add(time.Hour))
	require.Error(t, err)
}

func TestCookieCodec_RejectsForeignSignature(t *testing.T) {
	codec, err := sessions.NewCookieCodec(testSecret)
	require.NoError(t, err)
	other, err := sessions.NewCookieCodec([]byte("another-secret-another-secret!!"))
	require.NoError(t, err)

	value, err := other.Encode("session-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = codec.Decode(value)
	require.ErrorIs(t, err, sessions.InvalidCookieErr)
}

func TestCookieCodec_RejectsGarbageAndNone(t *testing.T) {
	codec, err := sessions.NewCookieCodec(testSecret)
	require.NoError(t, err)

	_, err = codec.Decode("not-a-cookie")
	require.ErrorIs(t, err, sessions.InvalidCookieErr)

	_, err = codec.Decode("")
	require.ErrorIs(t, err, sessions.InvalidCookieErr)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sid": "session-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = codec.Decode(unsigned)
	require.ErrorIs(t, err, sessions.InvalidCookieErr)
}

func TestCookieCodec_Expired(t *testing.T) {
	codec, err := sessions.NewCookieCodec(testSecret)
	require.NoError(t, err)

	now := time.Now()
	value, err := codec.Encode("session-1", now.Add(time.Hour))
	require.NoError(t, err)

	later := codec.WithNowTime(func() time.Time { return now.Add(2 * time.Hour) })
	_, err = later.Decode(value)
	require.ErrorIs(t, err, sessions.InvalidCookieErr)
}
