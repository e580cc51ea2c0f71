package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func newTestCodec() *Codec {
	return NewCodec([]byte("access-secret"), []byte("refresh-secret"))
}

func TestSignVerifyRoundTrip(t *testing.T) {
	c := newTestCodec()
	exp := time.Now().Add(5 * time.Minute)

	access, err := c.SignAccess(7, "student@school.edu", 0, exp)
	require.NoError(t, err)

	claims, err := c.VerifyAccess(access)
	require.NoError(t, err)
	require.Equal(t, uint(7), claims.UserID)
	require.Equal(t, "student@school.edu", claims.Email)
	require.Equal(t, 0, claims.Role)
	require.Equal(t, Subject, claims.Subject)
	require.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestRefreshTokenCarriesJTI(t *testing.T) {
	c := newTestCodec()
	exp := time.Now().Add(time.Hour)

	first, err := c.SignRefresh(7, "student@school.edu", 0, exp)
	require.NoError(t, err)
	second, err := c.SignRefresh(7, "student@school.edu", 0, exp)
	require.NoError(t, err)

	firstClaims, err := c.VerifyRefresh(first)
	require.NoError(t, err)
	secondClaims, err := c.VerifyRefresh(second)
	require.NoError(t, err)

	require.NotEmpty(t, firstClaims.ID)
	require.NotEqual(t, firstClaims.ID, secondClaims.ID)
}

func TestCrossAudienceRejection(t *testing.T) {
	c := newTestCodec()
	exp := time.Now().Add(time.Hour)

	access, err := c.SignAccess(7, "student@school.edu", 0, exp)
	require.NoError(t, err)
	refresh, err := c.SignRefresh(7, "student@school.edu", 0, exp)
	require.NoError(t, err)

	_, err = c.VerifyRefresh(access)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = c.VerifyAccess(refresh)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpired(t *testing.T) {
	c := newTestCodec()

	access, err := c.SignAccess(7, "student@school.edu", 0, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = c.VerifyAccess(access)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyGarbage(t *testing.T) {
	c := newTestCodec()

	for _, tokenStr := range []string{"", "garbage", "a.b.c"} {
		_, err := c.VerifyAccess(tokenStr)
		require.ErrorIs(t, err, ErrInvalidToken, "token: %q", tokenStr)
	}
}

func TestVerifyMissingClaims(t *testing.T) {
	c := newTestCodec()
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	// Signed with the right key but without the full claim set.
	cases := map[string]jwt.Claims{
		"wrong subject": Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "intruder", ExpiresAt: exp},
			UserID:           7,
			Email:            "student@school.edu",
		},
		"no expiry": Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: Subject},
			UserID:           7,
			Email:            "student@school.edu",
		},
		"no identity": jwt.MapClaims{
			"sub": Subject,
			"exp": exp.Unix(),
		},
		// role's zero value is the student role, so a payload without the
		// key must not slip through as a student token
		"no role": jwt.MapClaims{
			"sub":   Subject,
			"exp":   exp.Unix(),
			"id":    "7",
			"email": "student@school.edu",
		},
	}

	for name, claims := range cases {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte("access-secret"))
		require.NoError(t, err, name)

		_, err = c.VerifyAccess(signed)
		require.ErrorIs(t, err, ErrMalformedClaims, name)
	}
}
