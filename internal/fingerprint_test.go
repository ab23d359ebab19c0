package internal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint_TwoStageHash(t *testing.T) {
	fields := []HashField{
		required("a", "2025-10-28 12:00:00"),
		required("b", "1000000"),
		optional("c", ""),
		required("d", "R1"),
	}
	got, err := Fingerprint(testAuthCode, fields)
	require.NoError(t, err)
	assert.Equal(t, manualFingerprint(testAuthCode, "2025-10-28 12:00:00", "1000000", "", "R1"), got)
	assert.Len(t, got, 88)
}

func TestFingerprint_Deterministic(t *testing.T) {
	fields := []HashField{required("a", "1"), required("b", "2")}
	first, err := Fingerprint(testAuthCode, fields)
	require.NoError(t, err)
	second, err := Fingerprint(testAuthCode, fields)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := Fingerprint("OTHER", fields)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestFingerprint_OrderMatters(t *testing.T) {
	ab, err := Fingerprint(testAuthCode, []HashField{required("a", "12"), required("b", "3")})
	require.NoError(t, err)
	ba, err := Fingerprint(testAuthCode, []HashField{required("b", "3"), required("a", "12")})
	require.NoError(t, err)
	assert.NotEqual(t, ab, ba)
}

func TestFingerprint_MissingRequiredField(t *testing.T) {
	_, err := Fingerprint(testAuthCode, []HashField{required("a", "1"), required("posID", "")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingField))

	var missing *MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "posID", missing.Field)
}

func TestVerifyFingerprint(t *testing.T) {
	fp := manualFingerprint(testAuthCode, "x")
	assert.True(t, VerifyFingerprint(fp, fp))
	assert.False(t, VerifyFingerprint(fp, manualFingerprint(testAuthCode, "y")))
	assert.False(t, VerifyFingerprint("", fp))
	assert.False(t, VerifyFingerprint(fp, ""))
	assert.False(t, VerifyFingerprint("", ""))
	assert.False(t, VerifyFingerprint(fp, fp[:40]))
}
