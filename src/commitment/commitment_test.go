package commitment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reasoncodes "github.com/miromero13/certeth/pkg/reason_codes"
)

const testRecipient = "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B"

func testCompletionDate() int64 {
	return time.Now().AddDate(0, -6, 0).Unix()
}

func TestCommitIsDeterministic(t *testing.T) {
	nonce, err := NewNonce()
	require.NoError(t, err)

	completion := testCompletionDate()

	first, err := Commit(88, testRecipient, completion, 42, nonce)
	require.NoError(t, err)

	second, err := Commit(88, testRecipient, completion, 42, nonce)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCommitChangesWithAnyInput(t *testing.T) {
	nonce, err := NewNonce()
	require.NoError(t, err)

	completion := testCompletionDate()

	base, err := Commit(88, testRecipient, completion, 42, nonce)
	require.NoError(t, err)

	differentGrade, err := Commit(89, testRecipient, completion, 42, nonce)
	require.NoError(t, err)
	assert.NotEqual(t, base, differentGrade)

	differentDate, err := Commit(88, testRecipient, completion-86400, 42, nonce)
	require.NoError(t, err)
	assert.NotEqual(t, base, differentDate)

	differentInstitution, err := Commit(88, testRecipient, completion, 43, nonce)
	require.NoError(t, err)
	assert.NotEqual(t, base, differentInstitution)

	otherNonce, err := NewNonce()
	require.NoError(t, err)
	differentNonce, err := Commit(88, testRecipient, completion, 42, otherNonce)
	require.NoError(t, err)
	assert.NotEqual(t, base, differentNonce)
}

func TestCommitBindingOverSample(t *testing.T) {
	completion := testCompletionDate()
	seen := make(map[string]bool)

	for grade := 0; grade <= 100; grade++ {
		nonce, err := NewNonce()
		require.NoError(t, err)

		c, err := Commit(grade, testRecipient, completion, int64(grade)+1, nonce)
		require.NoError(t, err)
		assert.False(t, seen[c], "collision at grade %d", grade)
		seen[c] = true
	}
}

func TestCommitRejectsBadInputs(t *testing.T) {
	nonce, err := NewNonce()
	require.NoError(t, err)

	completion := testCompletionDate()

	_, err = Commit(101, testRecipient, completion, 42, nonce)
	assert.True(t, reasoncodes.HasCode(err, reasoncodes.ErrValidation))

	_, err = Commit(-1, testRecipient, completion, 42, nonce)
	assert.True(t, reasoncodes.HasCode(err, reasoncodes.ErrValidation))

	_, err = Commit(50, testRecipient, 0, 42, nonce)
	assert.True(t, reasoncodes.HasCode(err, reasoncodes.ErrValidation))

	_, err = Commit(50, testRecipient, time.Now().Unix()+3600, 42, nonce)
	assert.True(t, reasoncodes.HasCode(err, reasoncodes.ErrValidation))

	_, err = Commit(50, "", completion, 42, nonce)
	assert.True(t, reasoncodes.HasCode(err, reasoncodes.ErrValidation))

	_, err = Commit(50, testRecipient, completion, 42, "abc")
	assert.True(t, reasoncodes.HasCode(err, reasoncodes.ErrValidation))
}

func TestHashIdentityCaseInsensitive(t *testing.T) {
	a := HashIdentity("0xABCDEF0123456789abcdef0123456789ABCDEF01")
	b := HashIdentity("0xabcdef0123456789abcdef0123456789abcdef01")
	assert.Zero(t, a.Cmp(b))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	nonce, err := NewNonce()
	require.NoError(t, err)

	c, err := Commit(75, testRecipient, testCompletionDate(), 7, nonce)
	require.NoError(t, err)

	decoded, err := Decode(c)
	require.NoError(t, err)
	assert.Equal(t, c, Encode(decoded))
}

func TestNonceFreshness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 64; i++ {
		n, err := NewNonce()
		require.NoError(t, err)
		assert.Len(t, n, NonceSize*2)
		assert.False(t, seen[n])
		seen[n] = true
	}
}
