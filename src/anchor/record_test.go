package anchor

import (
	"testing"
	"time"

	"github.com/near/borsh-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miromero13/certeth/src/model"
)

func TestChainRecordRoundTrip(t *testing.T) {
	record := NewChainRecord(model.VerificationOutcome{
		VerificationId: "v-1",
		CertificateId:  42,
		Issuer:         "0xIssuer",
		Verifier:       "0xVerifier",
		Level:          "Premium",
		IsValid:        true,
		Score:          95,
		Timestamp:      time.Now().Unix(),
	})

	data, err := record.SerializeBorsh()
	require.NoError(t, err)

	var restored ChainRecord
	require.NoError(t, borsh.Deserialize(&restored, data))
	assert.Equal(t, record, restored)
}

func TestChainRecordClampsScore(t *testing.T) {
	record := NewChainRecord(model.VerificationOutcome{Score: 300})
	assert.EqualValues(t, 100, record.Score)

	record = NewChainRecord(model.VerificationOutcome{Score: -5})
	assert.EqualValues(t, 0, record.Score)
}

func TestRequiredAccountSpace(t *testing.T) {
	assert.EqualValues(t, 1024, requiredAccountSpace(make([]byte, 10)))

	space := requiredAccountSpace(make([]byte, 4000))
	assert.GreaterOrEqual(t, space, uint64(4512))
	assert.Zero(t, space%8)
}
