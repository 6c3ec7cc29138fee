package source

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/payment-es/internal/domain/card"
)

func TestMarshal_CashCarriesNoPayload(t *testing.T) {
	data, err := json.Marshal(Cash())

	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"cash"}`, string(data))
}

func TestRoundtrip_Card(t *testing.T) {
	src := FromCard(card.Card{
		Expiration: card.NewExpiration(time.December, 2027),
		Holder:     card.Holder{Name: "ADA LOVELACE"},
	})

	data, err := json.Marshal(src)
	require.NoError(t, err)

	var decoded Source
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, TypeCard, decoded.Type)
	require.NotNil(t, decoded.Card)
	assert.Equal(t, "ADA LOVELACE", decoded.Card.Holder.Name)
	assert.Equal(t, src.Card.Expiration, decoded.Card.Expiration)
	assert.Nil(t, decoded.Token)
}

func TestRoundtrip_TokenReference(t *testing.T) {
	src := FromToken(TokenReference{
		TokenID:    "tok-1",
		CustomerID: "cus-1",
		Metadata:   map[string]string{"origin": "checkout"},
	})

	data, err := json.Marshal(src)
	require.NoError(t, err)

	var decoded Source
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, TypeToken, decoded.Type)
	require.NotNil(t, decoded.Token)
	assert.Equal(t, "tok-1", decoded.Token.TokenID)
	assert.Equal(t, "checkout", decoded.Token.Metadata["origin"])
	assert.Nil(t, decoded.Card)
}

func TestUnmarshal_UnknownType(t *testing.T) {
	var decoded Source

	err := json.Unmarshal([]byte(`{"type":"crypto"}`), &decoded)

	assert.ErrorIs(t, err, ErrUnknownType)
}
