package ilp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-wallet/internal/domain"
)

func testTransaction() Transaction {
	return Transaction{
		TransactionID:        "8f1a6f0b-7b4f-4d0a-9d4c-0d2c9e4f6a11",
		QuoteID:              "0a8f2c4e-1d3b-4f5a-8c7d-2b1e0f9a8d77",
		TransactionRequestID: "b51ec534-ee48-4575-b6a9-ead2955b8069",
		Payee: domain.Party{PartyIDInfo: domain.PartyIDInfo{
			PartyIDType: domain.PartyIDTypeMSISDN, PartyIdentifier: "27713803912", FspID: "payeefsp",
		}},
		Payer: domain.Party{PartyIDInfo: domain.PartyIDInfo{
			PartyIDType: domain.PartyIDTypeMSISDN, PartyIdentifier: "44123456789", FspID: "walletfsp",
		}},
		Amount: domain.Money{Currency: "USD", Amount: "123.45"},
		TransactionType: domain.TransactionType{
			Scenario: "TRANSFER", Initiator: "PAYEE", InitiatorType: "CONSUMER",
		},
	}
}

func TestBuildDeterministic(t *testing.T) {
	b, err := NewBuilder("secret")
	require.NoError(t, err)

	packet1, condition1, err := b.Build(testTransaction())
	require.NoError(t, err)

	packet2, condition2, err := b.Build(testTransaction())
	require.NoError(t, err)

	require.Equal(t, packet1, packet2)
	require.Equal(t, condition1, condition2)
	require.Len(t, condition1, 43)
	require.Len(t, b.Fulfilment(packet1), 43)
}

func TestFulfilmentMatchesCondition(t *testing.T) {
	b, err := NewBuilder("secret")
	require.NoError(t, err)

	packet, condition, err := b.Build(testTransaction())
	require.NoError(t, err)

	require.True(t, Verify(b.Fulfilment(packet), condition))

	other, err := NewBuilder("other")
	require.NoError(t, err)
	require.False(t, Verify(other.Fulfilment(packet), condition))
}

func TestSecretChangesCondition(t *testing.T) {
	b1, err := NewBuilder("one")
	require.NoError(t, err)
	b2, err := NewBuilder("two")
	require.NoError(t, err)

	packet, err := b1.Packet(testTransaction())
	require.NoError(t, err)

	require.NotEqual(t, b1.Condition(packet), b2.Condition(packet))
}

func TestDecodePacket(t *testing.T) {
	b, err := NewBuilder("secret")
	require.NoError(t, err)

	want := testTransaction()

	packet, err := b.Packet(want)
	require.NoError(t, err)

	got, err := DecodePacket(packet)
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DecodePacket() mismatch (-want +got):\n%s", diff)
	}

	_, err = DecodePacket("not a packet!")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestNewBuilderEmptySecret(t *testing.T) {
	_, err := NewBuilder("")
	require.ErrorIs(t, err, ErrEmptySecret)
}
