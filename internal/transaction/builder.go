package transaction

import (
	"crypto/ed25519"
	"encoding/binary"
	"time"

	"github.com/dmitrijs2005/linkify/internal/address"
	"github.com/dmitrijs2005/linkify/internal/common"
)

func build(priv ed25519.PrivateKey, ix Instruction) *Transaction {
	nonce := common.GenerateRandByteArray(8)
	t := &Transaction{
		Instruction: ix,
		Timestamp:   time.Now().UnixMilli(),
		Nonce:       binary.LittleEndian.Uint64(nonce),
	}
	t.Sign(priv)
	return t
}

func NewCreateUser(priv ed25519.PrivateKey, name string) *Transaction {
	return build(priv, Instruction{Kind: KindCreateUser, Name: name})
}

func NewRequest(priv ed25519.PrivateKey, acceptor address.Pubkey, stake uint64) *Transaction {
	return build(priv, Instruction{Kind: KindRequestConnection, Counterparty: acceptor, Stake: stake})
}

func NewAccept(priv ed25519.PrivateKey, requester, connection address.Pubkey) *Transaction {
	return build(priv, Instruction{Kind: KindAcceptConnection, Counterparty: requester, Connection: connection})
}

func NewReject(priv ed25519.PrivateKey, requester, connection address.Pubkey) *Transaction {
	return build(priv, Instruction{Kind: KindRejectConnection, Counterparty: requester, Connection: connection})
}

func NewWithdraw(priv ed25519.PrivateKey, counterparty, connection address.Pubkey) *Transaction {
	return build(priv, Instruction{Kind: KindWithdrawStake, Counterparty: counterparty, Connection: connection})
}
