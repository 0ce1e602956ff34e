package transaction

import (
	"fmt"

	"github.com/dmitrijs2005/linkify/internal/address"
	"github.com/dmitrijs2005/linkify/internal/binx"
	"github.com/dmitrijs2005/linkify/internal/common"
)

// Kind selects the program operation an instruction invokes.
type Kind uint8

const (
	KindCreateUser Kind = iota + 1
	KindRequestConnection
	KindAcceptConnection
	KindRejectConnection
	KindWithdrawStake
)

var kindNames = map[Kind]string{
	KindCreateUser:        "create_user",
	KindRequestConnection: "request_connection",
	KindAcceptConnection:  "accept_connection",
	KindRejectConnection:  "reject_connection",
	KindWithdrawStake:     "withdraw_stake",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind maps a kind name back to its value.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown instruction kind %q", common.ErrInvalidInput, s)
}

// Instruction is the operation payload of a transaction. Which fields are
// meaningful depends on Kind:
//
//	create_user         Name
//	request_connection  Counterparty (the acceptor), Stake
//	accept_connection   Counterparty (the requester), Connection
//	reject_connection   Counterparty (the requester), Connection
//	withdraw_stake      Counterparty (the other party), Connection
type Instruction struct {
	Kind         Kind
	Name         string
	Counterparty address.Pubkey
	Connection   address.Pubkey
	Stake        uint64
}

func (ix Instruction) put(data *[]byte) {
	binx.PutUint8(uint8(ix.Kind), data)
	binx.PutString(ix.Name, data)
	binx.PutPubkey(ix.Counterparty, data)
	binx.PutPubkey(ix.Connection, data)
	binx.PutUint64(ix.Stake, data)
}

func parseInstruction(data []byte, position int) (Instruction, int) {
	var ix Instruction
	var kind uint8
	kind, position = binx.ParseUint8(data, position)
	ix.Kind = Kind(kind)
	ix.Name, position = binx.ParseString(data, position)
	ix.Counterparty, position = binx.ParsePubkey(data, position)
	ix.Connection, position = binx.ParsePubkey(data, position)
	ix.Stake, position = binx.ParseUint64(data, position)
	return ix, position
}
