package linkify

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"unicode/utf8"

	"github.com/dmitrijs2005/linkify/internal/address"
	"github.com/dmitrijs2005/linkify/internal/binx"
	"github.com/dmitrijs2005/linkify/internal/common"
)

// MaxNameLen is the byte bound on a profile name.
const MaxNameLen = 20

const discriminatorSize = 8

var (
	userDiscriminator       = discriminator("UserAccount")
	connectionDiscriminator = discriminator("ConnectionAccount")
)

func discriminator(typeName string) []byte {
	sum := sha256.Sum256([]byte("account:" + typeName))
	return sum[:discriminatorSize]
}

// UserAccount is the profile stored at UserAddress(owner).
type UserAccount struct {
	Owner            address.Pubkey
	Name             string
	RequestsSent     uint32
	RequestsReceived uint32
}

// ConnectionAccount is one request from Requester to Acceptor, stored at
// ConnectionAddress(Acceptor, Tracker). It is Pending until accepted and
// removed from the ledger when rejected or withdrawn.
type ConnectionAccount struct {
	Requester      address.Pubkey
	Acceptor       address.Pubkey
	Tracker        uint32
	Connected      bool
	StakeRequester uint64
	StakeAcceptor  uint64
}

// State is the lifecycle position of a stored connection.
type State string

const (
	StatePending   State = "pending"
	StateConnected State = "connected"
)

func (c *ConnectionAccount) State() State {
	if c.Connected {
		return StateConnected
	}
	return StatePending
}

// Escrowed is the amount the connection account must hold.
func (c *ConnectionAccount) Escrowed() uint64 {
	return c.StakeRequester + c.StakeAcceptor
}

// ValidateName checks the profile name bound.
func ValidateName(name string) error {
	if len(name) > MaxNameLen {
		return fmt.Errorf("%w: name is %d bytes, max %d", common.ErrInvalidInput, len(name), MaxNameLen)
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("%w: name is not valid UTF-8", common.ErrInvalidInput)
	}
	return nil
}

func (u *UserAccount) Marshal() []byte {
	data := make([]byte, 0, discriminatorSize+address.Size+4+len(u.Name)+8)
	binx.PutFixed(userDiscriminator, &data)
	binx.PutPubkey(u.Owner, &data)
	binx.PutString(u.Name, &data)
	binx.PutUint32(u.RequestsSent, &data)
	binx.PutUint32(u.RequestsReceived, &data)
	return data
}

// UnmarshalUser decodes account data written by UserAccount.Marshal.
func UnmarshalUser(data []byte) (*UserAccount, error) {
	if !bytes.HasPrefix(data, userDiscriminator) {
		return nil, fmt.Errorf("%w: not a user account", common.ErrDeserialization)
	}
	u := &UserAccount{}
	position := discriminatorSize
	u.Owner, position = binx.ParsePubkey(data, position)
	u.Name, position = binx.ParseString(data, position)
	u.RequestsSent, position = binx.ParseUint32(data, position)
	u.RequestsReceived, position = binx.ParseUint32(data, position)
	if !binx.Complete(data, position) {
		return nil, fmt.Errorf("%w: user account layout", common.ErrDeserialization)
	}
	if ValidateName(u.Name) != nil {
		return nil, fmt.Errorf("%w: stored name is invalid", common.ErrDeserialization)
	}
	return u, nil
}

func (c *ConnectionAccount) Marshal() []byte {
	data := make([]byte, 0, discriminatorSize+2*address.Size+4+1+16)
	binx.PutFixed(connectionDiscriminator, &data)
	binx.PutPubkey(c.Requester, &data)
	binx.PutPubkey(c.Acceptor, &data)
	binx.PutUint32(c.Tracker, &data)
	binx.PutBool(c.Connected, &data)
	binx.PutUint64(c.StakeRequester, &data)
	binx.PutUint64(c.StakeAcceptor, &data)
	return data
}

// UnmarshalConnection decodes account data written by ConnectionAccount.Marshal.
func UnmarshalConnection(data []byte) (*ConnectionAccount, error) {
	if !bytes.HasPrefix(data, connectionDiscriminator) {
		return nil, fmt.Errorf("%w: not a connection account", common.ErrDeserialization)
	}
	c := &ConnectionAccount{}
	position := discriminatorSize
	c.Requester, position = binx.ParsePubkey(data, position)
	c.Acceptor, position = binx.ParsePubkey(data, position)
	c.Tracker, position = binx.ParseUint32(data, position)
	c.Connected, position = binx.ParseBool(data, position)
	c.StakeRequester, position = binx.ParseUint64(data, position)
	c.StakeAcceptor, position = binx.ParseUint64(data, position)
	if !binx.Complete(data, position) {
		return nil, fmt.Errorf("%w: connection account layout", common.ErrDeserialization)
	}
	return c, nil
}

// IsUserData and IsConnectionData classify raw account data by discriminator.
func IsUserData(data []byte) bool {
	return bytes.HasPrefix(data, userDiscriminator)
}

func IsConnectionData(data []byte) bool {
	return bytes.HasPrefix(data, connectionDiscriminator)
}
