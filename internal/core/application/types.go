package application

import (
	"github.com/ark-network/scriptsim/common/script"
)

type Service interface {
	NewSession() (string, error)
	CloseSession(id string) error
	Sessions() []string
	Push(id, dataHex string) (StackView, error)
	Pop(id string) (ItemView, error)
	Execute(id, opcode string) (ExecResult, error)
	SupplyDigest(id, digestHex string) (StackView, error)
	Cancel(id string) (StackView, error)
	Reset(id string) (StackView, error)
	LoadCheckSigExample(id string) (ExecResult, error)
	Stack(id string) (StackView, error)
	Parse(scriptHex string) []script.Record
}

// ExecResult is returned after running an opcode.  When DigestRequired is
// set the stack is unchanged and the caller must answer with SupplyDigest or
// Cancel.
type ExecResult struct {
	DigestRequired  bool      `json:"digestRequired"`
	RequestID       string    `json:"requestId,omitempty"`
	SuggestedDigest string    `json:"suggestedDigest,omitempty"`
	Stack           StackView `json:"stack"`
}

type StackView struct {
	Items          []ItemView `json:"items"`
	LastOperation  string     `json:"lastOperation,omitempty"`
	PendingRequest string     `json:"pendingRequest,omitempty"`
}

// Top returns the top item of the stack, if any.
func (v StackView) Top() (ItemView, bool) {
	if len(v.Items) == 0 {
		return ItemView{}, false
	}
	return v.Items[len(v.Items)-1], true
}

type ItemView struct {
	Kind    string `json:"kind"`
	Value   string `json:"value"`
	Decimal string `json:"decimal,omitempty"`
	IsError bool   `json:"isError,omitempty"`
}

func (i ItemView) String() string {
	if i.Decimal != "" {
		return i.Value + " (" + i.Decimal + ")"
	}
	return i.Value
}
