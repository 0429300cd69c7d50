package message

import "github.com/grindlemire/go-scene/internal/property"

// Kind labels a message for logs and metrics. It has no effect on how the
// message is applied.
type Kind uint8

const (
	KindCustom Kind = iota
	KindAddNode
	KindDestroyNode
	KindConnectNode
	KindDisconnectNode
	KindInstallRoot
	KindBakeProperty
	KindSetFlag
)

var kindNames = [...]string{
	KindCustom:         "custom",
	KindAddNode:        "add-node",
	KindDestroyNode:    "destroy-node",
	KindConnectNode:    "connect-node",
	KindDisconnectNode: "disconnect-node",
	KindInstallRoot:    "install-root",
	KindBakeProperty:   "bake-property",
	KindSetFlag:        "set-flag",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Kinds returns every defined kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range kindNames {
		out[i] = Kind(i)
	}
	return out
}

// Message is one deferred operation. Apply runs on the update goroutine with
// the buffer index of the tick being computed.
type Message struct {
	Kind  Kind
	Apply func(idx property.BufferIndex)
}
