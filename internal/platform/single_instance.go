package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"sync"
)

// ErrAlreadyRunning indicates another clock already owns the state.
var ErrAlreadyRunning = errors.New("instance already running")

const (
	lockPortFirst = 20000
	lockPortLast  = 39999
)

// InstanceGuard is held while a clock owns one persisted state location.
type InstanceGuard struct {
	statePath string
	address   string

	once     sync.Once
	listener net.Listener
}

// AcquireSingleInstance claims statePath for this process by listening on a
// loopback port derived from appName and statePath. Clocks on different
// state locations get different ports.
func AcquireSingleInstance(appName, statePath string) (*InstanceGuard, error) {
	address := net.JoinHostPort("127.0.0.1", fmt.Sprint(PortFor(appName, statePath)))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is in use by %s", ErrAlreadyRunning, statePath, address)
	}
	return &InstanceGuard{statePath: statePath, address: address, listener: listener}, nil
}

// Release gives up the claim. Calling it again is a no-op.
func (guard *InstanceGuard) Release() error {
	if guard == nil {
		return nil
	}
	var err error
	guard.once.Do(func() {
		err = guard.listener.Close()
	})
	return err
}

// Address returns the bound loopback address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

// StatePath returns the claimed state location.
func (guard *InstanceGuard) StatePath() string {
	if guard == nil {
		return ""
	}
	return guard.statePath
}

// PortFor maps appName and statePath onto the lock port range.
func PortFor(appName, statePath string) int {
	hash := fnv.New32a()
	hash.Write([]byte(appName))
	hash.Write([]byte{0})
	hash.Write([]byte(statePath))
	span := uint32(lockPortLast - lockPortFirst + 1)
	return lockPortFirst + int(hash.Sum32()%span)
}
