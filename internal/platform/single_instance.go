package platform

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"strings"
	"sync"
	"time"
)

// ErrAlreadyRunning indicates another timer already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const (
	minPort = 20000
	maxPort = 39999

	showRequest   = "show"
	handshakeWait = time.Second
)

// InstanceGuard holds the single-instance lock. While serving, it also
// answers show requests from later launches.
type InstanceGuard struct {
	listener    net.Listener
	address     string
	serveOnce   sync.Once
	releaseOnce sync.Once
	releaseErr  error
}

// AcquireSingleInstance binds a localhost port derived from appName.
// A second process with the same name gets ErrAlreadyRunning.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := addressFor(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", address, ErrAlreadyRunning)
	}
	return &InstanceGuard{listener: listener, address: address}, nil
}

// Serve accepts show requests in the background until Release and calls
// onShow for each one. Only the first call starts serving.
func (guard *InstanceGuard) Serve(onShow func()) {
	if guard == nil || guard.listener == nil || onShow == nil {
		return
	}
	guard.serveOnce.Do(func() {
		go guard.acceptLoop(onShow)
	})
}

func (guard *InstanceGuard) acceptLoop(onShow func()) {
	for {
		conn, err := guard.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			continue
		}
		if readRequest(conn) == showRequest {
			onShow()
		}
	}
}

func readRequest(conn net.Conn) string {
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(handshakeWait))
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

// RequestShow asks the instance holding appName's lock to show its window.
func RequestShow(appName string) error {
	address := addressFor(appName)
	conn, err := net.DialTimeout("tcp", address, handshakeWait)
	if err != nil {
		return fmt.Errorf("contact running instance at %s: %w", address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(handshakeWait))
	if _, err := fmt.Fprintln(conn, showRequest); err != nil {
		return fmt.Errorf("send show request: %w", err)
	}
	return nil
}

// Release frees the lock and stops serving. Calling it again is a no-op.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	guard.releaseOnce.Do(func() {
		guard.releaseErr = guard.listener.Close()
	})
	return guard.releaseErr
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

// PortFor maps an application name onto the lock port range.
func PortFor(appName string) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}

func addressFor(appName string) string {
	return fmt.Sprintf("127.0.0.1:%d", PortFor(appName))
}
