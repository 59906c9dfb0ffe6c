package devserver

import (
	"context"
	"net"
	"strconv"
	"time"

	"fortio.org/log"
	"fortio.org/safecast"
)

// DefaultPort is where the server tries to listen first.
const DefaultPort = 8000

// ProbeTimeout bounds the connection attempt made by PortInUse.
var ProbeTimeout = 500 * time.Millisecond

// ValidatePort checks that port fits a TCP port number (0 means any free port).
func ValidatePort(port int) error {
	_, err := safecast.Convert[uint16](port)
	return err
}

// PortInUse reports whether something already accepts connections on localhost:port.
func PortInUse(ctx context.Context, port int) bool {
	d := net.Dialer{Timeout: ProbeTimeout}
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort("localhost", strconv.Itoa(port)))
	if err != nil {
		log.LogVf("Port %d probe: %v", port, err)
		return false
	}
	conn.Close()
	return true
}

// ChoosePort returns port, or port+1 when port is already taken. There is a single
// increment and no reservation: someone else can still grab the port before we bind.
func ChoosePort(ctx context.Context, port int) int {
	if port == 0 {
		return 0
	}
	if PortInUse(ctx, port) {
		log.Warnf("Port %d is already in use. Trying port %d...", port, port+1)
		return port + 1
	}
	return port
}
