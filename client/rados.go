package client

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ceph/go-ceph/rados"
	"github.com/hashicorp/go-hclog"
)

var _ MonCommander = &Cluster{}

// Cluster is a live librados connection to a Ceph cluster.
type Cluster struct {
	conn *rados.Conn
}

// Connect reads the given ceph.conf, applies timeout as both the client mount
// timeout and the monitor operation timeout, and connects. The caller owns the
// connection and must call Shutdown when done, whether or not collection
// succeeds.
func Connect(confFile string, timeout time.Duration, log hclog.Logger) (*Cluster, error) {
	log.Debug("using ceph configuration file", "path", confFile)
	conn, err := rados.NewConn()
	if err != nil {
		return nil, fmt.Errorf("creating rados connection: %w", err)
	}
	if err := conn.ReadConfigFile(confFile); err != nil {
		return nil, fmt.Errorf("reading ceph config %q: %w", confFile, err)
	}

	// librados has no per-call timeout on mon_command; the operation timeout
	// option covers each query instead.
	secs := strconv.Itoa(int(timeout / time.Second))
	log.Debug("setting client timeouts", "seconds", secs)
	if err := conn.SetConfigOption("client_mount_timeout", secs); err != nil {
		return nil, fmt.Errorf("setting client_mount_timeout: %w", err)
	}
	if err := conn.SetConfigOption("rados_mon_op_timeout", secs); err != nil {
		return nil, fmt.Errorf("setting rados_mon_op_timeout: %w", err)
	}

	log.Debug("connecting to ceph cluster")
	if err := conn.Connect(); err != nil {
		return nil, fmt.Errorf("connecting to cluster: %w", err)
	}
	return &Cluster{conn: conn}, nil
}

func (c *Cluster) MonCommand(cmd []byte) ([]byte, string, error) {
	return c.conn.MonCommand(cmd)
}

func (c *Cluster) FSID() (string, error) {
	return c.conn.GetFSID()
}

// Shutdown releases the connection.
func (c *Cluster) Shutdown() {
	c.conn.Shutdown()
}
