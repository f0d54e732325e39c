package control

import (
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
)

// Client talks to a running notishiftd over the session bus.
type Client struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// NewClient connects to the session bus.
func NewClient() (*Client, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &Client{
		conn: conn,
		obj:  conn.Object(BusName, ObjectPath),
	}, nil
}

// Close releases the bus connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// GetAnchor returns the daemon's current anchor selection.
func (c *Client) GetAnchor() (string, error) {
	var anchor string
	if err := c.obj.Call(Interface+".GetAnchor", 0).Store(&anchor); err != nil {
		return "", fmt.Errorf("GetAnchor failed (is notishiftd running?): %w", err)
	}
	return anchor, nil
}

// SetAnchor changes the daemon's anchor selection and reprocesses all
// visible notification windows.
func (c *Client) SetAnchor(anchor string) error {
	if err := c.obj.Call(Interface+".SetAnchor", 0, anchor).Err; err != nil {
		return fmt.Errorf("SetAnchor failed: %w", err)
	}
	return nil
}

// Reprocess asks the daemon to re-run repositioning across all visible
// notification windows.
func (c *Client) Reprocess() error {
	if err := c.obj.Call(Interface+".Reprocess", 0).Err; err != nil {
		return fmt.Errorf("Reprocess failed: %w", err)
	}
	return nil
}

// Status returns a snapshot of the daemon's engine state.
func (c *Client) Status() (StatusInfo, error) {
	var (
		anchor         string
		cachePopulated bool
		overlayVisible bool
		reassertUntil  int64
	)
	err := c.obj.Call(Interface+".Status", 0).Store(
		&anchor, &cachePopulated, &overlayVisible, &reassertUntil)
	if err != nil {
		return StatusInfo{}, fmt.Errorf("Status failed (is notishiftd running?): %w", err)
	}

	info := StatusInfo{
		Anchor:         anchor,
		CachePopulated: cachePopulated,
		OverlayVisible: overlayVisible,
	}
	if reassertUntil != 0 {
		info.ReassertUntil = time.Unix(reassertUntil, 0)
	}
	return info, nil
}
