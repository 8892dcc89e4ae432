package osc

import (
	"fmt"
	"net"
	"strconv"

	goosc "github.com/hypebeast/go-osc/osc"
	"go.uber.org/zap"

	"github.com/PixPMusic/nanokontrol-bridge/internal/host"
)

var _ host.Host = (*Client)(nil)

type packetSender interface {
	Send(packet goosc.Packet) error
}

// Client drives the DAW by sending one OSC message per host command.
// A failed send is logged and dropped; the surface never blocks on the host.
type Client struct {
	conn packetSender
	log  *zap.Logger
}

// NewClient creates a client sending to addr ("host:port")
func NewClient(addr string, log *zap.Logger) (*Client, error) {
	h, p, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid send address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(p)
	if err != nil {
		return nil, fmt.Errorf("invalid send port %q: %w", p, err)
	}
	return newClient(goosc.NewClient(h, port), log.With(zap.String("addr", addr))), nil
}

func newClient(conn packetSender, log *zap.Logger) *Client {
	return &Client{conn: conn, log: log}
}

func (c *Client) send(addr string, args ...interface{}) {
	msg := goosc.NewMessage(addr, args...)
	if err := c.conn.Send(msg); err != nil {
		c.log.Warn("failed to send host command", zap.String("address", addr), zap.Error(err))
		return
	}
	c.log.Debug("OSC OUT", zap.Stringer("msg", msg))
}

func flag(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func (c *Client) ToggleSolo(track int) {
	c.send(AddrToggleSolo, int32(track))
}

func (c *Client) ToggleMute(track int) {
	c.send(AddrToggleMute, int32(track))
}

func (c *Client) ToggleRecEnable(track int, automatic bool) {
	c.send(AddrToggleRecEnable, int32(track), flag(automatic))
}

func (c *Client) SelectPluginInTrack(track int) {
	c.send(AddrSelectPlugin, int32(track))
}

func (c *Client) SetFader(track int, value float64, automated bool) {
	c.send(AddrFader, int32(track), float32(value), flag(automated))
}

func (c *Client) SetPanPot(track int, delta float64, relative bool) {
	c.send(AddrPan, int32(track), float32(delta), flag(relative))
}

func (c *Client) Play() {
	c.send(AddrPlay)
}

func (c *Client) Stop() {
	c.send(AddrStop)
}

func (c *Client) Record() {
	c.send(AddrRecord)
}

func (c *Client) Rewind(pressed bool) {
	c.send(AddrRewind, flag(pressed))
}

func (c *Client) FastForward(pressed bool) {
	c.send(AddrFastForward, flag(pressed))
}

func (c *Client) ChangeFaderBanks(delta int) {
	c.send(AddrBankShift, int32(delta))
}

func (c *Client) ToggleLoop() {
	c.send(AddrLoopToggle)
}

func (c *Client) GotoPreviousMarker() {
	c.send(AddrMarkerPrev)
}

func (c *Client) GotoNextMarker() {
	c.send(AddrMarkerNext)
}

func (c *Client) CreateMarker() {
	c.send(AddrMarkerCreate)
}

func (c *Client) UpdateDeviceState() {
	c.send(AddrRefresh)
}
