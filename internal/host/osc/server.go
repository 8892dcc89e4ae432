package osc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net"

	goosc "github.com/hypebeast/go-osc/osc"
	"go.uber.org/zap"

	"github.com/PixPMusic/nanokontrol-bridge/internal/surface"
)

var (
	// ErrMissingArgument is returned when a notification is too short
	ErrMissingArgument = errors.New("missing argument")
	// ErrArgumentType is returned for an argument that is not an integral
	// number or bool, or is out of range
	ErrArgumentType = errors.New("unsupported argument type")
)

// Notifications is the sink for host state changes; *surface.Surface
// implements it
type Notifications interface {
	OnFaderBankChanged(start int) error
	OnSoloMuteChanged(channel int, state surface.SoloMuteState, isBright bool) error
	OnTrackRecordEnabled(channel int, enabled bool) error
	OnPlayStateChanged(playing bool)
	OnRecordStateChanged(recording bool)
	OnLoopChanged(on bool)
}

var _ Notifications = (*surface.Surface)(nil)

type handlerFunc func(msg *goosc.Message) error

// Server receives host notifications over UDP and forwards them to a
// Notifications sink
type Server struct {
	addr       string
	sink       Notifications
	handlers   map[string]handlerFunc
	dispatcher *goosc.StandardDispatcher
	log        *zap.Logger
}

// NewServer creates a server that will listen on addr ("host:port")
func NewServer(addr string, sink Notifications, log *zap.Logger) (*Server, error) {
	s := &Server{
		addr:       addr,
		sink:       sink,
		dispatcher: goosc.NewStandardDispatcher(),
		log:        log.With(zap.String("addr", addr)),
	}
	s.handlers = map[string]handlerFunc{
		AddrBankChanged:     s.bankChanged,
		AddrSoloMuteChanged: s.soloMuteChanged,
		AddrRecEnabled:      s.recEnabled,
		AddrPlayChanged:     s.playChanged,
		AddrRecordChanged:   s.recordChanged,
		AddrLoopChanged:     s.loopChanged,
	}
	for addr := range s.handlers {
		if err := s.dispatcher.AddMsgHandler(addr, s.handle); err != nil {
			return nil, fmt.Errorf("failed to register %s: %w", addr, err)
		}
	}
	return s, nil
}

// Serve listens until ctx is cancelled
func (s *Server) Serve(ctx context.Context) error {
	conn, err := net.ListenPacket("udp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	return s.serve(ctx, conn)
}

// maxPacketSize is the largest UDP payload
const maxPacketSize = 65535

// serve reads and dispatches packets one at a time so notifications are
// applied in arrival order
func (s *Server) serve(ctx context.Context, conn net.PacketConn) error {
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() {
		conn.Close()
	})
	defer stop()

	s.log.Info("listening for host notifications", zap.Stringer("local", conn.LocalAddr()))

	buf := make([]byte, maxPacketSize)
	for {
		n, _, err := conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("notification server stopped: %w", err)
		}

		packet, err := goosc.ParsePacket(string(buf[:n]))
		if err != nil {
			s.log.Warn("dropped malformed packet", zap.Error(err))
			continue
		}
		s.dispatcher.Dispatch(packet)
	}
}

func (s *Server) handle(msg *goosc.Message) {
	if err := s.dispatch(msg); err != nil {
		s.log.Warn("dropped host notification", zap.String("address", msg.Address), zap.Error(err))
	}
}

func (s *Server) dispatch(msg *goosc.Message) error {
	handler, ok := s.handlers[msg.Address]
	if !ok {
		return fmt.Errorf("unknown address %s", msg.Address)
	}
	s.log.Debug("OSC IN", zap.Stringer("msg", msg))
	return handler(msg)
}

func (s *Server) bankChanged(msg *goosc.Message) error {
	start, err := intArg(msg, 0)
	if err != nil {
		return err
	}
	return s.sink.OnFaderBankChanged(start)
}

func (s *Server) soloMuteChanged(msg *goosc.Message) error {
	channel, err := intArg(msg, 0)
	if err != nil {
		return err
	}
	bits, err := intArg(msg, 1)
	if err != nil {
		return err
	}
	if bits < 0 || bits > int(surface.SoloMuteBits) {
		return fmt.Errorf("%w: %s state 0x%x outside 0x00-0x%02x", ErrArgumentType, msg.Address, bits, surface.SoloMuteBits)
	}
	bright, err := boolArg(msg, 2)
	if err != nil {
		return err
	}
	return s.sink.OnSoloMuteChanged(channel, surface.SoloMuteState(bits), bright)
}

func (s *Server) recEnabled(msg *goosc.Message) error {
	channel, err := intArg(msg, 0)
	if err != nil {
		return err
	}
	enabled, err := boolArg(msg, 1)
	if err != nil {
		return err
	}
	return s.sink.OnTrackRecordEnabled(channel, enabled)
}

func (s *Server) playChanged(msg *goosc.Message) error {
	playing, err := boolArg(msg, 0)
	if err != nil {
		return err
	}
	s.sink.OnPlayStateChanged(playing)
	return nil
}

func (s *Server) recordChanged(msg *goosc.Message) error {
	recording, err := boolArg(msg, 0)
	if err != nil {
		return err
	}
	s.sink.OnRecordStateChanged(recording)
	return nil
}

func (s *Server) loopChanged(msg *goosc.Message) error {
	on, err := boolArg(msg, 0)
	if err != nil {
		return err
	}
	s.sink.OnLoopChanged(on)
	return nil
}

func intArg(msg *goosc.Message, i int) (int, error) {
	if i >= len(msg.Arguments) {
		return 0, fmt.Errorf("%w: %s needs argument %d", ErrMissingArgument, msg.Address, i)
	}
	switch v := msg.Arguments[i].(type) {
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float32:
		if float64(v) != math.Trunc(float64(v)) {
			return 0, fmt.Errorf("%w: %s argument %d is not integral: %v", ErrArgumentType, msg.Address, i, v)
		}
		return int(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("%w: %s argument %d is %T", ErrArgumentType, msg.Address, i, msg.Arguments[i])
}

func boolArg(msg *goosc.Message, i int) (bool, error) {
	n, err := intArg(msg, i)
	return n != 0, err
}
