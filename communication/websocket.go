package communication

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const closeGrace = time.Second

// Peer is a Communicator over a websocket connection. One goroutine reads; writes
// are serialised.
type Peer struct {
	conn     *websocket.Conn
	writeMu  sync.Mutex
	seq      int
	incoming chan Envelope
	err      error // set before incoming is closed
	done     chan struct{}
	once     sync.Once
}

func newPeer(conn *websocket.Conn) *Peer {
	p := &Peer{
		conn:     conn,
		incoming: make(chan Envelope, 16),
		done:     make(chan struct{}),
	}
	go p.readLoop()
	return p
}

// Dial connects to a peer serving Handler at url.
func Dial(ctx context.Context, url string) (*Peer, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	log.Info().Str("url", url).Msg("connected to peer")
	return newPeer(conn), nil
}

// Handler upgrades each request and hands the new peer to accept.
func Handler(accept func(*Peer)) http.HandlerFunc {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn().Err(err).Msg("websocket upgrade failed")
			return
		}
		log.Info().Str("remote", r.RemoteAddr).Msg("peer connected")
		accept(newPeer(conn))
	}
}

func (p *Peer) readLoop() {
	defer close(p.incoming)
	for {
		var env Envelope
		if err := p.conn.ReadJSON(&env); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				p.err = ErrPeerClosed
			} else {
				p.err = fmt.Errorf("read error: %w", err)
			}
			return
		}
		switch env.Type {
		case msgAction:
			if env.Action == nil {
				log.Warn().Int("seq", env.Seq).Msg("action message without action")
				continue
			}
			select {
			case p.incoming <- env:
			case <-p.done:
				p.err = ErrPeerClosed
				return
			}
		case msgPing:
		default:
			log.Warn().Str("type", env.Type).Msg("unknown message type")
		}
	}
}

func (p *Peer) Send(ctx context.Context, rec ActionRecord) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	select {
	case <-p.done:
		return ErrPeerClosed
	default:
	}
	deadline, _ := ctx.Deadline()
	if err := p.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}
	p.seq++
	return p.conn.WriteJSON(Envelope{Type: msgAction, Seq: p.seq, Action: &rec})
}

func (p *Peer) Receive(ctx context.Context) (ActionRecord, error) {
	select {
	case env, ok := <-p.incoming:
		if !ok {
			return ActionRecord{}, p.err
		}
		return *env.Action, nil
	case <-p.done:
		return ActionRecord{}, ErrPeerClosed
	case <-ctx.Done():
		return ActionRecord{}, ctx.Err()
	}
}

// Close says goodbye to the other side and drops the connection.
func (p *Peer) Close() error {
	var err error
	p.once.Do(func() {
		p.writeMu.Lock()
		close(p.done)
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = p.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeGrace))
		p.writeMu.Unlock()
		err = p.conn.Close()
	})
	return err
}
