package server

import (
	"net/http"
	"time"

	"github.com/etnz/inky"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	sendBuffer = 16
)

// stream upgrades the connection and sends the current session snapshot,
// then one snapshot per transition until the client goes away.
func (s *Server) stream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade error")
		return
	}
	log := s.log.WithField("remote", conn.RemoteAddr().String())
	log.Debug("websocket connected")

	send := make(chan inky.Snapshot, sendBuffer)
	send <- s.session.Snapshot()
	cancel := s.session.Subscribe(func(snap inky.Snapshot) {
		select {
		case send <- snap:
		default:
			log.Warn("websocket client too slow, snapshot dropped")
		}
	})

	// the read loop only detects the client closing the connection
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	defer func() {
		cancel()
		conn.Close()
		log.Debug("websocket disconnected")
	}()
	for {
		select {
		case <-closed:
			return
		case <-s.ctx.Done():
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"),
				time.Now().Add(writeWait))
			return
		case snap := <-send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(snap); err != nil {
				log.WithError(err).Warn("websocket write error")
				return
			}
		}
	}
}
