package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/grovetools/atlas/pkg/controls"
	"github.com/grovetools/atlas/pkg/countries"
)

const writeWait = 10 * time.Second

// Event is one message on the /api/events stream.
type Event struct {
	Type     string            `json:"type"`
	Dataset  countries.Summary `json:"dataset"`
	Controls controls.State    `json:"controls"`
}

func (s *Server) snapshot(kind string) Event {
	return Event{
		Type:     kind,
		Dataset:  s.app.Countries.SelectDatasetSummary(),
		Controls: s.app.Controls.Snapshot(),
	}
}

// handleEvents streams the dataset summary and the controls over a websocket.
// The first message is the current state; every later message follows a
// transition in either store and carries the state at send time.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WithError(err).Debug("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	changed := make(chan struct{}, 1)
	notify := func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}
	unsubDataset := s.app.Countries.Subscribe(func(countries.Summary) { notify() })
	defer unsubDataset()
	unsubControls := s.app.Controls.Subscribe(func(controls.State) { notify() })
	defer unsubControls()

	// The read loop only detects the client going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	s.logger.Debug("Event client connected")
	if err := s.writeEvent(conn, s.snapshot("snapshot")); err != nil {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-closed:
			s.logger.Debug("Event client disconnected")
			return
		case <-changed:
			if err := s.writeEvent(conn, s.snapshot("update")); err != nil {
				s.logger.WithError(err).Debug("Failed to write event")
				return
			}
		}
	}
}

func (s *Server) writeEvent(conn *websocket.Conn, ev Event) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(ev)
}
