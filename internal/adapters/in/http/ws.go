package http

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Dashboards are served from arbitrary origins in development.
	CheckOrigin: func(_ *http.Request) bool { return true },
}

// StreamEvents handles GET /ws - upgrades the connection and streams fleet
// events until the peer disconnects.
func (s *Server) StreamEvents(ctx echo.Context) error {
	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		// Upgrade has already written the HTTP error response.
		return nil
	}

	s.log.Debug().Str("remote", conn.RemoteAddr().String()).Msg("websocket subscriber connected")
	s.hub.ServeConn(conn)
	s.log.Debug().Str("remote", conn.RemoteAddr().String()).Msg("websocket subscriber disconnected")
	return nil
}
