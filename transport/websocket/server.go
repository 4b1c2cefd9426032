package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/homeboard-backend/internal/entity"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1 << 12

	defaultPushInterval = time.Second
	inboxSize           = 8
)

type gameUseCase interface {
	MakeMove(ctx context.Context, row, col int) entity.Snapshot
	Reset(ctx context.Context) entity.Snapshot
}

type telemetryService interface {
	AddNotification(ctx context.Context, title, message string, severity entity.Severity) []entity.Notification
}

type weatherService interface {
	RequestLocationAndWeather(ctx context.Context) entity.Weather
}

type dashboardUseCase interface {
	Snapshot() entity.Dashboard
}

type handlerFunc func(ctx context.Context, message *Message) (any, error)

// Server - streams dashboard snapshots and accepts commands on the same socket.
type Server struct {
	logger *slog.Logger

	// lifecycle bounds work that outlives a single command.
	lifecycle  context.Context
	refreshing atomic.Bool
	background sync.WaitGroup

	game      gameUseCase
	telemetry telemetryService
	weather   weatherService
	dashboard dashboardUseCase

	pushInterval time.Duration
	upgrader     websocket.Upgrader

	handlers map[string]handlerFunc
}

// New - ctx bounds background work started by commands; cancel it on shutdown and then call Wait.
func New(
	ctx context.Context,
	logger *slog.Logger,
	pushInterval time.Duration,
	game gameUseCase,
	telemetry telemetryService,
	weather weatherService,
	dashboard dashboardUseCase,
) *Server {
	if pushInterval <= 0 {
		pushInterval = defaultPushInterval
	}

	server := &Server{
		logger: logger.With("component", "websocket"),

		lifecycle: ctx,

		game:      game,
		telemetry: telemetry,
		weather:   weather,
		dashboard: dashboard,

		pushInterval: pushInterval,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionGameMove] = server.handleGameMove
	server.handlers[actionGameReset] = server.handleGameReset
	server.handlers[actionWeatherRefresh] = server.handleWeatherRefresh
	server.handlers[actionNotificationAdd] = server.handleNotificationAdd

	return server
}

// Wait - blocks until background work started by commands has finished.
func (that *Server) Wait() {
	that.background.Wait()
}

func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	log.Info("websocket connection established", "remote", req.RemoteAddr)

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	inbox := make(chan Message, inboxSize)
	done := make(chan struct{})
	quit := make(chan struct{})

	go that.readMessages(conn, inbox, done, quit)

	that.writeLoop(req.Context(), conn, inbox, done)
	close(quit)

	log.Info("websocket connection closed", "remote", req.RemoteAddr)
}

// readMessages - the only reader of conn; closes done once the peer goes away.
func (that *Server) readMessages(conn *websocket.Conn, inbox chan<- Message, done chan<- struct{}, quit <-chan struct{}) {
	log := that.logger.With("method", "readMessages")

	defer close(done)

	for {
		var message Message
		if err := conn.ReadJSON(&message); err != nil {
			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if !errors.As(err, &syntaxErr) && !errors.As(err, &typeErr) {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Warn("read failed", "error", err)
				}

				return
			}

			log.Warn("failed to unmarshal message", "error", err)
			message = Message{}
		}

		select {
		case inbox <- message:
		case <-quit:
			return
		}
	}
}

// writeLoop - the only writer of conn.
func (that *Server) writeLoop(ctx context.Context, conn *websocket.Conn, inbox <-chan Message, done <-chan struct{}) {
	log := that.logger.With("method", "writeLoop")

	push := time.NewTicker(that.pushInterval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		push.Stop()
		ping.Stop()
	}()

	if err := that.pushDashboard(conn); err != nil {
		log.Info("failed to send initial dashboard", "error", err)
		return
	}

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case message := <-inbox:
			if err := that.dispatch(ctx, conn, &message); err != nil {
				log.Info("failed to answer command", "action", message.Action, "error", err)
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Info("failed to send ping", "error", err)
				return
			}
		case <-push.C:
			if err := that.pushDashboard(conn); err != nil {
				log.Info("failed to push dashboard", "error", err)
				return
			}
		}
	}
}

// dispatch - answers a command with its result, then a fresh dashboard.
// Command failures are reported to the client; only write errors are returned.
func (that *Server) dispatch(ctx context.Context, conn *websocket.Conn, message *Message) error {
	log := that.logger.With("method", "dispatch")

	handler, ok := that.handlers[message.Action]
	if !ok {
		log.Warn("unknown action", "action", message.Action)
		return that.write(conn, envelope{Type: typeError, Error: "unknown action"})
	}

	data, err := handler(ctx, message)
	if err != nil {
		log.Warn("command rejected", "action", message.Action, "error", err)
		return that.write(conn, envelope{Type: message.Action, Error: err.Error()})
	}

	if err = that.write(conn, envelope{Type: message.Action, Data: data}); err != nil {
		return err
	}

	return that.pushDashboard(conn)
}

func (that *Server) pushDashboard(conn *websocket.Conn) error {
	return that.write(conn, envelope{Type: typeDashboard, Data: that.dashboard.Snapshot()})
}

func (that *Server) write(conn *websocket.Conn, message envelope) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(message)
}
