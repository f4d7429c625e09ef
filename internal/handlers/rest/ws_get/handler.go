package ws_get

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"dispatch/internal/handlers/rest/response"
	"dispatch/internal/pkg/middlewares/identity"
	"dispatch/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

type Handler struct {
	log        handlerLogger
	authorizer Authorizer
	subscriber Subscriber
	upgrader   websocket.Upgrader
}

// New origin не проверяется: клиенты приходят через шлюз авторизации.
func New(log handlerLogger, authorizer Authorizer, subscriber Subscriber) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:        handlerLog,
		authorizer: authorizer,
		subscriber: subscriber,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		response.Message(w, h.log, http.StatusUnauthorized, "Not authenticated")
		return
	}

	channel := r.URL.Query().Get("channel")
	if channel == "" {
		response.Message(w, h.log, http.StatusBadRequest, "channel is required")
		return
	}

	if err := h.authorizer.Authorize(r.Context(), caller, channel); err != nil {
		response.Error(w, h.log, err)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	stream, err := h.subscriber.Subscribe(ctx, channel)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отвечает клиенту ошибкой
		h.log.Warn("websocket upgrade failed", logger.NewField("error", err))
		return
	}
	defer conn.Close()

	ActiveConnections.Inc()
	defer ActiveConnections.Dec()

	log := h.log.With(
		logger.NewField("channel", channel),
		logger.NewField("account_id", caller.AccountID),
	)
	log.Info("websocket subscribed")

	go h.readPump(conn, cancel)
	h.writePump(ctx, conn, stream, log)

	log.Debug("websocket closed")
}

// readPump нужен только для pong и обнаружения закрытия, входящие сообщения игнорируются.
func (h *Handler) readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

func (h *Handler) writePump(ctx context.Context, conn *websocket.Conn, stream <-chan []byte, log logger.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait),
			)
			return

		case payload, ok := <-stream:
			if !ok {
				_ = conn.WriteControl(
					websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "subscription closed"),
					time.Now().Add(writeWait),
				)
				return
			}

			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				log.Debug("websocket write failed", logger.NewField("error", err))
				return
			}
			MessagesSentTotal.Inc()

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
