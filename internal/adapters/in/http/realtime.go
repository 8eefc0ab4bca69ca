package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"meatdelivery/internal/adapters/out/bus"
	"meatdelivery/internal/core/application/notifications"
	"meatdelivery/internal/core/application/usecases/queries"
	"meatdelivery/internal/core/domain/model/access"
	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/core/ports"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	frameJoinOrderRoom  = "join-order-room"
	frameLeaveOrderRoom = "leave-order-room"
	eventError          = "error"
	eventJoined         = "joined-order-room"
	eventLeft           = "left-order-room"

	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = pongWait * 9 / 10
	maxFrameSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Any origin may connect; the token authenticates the connection.
	CheckOrigin: func(*http.Request) bool { return true },
}

type clientFrame struct {
	Type    string `json:"type"`
	OrderID string `json:"orderId"`
}

type serverFrame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type roomData struct {
	OrderID string `json:"orderId"`
}

type errorData struct {
	Message string `json:"message"`
	OrderID string `json:"orderId,omitempty"`
}

// Realtime handles GET /api/realtime. It upgrades to a WebSocket and streams the
// events of every topic the connection has joined.
func (s *Server) Realtime(c echo.Context) error {
	principal := principalOf(c)

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written the handshake error.
		s.logger.Warn("websocket upgrade failed", "error", err)
		return nil
	}

	var topics []string
	if principal.Role == access.RoleDeliveryPartner {
		topics = append(topics, notifications.BroadcastTopic)
	}
	sub := s.hub.Subscribe(topics...)

	ctx, cancel := context.WithCancel(context.WithoutCancel(c.Request().Context()))
	defer cancel()

	replies := make(chan serverFrame, 8)
	go func() {
		defer cancel()
		s.readFrames(ctx, conn, principal, sub, replies)
	}()

	s.writeFrames(ctx, conn, principal, sub, replies)

	sub.Close()
	_ = conn.Close()
	return nil
}

// readFrames applies room membership requests until the client goes away.
func (s *Server) readFrames(
	ctx context.Context,
	conn *websocket.Conn,
	principal access.Principal,
	sub *bus.Subscription,
	replies chan<- serverFrame,
) {
	conn.SetReadLimit(maxFrameSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var frame clientFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("websocket read failed", "principal", principal.ID.String(), "error", err)
			}
			return
		}

		reply := serverFrame{Event: eventJoined, Data: roomData{OrderID: frame.OrderID}}
		if frame.Type == frameLeaveOrderRoom {
			reply.Event = eventLeft
		}
		if err := s.applyFrame(ctx, principal, sub, frame); err != nil {
			reply = serverFrame{Event: eventError, Data: errorData{Message: err.Error(), OrderID: frame.OrderID}}
		}

		select {
		case replies <- reply:
		case <-ctx.Done():
			return
		}
	}
}

var errUnknownFrame = errors.New("unknown frame type")

func (s *Server) applyFrame(ctx context.Context, principal access.Principal, sub *bus.Subscription, frame clientFrame) error {
	switch frame.Type {
	case frameJoinOrderRoom, frameLeaveOrderRoom:
	default:
		return errUnknownFrame
	}

	orderID, err := kernel.UUIDFromString(frame.OrderID)
	if err != nil {
		return err
	}

	if frame.Type == frameLeaveOrderRoom {
		sub.Leave(notifications.OrderTopic(orderID))
		return nil
	}

	query, err := queries.NewGetOrderQuery(orderID, principal)
	if err != nil {
		return err
	}
	if _, err = s.handlers.GetOrder.Handle(ctx, query); err != nil {
		return err
	}
	sub.Join(notifications.OrderTopic(orderID))
	return nil
}

// claimedByOther reports the order a partner connection must leave: another
// partner has accepted it. Relayed events carry their payload as raw JSON.
func claimedByOther(principal access.Principal, event ports.Event) (string, bool) {
	if principal.Role != access.RoleDeliveryPartner || event.Name != notifications.EventOrderAccepted {
		return "", false
	}

	var data notifications.OrderAcceptedData
	switch payload := event.Data.(type) {
	case notifications.OrderAcceptedData:
		data = payload
	case json.RawMessage:
		if err := json.Unmarshal(payload, &data); err != nil {
			return "", false
		}
	default:
		return "", false
	}
	return data.OrderID, data.PartnerID != principal.ID.String()
}

// writeFrames owns every write to conn. A partner in the room of an order claimed
// by someone else gets the acceptance, then is moved out of the room.
func (s *Server) writeFrames(
	ctx context.Context,
	conn *websocket.Conn,
	principal access.Principal,
	sub *bus.Subscription,
	replies <-chan serverFrame,
) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		var (
			frame   serverFrame
			evicted *serverFrame
		)
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		case <-sub.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "subscriber too slow"), time.Now().Add(writeWait))
			return
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
			continue
		case frame = <-replies:
		case event, ok := <-sub.C():
			if !ok {
				return
			}
			frame = serverFrame{Event: event.Name, Data: event.Data}
			if orderID, ok := claimedByOther(principal, event); ok {
				sub.Leave(event.Topic)
				evicted = &serverFrame{Event: eventLeft, Data: roomData{OrderID: orderID}}
			}
		}

		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(frame); err != nil {
			s.logger.Debug("websocket write failed", "error", err)
			return
		}
		if evicted != nil {
			if err := conn.WriteJSON(evicted); err != nil {
				s.logger.Debug("websocket write failed", "error", err)
				return
			}
		}
	}
}
