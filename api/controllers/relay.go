package controllers

import (
	"net/http"

	"github.com/gestora-app/gestora-backend/api/responses"
	"github.com/gestora-app/gestora-backend/api/validators"
	"github.com/gestora-app/gestora-backend/internal/relay"
	"github.com/gestora-app/gestora-backend/pkg/logger"
)

// RelayController serves the HTTP forwarder and the WebSocket session slot.
type RelayController struct {
	forwarder *relay.Forwarder
	session   *relay.WSSession
	logg      *logger.Logger
}

// NewRelayController wires the relay controller.
func NewRelayController(forwarder *relay.Forwarder, session *relay.WSSession, logg *logger.Logger) *RelayController {
	return &RelayController{forwarder: forwarder, session: session, logg: logg}
}

type wsConnectRequest struct {
	URL            string            `json:"url" validate:"required"`
	Headers        map[string]string `json:"headers"`
	InitialMessage string            `json:"initial_message"`
}

type wsSendRequest struct {
	Message string `json:"message" validate:"required"`
}

func (c *RelayController) APIRequest(w http.ResponseWriter, r *http.Request) {
	var body relay.Request
	if err := validators.DecodeJSONBody(w, r, &body); err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}

	data, err := c.forwarder.Forward(r.Context(), body)
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, data)
}

func (c *RelayController) Login(w http.ResponseWriter, r *http.Request) {
	var body relay.Credentials
	if err := validators.DecodeJSONBody(w, r, &body); err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}

	data, err := c.forwarder.Login(r.Context(), body)
	if err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Data(w, data)
}

func (c *RelayController) ConnectWebSocket(w http.ResponseWriter, r *http.Request) {
	var body wsConnectRequest
	if err := validators.DecodeJSONBody(w, r, &body); err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}

	if err := c.session.Connect(r.Context(), body.URL, body.Headers, body.InitialMessage); err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Message(w, "websocket connected")
}

func (c *RelayController) SendWebSocketMessage(w http.ResponseWriter, r *http.Request) {
	var body wsSendRequest
	if err := validators.DecodeJSONBody(w, r, &body); err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}

	if err := c.session.Send(r.Context(), body.Message); err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Message(w, "message sent")
}

func (c *RelayController) CloseWebSocket(w http.ResponseWriter, r *http.Request) {
	if err := c.session.Close(r.Context()); err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Message(w, "websocket closed")
}

func (c *RelayController) WebSocketState(w http.ResponseWriter, r *http.Request) {
	responses.Data(w, c.session.State())
}
