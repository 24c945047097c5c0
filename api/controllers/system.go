package controllers

import (
	"net/http"

	"github.com/gestora-app/gestora-backend/api/responses"
	"github.com/gestora-app/gestora-backend/api/validators"
	"github.com/gestora-app/gestora-backend/pkg/db"
	"github.com/gestora-app/gestora-backend/pkg/logger"
)

// SystemController serves health checks and the client log forwarder.
type SystemController struct {
	pinger db.Pinger
	logg   *logger.Logger
}

// NewSystemController wires the system controller.
func NewSystemController(pinger db.Pinger, logg *logger.Logger) *SystemController {
	return &SystemController{pinger: pinger, logg: logg}
}

type logMessageRequest struct {
	Level   string `json:"level"`
	Message string `json:"message" validate:"required"`
}

func (c *SystemController) Health(w http.ResponseWriter, r *http.Request) {
	if err := c.pinger.Ping(r.Context()); err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}
	responses.Message(w, "ok")
}

// LogMessage forwards a client-side log line into the process log at the
// requested level. Unknown levels land at info.
func (c *SystemController) LogMessage(w http.ResponseWriter, r *http.Request) {
	var body logMessageRequest
	if err := validators.DecodeJSONBody(w, r, &body); err != nil {
		responses.Error(r.Context(), c.logg, w, err)
		return
	}

	ctx := c.logg.WithField(r.Context(), "source", "client")
	c.logg.Log(ctx, body.Level, body.Message)
	responses.Message(w, "logged")
}
