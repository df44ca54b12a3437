package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"hivelings-server/internal/engine"
	"hivelings-server/pkg/api"
	"hivelings-server/pkg/logger"
)

// mindReadLimit - входы разума крупнее сообщений наблюдателя (списки сущностей).
const mindReadLimit = 1 << 20

// MindHandler обслуживает любой engine.Mind по websocket:
// на каждый DECIDE отвечает DECISION (или ERROR) с тем же requestId.
func MindHandler(mind engine.Mind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Log.Error("Upgrade error:", err)
			return
		}
		defer conn.Close()

		log := logger.Component("mind_server").WithField("remote", conn.RemoteAddr().String())
		log.Info("Engine connected")
		conn.SetReadLimit(mindReadLimit)

		for {
			var req api.MindRequest
			if err := conn.ReadJSON(&req); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.WithError(err).Warn("Engine connection lost")
				}
				return
			}

			resp := answer(r, mind, req, log)
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(resp); err != nil {
				log.WithError(err).Warn("Failed to write decision")
				return
			}
		}
	}
}

func answer(r *http.Request, mind engine.Mind, req api.MindRequest, log *logrus.Entry) api.MindResponse {
	resp := api.MindResponse{Type: api.MsgDecision, RequestID: req.RequestID}
	if err := req.Validate(); err != nil {
		resp.Type, resp.Error = api.MsgError, err.Error()
		return resp
	}

	out, err := mind.Decide(r.Context(), req.Input)
	if err != nil {
		log.WithError(err).Warn("Mind failed")
		resp.Type, resp.Error = api.MsgError, err.Error()
		return resp
	}

	raw, err := json.Marshal(out)
	if err != nil {
		resp.Type, resp.Error = api.MsgError, err.Error()
		return resp
	}
	resp.Output = raw
	return resp
}
