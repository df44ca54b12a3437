package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"hivelings-server/internal/domain"
	"hivelings-server/internal/engine"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Service *engine.Service
}

func NewDebugHandler(s *engine.Service) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/state", h.handleState)
	mux.HandleFunc("/debug/order", h.handleOrder)
	mux.HandleFunc("/debug/perception", h.handlePerception)
	mux.HandleFunc("/debug/admin", h.handleAdmin)
}

// /debug/state - полное последнее завершенное состояние (с памятью и генератором)
func (h *DebugHandler) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.State())
}

// /debug/order - порядок ходов последнего тика
func (h *DebugHandler) handleOrder(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.LastOrder())
}

// /debug/perception?id=3 - восприятие хивлинга, включая точки обрыва лучей
func (h *DebugHandler) handlePerception(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseEntityID(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}

	p, err := h.Service.Perceive(id)
	switch {
	case errors.Is(err, domain.ErrEntityNotFound), errors.Is(err, domain.ErrNotHiveling):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, p)
}

// AdminRequest: { "command": "SPAWN", "payload": { "entityType": "FOOD", "x": 1, "y": 2 } }
type AdminRequest struct {
	Command string          `json:"command"`
	Payload json.RawMessage `json:"payload"`
}

// POST /debug/admin - админская команда между тиками
func (h *DebugHandler) handleAdmin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req AdminRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.Service.Admin(req.Command, req.Payload)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, res)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального debug-клиента)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Если data == nil (например, пустая очередь), возвращаем пустой массив [], а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
