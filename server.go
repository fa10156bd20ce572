package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"i4.energy/across/sw42dagw/device"
	"i4.energy/across/sw42dagw/proto"
)

// Server handles incoming HTTP requests for reading and controlling the
// configured matrix
type Server struct {
	Logger   *slog.Logger
	Poller   *Poller
	Hub      *Hub
	Controls Catalog
	Config   *Config
}

// ServeHTTP implements the http.Handler interface for the Server struct
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("GET /controls", s.handleControls)
	mux.HandleFunc("POST /controls/{id}", s.handleControl)
	mux.HandleFunc("POST /volume", s.handleVolume)
	mux.HandleFunc("POST /mute", s.handleMute)
	mux.HandleFunc("POST /source", s.handleSource)
	mux.HandleFunc("POST /power", s.handlePower)
	mux.HandleFunc("POST /features/{feature}", s.handleFeature)
	mux.HandleFunc("POST /reboot", s.handleReboot)
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.ServeHTTP(w, r)
}

func (s *Server) sendError(w http.ResponseWriter, message string, statusCode int) {
	if message == "" {
		w.WriteHeader(statusCode)
		return
	}

	type ErrorResponse struct {
		Message string `json:"message"`
	}
	resp := ErrorResponse{Message: message}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) sendJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("Failed to encode response", "error", err)
	}
}

// handleStatus returns the cached snapshot, or a fresh one with ?refresh=1
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("refresh") == "1" {
		if _, err := s.Poller.Refresh(r.Context()); err != nil {
			s.Logger.Error("Failed to refresh status", "error", err)
			s.sendError(w, err.Error(), http.StatusBadGateway)
			return
		}
	}

	snapshot, updated, err := s.Poller.Snapshot()
	if snapshot == nil {
		message := "no status received yet"
		if err != nil {
			message = err.Error()
		}
		s.sendError(w, message, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Last-Modified", updated.UTC().Format(http.TimeFormat))
	s.sendJSON(w, snapshot)
}

func (s *Server) handleControls(w http.ResponseWriter, r *http.Request) {
	snapshot, _, _ := s.Poller.Snapshot()
	s.sendJSON(w, s.Controls.States(snapshot))
}

// handleControl sets a control from the catalog: {"value": ...}
func (s *Server) handleControl(w http.ResponseWriter, r *http.Request) {
	ctl, err := s.Controls.Lookup(r.PathValue("id"))
	if err != nil {
		s.sendError(w, err.Error(), http.StatusNotFound)
		return
	}

	var req struct {
		Value any `json:"value"`
	}
	if ctl.Kind != KindButton {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.sendError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	cmd, err := ctl.Command(req.Value)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ErrReadOnly) {
			status = http.StatusMethodNotAllowed
		}
		s.sendError(w, err.Error(), status)
		return
	}
	s.reply(w, r, func(a device.Actions) (device.Result, error) {
		return a.Exec(r.Context(), cmd)
	})
}

func (s *Server) handleVolume(w http.ResponseWriter, r *http.Request) {
	type VolumeRequest struct {
		Zone  string `json:"zone"`
		Value *int   `json:"value"`
	}

	var req VolumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Value == nil {
		s.sendError(w, "'value' field is required", http.StatusBadRequest)
		return
	}

	zone, err := parseZone(req.Zone)
	if err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.reply(w, r, func(a device.Actions) (device.Result, error) {
		return a.SetVolume(r.Context(), zone, *req.Value)
	})
}

func (s *Server) handleMute(w http.ResponseWriter, r *http.Request) {
	type MuteRequest struct {
		Zone string `json:"zone"`
		On   *bool  `json:"on"`
	}

	var req MuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.On == nil {
		s.sendError(w, "'on' field is required", http.StatusBadRequest)
		return
	}

	zone, err := parseZone(req.Zone)
	if err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.reply(w, r, func(a device.Actions) (device.Result, error) {
		return a.SetMute(r.Context(), zone, *req.On)
	})
}

// handleSource routes an input by number or by its configured name
func (s *Server) handleSource(w http.ResponseWriter, r *http.Request) {
	type SourceRequest struct {
		Input int    `json:"input"`
		Name  string `json:"name"`
	}

	var req SourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	input := req.Input
	if req.Name != "" {
		n, ok := s.Config.InputNumber(req.Name)
		if !ok {
			s.sendError(w, "unknown input name '"+req.Name+"'", http.StatusBadRequest)
			return
		}
		input = n
	}

	s.reply(w, r, func(a device.Actions) (device.Result, error) {
		return a.SelectSource(r.Context(), input)
	})
}

func (s *Server) handlePower(w http.ResponseWriter, r *http.Request) {
	on, ok := s.decodeOn(w, r)
	if !ok {
		return
	}
	s.reply(w, r, func(a device.Actions) (device.Result, error) {
		return a.SetPower(r.Context(), on)
	})
}

func (s *Server) handleFeature(w http.ResponseWriter, r *http.Request) {
	feature, err := proto.ParseFeature(r.PathValue("feature"))
	if err != nil {
		s.sendError(w, err.Error(), http.StatusNotFound)
		return
	}
	on, ok := s.decodeOn(w, r)
	if !ok {
		return
	}
	s.reply(w, r, func(a device.Actions) (device.Result, error) {
		return a.SetFeature(r.Context(), feature, on)
	})
}

func (s *Server) handleReboot(w http.ResponseWriter, r *http.Request) {
	s.reply(w, r, func(a device.Actions) (device.Result, error) {
		return a.Reboot(r.Context())
	})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	snapshot, _, _ := s.Poller.Snapshot()
	s.Hub.Serve(w, r, snapshot)
}

// decodeOn reads a {"on": bool} body. It writes the error response itself.
func (s *Server) decodeOn(w http.ResponseWriter, r *http.Request) (on bool, ok bool) {
	var req struct {
		On *bool `json:"on"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return false, false
	}
	if req.On == nil {
		s.sendError(w, "'on' field is required", http.StatusBadRequest)
		return false, false
	}
	return *req.On, true
}

// reply runs a typed action through the poller and replies with the raw
// response lines. Arguments the device would not accept are a 400.
func (s *Server) reply(w http.ResponseWriter, r *http.Request, action func(device.Actions) (device.Result, error)) {
	start := time.Now()
	res, err := action(device.Actions{Sender: s.Poller})
	if err != nil {
		if isArgumentError(err) {
			s.sendError(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.Logger.Error("Failed to send command", "error", err, "command", res.Command)
		s.sendError(w, err.Error(), http.StatusBadGateway)
		return
	}

	s.Logger.Info("Command completed", "command", res.Command, "lines", len(res.Response), "duration", time.Since(start))
	s.sendJSON(w, res)
}

func isArgumentError(err error) bool {
	return errors.Is(err, proto.ErrUnknownZone) ||
		errors.Is(err, proto.ErrUnknownFeature) ||
		errors.Is(err, proto.ErrInputRange)
}

// parseZone defaults to the main zone when no zone is given
func parseZone(name string) (proto.Zone, error) {
	if name == "" {
		return proto.ZoneMain, nil
	}
	return proto.ParseZone(name)
}
