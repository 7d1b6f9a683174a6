package api

import (
	"encoding/json"
	"log"
	"net/http"

	"cover-photo/preset"
)

func (h *handler) getPresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.presetManager.Get())
}

// putPresets replaces the breakpoint table. Sessions the user has not edited
// yet pick up the new preset for their viewport immediately.
func (h *handler) putPresets(w http.ResponseWriter, r *http.Request) {
	var table preset.Table
	if err := json.NewDecoder(r.Body).Decode(&table); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := table.Validate(); err != nil {
		writeError(w, err)
		return
	}
	if err := h.presetManager.Save(table); err != nil {
		log.Printf("save presets: %v", err)
		http.Error(w, "failed to save presets", http.StatusInternalServerError)
		return
	}
	if n := h.manager.Reselect(); n > 0 {
		log.Printf("presets replaced, %d session(s) reselected", n)
	}
	writeJSON(w, http.StatusOK, h.presetManager.Get())
}
