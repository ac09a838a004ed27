package httpapi

import "net/http"

type moodRequest struct {
	Text string `json:"text"`
}

func (h *Handler) moodFilter(w http.ResponseWriter, r *http.Request) {
	var req moodRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.Mood.Match(r.Context(), req.Text)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.Stats.Counter("mood_matches_" + res.Source).Inc()
	writeData(w, http.StatusOK, "", res)
}
