package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/mergestat/timediff"
	"github.com/samber/lo"
	"github.com/spf13/cast"
)

func (a *postPilot) serveJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(contentType, contentTypeJSONUTF8)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.error("Failed to encode JSON response", "err", err)
	}
}

type apiError struct {
	Error string `json:"error"`
	Raw   string `json:"raw,omitempty"`
}

// serveBackendError degrades backend problems to a visible error payload.
// A malformed response additionally carries the raw backend text.
func (a *postPilot) serveBackendError(w http.ResponseWriter, err error) {
	var malformed *malformedResponseError
	if errors.As(err, &malformed) {
		a.serveJSON(w, http.StatusBadGateway, &apiError{Error: err.Error(), Raw: malformed.raw})
		return
	}
	a.serveJSON(w, http.StatusBadGateway, &apiError{Error: err.Error()})
}

func (a *postPilot) serveAnalyze(w http.ResponseWriter, r *http.Request) {
	defer func() {
		_ = r.Body.Close()
	}()
	req := struct {
		Profile string `json:"profile"`
	}{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.serveJSON(w, http.StatusBadRequest, &apiError{Error: err.Error()})
		return
	}
	analysis, err := a.analyzeProfile(r.Context(), req.Profile)
	if err != nil {
		a.serveBackendError(w, err)
		return
	}
	a.serveJSON(w, http.StatusOK, analysis)
}

func (a *postPilot) serveGenerate(w http.ResponseWriter, r *http.Request) {
	defer func() {
		_ = r.Body.Close()
	}()
	req := struct {
		Pillars any    `json:"pillars"`
		Tone    string `json:"tone"`
		Count   any    `json:"count"`
	}{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.serveJSON(w, http.StatusBadRequest, &apiError{Error: err.Error()})
		return
	}
	// Pillars arrive as an array or as one comma separated string
	var pillars []string
	if s, ok := req.Pillars.(string); ok {
		pillars = strings.Split(s, ",")
	} else {
		pillars = cast.ToStringSlice(req.Pillars)
	}
	pillars = lo.Filter(lo.Map(pillars, func(p string, _ int) string {
		return strings.TrimSpace(p)
	}), func(p string, _ int) bool {
		return p != ""
	})
	tone := req.Tone
	if !lo.Contains(postTones, tone) {
		tone = postTones[0]
	}
	count := cast.ToInt(req.Count)
	if count < 1 || count > 5 {
		count = 3
	}
	posts, err := a.generatePosts(r.Context(), pillars, tone, count)
	if err != nil {
		a.serveBackendError(w, err)
		return
	}
	a.serveJSON(w, http.StatusOK, posts)
}

func (a *postPilot) serveSchedule(w http.ResponseWriter, r *http.Request) {
	defer func() {
		_ = r.Body.Close()
	}()
	req := struct {
		Content     string `json:"content"`
		ScheduledAt string `json:"scheduledAt"`
	}{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.serveJSON(w, http.StatusBadRequest, &apiError{Error: err.Error()})
		return
	}
	runAt, err := parseUTCTime(req.ScheduledAt)
	if err != nil {
		a.serveJSON(w, http.StatusBadRequest, &apiError{Error: "invalid scheduledAt: " + err.Error()})
		return
	}
	id, err := a.schedulePost(req.Content, runAt)
	if err != nil {
		a.serveJSON(w, http.StatusInternalServerError, &apiError{Error: err.Error()})
		return
	}
	a.serveJSON(w, http.StatusCreated, struct {
		ID          int    `json:"id"`
		ScheduledAt string `json:"scheduledAt"`
	}{ID: id, ScheduledAt: toUTCString(runAt)})
}

type postView struct {
	post
	ScheduledRelative string `json:"scheduledRelative,omitempty"`
}

func (a *postPilot) servePosts(w http.ResponseWriter, r *http.Request) {
	posts, err := a.db.getPosts()
	if err != nil {
		a.serveJSON(w, http.StatusInternalServerError, &apiError{Error: err.Error()})
		return
	}
	now := time.Now()
	views := lo.Map(posts, func(p *post, _ int) *postView {
		v := &postView{post: *p}
		if t, err := p.scheduledTime(); err == nil {
			v.ScheduledRelative = timediff.TimeDiff(t, timediff.WithStartTime(now))
		}
		return v
	})
	a.serveJSON(w, http.StatusOK, views)
}

func (a *postPilot) serveStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.db.getPostsStats()
	if err != nil {
		a.serveJSON(w, http.StatusInternalServerError, &apiError{Error: err.Error()})
		return
	}
	a.serveJSON(w, http.StatusOK, stats)
}
