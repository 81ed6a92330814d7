package http

import (
	"net/http"

	"github.com/cwrk-planet/activity-service/internal/service"
	"github.com/cwrk-planet/activity-service/pkg/httputil"
)

const IndexPath = "/static/index.html"

type Handler struct {
	signupSvc *service.SignupService
}

func NewHandler(signup *service.SignupService) *Handler {
	return &Handler{signupSvc: signup}
}

// GET /
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, IndexPath, http.StatusTemporaryRedirect)
}

// GET /activities
func (h *Handler) ListActivities(w http.ResponseWriter, r *http.Request) {
	list, err := h.signupSvc.ListActivities(r.Context())
	if err != nil {
		writeError(w, r, "handler.ListActivities", err)
		return
	}

	resp := make(ActivitiesResponse, len(list))
	for name, a := range list {
		resp[name] = toItem(a)
	}
	httputil.JSON(w, http.StatusOK, resp)
}

// GET /activities/{name}
func (h *Handler) GetActivity(w http.ResponseWriter, r *http.Request) {
	a, err := h.signupSvc.GetActivity(r.Context(), httputil.URLParam(r, "name"))
	if err != nil {
		writeError(w, r, "handler.GetActivity", err)
		return
	}
	httputil.JSON(w, http.StatusOK, toItem(a))
}

// POST /activities/{name}/signup?email=
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	name := httputil.URLParam(r, "name")
	conf, err := h.signupSvc.Signup(r.Context(), name, r.URL.Query().Get("email"))
	if err != nil {
		writeError(w, r, "handler.Signup", err)
		return
	}
	httputil.Message(w, conf.Message())
}

// DELETE /activities/{name}/unregister?email=
func (h *Handler) Unregister(w http.ResponseWriter, r *http.Request) {
	name := httputil.URLParam(r, "name")
	conf, err := h.signupSvc.Unregister(r.Context(), name, r.URL.Query().Get("email"))
	if err != nil {
		writeError(w, r, "handler.Unregister", err)
		return
	}
	httputil.Message(w, conf.Message())
}
