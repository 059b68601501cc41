package httpapi

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/qrcontact/internal/common"
	"github.com/dmitrijs2005/qrcontact/internal/logging"
	"github.com/dmitrijs2005/qrcontact/internal/server/directory"
	"github.com/dmitrijs2005/qrcontact/internal/server/models"
	"github.com/dmitrijs2005/qrcontact/internal/server/qrlink"
	"github.com/dmitrijs2005/qrcontact/internal/server/services"
)

// Handler carries the services behind the HTTP surface. The admin endpoints
// are read-only pass-throughs to the directory store.
type Handler struct {
	registrar *services.RegistrarService
	exchange  *services.ExchangeService
	store     directory.Store
	baseURL   string
	rateWin   time.Duration
	logger    logging.Logger
}

func NewHandler(reg *services.RegistrarService, ex *services.ExchangeService, store directory.Store, baseURL string, rateWindow time.Duration, l logging.Logger) *Handler {
	return &Handler{
		registrar: reg,
		exchange:  ex,
		store:     store,
		baseURL:   baseURL,
		rateWin:   rateWindow,
		logger:    l.With("module", "httpapi"),
	}
}

// --- wire types ---

type createProfileRequest struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Title   string `json:"title,omitempty"`
	Website string `json:"website,omitempty"`
}

type profileResponse struct {
	ID        string    `json:"id"`
	Token     string    `json:"token,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Title     string    `json:"title,omitempty"`
	Website   string    `json:"website,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	ScanCount int64     `json:"scanCount"`
	LookupURL string    `json:"lookupUrl,omitempty"`
}

type resolveRequest struct {
	ProfileID      string `json:"profileId"`
	Token          string `json:"token"`
	RecipientEmail string `json:"recipientEmail"`
}

type resolveResponse struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Company   string `json:"company,omitempty"`
	Title     string `json:"title,omitempty"`
	Website   string `json:"website,omitempty"`
	Delivered bool   `json:"delivered"`
}

type statsResponse struct {
	TotalUsers           int64 `json:"totalUsers"`
	TotalScans           int64 `json:"totalScans"`
	TotalDisclosuresSent int64 `json:"totalDisclosuresSent"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// invalid credentials covers both unknown-profile and bad-token so the
// response does not reveal whether an id exists.
const invalidCredentialsMsg = "invalid credentials"

func (h *Handler) writeResolveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorRateLimited):
		w.Header().Set("Retry-After", strconv.FormatInt(int64(h.rateWin.Seconds()), 10))
		writeError(w, http.StatusTooManyRequests, "too many requests, try again later")
	case errors.Is(err, common.ErrorUnknownProfile), errors.Is(err, common.ErrorInvalidToken):
		writeError(w, http.StatusNotFound, invalidCredentialsMsg)
	case errors.Is(err, common.ErrorValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// requesterKey buckets rate-limit state by client address: the first
// X-Forwarded-For hop when present, the remote host otherwise.
func requesterKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (h *Handler) profileToResponse(p *models.Profile, includeSecret bool) profileResponse {
	resp := profileResponse{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Phone:     p.Phone,
		Company:   p.Company,
		Title:     p.Title,
		Website:   p.Website,
		CreatedAt: p.CreatedAt,
		ScanCount: p.ScanCount,
	}
	if includeSecret {
		resp.Token = p.Token
		if u, err := qrlink.LookupURL(h.baseURL, p.ID, p.Token); err == nil {
			resp.LookupURL = u
		}
	}
	return resp
}

// --- handlers ---

// CreateProfile registers a profile. The response is the only place the
// secret token and the lookup URL are handed to the owner.
func (h *Handler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	profile, err := h.registrar.Register(r.Context(), &services.RegistrationForm{
		ID:      req.ID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Title:   req.Title,
		Website: req.Website,
	})
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error(r.Context(), "registration failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, h.profileToResponse(profile, true))
}

// ProfileQR renders the profile's lookup URL as a PNG. The caller must
// present the profile's token: the image embeds the secret, so it is only
// served to whoever already owns it.
func (h *Handler) ProfileQR(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	token := r.URL.Query().Get("token")

	profile, err := h.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, invalidCredentialsMsg)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(profile.Token)) != 1 {
		writeError(w, http.StatusNotFound, invalidCredentialsMsg)
		return
	}

	target, err := qrlink.LookupURL(h.baseURL, profile.ID, profile.Token)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	png, err := qrlink.EncodePNG(target, qrlink.DefaultImageSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request, req *resolveRequest) {
	if strings.TrimSpace(req.ProfileID) == "" || strings.TrimSpace(req.Token) == "" {
		writeError(w, http.StatusBadRequest, "profileId and token are required")
		return
	}
	if strings.TrimSpace(req.RecipientEmail) == "" {
		writeError(w, http.StatusBadRequest, "recipientEmail is required")
		return
	}

	disc, err := h.exchange.Resolve(r.Context(), requesterKey(r), req.ProfileID, req.Token, req.RecipientEmail)
	if err != nil {
		h.writeResolveError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resolveResponse{
		Name:      disc.Name,
		Email:     disc.Email,
		Phone:     disc.Phone,
		Company:   disc.Company,
		Title:     disc.Title,
		Website:   disc.Website,
		Delivered: disc.Delivered,
	})
}

// ResolvePost handles a submitted contact form.
func (h *Handler) ResolvePost(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	h.resolve(w, r, &req)
}

// ResolveGet handles the URL a scanned QR code points at; credentials
// arrive as query parameters.
func (h *Handler) ResolveGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.resolve(w, r, &resolveRequest{
		ProfileID:      q.Get("profileId"),
		Token:          q.Get("token"),
		RecipientEmail: q.Get("recipientEmail"),
	})
}

// AdminSearch is a read-only pass-through to the store's search.
func (h *Handler) AdminSearch(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")

	found, err := h.store.Search(r.Context(), term)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp := make([]profileResponse, 0, len(found))
	for _, p := range found {
		resp = append(resp, h.profileToResponse(p, false))
	}
	writeJSON(w, http.StatusOK, resp)
}

// AdminListProfiles returns every profile, most recent first.
func (h *Handler) AdminListProfiles(w http.ResponseWriter, r *http.Request) {
	all, err := h.store.ListAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp := make([]profileResponse, 0, len(all))
	for _, p := range all {
		resp = append(resp, h.profileToResponse(p, false))
	}
	writeJSON(w, http.StatusOK, resp)
}

// AdminStats returns the aggregate counters snapshot.
func (h *Handler) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{
		TotalUsers:           stats.TotalUsers,
		TotalScans:           stats.TotalScans,
		TotalDisclosuresSent: stats.TotalDisclosuresSent,
	})
}
