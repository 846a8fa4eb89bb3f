package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/samber/lo"
	"github.com/secmon-lab/ziggy/pkg/domain/model"
	"github.com/secmon-lab/ziggy/pkg/domain/types"
	"github.com/secmon-lab/ziggy/pkg/usecase"
	"github.com/secmon-lab/ziggy/pkg/utils/apperr"
	"github.com/secmon-lab/ziggy/pkg/utils/async"
)

// maxBodySize bounds request bodies carrying team and round data
const maxBodySize = 16 << 20

type templateRequest struct {
	From        string `json:"from" validate:"omitempty,email"`
	ReplyTo     string `json:"reply_to" validate:"omitempty,email"`
	Subject     string `json:"subject" validate:"max=998"`
	Round       int    `json:"round" validate:"gte=0"`
	Information string `json:"information" validate:"max=65536"`
}

func (t templateRequest) toModel() model.MessageTemplate {
	return model.MessageTemplate{
		From:        types.Address(t.From),
		ReplyTo:     types.Address(t.ReplyTo),
		Subject:     t.Subject,
		Round:       types.RoundNumber(t.Round),
		Information: t.Information,
	}
}

type matchRequest struct {
	Teams []model.Record `json:"teams"`
	Rooms []model.Record `json:"rooms"`
}

type dispatchRequest struct {
	Teams    []model.Record  `json:"teams"`
	Rooms    []model.Record  `json:"rooms"`
	Template templateRequest `json:"template"`
	Profile  string          `json:"profile" validate:"omitempty,max=128,excludesall=/"`
}

type settingsRequest struct {
	Template  templateRequest `json:"template"`
	TeamFile  string          `json:"team_file" validate:"max=4096"`
	RoundFile string          `json:"round_file" validate:"max=4096"`
}

type previewResponse struct {
	Room     model.RoomRecord `json:"room"`
	To       []types.Address  `json:"to"`
	ReplyTo  types.Address    `json:"reply_to,omitempty"`
	Subject  string           `json:"subject"`
	BodyHTML string           `json:"body_html"`
}

// Handler serves the matching, dispatch and settings API
type Handler struct {
	posting  *usecase.Posting
	settings *usecase.Settings
	validate *validator.Validate
	reports  sync.WaitGroup
}

// NewHandler creates a new Handler
func NewHandler(useCases *UseCases) *Handler {
	return &Handler{
		posting:  useCases.posting,
		settings: useCases.settings,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// HandleMatch resolves recipients of every room without sending
func (h *Handler) HandleMatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req matchRequest
	if !h.decode(w, r, &req) {
		return
	}

	matched, err := h.posting.Match(ctx, req.Teams, req.Rooms)
	if err != nil {
		h.fail(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{
		"rooms": matched,
	})
}

// HandlePreview renders every room's message without sending
func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dispatchRequest
	if !h.decode(w, r, &req) {
		return
	}

	previews, err := h.posting.Preview(ctx, sendInput(&req))
	if err != nil {
		h.fail(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{
		"messages": lo.Map(previews, func(p usecase.Preview, _ int) previewResponse {
			return previewResponse{
				Room:     p.Room.Room,
				To:       p.Request.To,
				ReplyTo:  p.Request.ReplyTo,
				Subject:  p.Request.Subject,
				BodyHTML: p.Request.BodyHTML,
			}
		}),
	})
}

// HandleDispatch sends one message per room and returns the outcome. The
// Slack report is posted in the background.
func (h *Handler) HandleDispatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dispatchRequest
	if !h.decode(w, r, &req) {
		return
	}

	outcome, err := h.posting.Send(ctx, sendInput(&req))
	if outcome == nil {
		h.fail(ctx, w, err)
		return
	}
	if err != nil {
		ctxlog.From(ctx).Warn("Dispatch interrupted", "error", err, "batch_id", outcome.BatchID)
	}

	h.reports.Add(1)
	async.Dispatch(ctx, "report", func(ctx context.Context) error {
		defer h.reports.Done()
		return h.posting.Report(ctx, outcome)
	})

	writeJSON(ctx, w, http.StatusOK, outcome)
}

// HandleGetSettings returns the stored settings or the defaults
func (h *Handler) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.profile(w, r)
	if !ok {
		return
	}

	settings, err := h.settings.Get(ctx, id)
	if err != nil {
		h.fail(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, settings)
}

// HandlePutSettings merges non-blank fields into the stored settings
func (h *Handler) HandlePutSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.profile(w, r)
	if !ok {
		return
	}

	var req settingsRequest
	if !h.decode(w, r, &req) {
		return
	}

	settings, err := h.settings.Update(ctx, id, &model.Settings{
		Template:  req.Template.toModel(),
		TeamFile:  req.TeamFile,
		RoundFile: req.RoundFile,
	})
	if err != nil {
		h.fail(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, settings)
}

// HandleDeleteSettings removes the stored settings
func (h *Handler) HandleDeleteSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.profile(w, r)
	if !ok {
		return
	}

	if err := h.settings.Reset(ctx, id); err != nil {
		h.fail(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(ctx, w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return false
	}

	if err := h.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			writeError(ctx, w, goerr.New("invalid field "+verrs[0].Namespace(),
				goerr.V("tag", verrs[0].Tag())), http.StatusBadRequest)
			return false
		}
		writeError(ctx, w, goerr.Wrap(err, "invalid request"), http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, err error) {
	apperr.Handle(ctx, err)
	if apperr.IsUserError(err) {
		writeError(ctx, w, err, http.StatusBadRequest)
		return
	}
	writeError(ctx, w, err, http.StatusInternalServerError)
}

func (h *Handler) wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.reports.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return goerr.Wrap(ctx.Err(), "pending reports were not finished")
	}
}

func sendInput(req *dispatchRequest) *usecase.SendInput {
	return &usecase.SendInput{
		Teams:      req.Teams,
		Rooms:      req.Rooms,
		Template:   req.Template.toModel(),
		SettingsID: types.SettingsID(req.Profile),
	}
}

// profile reads the settings profile from the query string
func (h *Handler) profile(w http.ResponseWriter, r *http.Request) (types.SettingsID, bool) {
	id := r.URL.Query().Get("profile")
	if err := h.validate.Var(id, "omitempty,max=128,excludesall=/"); err != nil {
		writeError(r.Context(), w, goerr.New("invalid profile", goerr.V("profile", id)), http.StatusBadRequest)
		return "", false
	}
	return types.SettingsID(id), true
}
