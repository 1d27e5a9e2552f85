package advisor

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/de-tools/cost-advisor/pkg/adapters"
	"github.com/de-tools/cost-advisor/pkg/models/domain"
	"github.com/de-tools/cost-advisor/pkg/services/account"
	advisorsvc "github.com/de-tools/cost-advisor/pkg/services/advisor"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

const (
	HeaderAccessKey    = "X-AWS-Access-Key"
	HeaderSecretKey    = "X-AWS-Secret-Key"
	HeaderSessionToken = "X-AWS-Session-Token"
	HeaderRegion       = "X-AWS-Region"
)

type Handler struct {
	explorer account.Explorer
	now      func() time.Time
}

func NewHandler(explorer account.Explorer) *Handler {
	return &Handler{
		explorer: explorer,
		now:      time.Now,
	}
}

func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profiles, err := h.explorer.ListProfiles(ctx)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, r, http.StatusOK, adapters.MapProfilesDomainToApi(profiles))
}

func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resourceType := domain.ResourceType(chi.URLParam(r, "type"))

	cc, err := h.cloudContext(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	ctrl, err := h.explorer.GetAdvisor(ctx, cc)
	if err != nil {
		writeError(w, r, statusOf(err), err)
		return
	}

	recs, err := ctrl.Recommend(ctx, resourceType)
	if err != nil {
		writeError(w, r, statusOf(err), err)
		return
	}

	writeJSON(w, r, http.StatusOK, adapters.MapRecommendationsDomainToApi(recs))
}

// GetAllRecommendations always answers 200 when the advisor could be built;
// per-type failures are reported inside the body.
func (h *Handler) GetAllRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cc, err := h.cloudContext(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	ctrl, err := h.explorer.GetAdvisor(ctx, cc)
	if err != nil {
		writeError(w, r, statusOf(err), err)
		return
	}

	report := ctrl.RecommendAll(ctx)
	writeJSON(w, r, http.StatusOK, adapters.MapReportDomainToApi(report))
}

func (h *Handler) GetCostSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	period, err := h.billingPeriod(query.Get("month"), query.Get("year"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	cc, err := h.cloudContext(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	agg, err := h.explorer.GetCostAggregator(ctx, query.Get("platform"), cc)
	if err != nil {
		writeError(w, r, statusOf(err), err)
		return
	}

	summary, err := agg.Summarize(ctx, period)
	if err != nil {
		writeError(w, r, http.StatusBadGateway, err)
		return
	}

	writeJSON(w, r, http.StatusOK, adapters.MapCostSummaryDomainToApi(summary))
}

// cloudContext resolves the profile named in the query, then overlays static
// credentials and region from headers when present.
func (h *Handler) cloudContext(r *http.Request) (domain.CloudContext, error) {
	query := r.URL.Query()
	region := r.Header.Get(HeaderRegion)
	if region == "" {
		region = query.Get("region")
	}

	cc, err := h.explorer.ResolveContext(r.Context(), query.Get("profile"), region)
	if err != nil {
		return domain.CloudContext{}, err
	}

	accessKey, secretKey := r.Header.Get(HeaderAccessKey), r.Header.Get(HeaderSecretKey)
	switch {
	case accessKey != "" && secretKey != "":
		cc.AccessKeyID = accessKey
		cc.SecretAccessKey = secretKey
		cc.SessionToken = r.Header.Get(HeaderSessionToken)
	case accessKey != "" || secretKey != "":
		return domain.CloudContext{}, errors.New("both access key and secret key headers are required")
	}
	return cc, nil
}

func (h *Handler) billingPeriod(month, year string) (domain.BillingPeriod, error) {
	now := h.now().UTC()
	m, y := int(now.Month()), now.Year()

	if month != "" {
		v, err := strconv.Atoi(month)
		if err != nil {
			return domain.BillingPeriod{}, errors.New("invalid 'month' parameter. Expected 1-12")
		}
		m = v
	}
	if year != "" {
		v, err := strconv.Atoi(year)
		if err != nil {
			return domain.BillingPeriod{}, errors.New("invalid 'year' parameter")
		}
		y = v
	}
	return domain.NewBillingPeriod(m, y)
}

func statusOf(err error) int {
	var unsupported *advisorsvc.UnsupportedResourceError
	if errors.As(err, &unsupported) {
		return http.StatusNotFound
	}
	var platform *account.UnsupportedPlatformError
	if errors.As(err, &platform) {
		return http.StatusBadRequest
	}
	if reason, ok := domain.FailureReasonOf(err); ok && reason == domain.FailureUpstream {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	zerolog.Ctx(r.Context()).Error().
		Err(err).
		Int("status", status).
		Msg("request failed")

	writeJSON(w, r, status, adapters.MapErrorToApi(err))
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}
