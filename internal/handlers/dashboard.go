package handlers

import (
	"fmt"
	"net/http"
	"time"

	"esgreport/models"
)

// Dashboard endpoints are strictly read-only: target progress is recomputed
// per request and never written back.

func yearWindow(year int) (start, end string) {
	return fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-12-31", year)
}

// monthWindow returns [start, end) for a calendar month.
func monthWindow(year, month int) (start, end string) {
	start = fmt.Sprintf("%04d-%02d-01", year, month)
	if month == 12 {
		end = fmt.Sprintf("%04d-01-01", year+1)
	} else {
		end = fmt.Sprintf("%04d-%02d-01", year, month+1)
	}
	return start, end
}

type targetSummary struct {
	ID                 int     `json:"id"`
	Name               string  `json:"name"`
	ProgressPercentage float64 `json:"progress_percentage"`
	Status             string  `json:"status"`
	TargetYear         int     `json:"target_year"`
}

// reductionProgress measures how far current emissions have moved from the
// baseline toward the target, clamped to [0,100]. Returns false when the
// target's values cannot produce a meaningful percentage.
func reductionProgress(t *models.ESGTarget, current float64) (float64, bool) {
	if t.BaselineValue <= 0 {
		return 0, false
	}
	targetReduction := t.BaselineValue - t.TargetValue
	if targetReduction <= 0 {
		return 0, false
	}
	progress := (t.BaselineValue - current) / targetReduction * 100
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	return progress, true
}

func (h *Handler) GetDashboardOverviewHandler(w http.ResponseWriter, r *http.Request) {
	year := queryInt(r, "year")
	if year == 0 {
		year = time.Now().Year()
	}
	start, end := yearWindow(year)
	ctx := r.Context()

	scopeEmissions := map[string]float64{}
	var totalEmissions float64
	for scope := 1; scope <= 3; scope++ {
		sum, err := h.Store.ScopeEmissionsBetween(ctx, scope, start, end)
		if err != nil {
			h.Log.Error("scope emissions query failed", "scope", scope, "error", err)
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		scopeEmissions[fmt.Sprintf("scope_%d", scope)] = sum
		totalEmissions += sum
	}

	categoryEmissions, err := h.Store.CategoryEmissionsBetween(ctx, start, end)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	type monthPoint struct {
		Month     int     `json:"month"`
		Emissions float64 `json:"emissions"`
	}
	monthlyTrend := make([]monthPoint, 0, 12)
	for month := 1; month <= 12; month++ {
		mStart, mEnd := monthWindow(year, month)
		sum, err := h.Store.EmissionsInWindow(ctx, mStart, mEnd, nil)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		monthlyTrend = append(monthlyTrend, monthPoint{Month: month, Emissions: sum})
	}

	recent, err := h.Store.RecentMeasurements(ctx, 10)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	activeTargets, err := h.Store.ActiveTargets(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	targetsSummary := make([]targetSummary, 0, len(activeTargets))
	for i := range activeTargets {
		t := &activeTargets[i]
		progress := t.ProgressPercentage
		if t.TargetType == "emissions_reduction" && t.Scope != nil {
			current, err := h.Store.ScopeEmissionsBetween(ctx, *t.Scope, start, end)
			if err != nil {
				respondError(w, http.StatusInternalServerError, err.Error())
				return
			}
			if p, ok := reductionProgress(t, current); ok {
				progress = p
			}
		}
		targetsSummary = append(targetsSummary, targetSummary{
			ID:                 t.ID,
			Name:               t.Name,
			ProgressPercentage: progress,
			Status:             t.Status,
			TargetYear:         t.TargetYear,
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"scope_emissions":     scopeEmissions,
		"total_emissions":     totalEmissions,
		"category_emissions":  categoryEmissions,
		"monthly_trend":       monthlyTrend,
		"recent_measurements": recent,
		"targets_summary":     targetsSummary,
		"year":                year,
	})
}

func (h *Handler) GetEmissionsTrendHandler(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "monthly"
	}
	years := queryInt(r, "years")
	if years < 1 {
		years = 1
	}
	var scope *int
	if s := queryInt(r, "scope"); s != 0 {
		if s < 1 || s > 3 {
			respondError(w, http.StatusBadRequest, "scope must be 1, 2, or 3")
			return
		}
		scope = &s
	}

	currentYear := time.Now().Year()
	startYear := currentYear - years + 1
	ctx := r.Context()

	type trendPoint struct {
		Period    string  `json:"period"`
		Year      int     `json:"year"`
		Month     int     `json:"month,omitempty"`
		Quarter   int     `json:"quarter,omitempty"`
		Emissions float64 `json:"emissions"`
	}
	trend := []trendPoint{}

	switch period {
	case "monthly":
		for year := startYear; year <= currentYear; year++ {
			for month := 1; month <= 12; month++ {
				start, end := monthWindow(year, month)
				sum, err := h.Store.EmissionsInWindow(ctx, start, end, scope)
				if err != nil {
					respondError(w, http.StatusInternalServerError, err.Error())
					return
				}
				trend = append(trend, trendPoint{
					Period:    fmt.Sprintf("%04d-%02d", year, month),
					Year:      year,
					Month:     month,
					Emissions: sum,
				})
			}
		}
	case "quarterly":
		for year := startYear; year <= currentYear; year++ {
			for quarter := 1; quarter <= 4; quarter++ {
				startMonth := (quarter-1)*3 + 1
				start := fmt.Sprintf("%04d-%02d-01", year, startMonth)
				var end string
				if quarter == 4 {
					end = fmt.Sprintf("%04d-01-01", year+1)
				} else {
					end = fmt.Sprintf("%04d-%02d-01", year, startMonth+3)
				}
				sum, err := h.Store.EmissionsInWindow(ctx, start, end, scope)
				if err != nil {
					respondError(w, http.StatusInternalServerError, err.Error())
					return
				}
				trend = append(trend, trendPoint{
					Period:    fmt.Sprintf("%04d-Q%d", year, quarter),
					Year:      year,
					Quarter:   quarter,
					Emissions: sum,
				})
			}
		}
	case "yearly":
		for year := startYear; year <= currentYear; year++ {
			start := fmt.Sprintf("%04d-01-01", year)
			end := fmt.Sprintf("%04d-01-01", year+1)
			sum, err := h.Store.EmissionsInWindow(ctx, start, end, scope)
			if err != nil {
				respondError(w, http.StatusInternalServerError, err.Error())
				return
			}
			trend = append(trend, trendPoint{
				Period:    fmt.Sprintf("%04d", year),
				Year:      year,
				Emissions: sum,
			})
		}
	default:
		respondError(w, http.StatusBadRequest, "period must be monthly, quarterly, or yearly")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"trend_data": trend,
		"period":     period,
		"scope":      scope,
		"years":      years,
	})
}

type targetProgress struct {
	models.ESGTarget
	DerivedStatus string `json:"derived_status,omitempty"`
}

// GetTargetsProgressHandler recomputes progress for active
// emissions_reduction targets and derives an on_track / at_risk / achieved /
// missed status from the timeline.
func (h *Handler) GetTargetsProgressHandler(w http.ResponseWriter, r *http.Request) {
	targets, err := h.Store.ActiveTargets(r.Context())
	if err != nil {
		h.Log.Error("failed to load active targets", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	currentYear := time.Now().Year()
	start, end := yearWindow(currentYear)
	out := make([]targetProgress, 0, len(targets))

	for i := range targets {
		t := targets[i]
		entry := targetProgress{ESGTarget: t}

		if t.TargetType == "emissions_reduction" && t.Scope != nil {
			current, err := h.Store.ScopeEmissionsBetween(r.Context(), *t.Scope, start, end)
			if err != nil {
				respondError(w, http.StatusInternalServerError, err.Error())
				return
			}
			entry.CurrentValue = &current

			progress, ok := reductionProgress(&t, current)
			if ok {
				entry.ProgressPercentage = progress

				yearsRemaining := t.TargetYear - currentYear
				switch {
				case yearsRemaining <= 0 && current <= t.TargetValue:
					entry.DerivedStatus = "achieved"
				case yearsRemaining <= 0:
					entry.DerivedStatus = "missed"
				case t.TargetYear > t.BaselineYear &&
					progress < 100*float64(currentYear-t.BaselineYear)/float64(t.TargetYear-t.BaselineYear):
					entry.DerivedStatus = "at_risk"
				default:
					entry.DerivedStatus = "on_track"
				}
			}
		}

		out = append(out, entry)
	}

	respondJSON(w, http.StatusOK, out)
}
