package controller

import (
	"bytes"
	"log/slog"
	"net/http"

	"climate-server/internal/modules/climate/views"
	"climate-server/internal/utils"
)

func (c *climateControllerImpl) handleWelcome(w http.ResponseWriter, r *http.Request) {
	span, err := c.service.Span(r.Context())
	if err != nil {
		internalError(w, r, "welcome: load date span", err)
		return
	}

	var buf bytes.Buffer
	if err := views.RenderWelcome(&buf, views.NewWelcomeData(span.Oldest, span.Latest, baseURL(r))); err != nil {
		slog.ErrorContext(r.Context(), "welcome template render failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.ErrorContext(r.Context(), "welcome: write response failed", "error", err)
	}
}

func (c *climateControllerImpl) handlePrecipitation(w http.ResponseWriter, r *http.Request) {
	prcp, err := c.service.Precipitation(r.Context())
	if err != nil {
		internalError(w, r, "precipitation", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, prcp)
}

func (c *climateControllerImpl) handleStations(w http.ResponseWriter, r *http.Request) {
	ids, err := c.service.StationIDs(r.Context())
	if err != nil {
		internalError(w, r, "stations", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, ids)
}

func (c *climateControllerImpl) handleTemperatureObservations(w http.ResponseWriter, r *http.Request) {
	obs, err := c.service.TrailingYearObservations(r.Context())
	if err != nil {
		internalError(w, r, "tobs", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, obs)
}

func (c *climateControllerImpl) handleStatsFrom(w http.ResponseWriter, r *http.Request) {
	res, err := c.service.StatsFrom(r.Context(), r.PathValue("start"))
	if err != nil {
		internalError(w, r, "stats from", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, res)
}

func (c *climateControllerImpl) handleStatsBetween(w http.ResponseWriter, r *http.Request) {
	res, err := c.service.StatsBetween(r.Context(), r.PathValue("start"), r.PathValue("end"))
	if err != nil {
		internalError(w, r, "stats between", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, res)
}

func (c *climateControllerImpl) handleStatsFromText(w http.ResponseWriter, r *http.Request) {
	res, err := c.service.StatsFromText(r.Context(), r.PathValue("start"))
	if err != nil {
		internalError(w, r, "text stats from", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, res)
}

func (c *climateControllerImpl) handleStatsBetweenText(w http.ResponseWriter, r *http.Request) {
	res, err := c.service.StatsBetweenText(r.Context(), r.PathValue("start"), r.PathValue("end"))
	if err != nil {
		internalError(w, r, "text stats between", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, res)
}
