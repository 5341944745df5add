package api

import (
	"net/url"

	"github.com/diwise/alert-console/internal/pkg/application/alerts"
	"github.com/diwise/alert-console/pkg/types"
	"github.com/samber/lo"
)

type alertView struct {
	types.Alert
	TypeLabel      string         `json:"typeLabel"`
	StatusLabel    string         `json:"statusLabel"`
	IdentityClass  string         `json:"identity"`
	Profile        string         `json:"profile,omitempty"`
	AllowedActions []types.Action `json:"allowedActions"`
}

type stateView struct {
	Filter          *types.Priority    `json:"filter"`
	Total           int                `json:"total"`
	Summary         types.Summary      `json:"summary"`
	FilteredSummary types.Summary      `json:"filteredSummary"`
	StatusCounts    types.StatusCounts `json:"statusCounts"`
	Pagination      types.Pagination   `json:"pagination"`
	Alerts          []alertView        `json:"alerts"`
}

type filterRequest struct {
	Priority string `json:"priority"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newAlertView(a alerts.Alert, user *alerts.User) alertView {
	snapshot := a.Snapshot()

	v := alertView{
		Alert:          snapshot,
		TypeLabel:      snapshot.Type.Label(),
		StatusLabel:    a.Status().Label(),
		IdentityClass:  alerts.Classify(a.ID()).String(),
		AllowedActions: alerts.AllowedActions(user, a.Status()),
	}

	if snapshot.EntityID != "" {
		v.Profile = "/entities/" + url.PathEscape(string(snapshot.EntityID))
	}

	return v
}

func newStateView(s alerts.State, user *alerts.User) stateView {
	v := stateView{
		Total:           s.Total,
		Summary:         s.Overall,
		FilteredSummary: s.Filtered,
		StatusCounts:    s.StatusCounts,
		Pagination:      s.Pagination,
		Alerts: lo.Map(s.Alerts, func(a alerts.Alert, _ int) alertView {
			return newAlertView(a, user)
		}),
	}

	if s.Filter != "" {
		f := s.Filter
		v.Filter = &f
	}

	return v
}
