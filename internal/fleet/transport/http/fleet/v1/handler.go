package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fleetworks/fleet-maintenance/internal/fleet/catalog"
	"github.com/fleetworks/fleet-maintenance/internal/fleet/converter"
	"github.com/fleetworks/fleet-maintenance/internal/fleet/model"
	fleetv1 "github.com/fleetworks/fleet-maintenance/pkg/api/fleet/v1"
	"github.com/fleetworks/fleet-maintenance/platform/logger"
)

type MaintenanceService interface {
	Create(ctx context.Context, params model.CreateTaskParams) (*model.CreateTaskResult, error)
	TaskWithWarranty(ctx context.Context, taskID uuid.UUID) (*model.MaintenanceTask, model.WarrantyInfo, error)
	TaskWarranty(ctx context.Context, taskID uuid.UUID) (model.WarrantyInfo, error)
	ListTasks(ctx context.Context, filter model.TasksFilter) ([]model.MaintenanceTask, error)
}

type VehicleService interface {
	VehicleByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error)
	List(ctx context.Context) ([]model.Vehicle, error)
	UpdateOdometer(ctx context.Context, params model.UpdateOdometerParams) error
}

type InsightsService interface {
	Dashboard(ctx context.Context) (map[model.PartID]*model.PartInsight, []model.PartAlert, error)
}

type WarrantyCalculator interface {
	ExpiryDate(start time.Time, period string) *time.Time
	Status(expiry *time.Time) model.WarrantyInfo
}

type handler struct {
	maintenance MaintenanceService
	vehicles    VehicleService
	insights    InsightsService
	warranty    WarrantyCalculator
	cat         *catalog.Catalog
}

func NewFleetHandler(
	maintenance MaintenanceService,
	vehicles VehicleService,
	insights InsightsService,
	warranty WarrantyCalculator,
	cat *catalog.Catalog,
) *handler {
	return &handler{
		maintenance: maintenance,
		vehicles:    vehicles,
		insights:    insights,
		warranty:    warranty,
		cat:         cat,
	}
}

func (h *handler) Register(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/tasks", h.CreateTask)
		r.Get("/tasks", h.ListTasks)
		r.Get("/tasks/{taskUUID}", h.TaskByID)
		r.Get("/tasks/{taskUUID}/warranty", h.TaskWarranty)

		r.Get("/vehicles", h.ListVehicles)
		r.Get("/vehicles/{vehicleUUID}", h.VehicleByID)
		r.Patch("/vehicles/{vehicleUUID}/odometer", h.UpdateOdometer)

		r.Get("/dashboard/replacements", h.Dashboard)
		r.Get("/warranty/preview", h.WarrantyPreview)
	})
}

func (h *handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req fleetv1.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	params, err := converter.CreateTaskRequestToParams(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.maintenance.Create(r.Context(), params)
	if err != nil {
		writeMappedError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, fleetv1.CreateTaskResponse{UUID: res.ID})
}

func (h *handler) TaskByID(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathUUID(w, r, "taskUUID")
	if !ok {
		return
	}

	task, info, err := h.maintenance.TaskWithWarranty(r.Context(), taskID)
	if err != nil {
		writeMappedError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, converter.TaskToAPI(task, &info))
}

func (h *handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	filter, err := tasksFilterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tasks, err := h.maintenance.ListTasks(r.Context(), filter)
	if err != nil {
		writeMappedError(w, r, err)
		return
	}

	out := fleetv1.TasksListResponse{Tasks: make([]fleetv1.Task, 0, len(tasks))}
	for i := range tasks {
		out.Tasks = append(out.Tasks, *converter.TaskToAPI(&tasks[i], nil))
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *handler) TaskWarranty(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathUUID(w, r, "taskUUID")
	if !ok {
		return
	}

	info, err := h.maintenance.TaskWarranty(r.Context(), taskID)
	if err != nil {
		writeMappedError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, converter.WarrantyToAPI(info))
}

func (h *handler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicles.List(r.Context())
	if err != nil {
		writeMappedError(w, r, err)
		return
	}

	out := fleetv1.VehiclesListResponse{Vehicles: make([]fleetv1.Vehicle, 0, len(vehicles))}
	for i := range vehicles {
		out.Vehicles = append(out.Vehicles, *converter.VehicleToAPI(&vehicles[i]))
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *handler) VehicleByID(w http.ResponseWriter, r *http.Request) {
	vehicleID, ok := pathUUID(w, r, "vehicleUUID")
	if !ok {
		return
	}

	vehicle, err := h.vehicles.VehicleByID(r.Context(), vehicleID)
	if err != nil {
		writeMappedError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, converter.VehicleToAPI(vehicle))
}

func (h *handler) UpdateOdometer(w http.ResponseWriter, r *http.Request) {
	vehicleID, ok := pathUUID(w, r, "vehicleUUID")
	if !ok {
		return
	}

	var req fleetv1.UpdateOdometerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.vehicles.UpdateOdometer(r.Context(), model.UpdateOdometerParams{
		VehicleID: vehicleID,
		Odometer:  req.Odometer,
	})
	if err != nil {
		writeMappedError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	insights, alerts, err := h.insights.Dashboard(r.Context())
	if err != nil {
		writeMappedError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, converter.InsightsToAPI(h.cat, insights, alerts))
}

// WarrantyPreview derives expiry and status for a single prospective
// replacement, so forms can show the badge before the task is saved.
func (h *handler) WarrantyPreview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, err := time.Parse(fleetv1.DateFormat, q.Get("start_date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start_date")
		return
	}

	expiry := h.warranty.ExpiryDate(start, q.Get("period"))
	writeJSON(w, http.StatusOK, converter.WarrantyToAPI(h.warranty.Status(expiry)))
}

func tasksFilterFromQuery(r *http.Request) (model.TasksFilter, error) {
	var filter model.TasksFilter
	q := r.URL.Query()

	if raw := q.Get("vehicle_uuid"); raw != "" {
		vehicleID, err := uuid.Parse(raw)
		if err != nil {
			return model.TasksFilter{}, errors.New("invalid vehicle_uuid")
		}
		filter.VehicleIDs = []uuid.UUID{vehicleID}
	}

	if raw := q.Get("from"); raw != "" {
		from, err := time.Parse(fleetv1.DateFormat, raw)
		if err != nil {
			return model.TasksFilter{}, errors.New("invalid from date")
		}
		filter.From = &from
	}

	if raw := q.Get("to"); raw != "" {
		to, err := time.Parse(fleetv1.DateFormat, raw)
		if err != nil {
			return model.TasksFilter{}, errors.New("invalid to date")
		}
		filter.To = &to
	}

	return filter, nil
}

func pathUUID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+param)
		return uuid.Nil, false
	}
	return id, true
}

func writeMappedError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error()) // 400
	case errors.Is(err, model.ErrTaskNotFound),
		errors.Is(err, model.ErrVehicleNotFound):
		writeError(w, http.StatusNotFound, err.Error()) // 404
	case errors.Is(err, model.ErrOdometerRollback):
		writeError(w, http.StatusUnprocessableEntity, err.Error()) // 422
	case errors.Is(err, model.ErrBadGateway):
		writeError(w, http.StatusBadGateway, err.Error()) // 502
	case errors.Is(err, model.ErrServiceUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error()) // 503
	default:
		logger.Error(r.Context(), "unhandled transport error", logger.ErrorF(err))
		writeError(w, http.StatusInternalServerError, "internal server error") // 500
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, fleetv1.Error{Code: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error(context.Background(), "encode response", logger.ErrorF(err))
	}
}
