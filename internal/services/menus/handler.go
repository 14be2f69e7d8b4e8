package menus

import (
	"context"
	"errors"
	"net/http"
	"time"

	"restaurant-billing/internal/catalog"
	"restaurant-billing/internal/logger"
	"restaurant-billing/internal/menu"
	"restaurant-billing/internal/models"
	"restaurant-billing/internal/web"
)

// Handler serves catalog management requests
type Handler struct {
	catalog *catalog.Service
	logger  *logger.Logger
}

// NewHandler creates a new menu handler
func NewHandler(svc *catalog.Service, log *logger.Logger) *Handler {
	return &Handler{
		catalog: svc,
		logger:  log,
	}
}

// RegisterRoutes mounts the catalog endpoints on rt
func (h *Handler) RegisterRoutes(rt *web.Router) {
	rt.HandleFunc("POST /menus", h.CreateMenu)
	rt.HandleFunc("GET /menus/{name}", h.GetMenu)
	rt.HandleFunc("POST /menus/{name}/items", h.AddMenuItem)
	rt.HandleFunc("PUT /menus/{name}/items/{item}", h.UpdateMenuItem)
	rt.HandleFunc("DELETE /menus/{name}/items/{item}", h.DeleteMenuItem)
}

type createMenuRequest struct {
	Name string `json:"name"`
}

// CreateMenu handles POST /menus
func (h *Handler) CreateMenu(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestID(r.Context())

	var req createMenuRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		h.badRequest(w, requestID, err)
		return
	}
	if err := models.ValidateMenuName(req.Name); err != nil {
		h.badRequest(w, requestID, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.catalog.CreateMenu(ctx, req.Name); err != nil {
		h.internalError(w, requestID, "menu_create_failed", err)
		return
	}

	h.logger.Info("menu_created", "Menu created", requestID, map[string]interface{}{"menu": req.Name})
	web.WriteJSON(w, http.StatusCreated, map[string]string{"name": req.Name})
}

// GetMenu handles GET /menus/{name}
func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestID(r.Context())
	name, ok := h.menuName(w, r)
	if !ok {
		return
	}

	c, err := h.catalog.Load(r.Context(), name)
	if err != nil {
		h.catalogError(w, requestID, "menu_read_failed", err)
		return
	}
	web.WriteJSON(w, http.StatusOK, c)
}

// AddMenuItem handles POST /menus/{name}/items
func (h *Handler) AddMenuItem(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestID(r.Context())
	name, ok := h.menuName(w, r)
	if !ok {
		return
	}
	item, ok := h.decodeItem(w, r)
	if !ok {
		return
	}

	if err := h.catalog.AddMenuItem(r.Context(), name, item); err != nil {
		h.internalError(w, requestID, "menu_item_add_failed", err)
		return
	}

	h.logger.Info("menu_item_added", "Menu item added", requestID, map[string]interface{}{
		"menu": name,
		"item": item.Name(),
		"type": string(item.Kind()),
	})
	web.WriteJSON(w, http.StatusCreated, catalog.Catalog{item.Name(): catalog.EntryFor(item)})
}

// UpdateMenuItem handles PUT /menus/{name}/items/{item}
func (h *Handler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestID(r.Context())
	name, ok := h.menuName(w, r)
	if !ok {
		return
	}
	item, ok := h.decodeItem(w, r)
	if !ok {
		return
	}
	itemName := r.PathValue("item")

	if err := h.catalog.UpdateMenuItem(r.Context(), name, itemName, item); err != nil {
		h.catalogError(w, requestID, "menu_item_update_failed", err)
		return
	}

	h.logger.Info("menu_item_updated", "Menu item updated", requestID, map[string]interface{}{
		"menu": name,
		"item": itemName,
	})
	w.WriteHeader(http.StatusNoContent)
}

// DeleteMenuItem handles DELETE /menus/{name}/items/{item}
func (h *Handler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestID(r.Context())
	name, ok := h.menuName(w, r)
	if !ok {
		return
	}
	itemName := r.PathValue("item")

	if err := h.catalog.DeleteMenuItem(r.Context(), name, itemName); err != nil {
		h.catalogError(w, requestID, "menu_item_delete_failed", err)
		return
	}

	h.logger.Info("menu_item_deleted", "Menu item deleted", requestID, map[string]interface{}{
		"menu": name,
		"item": itemName,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) menuName(w http.ResponseWriter, r *http.Request) (string, bool) {
	name := r.PathValue("name")
	if err := models.ValidateMenuName(name); err != nil {
		h.badRequest(w, logger.RequestID(r.Context()), err)
		return "", false
	}
	return name, true
}

func (h *Handler) decodeItem(w http.ResponseWriter, r *http.Request) (menu.Item, bool) {
	requestID := logger.RequestID(r.Context())

	var req models.ItemRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		h.badRequest(w, requestID, err)
		return nil, false
	}
	if err := req.Validate(); err != nil {
		h.badRequest(w, requestID, err)
		return nil, false
	}
	item, err := req.Item()
	if err != nil {
		h.badRequest(w, requestID, err)
		return nil, false
	}
	return item, true
}

func (h *Handler) badRequest(w http.ResponseWriter, requestID string, err error) {
	h.logger.Error("validation_failed", "Request validation failed", requestID, err, nil)
	status := http.StatusBadRequest
	if errors.Is(err, web.ErrUnsupportedMediaType) {
		status = http.StatusUnsupportedMediaType
	}
	web.WriteError(w, status, err.Error(), requestID)
}

// catalogError maps catalog read failures: missing is 404, malformed is 500
func (h *Handler) catalogError(w http.ResponseWriter, requestID, action string, err error) {
	if errors.Is(err, catalog.ErrNotFound) {
		h.logger.Debug(action, "Menu not found", requestID, map[string]interface{}{"reason": err.Error()})
		web.WriteError(w, http.StatusNotFound, "menu not found", requestID)
		return
	}
	h.internalError(w, requestID, action, err)
}

func (h *Handler) internalError(w http.ResponseWriter, requestID, action string, err error) {
	h.logger.Error(action, "Catalog operation failed", requestID, err, nil)
	web.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
}
