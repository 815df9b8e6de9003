package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/edgarsv/passvault/internal/cache"
	"github.com/edgarsv/passvault/internal/middleware"
	"github.com/edgarsv/passvault/internal/model"
	"github.com/edgarsv/passvault/internal/repository"
)

// RecordStore is the slice of the record repository the record endpoints
// need. Every method is already owner-scoped.
type RecordStore interface {
	Create(ctx context.Context, rec model.Record) (model.Record, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Record, error)
	DeleteByIDAndOwner(ctx context.Context, id, ownerID string) error
}

// RecordHandler bundles dependencies for the record endpoints. Cache may be
// nil, in which case every list goes to the store.
type RecordHandler struct {
	Records RecordStore
	Cache   *cache.RecordList
}

func NewRecordHandler(records RecordStore, listCache *cache.RecordList) *RecordHandler {
	return &RecordHandler{Records: records, Cache: listCache}
}

type createRecordReq struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	IDNumber string `json:"idNumber"`
	Password string `json:"password"`
	Notes    string `json:"notes"`
}

// List handles GET /api/records: all records of the caller, most recent
// first. An empty list is a valid 200 response.
func (h *RecordHandler) List(c echo.Context) error {
	ownerID, ok := middleware.Identity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if recs, hit := h.Cache.Get(ctx, ownerID); hit {
		return c.JSON(http.StatusOK, recs)
	}
	recs, err := h.Records.ListByOwner(ctx, ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	h.Cache.Set(ctx, ownerID, recs)
	return c.JSON(http.StatusOK, recs)
}

// Create handles POST /api/records. Type, name and idNumber are required;
// the secret (wire name "password") and notes default to empty. The owner is
// always the authenticated caller, never a field of the request.
func (h *RecordHandler) Create(c echo.Context) error {
	ownerID, ok := middleware.Identity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	var req createRecordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Type = strings.TrimSpace(req.Type)
	req.Name = strings.TrimSpace(req.Name)
	req.IDNumber = strings.TrimSpace(req.IDNumber)
	if req.Type == "" || req.Name == "" || req.IDNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "type, name and idNumber are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rec, err := h.Records.Create(ctx, model.Record{
		Type:     req.Type,
		Name:     req.Name,
		IDNumber: req.IDNumber,
		Secret:   req.Password,
		Notes:    req.Notes,
		OwnerID:  ownerID,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	h.Cache.Invalidate(ctx, ownerID)
	return c.JSON(http.StatusCreated, rec)
}

// Delete handles DELETE /api/records/:id. A record that does not exist and a
// record owned by someone else produce the same 404; the handler never
// reveals which case occurred.
func (h *RecordHandler) Delete(c echo.Context) error {
	ownerID, ok := middleware.Identity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Records.DeleteByIDAndOwner(ctx, id, ownerID); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "record not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	h.Cache.Invalidate(ctx, ownerID)
	return c.JSON(http.StatusOK, echo.Map{"message": "record deleted"})
}
