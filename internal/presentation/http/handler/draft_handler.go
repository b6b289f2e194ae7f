package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/produce-store-api/internal/application/service"
	"github.com/sangkips/produce-store-api/internal/presentation/http/dto/request"
	"github.com/sangkips/produce-store-api/internal/presentation/http/dto/response"
)

// DraftHandler exposes boleta drafts built one line at a time
type DraftHandler struct {
	draftService *service.DraftService
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(draftService *service.DraftService) *DraftHandler {
	useJSONFieldNames()
	return &DraftHandler{draftService: draftService}
}

// Start opens a draft, optionally seeded from an existing boleta
func (h *DraftHandler) Start(c *gin.Context) {
	var req request.StartDraftRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	draft, err := h.draftService.StartDraft(c.Request.Context(), req.BoletaID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Draft started", draft)
}

// Get returns the draft lines and preview total
func (h *DraftHandler) Get(c *gin.Context) {
	id, err := parseDraftID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	draft, err := h.draftService.GetDraft(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Draft retrieved successfully", draft)
}

// AddLine adds a line or merges it into the line for the same product
func (h *DraftHandler) AddLine(c *gin.Context) {
	id, err := parseDraftID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.BoletaLineRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	draft, err := h.draftService.AddLine(c.Request.Context(), id, lineInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Line added", draft)
}

// RemoveLine drops the line for a product
func (h *DraftHandler) RemoveLine(c *gin.Context) {
	id, err := parseDraftID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	draft, err := h.draftService.RemoveLine(c.Request.Context(), id, c.Param("product_id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Line removed", draft)
}

// Commit stores the draft as a boleta and discards it. A draft opened from
// an existing boleta replaces it and answers 200 instead of 201.
func (h *DraftHandler) Commit(c *gin.Context) {
	id, err := parseDraftID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.BoletaHeaderRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	boleta, updated, err := h.draftService.Commit(c.Request.Context(), id, headerInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	if updated {
		response.OK(c, "Boleta updated", boleta)
		return
	}
	response.Created(c, "Boleta saved", boleta)
}

// Discard drops the draft. Unknown ids also answer 204.
func (h *DraftHandler) Discard(c *gin.Context) {
	id, err := parseDraftID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.draftService.Discard(c.Request.Context(), id)
	response.NoContent(c)
}
