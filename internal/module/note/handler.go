package note

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/gonotes/internal/domain"
	"github.com/simp-lee/gonotes/internal/middleware"
	"github.com/simp-lee/gonotes/internal/pkg"
)

// NoteHandler handles REST API requests for the note resource.
// Every route acts on behalf of the authenticated user.
type NoteHandler struct {
	svc domain.NoteService
}

// NewNoteHandler creates a new NoteHandler with the given service.
func NewNoteHandler(svc domain.NoteService) *NoteHandler {
	return &NoteHandler{svc: svc}
}

// Create handles POST /api/v1/notes.
func (h *NoteHandler) Create(c *gin.Context) {
	ownerID, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateNoteRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	note, err := h.svc.CreateNote(c.Request.Context(), ownerID, req.content())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, pkg.Response{
		Code:    http.StatusCreated,
		Message: "success",
		Data:    note,
	})
}

// Get handles GET /api/v1/notes/:id.
func (h *NoteHandler) Get(c *gin.Context) {
	ownerID, ok := currentUser(c)
	if !ok {
		return
	}

	note, err := h.svc.GetNote(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, note)
}

// List handles GET /api/v1/notes.
//
// Query parameters: pageNumber, pageSize, searchTerm, sortBy, sortOrder and
// the positionally paired filterColumns / filterQueries.
func (h *NoteHandler) List(c *gin.Context) {
	ownerID, ok := currentUser(c)
	if !ok {
		return
	}

	req, err := pkg.BindQueryRequest(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	page, err := h.svc.ListNotes(c.Request.Context(), ownerID, req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, page)
}

// Update handles PUT /api/v1/notes/:id.
func (h *NoteHandler) Update(c *gin.Context) {
	ownerID, ok := currentUser(c)
	if !ok {
		return
	}

	var req UpdateNoteRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	note, err := h.svc.UpdateNote(c.Request.Context(), ownerID, c.Param("id"), req.content())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, note)
}

// Delete handles DELETE /api/v1/notes/:id.
func (h *NoteHandler) Delete(c *gin.Context) {
	ownerID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteNote(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}

// currentUser returns the authenticated user ID or writes a 401 response.
func currentUser(c *gin.Context) (uint, bool) {
	id, ok := middleware.GetUserID(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return 0, false
	}
	return id, true
}
