package note

import "github.com/gin-gonic/gin"

// NoteModule implements the app.Module interface for the note domain.
type NoteModule struct {
	handler *NoteHandler
}

// NewModule creates a new NoteModule with the given handler.
// Panics if h is nil.
func NewModule(h *NoteHandler) *NoteModule {
	if h == nil {
		panic("note.NewModule: handler must not be nil")
	}
	return &NoteModule{handler: h}
}

// RegisterRoutes registers note routes. All of them require authentication.
func (m *NoteModule) RegisterRoutes(public *gin.RouterGroup, protected *gin.RouterGroup) {
	protected.POST("/notes", m.handler.Create)
	protected.GET("/notes", m.handler.List)
	protected.GET("/notes/:id", m.handler.Get)
	protected.PUT("/notes/:id", m.handler.Update)
	protected.DELETE("/notes/:id", m.handler.Delete)
}
