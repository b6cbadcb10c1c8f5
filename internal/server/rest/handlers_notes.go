package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hwdelite/notesvc/internal/common"
)

type createNoteRequest struct {
	Title   string `json:"title" binding:"required,min=1,max=200"`
	Content string `json:"content" binding:"required,min=1,max=10000"`
}

func (s *Server) handleCreateNote(c *gin.Context) {
	var req createNoteRequest
	if !bindJSON(c, &req) {
		return
	}

	user := GetCurrentUser(c)
	note, err := s.notes.Create(c.Request.Context(), user.ID, req.Title, req.Content)
	if err != nil {
		s.logger.Error(c.Request.Context(), "create note error", "error", err.Error())
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond(c, http.StatusCreated, "Note created successfully", gin.H{"note": toNotePayload(note)})
}

func (s *Server) handleListNotes(c *gin.Context) {
	user := GetCurrentUser(c)

	notes, err := s.notes.List(c.Request.Context(), user.ID)
	if err != nil {
		s.logger.Error(c.Request.Context(), "list notes error", "error", err.Error())
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond(c, http.StatusOK, "Notes retrieved successfully", gin.H{"notes": toNotePayloads(notes)})
}

func (s *Server) handleGetNote(c *gin.Context) {
	user := GetCurrentUser(c)

	note, err := s.notes.Get(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			respondError(c, http.StatusNotFound, "Note not found or you do not have permission to view it")
			return
		}
		s.logger.Error(c.Request.Context(), "get note error", "error", err.Error())
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond(c, http.StatusOK, "Note retrieved successfully", gin.H{"note": toNotePayload(note)})
}

func (s *Server) handleDeleteNote(c *gin.Context) {
	user := GetCurrentUser(c)

	err := s.notes.Delete(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			respondError(c, http.StatusNotFound, "Note not found or you do not have permission to delete it")
			return
		}
		s.logger.Error(c.Request.Context(), "delete note error", "error", err.Error())
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond(c, http.StatusOK, "Note deleted successfully", nil)
}
