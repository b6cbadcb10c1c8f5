package rest

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hwdelite/notesvc/internal/server/models"
)

// response is the uniform envelope every endpoint returns.
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, response{Success: status < 400, Message: message, Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, response{Success: false, Message: message})
}

// userPayload is the minimal user projection exposed to clients. OTP state
// and the password hash never leave the server.
type userPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func toUserPayload(u *models.User) userPayload {
	return userPayload{ID: u.ID, Email: u.Email, Name: u.Name}
}

type notePayload struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toNotePayload(n *models.Note) notePayload {
	return notePayload{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func toNotePayloads(notes []*models.Note) []notePayload {
	out := make([]notePayload, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNotePayload(n))
	}
	return out
}
