package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gparth254/meet-ai/internal/agent"
	"github.com/gparth254/meet-ai/internal/meeting"
	"github.com/gparth254/meet-ai/internal/voice"
)

type agentHandlers struct {
	svc AgentService
}

func (h *agentHandlers) getMany(c *gin.Context) {
	page, pageSize, err := pageQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}
	result, err := h.svc.GetMany(c.Request.Context(), agent.ListInput{
		Page:     page,
		PageSize: pageSize,
		Search:   optionalQuery(c, "search"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *agentHandlers) getOne(c *gin.Context) {
	result, err := h.svc.GetOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *agentHandlers) create(c *gin.Context) {
	var in agent.CreateInput
	if err := bindJSON(c, &in); err != nil {
		writeError(c, err)
		return
	}
	result, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *agentHandlers) update(c *gin.Context) {
	var in agent.UpdateInput
	if err := bindJSON(c, &in); err != nil {
		writeError(c, err)
		return
	}
	result, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *agentHandlers) remove(c *gin.Context) {
	result, err := h.svc.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type meetingHandlers struct {
	svc MeetingService
}

func (h *meetingHandlers) getMany(c *gin.Context) {
	page, pageSize, err := pageQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}
	result, err := h.svc.GetMany(c.Request.Context(), meeting.ListInput{
		Page:     page,
		PageSize: pageSize,
		Search:   optionalQuery(c, "search"),
		AgentID:  optionalQuery(c, "agentId"),
		Status:   optionalQuery(c, "status"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *meetingHandlers) getOne(c *gin.Context) {
	result, err := h.svc.GetOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *meetingHandlers) create(c *gin.Context) {
	var in meeting.CreateInput
	if err := bindJSON(c, &in); err != nil {
		writeError(c, err)
		return
	}
	result, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *meetingHandlers) update(c *gin.Context) {
	var in meeting.UpdateInput
	if err := bindJSON(c, &in); err != nil {
		writeError(c, err)
		return
	}
	result, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *meetingHandlers) remove(c *gin.Context) {
	result, err := h.svc.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *meetingHandlers) generateToken(c *gin.Context) {
	token, err := h.svc.GenerateToken(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *meetingHandlers) getTranscript(c *gin.Context) {
	result, err := h.svc.GetTranscript(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type voiceHandlers struct {
	svc VoiceService
}

func (h *voiceHandlers) reply(c *gin.Context) {
	var in voice.ReplyInput
	if err := bindJSON(c, &in); err != nil {
		writeError(c, err)
		return
	}
	result, err := h.svc.Reply(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
