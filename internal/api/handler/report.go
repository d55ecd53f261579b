package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return 0, false
	}
	return uint(id), true
}

// FileReport lets the acting star report a fan.
func (h *Handler) FileReport(c *gin.Context) {
	fanID, ok := pathID(c, "fanId")
	if !ok {
		return
	}

	rep, err := h.Reports.FileReport(c.Request.Context(), currentPrincipal(c), fanID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rep)
}

// CancelReport lets the acting star withdraw their report against a fan.
func (h *Handler) CancelReport(c *gin.Context) {
	fanID, ok := pathID(c, "fanId")
	if !ok {
		return
	}

	if err := h.Reports.CancelReport(c.Request.Context(), currentPrincipal(c), fanID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetReportList returns the report list of a meeting the acting manager owns.
func (h *Handler) GetReportList(c *gin.Context) {
	meetingID, ok := pathID(c, "meetingId")
	if !ok {
		return
	}

	view, err := h.Reports.GetReportList(c.Request.Context(), currentPrincipal(c), meetingID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetReportDetail returns one report with its transcribed audio evidence.
func (h *Handler) GetReportDetail(c *gin.Context) {
	meetingID, ok := pathID(c, "meetingId")
	if !ok {
		return
	}
	reportID, ok := pathID(c, "reportId")
	if !ok {
		return
	}

	view, err := h.Reports.GetReportDetail(c.Request.Context(), currentPrincipal(c), meetingID, reportID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetBlackList returns the acting manager's blacklist.
func (h *Handler) GetBlackList(c *gin.Context) {
	infos, err := h.Reports.ListBlackList(c.Request.Context(), currentPrincipal(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blacklist": infos})
}

// CheckEmail reports whether a manager email is still free.
func (h *Handler) CheckEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	registered, err := h.Mail.EmailRegistered(c.Request.Context(), email)
	if err != nil {
		writeError(c, err)
		return
	}
	if registered {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
		return
	}
	c.Status(http.StatusOK)
}

// AuthEmail sends a verification code to the given email.
func (h *Handler) AuthEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if err := h.Mail.SendVerification(c.Request.Context(), email); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// CheckAuth verifies a code previously sent to the email.
func (h *Handler) CheckAuth(c *gin.Context) {
	email := c.Query("email")
	code := c.Query("authcode")
	if email == "" || code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if err := h.Mail.Verify(c.Request.Context(), email, code); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
