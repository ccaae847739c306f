package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studylink/api-go/models"
	"github.com/studylink/api-go/services"
	"gorm.io/gorm"
)

type AdminController struct {
	DB          *gorm.DB
	Reports     *services.ReportService
	Suspensions *services.SuspensionService
}

func NewAdminController(db *gorm.DB, reports *services.ReportService, suspensions *services.SuspensionService) *AdminController {
	return &AdminController{DB: db, Reports: reports, Suspensions: suspensions}
}

func (ac *AdminController) ListMembers(c *gin.Context) {
	var members []models.User
	if err := ac.DB.Order("created_at DESC").Find(&members).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch members"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

func (ac *AdminController) SuspendMember(c *gin.Context) {
	memberID, err := strconv.ParseUint(c.Param("memberId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member id"})
		return
	}

	var input struct {
		SuspendUntil time.Time `json:"suspendUntil" binding:"required"`
		Reason       string    `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ac.Suspensions.Suspend(uint(memberID), input.SuspendUntil, input.Reason); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ac *AdminController) UnsuspendMember(c *gin.Context) {
	memberID, err := strconv.ParseUint(c.Param("memberId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member id"})
		return
	}

	if err := ac.Suspensions.Lift(uint(memberID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ac *AdminController) ListReports(c *gin.Context) {
	reports, err := ac.Reports.All()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

func (ac *AdminController) PendingReportCount(c *gin.Context) {
	count, err := ac.Reports.PendingCount()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": count})
}

func (ac *AdminController) RecentReports(c *gin.Context) {
	n := 5
	if v := c.Query("count"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			n = parsed
		}
	}

	reports, err := ac.Reports.Recent(n)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// ProcessReport applies a moderation action (HIDE, DELETE or SUSPEND) and
// resolves the report.
func (ac *AdminController) ProcessReport(c *gin.Context) {
	var input struct {
		ReportID      uint       `json:"reportId" binding:"required"`
		Action        string     `json:"action" binding:"required"`
		SuspendUntil  *time.Time `json:"suspendUntil"`
		SuspendReason string     `json:"suspendReason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	action, err := services.ParseReportAction(input.Action)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := ac.Reports.Process(input.ReportID, action, input.SuspendUntil, input.SuspendReason); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
