package handlers

import (
	"net/http"
	"strconv"

	"dataconnector/internal/domain"
	"dataconnector/internal/http/middleware"
	"dataconnector/internal/services"

	"github.com/gin-gonic/gin"
)

// dataQuery is the request shape of GET /data.
type dataQuery struct {
	Source    string  `form:"source" binding:"required"`
	Page      int     `form:"page,default=1" binding:"min=1"`
	PageSize  *int    `form:"page_size"`
	VoiceMode *bool   `form:"voice_mode"`
	Summarize bool    `form:"summarize"`
	Status    *string `form:"status"`
	Priority  *string `form:"priority"`
	Metric    *string `form:"metric"`
	StartDate *string `form:"start_date"`
	EndDate   *string `form:"end_date"`
	SortBy    *string `form:"sort_by"`
	Order     string  `form:"order,default=desc" binding:"oneof=asc desc"`
}

type DataHandler struct {
	Service services.DataService
}

// GetData handles GET /data.
func (h DataHandler) GetData(c *gin.Context) {
	var q dataQuery
	if !BindQueryOrError(c, &q) {
		return
	}

	limits := h.Service.Limits
	pageSize := limits.Default
	if q.PageSize != nil {
		pageSize = *q.PageSize
	}
	if pageSize < 1 || pageSize > limits.Max {
		RespondValidationErrors(c, []ValidationDetail{pageSizeDetail(pageSize, limits.Max)})
		return
	}
	voiceMode := true
	if q.VoiceMode != nil {
		voiceMode = *q.VoiceMode
	}

	svc := h.Service
	svc.RequestID = middleware.GetRequestID(c)

	resp, err := svc.Query(c.Request.Context(), domain.RawQuery{
		Source:    q.Source,
		Page:      q.Page,
		PageSize:  pageSize,
		VoiceMode: voiceMode,
		Summarize: q.Summarize,
		Status:    q.Status,
		Priority:  q.Priority,
		Metric:    q.Metric,
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
		SortBy:    q.SortBy,
		Order:     q.Order,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("X-Total-Count", strconv.Itoa(resp.Metadata.TotalResults))
	c.JSON(http.StatusOK, resp)
}

// page_size bounds depend on configuration, so they are checked here rather
// than in binding tags.
func pageSizeDetail(got, maxSize int) ValidationDetail {
	d := ValidationDetail{Loc: []string{"query", "page_size"}, Input: got}
	if got < 1 {
		d.Msg, d.Type = "Input should be greater than or equal to 1", "min"
	} else {
		d.Msg, d.Type = "Input should be less than or equal to "+strconv.Itoa(maxSize), "max"
	}
	return d
}
