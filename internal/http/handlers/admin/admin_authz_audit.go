package admin

import (
	"strconv"
	"strings"

	"github.com/qbu-next/internal/constants"
	"github.com/qbu-next/internal/http/response"
	"github.com/qbu-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListAuthzAuditLogs 権限監査ログの一覧を取得
func (h *Handler) ListAuthzAuditLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	operatorAdminID, ok := parseUintNullable(c.Query("operator_admin_id"))
	if !ok {
		respondError(c, response.CodeBadRequest, constants.ErrCodeBadRequest, nil)
		return
	}
	createdFrom, err := parseTimeNullable(c.Query("created_from"))
	if err != nil {
		respondError(c, response.CodeBadRequest, constants.ErrCodeBadRequest, err)
		return
	}
	createdTo, err := parseTimeNullable(c.Query("created_to"))
	if err != nil {
		respondError(c, response.CodeBadRequest, constants.ErrCodeBadRequest, err)
		return
	}

	items, total, err := h.AuthzAuditService.ListForAdmin(repository.AuthzAuditLogListFilter{
		Page:            page,
		PageSize:        pageSize,
		OperatorAdminID: operatorAdminID,
		Action:          strings.TrimSpace(c.Query("action")),
		Object:          strings.TrimSpace(c.Query("object")),
		Method:          strings.TrimSpace(c.Query("method")),
		CreatedFrom:     createdFrom,
		CreatedTo:       createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "config_fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, items, buildPagination(page, pageSize, total))
}
