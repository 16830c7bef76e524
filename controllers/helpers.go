package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mbelova/canvashare/utils"
)

// cacheEnvelope mirrors the response envelope so cached bytes can be replayed
// verbatim with ctx.Data.
func cacheEnvelope(data interface{}) utils.JSONResponse {
	return utils.JSONResponse{Code: 0, Message: "success", Data: data}
}

// parseUUIDParam reads a UUID path parameter, responding 422 on a bad value.
func parseUUIDParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	raw := strings.TrimSpace(ctx.Param(name))
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.Error(ctx, http.StatusUnprocessableEntity, 42210, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// timestampLayouts are the accepted query formats for date bounds.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTimestamp parses a date bound in any accepted layout.
func parseTimestamp(value string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
