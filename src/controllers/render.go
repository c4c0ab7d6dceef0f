package controllers

import (
	"net/http"
	"strconv"

	"github.com/anhimov/library/src/validators"
	"github.com/gin-gonic/gin"
)

// render writes data as JSON when the client prefers it, otherwise executes
// the named HTML view with data.
func render(ctx *gin.Context, status int, view string, data gin.H) {
	if wantsJSON(ctx) {
		ctx.JSON(status, data)
		return
	}
	ctx.HTML(status, view, data)
}

func wantsJSON(ctx *gin.Context) bool {
	return ctx.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}

// renderForm re-renders an input view with the rejected values attached.
func renderForm(ctx *gin.Context, view string, data gin.H, errs validators.FieldErrors) {
	data["errors"] = errs
	render(ctx, http.StatusUnprocessableEntity, view, data)
}

func renderError(ctx *gin.Context, status int, message string) {
	render(ctx, status, "error", gin.H{"error": message, "status": status})
}

func redirect(ctx *gin.Context, location string) {
	ctx.Redirect(http.StatusFound, location)
}

// idParam parses the :id path parameter, answering 400 when it is malformed.
func idParam(ctx *gin.Context, entity string) (int, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		renderError(ctx, http.StatusBadRequest, "Invalid "+entity+" ID")
		return 0, false
	}
	return id, true
}

// optionalInt parses an optional query parameter.
func optionalInt(ctx *gin.Context, name string) (*int, bool) {
	raw, ok := ctx.GetQuery(name)
	if !ok || raw == "" {
		return nil, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		renderError(ctx, http.StatusBadRequest, "Invalid "+name+" parameter")
		return nil, false
	}
	return &value, true
}

// NotFound answers requests no route matched.
func NotFound(ctx *gin.Context) {
	renderError(ctx, http.StatusNotFound, "Page not found")
}
