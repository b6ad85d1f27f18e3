package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"productivity/internal/auth"
	"productivity/internal/dto"
	"productivity/internal/service"

	"github.com/gin-gonic/gin"
)

// ResourceHandler serves the CRUD routes of one resource.
type ResourceHandler struct {
	svc *service.ResourceService
	log *slog.Logger
}

func NewResourceHandler(svc *service.ResourceService, log *slog.Logger) *ResourceHandler {
	return &ResourceHandler{svc: svc, log: log}
}

// List godoc
// @Summary      List the caller's records
// @Tags         resources
// @Produce      json
// @Param        resource   path      string  true   "Resource kind"
// @Param        X-User-Id  header    string  true   "Caller identity"
// @Param        filter     query     string  false  "Related id (projeto_id, curso_id, habito_id)"
// @Success      200  {array}   object
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /{resource} [get]
func (h *ResourceHandler) List(c *gin.Context) {
	var filter string
	if key := h.svc.Resource().FilterKey; key != "" {
		filter = c.Query(key)
	}
	list, err := h.svc.List(c.Request.Context(), auth.UserIDFromContext(c), filter)
	if err != nil {
		h.fail(c, "list", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get godoc
// @Summary      Get one of the caller's records
// @Tags         resources
// @Produce      json
// @Param        resource   path      string  true  "Resource kind"
// @Param        id         path      string  true  "Record ID"
// @Param        X-User-Id  header    string  true  "Caller identity"
// @Success      200  {object}  object
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /{resource}/{id} [get]
func (h *ResourceHandler) Get(c *gin.Context) {
	rec, err := h.svc.Get(c.Request.Context(), auth.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		h.fail(c, "get", err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Create godoc
// @Summary      Create a record
// @Tags         resources
// @Accept       json
// @Produce      json
// @Param        resource   path      string  true  "Resource kind"
// @Param        X-User-Id  header    string  true  "Caller identity"
// @Param        body       body      object  true  "Record fields"
// @Success      201  {object}  object
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /{resource} [post]
func (h *ResourceHandler) Create(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		h.fail(c, "create", err)
		return
	}
	rec, err := h.svc.Create(c.Request.Context(), auth.UserIDFromContext(c), body)
	if err != nil {
		h.fail(c, "create", err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// Update godoc
// @Summary      Partially update a record
// @Tags         resources
// @Accept       json
// @Produce      json
// @Param        resource   path      string  true  "Resource kind"
// @Param        id         path      string  true  "Record ID"
// @Param        X-User-Id  header    string  true  "Caller identity"
// @Param        body       body      object  true  "Fields to change"
// @Success      200  {object}  object
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /{resource}/{id} [put]
func (h *ResourceHandler) Update(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		h.fail(c, "update", err)
		return
	}
	rec, err := h.svc.Update(c.Request.Context(), auth.UserIDFromContext(c), c.Param("id"), body)
	if err != nil {
		h.fail(c, "update", err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Delete godoc
// @Summary      Delete a record
// @Tags         resources
// @Produce      json
// @Param        resource   path      string  true  "Resource kind"
// @Param        id         path      string  true  "Record ID"
// @Param        X-User-Id  header    string  true  "Caller identity"
// @Success      200  {object}  dto.DeleteResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /{resource}/{id} [delete]
func (h *ResourceHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), auth.UserIDFromContext(c), c.Param("id")); err != nil {
		h.fail(c, "delete", err)
		return
	}
	c.JSON(http.StatusOK, dto.DeleteResponse{Success: true})
}

func (h *ResourceHandler) fail(c *gin.Context, op string, err error) {
	respondError(c, h.log, h.svc.Resource().Name, op, err)
}

// readBody decodes the request body as a JSON object, keeping numbers as
// json.Number so integers survive untouched.
func readBody(c *gin.Context) (map[string]any, error) {
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	var body map[string]any
	if err := dec.Decode(&body); err != nil || body == nil {
		return nil, service.InvalidBody("Corpo da requisição deve ser um objeto JSON")
	}
	return body, nil
}

// Register mounts the resource routes on api under /<resource>.
func Register(api gin.IRoutes, name string, h *ResourceHandler) {
	api.GET("/"+name, h.List)
	api.POST("/"+name, h.Create)
	api.GET("/"+name+"/:id", h.Get)
	api.PUT("/"+name+"/:id", h.Update)
	api.PATCH("/"+name+"/:id", h.Update)
	api.DELETE("/"+name+"/:id", h.Delete)
}
