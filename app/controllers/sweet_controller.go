package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/sweetshop/app/repositories"
	"github.com/shashiranjanraj/sweetshop/app/services"
	"github.com/shashiranjanraj/sweetshop/pkg/bind"
	"github.com/shashiranjanraj/sweetshop/pkg/logger"
	"github.com/shashiranjanraj/sweetshop/pkg/response"
)

// maxUploadBytes caps image uploads at 5 MB.
const maxUploadBytes = 5 << 20

type SweetController struct {
	sweets *services.SweetService
}

func NewSweetController(sweets *services.SweetService) *SweetController {
	return &SweetController{sweets: sweets}
}

type createSweetRequest struct {
	Name     string   `json:"name" validate:"required,min=1,max=200"`
	Category string   `json:"category" validate:"required,min=1,max=100"`
	Price    *float64 `json:"price" validate:"required,gte=0"`
	Quantity *int     `json:"quantity" validate:"required,gte=0"`
	Image    string   `json:"image" validate:"max=2048"`
}

type restockRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=1"`
}

// updateSweetRequest carries a partial patch: a field left out of the JSON
// body stays nil and is not applied.
type updateSweetRequest struct {
	Name     *string  `json:"name" validate:"min=1,max=200"`
	Category *string  `json:"category" validate:"min=1,max=100"`
	Price    *float64 `json:"price" validate:"gte=0"`
	Image    *string  `json:"image" validate:"max=2048"`
}

// writeError maps the inventory sentinel errors onto the API's status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		response.NotFound(w, "Sweet not found")
	case errors.Is(err, repositories.ErrOutOfStock):
		response.Error(w, http.StatusBadRequest, "Out of stock")
	default:
		logger.WithCtx(r.Context()).Error("inventory operation failed", "error", err)
		response.Internal(w, "Something went wrong")
	}
}

// priceParam parses an optional float query parameter; absent means nil.
func priceParam(q url.Values, name string) (*float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", name)
	}
	return &v, nil
}

// List handles GET /api/sweets.
func (c *SweetController) List(w http.ResponseWriter, r *http.Request) {
	sweets, err := c.sweets.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.OK(w, sweets)
}

// Search handles GET /api/sweets/search. All query params are optional and
// AND-ed together; with none present the result equals List.
func (c *SweetController) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repositories.SweetFilter{
		Name:     q.Get("name"),
		Category: q.Get("category"),
	}

	var err error
	if filter.MinPrice, err = priceParam(q, "minPrice"); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if filter.MaxPrice, err = priceParam(q, "maxPrice"); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	sweets, err := c.sweets.Search(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.OK(w, sweets)
}

// Create handles POST /api/sweets.
func (c *SweetController) Create(w http.ResponseWriter, r *http.Request) {
	var req createSweetRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationFailed(w, errs)
		return
	}

	sweet, err := c.sweets.Create(r.Context(), req.Name, req.Category, *req.Price, *req.Quantity, req.Image)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info("sweet created", "sweet_id", sweet.ID.Hex(), "name", sweet.Name)
	response.Created(w, sweet)
}

// Purchase handles POST /api/sweets/{id}/purchase.
func (c *SweetController) Purchase(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	sweet, err := c.sweets.Purchase(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info("sweet purchased", "sweet_id", id, "remaining", sweet.Quantity)
	response.OK(w, sweet)
}

// Restock handles POST /api/sweets/{id}/restock.
func (c *SweetController) Restock(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req restockRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationFailed(w, errs)
		return
	}

	sweet, err := c.sweets.Restock(r.Context(), id, *req.Quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info("sweet restocked", "sweet_id", id, "added", *req.Quantity, "quantity", sweet.Quantity)
	response.OK(w, sweet)
}

// Update handles PUT /api/sweets/{id}.
func (c *SweetController) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateSweetRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationFailed(w, errs)
		return
	}

	sweet, err := c.sweets.Update(r.Context(), id, repositories.SweetPatch{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Image:    req.Image,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.OK(w, sweet)
}

// Delete handles DELETE /api/sweets/{id}.
func (c *SweetController) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := c.sweets.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info("sweet deleted", "sweet_id", id)
	response.Message(w, "Sweet deleted successfully")
}

// Revenue handles GET /api/sweets/revenue.
func (c *SweetController) Revenue(w http.ResponseWriter, r *http.Request) {
	report, err := c.sweets.Revenue(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.OK(w, report)
}

// UploadImage handles POST /api/sweets/{id}/image. Expects a multipart form
// with the picture in the "image" field.
func (c *SweetController) UploadImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "could not read image file")
		return
	}

	sweet, err := c.sweets.AttachImage(r.Context(), id, header.Filename, data)
	if err != nil {
		if errors.Is(err, services.ErrBadImage) {
			response.Error(w, http.StatusBadRequest, "unsupported image type")
			return
		}
		writeError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info("sweet image updated", "sweet_id", id, "file", header.Filename)
	response.OK(w, sweet)
}
