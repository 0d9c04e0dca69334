package webapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/kitestore/shopfront/internal/content"
	"github.com/kitestore/shopfront/internal/domain"
	"github.com/kitestore/shopfront/internal/storefront"
)

type sectionPayload struct {
	Type     string                 `json:"type"`
	Order    int                    `json:"order"`
	Content  map[string]interface{} `json:"content"`
	IsActive bool                   `json:"isActive"`
}

// sectionPatchPayload relaxes the create rules: every field is optional and
// only supplied fields are merged.
type sectionPatchPayload struct {
	Type     *string                 `json:"type"`
	Order    *int                    `json:"order"`
	Content  *map[string]interface{} `json:"content"`
	IsActive *bool                   `json:"isActive"`
}

// sectionView is the wire form of a section. Content always goes out as a
// structured value, never as nested encoded text.
type sectionView struct {
	ID        int64           `json:"id,string"`
	Type      string          `json:"type"`
	Order     int             `json:"order"`
	IsActive  bool            `json:"isActive"`
	Content   content.Payload `json:"content"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func newSectionView(section *domain.HomeSection) sectionView {
	payload, err := content.Decode(section.Content)
	if err != nil {
		zap.L().Warn("stored section content unparsable",
			zap.Int64("section_id", section.ID))
		payload = content.Payload{}
	}
	return sectionView{
		ID:        section.ID,
		Type:      section.Type,
		Order:     section.Order,
		IsActive:  section.IsActive,
		Content:   payload,
		CreatedAt: section.CreatedAt,
		UpdatedAt: section.UpdatedAt,
	}
}

// RegisterSectionRoutes registers section administration endpoints
func RegisterSectionRoutes(e *echo.Echo) {
	e.GET("/sections", ListSections)
	e.POST("/sections", CreateSection)
	e.PATCH("/sections/:id", PatchSection)
	e.DELETE("/sections/:id", DeleteSection)
}

// ListSections returns every section, active and inactive, in storage order.
func ListSections(c echo.Context) error {
	rows, err := getApp(c).SectionService().List(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query sections", err.Error())
	}
	views := make([]sectionView, 0, len(rows))
	for i := range rows {
		views = append(views, newSectionView(&rows[i]))
	}
	return c.JSON(http.StatusOK, views)
}

func CreateSection(c echo.Context) error {
	var payload sectionPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse section", err.Error())
	}

	section, err := getApp(c).SectionService().Create(
		c.Request().Context(), payload.Type, payload.Order, payload.Content, payload.IsActive)
	if err != nil {
		return sectionError(c, err)
	}
	return c.JSON(http.StatusCreated, newSectionView(section))
}

func PatchSection(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid section ID", nil)
	}

	var payload sectionPatchPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse section", err.Error())
	}

	patch := storefront.SectionPatch{
		Type:     payload.Type,
		Order:    payload.Order,
		Content:  payload.Content,
		IsActive: payload.IsActive,
	}
	section, err := getApp(c).SectionService().Patch(c.Request().Context(), id, patch)
	if err != nil {
		return sectionError(c, err)
	}
	return c.JSON(http.StatusOK, newSectionView(section))
}

func DeleteSection(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid section ID", nil)
	}
	if err := getApp(c).SectionService().Delete(c.Request().Context(), id); err != nil {
		return sectionError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func sectionError(c echo.Context, err error) error {
	var verr *storefront.ValidationError
	switch {
	case errors.As(err, &verr):
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", verr.Reason,
			map[string]string{"field": verr.Field})
	case errors.Is(err, storefront.ErrNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Section not found", nil)
	}
	return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Section operation failed", err.Error())
}
