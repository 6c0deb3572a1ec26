// Public browsing API.  These routes need no authentication and leave
// out manager identifiers.

package handler

import (
    "context"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/IlTetta/CoWorkSpace-sub001/internal/model"
    "github.com/IlTetta/CoWorkSpace-sub001/internal/service"
)

// SpaceAPI is the part of service.SpaceService the HTTP layer uses.
type SpaceAPI interface {
    ListLocations(ctx context.Context) ([]*model.Location, error)
    ListManagedLocations(ctx context.Context, actor service.Actor) ([]*model.Location, error)
    GetLocation(ctx context.Context, id uint64) (*model.Location, error)
    ListSpaces(ctx context.Context, locationID uint64) ([]*model.Space, error)
    GetSpace(ctx context.Context, id uint64) (*model.Space, error)
    CreateLocation(ctx context.Context, actor service.Actor, l *model.Location) error
    UpdateLocation(ctx context.Context, actor service.Actor, l *model.Location) error
    DeleteLocation(ctx context.Context, actor service.Actor, id uint64) error
    CreateSpace(ctx context.Context, actor service.Actor, sp *model.Space) error
    UpdateSpace(ctx context.Context, actor service.Actor, sp *model.Space) error
    DeleteSpace(ctx context.Context, actor service.Actor, id uint64) error
}

// PublicHandler serves the unauthenticated catalogue.
type PublicHandler struct {
    spaces SpaceAPI
}

func NewPublicHandler(spaces SpaceAPI) *PublicHandler {
    return &PublicHandler{spaces: spaces}
}

// ListLocations handles GET /v1/locations.
func (h *PublicHandler) ListLocations(c echo.Context) error {
    locs, err := h.spaces.ListLocations(c.Request().Context())
    if err != nil {
        return respondError(c, err)
    }
    out := make([]locationResp, 0, len(locs))
    for _, l := range locs {
        out = append(out, toLocation(l, false))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// ListLocationSpaces handles GET /v1/locations/:id/spaces.  Inactive and
// maintenance spaces are listed too so clients can show their status.
func (h *PublicHandler) ListLocationSpaces(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return badRequest(c, "invalid location id")
    }
    spaces, err := h.spaces.ListSpaces(c.Request().Context(), id)
    if err != nil {
        return respondError(c, err)
    }
    out := make([]spaceResp, 0, len(spaces))
    for _, sp := range spaces {
        out = append(out, toSpace(sp))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetSpace handles GET /v1/spaces/:id.
func (h *PublicHandler) GetSpace(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return badRequest(c, "invalid space id")
    }
    sp, err := h.spaces.GetSpace(c.Request().Context(), id)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, toSpace(sp))
}
