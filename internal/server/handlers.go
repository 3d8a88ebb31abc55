package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/piwi3910/RoomCraft/internal/model"
	"github.com/piwi3910/RoomCraft/internal/project"
	"github.com/piwi3910/RoomCraft/internal/projection"
	"github.com/piwi3910/RoomCraft/internal/session"
	"github.com/piwi3910/RoomCraft/internal/store"
)

type sessionRequest struct {
	APIKey string `json:"api_key"`
}

type roomRequest struct {
	Dimensions *[3]float64 `json:"dimensions"`
	Color      *string     `json:"color"`
}

type furnitureRequest struct {
	Placed   *bool         `json:"placed"`
	Position *model.Point3 `json:"position"`
	Rotation *float64      `json:"rotation"` // radians
	Scale    *float64      `json:"scale"`
}

type templateRequest struct {
	Name string `json:"name"`
}

// sceneResponse is the wire form of a session's scene.
type sceneResponse struct {
	ProjectName     string              `json:"projectName"`
	Dimensions      [3]float64          `json:"dimensions"`
	Color           string              `json:"color"`
	PlacedFurniture model.PlacementMap  `json:"placedFurniture"`
	Selected        model.FurnitureType `json:"selected,omitempty"`
	Version         uint64              `json:"version"`
}

func newSceneResponse(snap session.Snapshot) sceneResponse {
	return sceneResponse{
		ProjectName:     snap.ProjectName,
		Dimensions:      snap.Scene.Room.Dimensions,
		Color:           snap.Scene.Room.Color,
		PlacedFurniture: snap.Scene.Placements,
		Selected:        snap.Scene.Selected,
		Version:         snap.Version,
	}
}

func errorJSON(c fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

var errBadBody = errors.New("invalid request body")

func decode(c fiber.Ctx, v any) error {
	if err := json.Unmarshal(c.Body(), v); err != nil {
		return errBadBody
	}
	return nil
}

func (s *Server) live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) ready(c fiber.Ctx) error {
	if p, ok := s.kv.(store.Pinger); ok {
		ctx, cancel := context.WithTimeout(c.Context(), pingTimeout)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			s.log.Warn("readiness check failed", zap.Error(err))
			return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "error": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"status": "ready"})
}

func (s *Server) createSession(c fiber.Ctx) error {
	var req sessionRequest
	if len(c.Body()) > 0 {
		if err := decode(c, &req); err != nil {
			return errorJSON(c, http.StatusBadRequest, err.Error())
		}
	}
	if !s.keys.Check(req.APIKey) {
		s.log.Warn("session refused: invalid api key")
		return errorJSON(c, http.StatusUnauthorized, "invalid api key")
	}
	token, id := s.openSession()
	return c.Status(http.StatusCreated).JSON(fiber.Map{"token": token, "session": id})
}

func (s *Server) deleteSession(c fiber.Ctx) error {
	if !s.closeSession(bearerToken(c)) {
		return errorJSON(c, http.StatusUnauthorized, "unknown or expired session")
	}
	return c.SendStatus(http.StatusNoContent)
}

func (s *Server) getScene(c fiber.Ctx) error {
	return c.JSON(newSceneResponse(sessionFrom(c).Snapshot()))
}

func (s *Server) resetScene(c fiber.Ctx) error {
	sess := sessionFrom(c)
	sess.NewScene()
	return c.JSON(newSceneResponse(sess.Snapshot()))
}

// updateRoom validates every supplied field before applying any of them.
func (s *Server) updateRoom(c fiber.Ctx) error {
	var req roomRequest
	if err := decode(c, &req); err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	var dims [3]float64
	if req.Dimensions != nil {
		for i, v := range req.Dimensions {
			checked, err := model.CheckDimension(i, v)
			if err != nil {
				return errorJSON(c, http.StatusUnprocessableEntity, err.Error())
			}
			dims[i] = checked
		}
	}
	var color string
	if req.Color != nil {
		var err error
		if color, err = model.ValidateColor(*req.Color); err != nil {
			return errorJSON(c, http.StatusUnprocessableEntity, err.Error())
		}
	}

	sess := sessionFrom(c)
	if req.Dimensions != nil {
		for i, v := range dims {
			if err := sess.SetRoomDimension(i, v); err != nil {
				return errorJSON(c, http.StatusUnprocessableEntity, err.Error())
			}
		}
	}
	if req.Color != nil {
		sess.SetRoomColor(color)
	}
	return c.JSON(newSceneResponse(sess.Snapshot()))
}

func (s *Server) updateFurniture(c fiber.Ctx) error {
	t, err := model.ParseFurnitureType(c.Params("type"))
	if err != nil {
		return errorJSON(c, http.StatusNotFound, err.Error())
	}
	var req furnitureRequest
	if err := decode(c, &req); err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	if req.Position != nil {
		// furniture stands on the floor
		req.Position[1] = 0
	}
	snap := sessionFrom(c).UpdatePlacement(t, session.PlacementUpdate{
		Placed:   req.Placed,
		Position: req.Position,
		Rotation: req.Rotation,
		Scale:    req.Scale,
	})
	return c.JSON(fiber.Map{
		"type":      t,
		"placement": snap.Scene.Placements.Get(t),
		"version":   snap.Version,
	})
}

func (s *Server) getView(c fiber.Ctx) error {
	plane, err := projection.ParsePlane(c.Params("plane"))
	if err != nil {
		return errorJSON(c, http.StatusNotFound, err.Error())
	}
	view := sessionFrom(c).Snapshot().Views.Get(plane)
	if !view.Valid() {
		return errorJSON(c, http.StatusUnprocessableEntity, view.Diagnostic)
	}
	return c.JSON(view)
}

func (s *Server) listTemplates(c fiber.Ctx) error {
	list := sessionFrom(c).ListTemplates(c.Context())
	if list == nil {
		list = []model.Template{}
	}
	return c.JSON(fiber.Map{"templates": list, "count": len(list)})
}

func (s *Server) saveTemplate(c fiber.Ctx) error {
	var req templateRequest
	if err := decode(c, &req); err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	outcome, err := sessionFrom(c).SaveTemplate(c.Context(), req.Name)
	switch {
	case errors.Is(err, model.ErrEmptyTemplateName):
		return errorJSON(c, http.StatusBadRequest, err.Error())
	case err != nil:
		return errorJSON(c, http.StatusInternalServerError, "failed to save template")
	}

	status := http.StatusOK
	if outcome.Created {
		status = http.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{
		"message":  outcome.Message(),
		"template": outcome.Template,
	})
}

func (s *Server) getTemplate(c fiber.Ctx) error {
	t, err := s.templates.Load(c.Context(), c.Params("name"))
	if err != nil {
		return s.templateError(c, err)
	}
	return c.JSON(t)
}

func (s *Server) loadTemplate(c fiber.Ctx) error {
	sess := sessionFrom(c)
	if err := sess.LoadTemplate(c.Context(), c.Params("name")); err != nil {
		return s.templateError(c, err)
	}
	return c.JSON(newSceneResponse(sess.Snapshot()))
}

func (s *Server) deleteTemplate(c fiber.Ctx) error {
	if err := sessionFrom(c).RemoveTemplate(c.Context(), c.Params("name")); err != nil {
		return s.templateError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (s *Server) templateError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, project.ErrTemplateNotFound):
		return errorJSON(c, http.StatusNotFound, err.Error())
	case errors.Is(err, model.ErrEmptyTemplateName):
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	s.log.Error("template request failed", zap.String("path", c.Path()), zap.Error(err))
	return errorJSON(c, http.StatusInternalServerError, "template storage failed")
}

func (s *Server) addToCart(c fiber.Ctx) error {
	t, err := model.ParseFurnitureType(c.Params("type"))
	if err != nil {
		return errorJSON(c, http.StatusNotFound, err.Error())
	}
	sessionFrom(c).AddToCart(c.Context(), t)
	return s.getCart(c)
}

func (s *Server) getCart(c fiber.Ctx) error {
	items, err := s.cart.Items(c.Context())
	if err != nil {
		s.log.Error("failed to read cart", zap.Error(err))
		return errorJSON(c, http.StatusInternalServerError, "failed to read cart")
	}
	count, err := s.cart.Count(c.Context())
	if err != nil {
		s.log.Error("failed to count cart", zap.Error(err))
		return errorJSON(c, http.StatusInternalServerError, "failed to read cart")
	}
	return c.JSON(fiber.Map{"items": items, "count": count})
}
