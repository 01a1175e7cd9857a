package http

import (
	"context"
	stdhttp "net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"mansion/app/internal/db"
	"mansion/app/internal/entry"
	"mansion/app/internal/rooms"
)

const errorFallbackMessage = "We couldn't process your request right now."

type enterInput struct {
	Body struct {
		Name string `json:"name" doc:"Visitor name whispered at the door"`
		Code string `json:"code" doc:"Permission code"`
	}
}

type sessionResponse struct {
	Status int
	Body   struct {
		Token string `json:"token"`
	}
}

type leaveInput struct {
	Token string `header:"X-Mansion-Token"`
}

type listRoomsInput struct {
	Parent string `query:"parent" doc:"Parent room id; omit for the root scope"`
}

type roomListResponse struct {
	Body struct {
		Rooms []rooms.Room `json:"rooms"`
	}
}

type createRoomInput struct {
	Body struct {
		Name        string  `json:"name"`
		Icon        string  `json:"icon,omitempty"`
		Description string  `json:"description,omitempty"`
		RoomType    string  `json:"room_type,omitempty"`
		ParentID    *string `json:"parent_id,omitempty"`
	}
}

type roomResponse struct {
	Status int
	Body   struct {
		Room    rooms.Room        `json:"room"`
		Profile rooms.TypeProfile `json:"profile"`
	}
}

type slugInput struct {
	Slug string `path:"slug"`
}

type roomIDInput struct {
	ID string `path:"id"`
}

type updateRoomInput struct {
	ID   string `path:"id"`
	Body struct {
		Name        *string `json:"name,omitempty"`
		Icon        *string `json:"icon,omitempty"`
		Description *string `json:"description,omitempty"`
		Content     *string `json:"content,omitempty"`
		RoomType    *string `json:"room_type,omitempty"`
	}
}

type breadcrumbsResponse struct {
	Body struct {
		Breadcrumbs []rooms.Room `json:"breadcrumbs"`
	}
}

type healthResponse struct {
	Status int
	Body   struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}
}

func (s *Server) registerEntryRoutes() {
	huma.Post(s.api, "/entry", s.enterHandler, func(op *huma.Operation) {
		op.Summary = "Enter the mansion"
		op.DefaultStatus = stdhttp.StatusCreated
	})
	huma.Delete(s.api, "/entry", s.leaveHandler, func(op *huma.Operation) {
		op.Summary = "Leave the mansion"
		op.DefaultStatus = stdhttp.StatusNoContent
	})
}

func (s *Server) registerRoomRoutes() {
	huma.Get(s.api, "/rooms", s.listRoomsHandler, guarded("List rooms in a scope"))
	huma.Post(s.api, "/rooms", s.createRoomHandler, guarded("Create a room"), func(op *huma.Operation) {
		op.DefaultStatus = stdhttp.StatusCreated
	})
	huma.Get(s.api, "/rooms/{slug}", s.getRoomHandler, guarded("Fetch a room by slug"))
	huma.Patch(s.api, "/rooms/{id}", s.updateRoomHandler, guarded("Update room metadata or content"))
	huma.Delete(s.api, "/rooms/{id}", s.deleteRoomHandler, guarded("Demolish a room"), func(op *huma.Operation) {
		op.DefaultStatus = stdhttp.StatusNoContent
	})
	huma.Get(s.api, "/rooms/{id}/breadcrumbs", s.breadcrumbsHandler, guarded("Resolve a room's ancestry"))
}

func (s *Server) registerHealthRoute() {
	huma.Get(s.api, "/healthz", s.healthHandler, func(op *huma.Operation) {
		op.Summary = "Health check"
	})
}

func guarded(summary string) func(op *huma.Operation) {
	return func(op *huma.Operation) {
		op.Summary = summary
		if op.Metadata == nil {
			op.Metadata = map[string]any{}
		}
		op.Metadata[metadataGuarded] = true
	}
}

func (s *Server) enterHandler(ctx context.Context, input *enterInput) (*sessionResponse, error) {
	token, err := s.gatekeeper.Enter(input.Body.Name, input.Body.Code)
	if err != nil {
		if eris.Is(err, entry.ErrAccessDenied) {
			return nil, huma.Error401Unauthorized("The mansion does not know you.")
		}
		s.recordError(ctx, err, "entering the mansion", nil)
		return nil, huma.Error500InternalServerError(errorFallbackMessage)
	}

	resp := &sessionResponse{Status: stdhttp.StatusCreated}
	resp.Body.Token = token
	return resp, nil
}

func (s *Server) leaveHandler(_ context.Context, input *leaveInput) (*struct{}, error) {
	s.gatekeeper.Leave(strings.TrimSpace(input.Token))
	return &struct{}{}, nil
}

func (s *Server) listRoomsHandler(ctx context.Context, input *listRoomsInput) (*roomListResponse, error) {
	var parentID *string
	if trimmed := strings.TrimSpace(input.Parent); trimmed != "" {
		parentID = &trimmed
	}

	listed, err := s.rooms.Rooms(ctx, parentID)
	if err != nil {
		s.recordError(ctx, err, "listing rooms", logrus.Fields{"parent": input.Parent})
		return nil, s.translateError(err)
	}

	resp := &roomListResponse{}
	resp.Body.Rooms = listed
	if resp.Body.Rooms == nil {
		resp.Body.Rooms = []rooms.Room{}
	}
	return resp, nil
}

func (s *Server) createRoomHandler(ctx context.Context, input *createRoomInput) (*roomResponse, error) {
	created, err := s.rooms.AddRoom(ctx, rooms.NewRoom{
		Name:        input.Body.Name,
		Icon:        input.Body.Icon,
		Description: input.Body.Description,
		RoomType:    rooms.RoomType(input.Body.RoomType),
		ParentID:    input.Body.ParentID,
	})
	if err != nil {
		s.recordError(ctx, err, "creating room", logrus.Fields{"name": input.Body.Name})
		return nil, s.translateError(err)
	}

	return newRoomResponse(stdhttp.StatusCreated, created), nil
}

func (s *Server) getRoomHandler(ctx context.Context, input *slugInput) (*roomResponse, error) {
	room, err := s.rooms.Room(ctx, input.Slug)
	if err != nil {
		if !eris.Is(err, rooms.ErrNotFound) {
			s.recordError(ctx, err, "loading room", logrus.Fields{"slug": input.Slug})
		}
		return nil, s.translateError(err)
	}

	return newRoomResponse(stdhttp.StatusOK, room), nil
}

func (s *Server) updateRoomHandler(ctx context.Context, input *updateRoomInput) (*roomResponse, error) {
	updates := rooms.RoomUpdate{
		Name:        input.Body.Name,
		Icon:        input.Body.Icon,
		Description: input.Body.Description,
		Content:     input.Body.Content,
	}
	if input.Body.RoomType != nil {
		roomType := rooms.RoomType(*input.Body.RoomType)
		updates.RoomType = &roomType
	}

	updated, err := s.rooms.UpdateRoom(ctx, input.ID, updates)
	if err != nil {
		if !eris.Is(err, rooms.ErrNotFound) {
			s.recordError(ctx, err, "updating room", logrus.Fields{"id": input.ID})
		}
		return nil, s.translateError(err)
	}

	return newRoomResponse(stdhttp.StatusOK, updated), nil
}

func (s *Server) deleteRoomHandler(ctx context.Context, input *roomIDInput) (*struct{}, error) {
	if err := s.rooms.DeleteRoom(ctx, input.ID); err != nil {
		if !eris.Is(err, rooms.ErrNotFound) && !eris.Is(err, rooms.ErrDefaultRoom) {
			s.recordError(ctx, err, "deleting room", logrus.Fields{"id": input.ID})
		}
		return nil, s.translateError(err)
	}
	return &struct{}{}, nil
}

func (s *Server) breadcrumbsHandler(ctx context.Context, input *roomIDInput) (*breadcrumbsResponse, error) {
	chain, err := s.rooms.Breadcrumbs(ctx, input.ID)
	if err != nil {
		s.recordError(ctx, err, "resolving breadcrumbs", logrus.Fields{"id": input.ID})
		return nil, s.translateError(err)
	}

	resp := &breadcrumbsResponse{}
	resp.Body.Breadcrumbs = chain
	if resp.Body.Breadcrumbs == nil {
		resp.Body.Breadcrumbs = []rooms.Room{}
	}
	return resp, nil
}

func (s *Server) healthHandler(ctx context.Context, _ *struct{}) (*healthResponse, error) {
	resp := &healthResponse{}
	resp.Body.Status = "ok"
	resp.Body.Database = "ok"

	sqlDB, err := db.SQLDB(s.db)
	if err != nil {
		s.recordError(ctx, err, "obtaining sql db", nil)
		resp.Body.Status = "degraded"
		resp.Body.Database = "error"
		resp.Status = stdhttp.StatusServiceUnavailable
	} else if pingErr := sqlDB.PingContext(ctx); pingErr != nil {
		s.recordError(ctx, pingErr, "pinging database", nil)
		resp.Body.Status = "degraded"
		resp.Body.Database = "error"
		resp.Status = stdhttp.StatusServiceUnavailable
	}

	if resp.Status == 0 {
		resp.Status = stdhttp.StatusOK
	}

	return resp, nil
}

func newRoomResponse(status int, room *rooms.Room) *roomResponse {
	resp := &roomResponse{Status: status}
	resp.Body.Room = *room
	resp.Body.Profile = rooms.Profile(room.RoomType)
	return resp
}

func (s *Server) translateError(err error) error {
	switch {
	case eris.Is(err, rooms.ErrNotFound):
		return huma.Error404NotFound("This area does not exist.")
	case eris.Is(err, rooms.ErrDefaultRoom):
		return huma.Error409Conflict("Default rooms cannot be demolished.")
	case eris.Is(err, rooms.ErrCorruptLineage):
		return huma.Error500InternalServerError("The room's ancestry is malformed.")
	}

	cause := strings.ToLower(eris.Cause(err).Error())
	switch {
	case strings.Contains(cause, "required"),
		strings.Contains(cause, "blank"),
		strings.Contains(cause, "unknown room type"):
		return huma.Error400BadRequest(eris.Cause(err).Error())
	default:
		return huma.Error500InternalServerError(errorFallbackMessage)
	}
}
