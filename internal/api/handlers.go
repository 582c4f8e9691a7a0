package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/growthkit/linkedin-assistant/internal/settings"
)

type settingsRequest struct {
	EnableLearning  bool   `json:"enableLearning"`
	PreferredTone   string `json:"preferredTone" validate:"required"`
	PreferredLength string `json:"preferredLength" validate:"required,oneof=short medium long"`
}

type apiKeyRequest struct {
	APIKey string `json:"apiKey" validate:"required"`
}

type sampleRequest struct {
	Content string `json:"content" validate:"required"`
}

type generateRequest struct {
	PostID string `json:"postId" validate:"required"`
	Tone   string `json:"tone"`
}

type scheduleCommentRequest struct {
	ScheduledTime string `json:"scheduledTime" validate:"required"`
}

type scheduledPostRequest struct {
	Content       string               `json:"content" validate:"required"`
	ScheduledTime string               `json:"scheduledTime" validate:"required"`
	Prediction    *settings.Prediction `json:"prediction"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled posted failed"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "scheduledTime must be an RFC 3339 timestamp")
	}
	return t, nil
}

func queryInt(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a non-negative integer")
	}
	return n, nil
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) getSettings(c echo.Context) error {
	return c.JSON(http.StatusOK, s.svc.Settings())
}

func (s *Server) putSettings(c echo.Context) error {
	var req settingsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	v := settings.AISettings{
		EnableLearning:  req.EnableLearning,
		PreferredTone:   req.PreferredTone,
		PreferredLength: req.PreferredLength,
	}
	if err := s.svc.SaveSettings(c.Request().Context(), v); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

func (s *Server) getAPIKey(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"configured": s.svc.HasAPIKey()})
}

func (s *Server) putAPIKey(c echo.Context) error {
	var req apiKeyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := s.svc.SetAPIKey(c.Request().Context(), req.APIKey); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"configured": true})
}

func (s *Server) deleteAPIKey(c echo.Context) error {
	if err := s.svc.SetAPIKey(c.Request().Context(), ""); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) listSamples(c echo.Context) error {
	return c.JSON(http.StatusOK, s.svc.Samples())
}

func (s *Server) addSample(c echo.Context) error {
	var req sampleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	sample, err := s.svc.AddSample(c.Request().Context(), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sample)
}

func (s *Server) searchSamples(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}
	limit, err := queryInt(c, "limit", 5)
	if err != nil {
		return err
	}
	results, err := s.svc.SearchSamples(q, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, results)
}

func (s *Server) deleteSample(c echo.Context) error {
	removed, err := s.svc.DeleteSample(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if !removed {
		return errNotFound
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) feed(c echo.Context) error {
	limit, err := queryInt(c, "limit", 10)
	if err != nil {
		return err
	}
	posts, err := s.svc.FetchPosts(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

func (s *Server) listComments(c echo.Context) error {
	return c.JSON(http.StatusOK, s.svc.Comments())
}

func (s *Server) generateComment(c echo.Context) error {
	var req generateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	comment, err := s.svc.GenerateComment(c.Request().Context(), req.PostID, req.Tone)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}

func (s *Server) postComment(c echo.Context) error {
	ok, err := s.svc.PostComment(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: ok})
}

func (s *Server) scheduleComment(c echo.Context) error {
	var req scheduleCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	at, err := parseTime(req.ScheduledTime)
	if err != nil {
		return err
	}
	ok, err := s.svc.ScheduleComment(c.Request().Context(), c.Param("id"), at)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: ok})
}

func (s *Server) listScheduledPosts(c echo.Context) error {
	return c.JSON(http.StatusOK, s.svc.ScheduledPosts())
}

func (s *Server) addScheduledPost(c echo.Context) error {
	var req scheduledPostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	at, err := parseTime(req.ScheduledTime)
	if err != nil {
		return err
	}
	post, err := s.svc.AddScheduledPost(c.Request().Context(), settings.ScheduledPostInput{
		Content:       req.Content,
		ScheduledTime: at,
		Prediction:    req.Prediction,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

func (s *Server) updateScheduledPost(c echo.Context) error {
	var req statusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	id := c.Param("id")
	ok, err := s.svc.UpdateScheduledPostStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return err
	}
	if !ok {
		return errNotFound
	}
	for _, p := range s.svc.ScheduledPosts() {
		if p.ID == id {
			return c.JSON(http.StatusOK, p)
		}
	}
	return errNotFound
}

func (s *Server) deleteScheduledPost(c echo.Context) error {
	ok, err := s.svc.DeleteScheduledPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if !ok {
		return errNotFound
	}
	return c.NoContent(http.StatusNoContent)
}
