// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"campusnet/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userRepo.GetByID(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:username. Identity fields and the
// friend list are always visible; posts are included only when the viewer is
// an accepted friend or the owner, otherwise the response carries a
// posts_hidden marker instead.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	username := c.Params("username")
	viewerID := currentUserID(c)

	user, err := s.userService.GetByUsername(c.Context(), username)
	if err != nil {
		return respondServiceError(c, err)
	}

	canView, err := s.friendService.CanViewPosts(c.Context(), viewerID, user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}

	state, err := s.friendService.State(c.Context(), viewerID, username)
	if err != nil {
		return respondServiceError(c, err)
	}

	friends, err := s.friendService.Friends(c.Context(), user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}

	response := fiber.Map{
		"user":              user,
		"friends":           friends,
		"friendship_status": state,
	}
	if canView {
		posts, err := s.postService.ListByAuthor(c.Context(), user.ID, 20, 0)
		if err != nil {
			return respondServiceError(c, err)
		}
		response["posts"] = posts
	} else {
		response["posts_hidden"] = true
	}

	return c.JSON(response)
}

// GetUserPosts handles GET /api/users/:username/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	username := c.Params("username")
	viewerID := currentUserID(c)

	user, err := s.userService.GetByUsername(c.Context(), username)
	if err != nil {
		return respondServiceError(c, err)
	}

	canView, err := s.friendService.CanViewPosts(c.Context(), viewerID, user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if !canView {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewUnauthorizedError("Posts are only visible to friends"))
	}

	p := parsePagination(c, 20)
	posts, err := s.postService.ListByAuthor(c.Context(), user.ID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"posts":  posts,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// SearchUsers handles GET /api/users/search?username=
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	query := c.Query("username")
	viewerID := currentUserID(c)

	users, err := s.userService.Search(c.Context(), query, c.QueryInt("limit", 20))
	if err != nil {
		return respondServiceError(c, err)
	}

	// Annotate each hit with the viewer's friendship state so the client can
	// render the right action button.
	results := make([]fiber.Map, 0, len(users))
	for _, user := range users {
		state, err := s.friendService.State(c.Context(), viewerID, user.Username)
		if err != nil {
			return respondServiceError(c, err)
		}
		results = append(results, fiber.Map{
			"user":              user,
			"friendship_status": state,
		})
	}

	return c.JSON(fiber.Map{
		"results": results,
	})
}
