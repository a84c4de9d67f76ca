// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"github.com/gofiber/fiber/v2"
)

// AddFriend handles POST /api/friends/:username. A first add creates a
// pending request; an add from the other side completes it.
func (s *Server) AddFriend(c *fiber.Ctx) error {
	username := c.Params("username")

	result, err := s.friendService.AddFriend(c.Context(), currentUserID(c), username)
	if err != nil {
		return respondServiceError(c, err)
	}

	message := "Friend request sent"
	if result.Accepted {
		message = "Friend request accepted"
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    message,
		"friendship": result.Friendship,
	})
}

// GetFriends handles GET /api/friends
func (s *Server) GetFriends(c *fiber.Ctx) error {
	friends, err := s.friendService.Friends(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"friends": friends,
		"count":   len(friends),
	})
}

// GetFriendshipStatus handles GET /api/friends/status/:username
func (s *Server) GetFriendshipStatus(c *fiber.Ctx) error {
	username := c.Params("username")

	state, err := s.friendService.State(c.Context(), currentUserID(c), username)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"username": username,
		"status":   state,
	})
}
