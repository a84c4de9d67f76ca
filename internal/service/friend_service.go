package service

import (
	"context"
	"fmt"

	"campusnet/internal/middleware"
	"campusnet/internal/models"
	"campusnet/internal/notifications"
	"campusnet/internal/observability"
	"campusnet/internal/repository"
)

// Friendship states as seen from a viewer's side of the pair.
const (
	StateNone            = "none"
	StatePendingOutgoing = "pending_outgoing"
	StatePendingIncoming = "pending_incoming"
	StateAccepted        = "accepted"
)

// AddFriendResult reports what an add actually did, since the same call
// either opens a pending request or completes one.
type AddFriendResult struct {
	Friendship *models.Friendship `json:"friendship"`
	Accepted   bool               `json:"accepted"`
}

// FriendService implements the friendship state machine. Each user pair has
// exactly one row; an add from the other side promotes pending to accepted.
type FriendService struct {
	friends           repository.FriendRepository
	users             repository.UserRepository
	notificationStore repository.NotificationRepository
	notifier          notifications.Publisher
}

// NewFriendService creates a new FriendService. notifier may be nil when
// realtime delivery is unavailable.
func NewFriendService(
	friends repository.FriendRepository,
	users repository.UserRepository,
	notificationStore repository.NotificationRepository,
	notifier notifications.Publisher,
) *FriendService {
	return &FriendService{
		friends:           friends,
		users:             users,
		notificationStore: notificationStore,
		notifier:          notifier,
	}
}

// AddFriend records that requester added the named user. First add creates a
// pending row and notifies the addressee; a reciprocal add from the other
// side flips the row to accepted and notifies the original requester.
// Repeating an add the same user already made is a conflict.
func (s *FriendService) AddFriend(ctx context.Context, requesterID uint, addresseeUsername string) (*AddFriendResult, error) {
	span, ctx := observability.NewSpan(ctx, "friends.add")
	defer span.End()

	requester, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	addressee, err := s.users.GetByUsername(ctx, addresseeUsername)
	if err != nil {
		return nil, err
	}
	if addressee == nil {
		return nil, models.NewNotFoundError("User", addresseeUsername)
	}
	if addressee.ID == requesterID {
		middleware.FriendRequestOutcomes.WithLabelValues("rejected_self").Inc()
		return nil, models.NewValidationError("Cannot add yourself as a friend")
	}

	existing, err := s.friends.GetBetweenUsers(ctx, requesterID, addressee.ID)
	if err != nil {
		return nil, err
	}

	switch {
	case existing == nil:
		friendship := &models.Friendship{
			RequesterID: requesterID,
			AddresseeID: addressee.ID,
			Status:      models.FriendshipStatusPending,
		}
		if err := s.friends.Create(ctx, friendship); err != nil {
			return nil, err
		}
		s.notify(ctx, addressee.ID, models.NotificationTypeFriendRequest,
			fmt.Sprintf("%s added you as a friend", requester.Username),
			notifications.EventFriendRequest, requester.Username)
		middleware.FriendRequestOutcomes.WithLabelValues("requested").Inc()
		return &AddFriendResult{Friendship: friendship, Accepted: false}, nil

	case existing.RequesterID == requesterID:
		// Same direction again, whatever the status.
		middleware.FriendRequestOutcomes.WithLabelValues("duplicate").Inc()
		return nil, models.NewConflictError("Friend already added")

	case existing.Status == models.FriendshipStatusAccepted:
		middleware.FriendRequestOutcomes.WithLabelValues("duplicate").Inc()
		return nil, models.NewConflictError("Friend already added")

	default:
		// Reciprocal add completes the pending request.
		if err := s.friends.UpdateStatus(ctx, existing.ID, models.FriendshipStatusAccepted); err != nil {
			return nil, err
		}
		existing.Status = models.FriendshipStatusAccepted
		s.notify(ctx, existing.RequesterID, models.NotificationTypeFriendAccept,
			fmt.Sprintf("%s accepted your friend request", requester.Username),
			notifications.EventFriendAccept, requester.Username)
		middleware.FriendRequestOutcomes.WithLabelValues("accepted").Inc()
		return &AddFriendResult{Friendship: existing, Accepted: true}, nil
	}
}

// notify stores a notification row and best-effort publishes the realtime
// event. Delivery failures are logged, never surfaced to the caller.
func (s *FriendService) notify(ctx context.Context, userID uint, notifType, message, event, fromUsername string) {
	n := &models.Notification{
		UserID:  userID,
		Type:    notifType,
		Message: message,
	}
	if err := s.notificationStore.Create(ctx, n); err != nil {
		middleware.Logger.ErrorContext(ctx, "failed to store notification",
			"user_id", userID, "type", notifType, "error", err)
	}
	if s.notifier != nil {
		if err := s.notifier.PublishUser(ctx, userID, event, map[string]string{"from": fromUsername}); err != nil {
			middleware.Logger.WarnContext(ctx, "failed to publish event",
				"user_id", userID, "event", event, "error", err)
		}
	}
}

// Friends lists the accepted friends of a user.
func (s *FriendService) Friends(ctx context.Context, userID uint) ([]models.User, error) {
	friends, err := s.friends.GetFriends(ctx, userID)
	if err != nil {
		return nil, err
	}
	if friends == nil {
		friends = []models.User{}
	}
	return friends, nil
}

// State reports the friendship between the viewer and the named user from
// the viewer's perspective.
func (s *FriendService) State(ctx context.Context, viewerID uint, username string) (string, error) {
	other, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if other == nil {
		return "", models.NewNotFoundError("User", username)
	}

	friendship, err := s.friends.GetBetweenUsers(ctx, viewerID, other.ID)
	if err != nil {
		return "", err
	}
	if friendship == nil {
		return StateNone, nil
	}
	if friendship.Status == models.FriendshipStatusAccepted {
		return StateAccepted, nil
	}
	if friendship.RequesterID == viewerID {
		return StatePendingOutgoing, nil
	}
	return StatePendingIncoming, nil
}

// CanViewPosts reports whether viewer may read owner's posts. Users always
// see their own; everyone else needs an accepted friendship.
func (s *FriendService) CanViewPosts(ctx context.Context, viewerID, ownerID uint) (bool, error) {
	if viewerID == ownerID {
		return true, nil
	}
	friendship, err := s.friends.GetBetweenUsers(ctx, viewerID, ownerID)
	if err != nil {
		return false, err
	}
	return friendship != nil && friendship.Status == models.FriendshipStatusAccepted, nil
}
