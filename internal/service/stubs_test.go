package service

import (
	"context"

	"campusnet/internal/models"
)

// Function-field stubs for the repository interfaces. Tests set only the
// fields they need; calling an unset field panics, which is the point.

type stubUserRepo struct {
	getByID       func(ctx context.Context, id uint) (*models.User, error)
	getByUsername func(ctx context.Context, username string) (*models.User, error)
	create        func(ctx context.Context, user *models.User) error
	update        func(ctx context.Context, user *models.User) error
	list          func(ctx context.Context, limit, offset int) ([]models.User, error)
	search        func(ctx context.Context, query string, limit int) ([]models.User, error)
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByID(ctx, id)
}
func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsername(ctx, username)
}
func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	return s.create(ctx, user)
}
func (s *stubUserRepo) Update(ctx context.Context, user *models.User) error {
	return s.update(ctx, user)
}
func (s *stubUserRepo) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.list(ctx, limit, offset)
}
func (s *stubUserRepo) Search(ctx context.Context, query string, limit int) ([]models.User, error) {
	return s.search(ctx, query, limit)
}

type stubFriendRepo struct {
	create          func(ctx context.Context, friendship *models.Friendship) error
	getByID         func(ctx context.Context, id uint) (*models.Friendship, error)
	getBetweenUsers func(ctx context.Context, userA, userB uint) (*models.Friendship, error)
	updateStatus    func(ctx context.Context, id uint, status models.FriendshipStatus) error
	getFriends      func(ctx context.Context, userID uint) ([]models.User, error)
	getFriendIDs    func(ctx context.Context, userID uint) ([]uint, error)
}

func (s *stubFriendRepo) Create(ctx context.Context, friendship *models.Friendship) error {
	return s.create(ctx, friendship)
}
func (s *stubFriendRepo) GetByID(ctx context.Context, id uint) (*models.Friendship, error) {
	return s.getByID(ctx, id)
}
func (s *stubFriendRepo) GetBetweenUsers(ctx context.Context, userA, userB uint) (*models.Friendship, error) {
	return s.getBetweenUsers(ctx, userA, userB)
}
func (s *stubFriendRepo) UpdateStatus(ctx context.Context, id uint, status models.FriendshipStatus) error {
	return s.updateStatus(ctx, id, status)
}
func (s *stubFriendRepo) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	return s.getFriends(ctx, userID)
}
func (s *stubFriendRepo) GetFriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.getFriendIDs(ctx, userID)
}

type stubPostRepo struct {
	create       func(ctx context.Context, post *models.Post) error
	getByID      func(ctx context.Context, id uint) (*models.Post, error)
	listByAuthor func(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error)
	listFeed     func(ctx context.Context, viewerID uint, limit, offset int) ([]models.Post, error)
}

func (s *stubPostRepo) Create(ctx context.Context, post *models.Post) error {
	return s.create(ctx, post)
}
func (s *stubPostRepo) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByID(ctx, id)
}
func (s *stubPostRepo) ListByAuthor(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error) {
	return s.listByAuthor(ctx, userID, limit, offset)
}
func (s *stubPostRepo) ListFeed(ctx context.Context, viewerID uint, limit, offset int) ([]models.Post, error) {
	return s.listFeed(ctx, viewerID, limit, offset)
}

type stubNotificationRepo struct {
	create      func(ctx context.Context, notification *models.Notification) error
	listForUser func(ctx context.Context, userID uint, limit, offset int) ([]models.Notification, error)
	countUnread func(ctx context.Context, userID uint) (int64, error)
	markRead    func(ctx context.Context, userID, id uint) error
}

func (s *stubNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	return s.create(ctx, notification)
}
func (s *stubNotificationRepo) ListForUser(ctx context.Context, userID uint, limit, offset int) ([]models.Notification, error) {
	return s.listForUser(ctx, userID, limit, offset)
}
func (s *stubNotificationRepo) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return s.countUnread(ctx, userID)
}
func (s *stubNotificationRepo) MarkRead(ctx context.Context, userID, id uint) error {
	return s.markRead(ctx, userID, id)
}

type stubPublisher struct {
	published []publishedEvent
}

type publishedEvent struct {
	userID uint
	event  string
	data   interface{}
}

func (s *stubPublisher) PublishUser(ctx context.Context, userID uint, event string, data interface{}) error {
	s.published = append(s.published, publishedEvent{userID: userID, event: event, data: data})
	return nil
}
