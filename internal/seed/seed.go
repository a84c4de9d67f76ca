// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"campusnet/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is assigned to every seeded user so developers can log in
// as any of them.
const DefaultPassword = "Seed!Passw0rd123"

var colleges = []string{
	"State University", "City College", "Tech Institute", "Riverside College",
	"Northfield University", "Lakeview College", "Hillcrest University",
}

var postTopics = []string{
	"Just finished my %s assignment, finally.",
	"Anyone else at the %s lecture today?",
	"Study group for %s forming in the library, come through.",
	"The %s exam was rougher than expected.",
	"Can't believe how good the campus food was today. %s approved.",
}

// Options configures a seeding run.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seeder populates the database with generated data.
type Seeder struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db: db,
		r:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded data. Table order matters for foreign keys.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, table := range []string{"notifications", "friendships", "posts", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// Run seeds users, friendships, posts and a few notifications.
func (s *Seeder) Run(opts Options) error {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users, err := s.seedUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	log.Printf("Created %d users", len(users))

	accepted, err := s.seedFriendships(users)
	if err != nil {
		return fmt.Errorf("failed to seed friendships: %w", err)
	}
	log.Printf("Created %d friendships", accepted)

	if err := s.seedPosts(users, opts.NumPosts); err != nil {
		return fmt.Errorf("failed to seed posts: %w", err)
	}
	log.Printf("Created %d posts", opts.NumPosts)

	return nil
}

func (s *Seeder) seedUsers(count int) ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		user := models.User{
			Name:     first + " " + last,
			Username: s.username(first, last, i),
			Password: string(hashed),
			Age:      18 + s.r.Intn(12),
			College:  colleges[s.r.Intn(len(colleges))],
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// username keeps within the 4-32 character policy and stays unique through
// the index suffix.
func (s *Seeder) username(first, last string, index int) string {
	base := strings.ToLower(first + "." + last)
	if len(base) > 26 {
		base = base[:26]
	}
	return fmt.Sprintf("%s%d", base, index)
}

// seedFriendships builds a sparse mesh: each user adds a handful of later
// users, and roughly two thirds of those adds are reciprocated.
func (s *Seeder) seedFriendships(users []models.User) (int, error) {
	accepted := 0
	for i := range users {
		adds := 1 + s.r.Intn(4)
		for a := 0; a < adds; a++ {
			j := s.r.Intn(len(users))
			if j == i {
				continue
			}
			// Each pair gets at most one row, regardless of direction.
			var existing int64
			err := s.db.Model(&models.Friendship{}).
				Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
					users[i].ID, users[j].ID, users[j].ID, users[i].ID).
				Count(&existing).Error
			if err != nil {
				return accepted, err
			}
			if existing > 0 {
				continue
			}
			status := models.FriendshipStatusPending
			if s.r.Intn(3) > 0 {
				status = models.FriendshipStatusAccepted
			}
			friendship := models.Friendship{
				RequesterID: users[i].ID,
				AddresseeID: users[j].ID,
				Status:      status,
			}
			if err := s.db.Create(&friendship).Error; err != nil {
				return accepted, err
			}
			notification := models.Notification{
				UserID:  users[j].ID,
				Type:    models.NotificationTypeFriendRequest,
				Message: fmt.Sprintf("%s added you as a friend", users[i].Username),
				Read:    s.r.Intn(2) == 0,
			}
			if err := s.db.Create(&notification).Error; err != nil {
				return accepted, err
			}
			if status == models.FriendshipStatusAccepted {
				accepted++
			}
		}
	}
	return accepted, nil
}

func (s *Seeder) seedPosts(users []models.User, count int) error {
	for i := 0; i < count; i++ {
		author := users[s.r.Intn(len(users))]
		template := postTopics[s.r.Intn(len(postTopics))]
		post := models.Post{
			UserID:    author.ID,
			Content:   fmt.Sprintf(template, gofakeit.BookTitle()),
			CreatedAt: time.Now().Add(-time.Duration(s.r.Intn(90*24)) * time.Hour),
		}
		if err := s.db.Create(&post).Error; err != nil {
			return err
		}
	}
	return nil
}
