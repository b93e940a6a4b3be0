// Package directory resolves chat identities to network addresses.
package directory

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/rudransh-shrivastava/peer-chat/internal/conversation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("identity not found")

type Address struct {
	Host string
	Port int
}

func (a Address) String() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// WithPort returns the same host on another port, e.g. the file side channel.
func (a Address) WithPort(port int) Address {
	return Address{Host: a.Host, Port: port}
}

// Resolver is the only part of the directory the transport side consumes.
type Resolver interface {
	Resolve(ctx context.Context, identity string) (Address, error)
}

type Store struct {
	DB *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// Register creates identity or moves it to a new address. Identities that could not key
// a conversation are refused.
func (s *Store) Register(ctx context.Context, identity, host string, port int) error {
	if err := conversation.ValidateIdentity(identity); err != nil {
		return err
	}
	if host == "" {
		return errors.New("host is required")
	}
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid port %d", port)
	}

	user := User{Username: identity, Host: host, Port: port}
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"host", "port", "updated_at"}),
	}).Create(&user).Error
}

func (s *Store) Remove(ctx context.Context, identity string) error {
	res := s.DB.WithContext(ctx).Where("username = ?", identity).Delete(&User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Find(ctx context.Context, identity string) (User, error) {
	var user User
	err := s.DB.WithContext(ctx).First(&user, "username = ?", identity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, ErrNotFound
	}
	return user, err
}

func (s *Store) List(ctx context.Context) ([]User, error) {
	users := []User{}
	err := s.DB.WithContext(ctx).Order("username").Find(&users).Error
	return users, err
}

// Resolve reads the current address every time; callers must not cache it.
func (s *Store) Resolve(ctx context.Context, identity string) (Address, error) {
	user, err := s.Find(ctx, identity)
	if err != nil {
		return Address{}, err
	}
	return Address{Host: user.Host, Port: user.Port}, nil
}

var _ Resolver = (*Store)(nil)
