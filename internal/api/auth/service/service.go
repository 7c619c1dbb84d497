package authService

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/varshasramu/Smart-library-assistant/internal/api/auth"
	"github.com/varshasramu/Smart-library-assistant/internal/entity"
	"github.com/varshasramu/Smart-library-assistant/pkg/bcrypt"
)

const AccessTokenTTL = 8 * time.Hour

type AuthService interface {
	Login(c context.Context, req auth.LoginRequest) (auth.LoginResponse, error)
}

type staffAccount struct {
	passwordHash string
	role         string
}

type authService struct {
	log         *logrus.Logger
	bcryptUtils bcrypt.IBcrypt
	accounts    map[string]staffAccount
}

// defaultStaff is the fixed set of desk accounts. Passwords are hashed once at
// start-up and never kept in clear text afterwards.
var defaultStaff = []struct {
	username string
	password string
	role     string
}{
	{"admin", "library123", entity.RoleAdministrator},
	{"librarian", "password123", entity.RoleLibrarian},
	{"staff", "staff123", entity.RoleLibrarian},
}

func New(log *logrus.Logger, bcryptUtils bcrypt.IBcrypt) (AuthService, error) {
	accounts := make(map[string]staffAccount, len(defaultStaff))
	for _, s := range defaultStaff {
		hash, err := bcryptUtils.HashPassword(s.password)
		if err != nil {
			return nil, err
		}
		accounts[strings.ToLower(s.username)] = staffAccount{passwordHash: hash, role: s.role}
	}

	return &authService{
		log:         log,
		bcryptUtils: bcryptUtils,
		accounts:    accounts,
	}, nil
}
