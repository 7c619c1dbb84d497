package authService

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/varshasramu/Smart-library-assistant/internal/api/auth"
	"github.com/varshasramu/Smart-library-assistant/pkg/bcrypt"
	contextPkg "github.com/varshasramu/Smart-library-assistant/pkg/context"
	jwtPkg "github.com/varshasramu/Smart-library-assistant/pkg/jwt"
)

func (s *authService) Login(c context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	requestID := contextPkg.GetRequestID(c)
	username := strings.ToLower(strings.TrimSpace(req.Username))

	account, ok := s.accounts[username]
	if !ok {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"username":   username,
		}).Warn("Login attempt for unknown staff account")
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if err := s.bcryptUtils.ComparePassword(account.passwordHash, req.Password); err != nil {
		if bcrypt.IsMismatch(err) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"username":   username,
			}).Warn("Login attempt with wrong password")
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to compare password hash")
		return auth.LoginResponse{}, err
	}

	token, exp, err := jwtPkg.Sign(map[string]interface{}{
		"username": username,
		"role":     account.role,
	}, AccessTokenTTL)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to sign access token")
		return auth.LoginResponse{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"username":   username,
		"role":       account.role,
	}).Info("Staff logged in")

	return auth.LoginResponse{
		AccessToken: token,
		ExpiresAt:   time.Unix(exp, 0).UTC(),
		Username:    username,
		Role:        account.role,
	}, nil
}
