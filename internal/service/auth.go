package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Ejsll03/recetas-backend/internal/middleware"
	"github.com/Ejsll03/recetas-backend/internal/models"
	"github.com/Ejsll03/recetas-backend/internal/session"
)

// SessionTTL bounds how long a session cookie stays valid.
const SessionTTL = 7 * 24 * time.Hour

// AuthService owns user accounts and their sessions. The session token is a
// signed JWT whose jti points at a server-side session record, so logout and
// account deletion revoke the cookie immediately.
type AuthService struct {
	db        *gorm.DB
	sessions  session.Store
	jwtSecret string
}

func NewAuthService(db *gorm.DB, sessions session.Store, jwtSecret string) *AuthService {
	return &AuthService{
		db:        db,
		sessions:  sessions,
		jwtSecret: jwtSecret,
	}
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, NewValidationError("username, email and password are required")
	}

	var existing models.User
	err := s.db.WithContext(ctx).
		Where("username = ? OR email = ?", username, email).
		First(&existing).Error
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies the credentials and opens a new session. It returns the
// user and the signed token to put in the session cookie.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	if username == "" || password == "" {
		return nil, "", NewValidationError("username and password are required")
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	sessionID := uuid.NewString()
	if err := s.sessions.Save(ctx, sessionID, user.ID, SessionTTL); err != nil {
		return nil, "", fmt.Errorf("saving session: %w", err)
	}

	token, err := s.signToken(user.ID, sessionID)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// Logout revokes the session behind the token. An already-invalid token is
// not an error; the client is logging out either way.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil
	}
	return s.sessions.Delete(ctx, claims.SessionID)
}

// ValidateSession checks the token signature and that the session is still
// alive in the store.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*middleware.SessionClaims, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}
	userID, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if userID != claims.UserID {
		return nil, session.ErrSessionNotFound
	}
	return claims, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile changes username/email and, when password is non-empty,
// re-hashes the credential. The client omits the password field when the
// user left it blank.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, username, email, password string) (*models.User, error) {
	if username == "" || email == "" {
		return nil, NewValidationError("username and email are required")
	}

	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	var taken models.User
	err = s.db.WithContext(ctx).
		Where("(username = ? OR email = ?) AND id <> ?", username, email, userID).
		First(&taken).Error
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user.Username = username
	user.Email = email
	if password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the user and everything that names them: owned
// recipes (with their memberships and favorites), owned groups, and the
// favorites the user placed on other people's recipes. Runs in one
// transaction, then revokes every live session.
func (s *AuthService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var recipeIDs []uuid.UUID
		if err := tx.Model(&models.Recipe{}).Where("user_id = ?", userID).Pluck("id", &recipeIDs).Error; err != nil {
			return err
		}
		if len(recipeIDs) > 0 {
			if err := tx.Where("recipe_id IN ?", recipeIDs).Delete(&models.RecipeGroupMember{}).Error; err != nil {
				return err
			}
			if err := tx.Where("recipe_id IN ?", recipeIDs).Delete(&models.RecipeFavorite{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", userID).Delete(&models.Recipe{}).Error; err != nil {
				return err
			}
		}

		var groupIDs []uuid.UUID
		if err := tx.Model(&models.RecipeGroup{}).Where("user_id = ?", userID).Pluck("id", &groupIDs).Error; err != nil {
			return err
		}
		if len(groupIDs) > 0 {
			if err := tx.Where("group_id IN ?", groupIDs).Delete(&models.RecipeGroupMember{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", userID).Delete(&models.RecipeGroup{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.RecipeFavorite{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, "id = ?", userID).Error
	})
	if err != nil {
		return err
	}
	return s.sessions.DeleteByUser(ctx, userID)
}

func (s *AuthService) signToken(userID uuid.UUID, sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"jti":     sessionID,
		"exp":     time.Now().Add(SessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) parseToken(tokenString string) (*middleware.SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, err
	}
	sessionID, ok := claims["jti"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	return &middleware.SessionClaims{UserID: userID, SessionID: sessionID}, nil
}
