package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/fittrack-api/internal/config"
	"github.com/gdg-garage/fittrack-api/internal/logging"
	"github.com/gdg-garage/fittrack-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenType  = "access"
	refreshTokenType = "refresh"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Type   string `json:"typ"`
	jwt.RegisteredClaims
}

const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

type AuthHandler struct {
	db         *gorm.DB
	cfg        *config.Config
	accessTTL  time.Duration
	refreshTTL time.Duration
	log        zerolog.Logger
}

func NewAuthHandler(cfg *config.Config, db *gorm.DB) *AuthHandler {
	h := &AuthHandler{
		db:         db,
		cfg:        cfg,
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		log:        logging.WithComponent("auth"),
	}
	if h.accessTTL <= 0 {
		h.accessTTL = DefaultAccessTokenTTL
	}
	if h.refreshTTL <= 0 {
		h.refreshTTL = DefaultRefreshTokenTTL
	}
	return h
}

// AuthInput is embedded by every operation that needs a signed-in user.
type AuthInput struct {
	Authorization string `header:"Authorization" doc:"Bearer access token"`
}

type UserView struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	Age      int     `json:"age"`
	Weight   float64 `json:"weight"`
	Height   float64 `json:"height"`
	Gender   string  `json:"gender"`
	Activity string  `json:"activity"`
	Goal     string  `json:"goal"`
}

func NewUserView(u models.User) UserView {
	return UserView{
		ID:       u.ID,
		Email:    u.Email,
		Age:      u.Age,
		Weight:   u.Weight,
		Height:   u.Height,
		Gender:   u.Gender,
		Activity: u.Activity,
		Goal:     u.Goal,
	}
}

type RegisterRequest struct {
	Body struct {
		Email    string  `json:"email" format:"email" doc:"Login email" required:"true"`
		Password string  `json:"password" minLength:"6" doc:"Plain text password" required:"true"`
		Age      int     `json:"age" minimum:"1" required:"true"`
		Weight   float64 `json:"weight" exclusiveMinimum:"0" doc:"Weight in kg" required:"true"`
		Height   float64 `json:"height" exclusiveMinimum:"0" doc:"Height in cm" required:"true"`
		Gender   string  `json:"gender" enum:"male,female" required:"true"`
		Activity string  `json:"activity" enum:"sedentary,light,moderate,active,veryactive" required:"true"`
		Goal     string  `json:"goal" doc:"Free-form goal, e.g. lose, maintain, gain" required:"true"`
	}
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type AuthResponse struct {
	Body struct {
		Message string `json:"message,omitempty"`
		TokenPair
		User UserView `json:"user"`
	}
}

func (h *AuthHandler) HandleRegister(ctx context.Context, input *RegisterRequest) (*AuthResponse, error) {
	body := input.Body
	email := strings.ToLower(strings.TrimSpace(body.Email))
	if email == "" || body.Password == "" {
		return nil, huma.Error400BadRequest("Email and password are required")
	}

	var existing int64
	if err := h.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		h.log.Error().Err(err).Msg("Failed to check existing user")
		return nil, huma.Error500InternalServerError("Failed to register user")
	}
	if existing > 0 {
		return nil, huma.Error409Conflict("User already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to register user")
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Age:          body.Age,
		Weight:       body.Weight,
		Height:       body.Height,
		Gender:       body.Gender,
		Activity:     body.Activity,
		Goal:         body.Goal,
	}
	if err := h.db.WithContext(ctx).Create(&user).Error; err != nil {
		h.log.Error().Err(err).Msg("Failed to create user")
		return nil, huma.Error500InternalServerError("Failed to register user")
	}

	pair, err := h.issueTokens(ctx, &user)
	if err != nil {
		return nil, err
	}

	res := &AuthResponse{}
	res.Body.Message = "User created"
	res.Body.TokenPair = pair
	res.Body.User = NewUserView(user)
	return res, nil
}

type LoginRequest struct {
	Body struct {
		Email    string `json:"email" required:"true"`
		Password string `json:"password" required:"true"`
	}
}

func (h *AuthHandler) HandleLogin(ctx context.Context, input *LoginRequest) (*AuthResponse, error) {
	if input.Body.Email == "" || input.Body.Password == "" {
		return nil, huma.Error400BadRequest("Email and password are required")
	}

	var user models.User
	err := h.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(input.Body.Email))).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, huma.Error401Unauthorized("Invalid email or password")
	}
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load user")
		return nil, huma.Error500InternalServerError("Failed to log in")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Body.Password)); err != nil {
		return nil, huma.Error401Unauthorized("Invalid email or password")
	}

	pair, err := h.issueTokens(ctx, &user)
	if err != nil {
		return nil, err
	}

	res := &AuthResponse{}
	res.Body.TokenPair = pair
	res.Body.User = NewUserView(user)
	return res, nil
}

type RefreshRequest struct {
	Body struct {
		RefreshToken string `json:"refreshToken" required:"true"`
	}
}

type RefreshResponse struct {
	Body TokenPair
}

func (h *AuthHandler) HandleRefresh(ctx context.Context, input *RefreshRequest) (*RefreshResponse, error) {
	if input.Body.RefreshToken == "" {
		return nil, huma.Error400BadRequest("Refresh token not provided")
	}

	claims, err := h.ParseToken(input.Body.RefreshToken, refreshTokenType)
	if err != nil {
		return nil, huma.Error401Unauthorized("Invalid refresh token")
	}

	var user models.User
	if err := h.db.WithContext(ctx).First(&user, "id = ?", claims.UserID).Error; err != nil {
		return nil, huma.Error401Unauthorized("Invalid refresh token")
	}
	if user.RefreshToken == nil || subtle.ConstantTimeCompare([]byte(*user.RefreshToken), []byte(input.Body.RefreshToken)) != 1 {
		return nil, huma.Error401Unauthorized("Invalid refresh token")
	}

	pair, err := h.issueTokens(ctx, &user)
	if err != nil {
		return nil, err
	}
	return &RefreshResponse{Body: pair}, nil
}

type LogoutRequest struct {
	AuthInput
	Body struct {
		RefreshToken string `json:"refreshToken" required:"true"`
	}
}

type MessageResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

func (h *AuthHandler) HandleLogout(ctx context.Context, input *LogoutRequest) (*MessageResponse, error) {
	userID, err := h.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}
	if input.Body.RefreshToken == "" {
		return nil, huma.Error400BadRequest("Refresh token not provided")
	}

	err = h.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND refresh_token = ?", userID, input.Body.RefreshToken).
		Update("refresh_token", nil).Error
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to clear refresh token")
		return nil, huma.Error500InternalServerError("Failed to log out")
	}

	res := &MessageResponse{}
	res.Body.Message = "Logged out successfully"
	return res, nil
}

type MeRequest struct {
	AuthInput
}

type MeResponse struct {
	Body UserView
}

func (h *AuthHandler) HandleMe(ctx context.Context, input *MeRequest) (*MeResponse, error) {
	userID, err := h.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := h.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, huma.Error404NotFound("User not found")
	}

	return &MeResponse{Body: NewUserView(user)}, nil
}

// Authorize validates a "Bearer <access token>" header value and returns
// the user id it was issued for.
func (h *AuthHandler) Authorize(ctx context.Context, header string) (string, error) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return "", huma.Error401Unauthorized("Unauthorized: No token provided")
	}

	claims, err := h.ParseToken(strings.TrimSpace(token), accessTokenType)
	if err != nil {
		return "", huma.Error401Unauthorized("Unauthorized: Invalid token")
	}
	return claims.UserID, nil
}

func (h *AuthHandler) GenerateToken(user models.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

// ParseToken verifies signature, expiry and token type.
func (h *AuthHandler) ParseToken(tokenString, tokenType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(h.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Type != tokenType || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// issueTokens creates a new token pair and stores the refresh token on the
// user, invalidating the previous one.
func (h *AuthHandler) issueTokens(ctx context.Context, user *models.User) (TokenPair, error) {
	access, err := h.GenerateToken(*user, accessTokenType, h.accessTTL)
	if err != nil {
		return TokenPair{}, huma.Error500InternalServerError("Failed to generate token")
	}
	refresh, err := h.GenerateToken(*user, refreshTokenType, h.refreshTTL)
	if err != nil {
		return TokenPair{}, huma.Error500InternalServerError("Failed to generate token")
	}

	if err := h.db.WithContext(ctx).Model(user).Update("refresh_token", refresh).Error; err != nil {
		h.log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to store refresh token")
		return TokenPair{}, huma.Error500InternalServerError("Failed to generate token")
	}
	user.RefreshToken = &refresh

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
