package services

import (
  "context"
  "fmt"
  "time"

  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "golang.org/x/crypto/bcrypt"
  "gorm.io/gorm"

  "github.com/singhHariom1/Studysync-AI/internal/logger"
  "github.com/singhHariom1/Studysync-AI/internal/normalization"
  "github.com/singhHariom1/Studysync-AI/internal/repos"
  "github.com/singhHariom1/Studysync-AI/internal/requestdata"
  "github.com/singhHariom1/Studysync-AI/internal/types"
  "github.com/singhHariom1/Studysync-AI/internal/utils"
)

type JWTClaims struct {
  jwt.RegisteredClaims
}

type AuthService interface {
  SignupUser(ctx context.Context, user *types.User) (string, error)
  LoginUser(ctx context.Context, email, password string) (*types.User, string, error)
  GetMe(ctx context.Context) (*types.User, error)
  SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
  GetSessionTTL() time.Duration
}

type authService struct {
  db            *gorm.DB
  log           *logger.Logger
  userRepo      repos.UserRepo
  jwtSecretKey  string
  sessionTTL    time.Duration
}

func NewAuthService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, jwtSecretKey string, sessionTTL time.Duration) AuthService {
  serviceLog := log.With("service", "AuthService")
  return &authService{
    db:           db,
    log:          serviceLog,
    userRepo:     userRepo,
    jwtSecretKey: jwtSecretKey,
    sessionTTL:   sessionTTL,
  }
}

// SignupUser creates the user and returns a signed session token for the
// cookie. The stored password is always the bcrypt hash.
func (as *authService) SignupUser(ctx context.Context, user *types.User) (string, error) {
  utils.NormalizeUserFields(ctx, user)
  if vErr := utils.InputValidation(ctx, "signup", as.userRepo, as.log, user); vErr != nil {
    return "", vErr
  }
  if hErr := utils.HashPassword(ctx, as.log, user); hErr != nil {
    return "", hErr
  }

  err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    user.ID = uuid.New()
    if _, ucErr := as.userRepo.Create(ctx, tx, []*types.User{user}); ucErr != nil {
      return fmt.Errorf("Failed to create user: %w", ucErr)
    }
    return nil
  })
  if err != nil {
    return "", err
  }
  as.log.Info("User signed up", "user_id", user.ID)
  return as.generateSessionToken(user)
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (*types.User, string, error) {
  email = normalization.ParseInputString(email)
  if vErr := utils.InputValidation(ctx, "login", as.userRepo, as.log, &types.User{Email: email, Password: password}); vErr != nil {
    return nil, "", vErr
  }

  users, usErr := as.userRepo.GetByEmails(ctx, nil, []string{email})
  if usErr != nil {
    return nil, "", fmt.Errorf("Error retrieving user by email: %w", usErr)
  }
  if len(users) == 0 {
    return nil, "", types.ErrInvalidCredentials
  }

  user := users[0]
  if hErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); hErr != nil {
    return nil, "", types.ErrInvalidCredentials
  }

  token, genErr := as.generateSessionToken(user)
  if genErr != nil {
    return nil, "", fmt.Errorf("Generate session token error: %w", genErr)
  }
  as.log.Info("User logged in", "user_id", user.ID)
  return user, token, nil
}

func (as *authService) GetMe(ctx context.Context) (*types.User, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, fmt.Errorf("Not authenticated")
  }
  users, err := as.userRepo.GetByIDs(ctx, nil, []uuid.UUID{rd.UserID})
  if err != nil {
    return nil, fmt.Errorf("Failed to load user: %w", err)
  }
  if len(users) == 0 {
    return nil, fmt.Errorf("User not found")
  }
  return users[0], nil
}

func (as *authService) generateSessionToken(user *types.User) (string, error) {
  claims := JWTClaims{
    RegisteredClaims: jwt.RegisteredClaims{
      Subject:   user.ID.String(),
      ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.sessionTTL)),
      IssuedAt:  jwt.NewNumericDate(time.Now()),
    },
  }
  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  if tokenString == "" {
    return ctx, fmt.Errorf("No token, authorization denied")
  }
  parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
    return []byte(as.jwtSecretKey), nil
  })
  if err != nil {
    return ctx, fmt.Errorf("Token is not valid: %w", err)
  }
  claims, ok := parsedToken.Claims.(*JWTClaims)
  if !ok || !parsedToken.Valid {
    return ctx, fmt.Errorf("Token is not valid")
  }
  userID, err := uuid.Parse(claims.Subject)
  if err != nil {
    return ctx, fmt.Errorf("Invalid user id in token: %w", err)
  }
  rd := &requestdata.RequestData{
    TokenString: tokenString,
    UserID:      userID,
  }
  return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetSessionTTL() time.Duration {
  return as.sessionTTL
}
