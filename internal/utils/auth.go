package utils

import (
  "context"
  "fmt"
  "golang.org/x/crypto/bcrypt"
  "github.com/singhHariom1/Studysync-AI/internal/logger"
  "github.com/singhHariom1/Studysync-AI/internal/normalization"
  "github.com/singhHariom1/Studysync-AI/internal/repos"
  "github.com/singhHariom1/Studysync-AI/internal/types"
)

func InputValidation(ctx context.Context, ffor string, userRepo repos.UserRepo, log *logger.Logger, user *types.User) error {
  validatedFor := normalization.ParseInputString(ffor)
  if validatedFor == "" {
    return fmt.Errorf("For string is nil, needs to be login or signup")
  }
  switch validatedFor {
  case "signup":
    if err := handleSignupInputValidation(ctx, userRepo, log, user); err != nil {
      return err
    }
  case "login":
    if err := handleLoginInputValidation(ctx, log, user); err != nil {
      return err
    }
  }
  return nil
}

func handleSignupInputValidation(ctx context.Context, userRepo repos.UserRepo, log *logger.Logger, user *types.User) error {
  if user == nil {
    return fmt.Errorf("No user given, cannot proceed with signup")
  }
  if user.Email == "" {
    return fmt.Errorf("Email and password are required")
  }
  if user.Password == "" {
    return fmt.Errorf("Email and password are required")
  }
  emailExists, err := userRepo.EmailExists(ctx, nil, user.Email)
  if err != nil {
    return fmt.Errorf("Failed to check user email: %w", err)
  }
  if emailExists {
    return types.ErrEmailInUse
  }
  return nil
}

func handleLoginInputValidation(ctx context.Context, log *logger.Logger, user *types.User) error {
  if user == nil || user.Email == "" || user.Password == "" {
    return fmt.Errorf("Email and password are required")
  }
  return nil
}

func HashPassword(ctx context.Context, log *logger.Logger, user *types.User) error {
  hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
  if err != nil {
    return fmt.Errorf("Failed to hash password")
  }
  user.Password = string(hashedPassword)
  return nil
}

func NormalizeUserFields(ctx context.Context, user *types.User) {
  user.Email = normalization.ParseInputString(user.Email)
  user.Name = normalization.ParseDisplayString(user.Name)
}
