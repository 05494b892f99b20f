package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/singhHariom1/Studysync-AI/internal/services"
  "github.com/singhHariom1/Studysync-AI/internal/types"
)

const sessionCookieName = "token"

type AuthHandler struct {
  authService   services.AuthService
  secureCookies bool
}

func NewAuthHandler(authService services.AuthService, secureCookies bool) *AuthHandler {
  return &AuthHandler{authService: authService, secureCookies: secureCookies}
}

func (ah *AuthHandler) setSessionCookie(c *gin.Context, token string) {
  maxAge := int(ah.authService.GetSessionTTL().Seconds())
  c.SetSameSite(http.SameSiteLaxMode)
  if ah.secureCookies {
    c.SetSameSite(http.SameSiteNoneMode)
  }
  c.SetCookie(sessionCookieName, token, maxAge, "/", "", ah.secureCookies, true)
}

func (ah *AuthHandler) Signup(c *gin.Context) {
  var req struct {
    Name        string      `json:"name"`
    Email       string      `json:"email"`
    Password    string      `json:"password"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
    return
  }
  user := types.User{
    Name:     req.Name,
    Email:    req.Email,
    Password: req.Password,
  }
  token, err := ah.authService.SignupUser(c.Request.Context(), &user)
  if err != nil {
    if errors.Is(err, types.ErrEmailInUse) {
      c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
      return
    }
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  ah.setSessionCookie(c, token)
  c.JSON(http.StatusCreated, gin.H{"user": user, "message": "Signup successful"})
}

func (ah *AuthHandler) Login(c *gin.Context) {
  var req struct {
    Email       string      `json:"email"`
    Password    string      `json:"password"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
    return
  }
  user, token, err := ah.authService.LoginUser(c.Request.Context(), req.Email, req.Password)
  if err != nil {
    if errors.Is(err, types.ErrInvalidCredentials) {
      c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
      return
    }
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  ah.setSessionCookie(c, token)
  c.JSON(http.StatusOK, gin.H{"user": user, "message": "Login successful"})
}

func (ah *AuthHandler) Logout(c *gin.Context) {
  c.SetSameSite(http.SameSiteLaxMode)
  c.SetCookie(sessionCookieName, "", -1, "/", "", ah.secureCookies, true)
  c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

func (ah *AuthHandler) GetMe(c *gin.Context) {
  user, err := ah.authService.GetMe(c.Request.Context())
  if err != nil {
    c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
    return
  }
  c.JSON(http.StatusOK, gin.H{"user": user})
}
