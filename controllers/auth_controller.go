package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/hongphuc2004/Music-Flow/models"
	"github.com/hongphuc2004/Music-Flow/pkg/response"
	"github.com/hongphuc2004/Music-Flow/platform/config"
	"github.com/hongphuc2004/Music-Flow/platform/middleware"
	"github.com/hongphuc2004/Music-Flow/repository"
)

type AuthController struct {
	users UserStore
	cfg   *config.Config
}

func NewAuthController(users UserStore, cfg *config.Config) *AuthController {
	return &AuthController{users: users, cfg: cfg}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (a *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailWith(c, http.StatusBadRequest, "Invalid registration data", err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		response.Fail(c, http.StatusInternalServerError, "Registration failed")
		return
	}

	user := models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: string(hash),
	}

	if err := a.users.Create(c.Request.Context(), &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			response.Fail(c, http.StatusConflict, "Email already registered")
			return
		}
		log.Printf("Error creating user: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Registration failed", err)
		return
	}

	token, err := middleware.NewToken([]byte(a.cfg.JWTSecret), user.ID.Hex(), a.cfg.TokenTTL)
	if err != nil {
		log.Printf("Error signing token: %v", err)
		response.Fail(c, http.StatusInternalServerError, "Could not generate token")
		return
	}

	response.Created(c, "Registered successfully", gin.H{
		"user":  user,
		"token": token,
	})
}

func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailWith(c, http.StatusBadRequest, "Invalid login data", err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := a.users.FindByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Same message as a bad password: do not reveal which part failed.
			response.Fail(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		log.Printf("Error looking up user: %v", err)
		response.FailWith(c, http.StatusInternalServerError, "Login failed", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		response.Fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := middleware.NewToken([]byte(a.cfg.JWTSecret), user.ID.Hex(), a.cfg.TokenTTL)
	if err != nil {
		log.Printf("Error signing token: %v", err)
		response.Fail(c, http.StatusInternalServerError, "Could not generate token")
		return
	}

	response.Message(c, "Login successful", gin.H{
		"user":  user,
		"token": token,
	})
}
