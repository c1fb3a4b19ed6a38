package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	authdomain "microblog/backend/internal/domain/auth"
	postdomain "microblog/backend/internal/domain/post"
	authusecase "microblog/backend/internal/usecase/auth"
)

func (s *Server) registerRoutes() {
	s.router.Handle("/health", http.HandlerFunc(s.handleHealth))
	s.router.Handle("/auth/register", http.HandlerFunc(s.handleRegister))
	s.router.Handle("/auth/login", http.HandlerFunc(s.handleLogin))
	s.router.Handle("/posts", http.HandlerFunc(s.handlePosts))
	s.router.Handle("/posts/", http.HandlerFunc(s.handlePostSubresource))
	s.router.Handle("/users/", http.HandlerFunc(s.handleUserProfile))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
		Bio      string `json:"bio"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	user, token, err := s.authService.Register(r.Context(), authusecase.RegisterInput{
		Email:    payload.Email,
		Password: payload.Password,
		Name:     payload.Name,
		Bio:      payload.Bio,
	})
	if err != nil {
		switch {
		case errors.Is(err, authdomain.ErrEmailExists):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"user":  user,
		"token": token,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	token, user, err := s.authService.Login(r.Context(), authdomain.Credentials{
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		if errors.Is(err, authdomain.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid email or password")
		} else {
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":  user,
		"token": token,
	})
}

func (s *Server) handlePosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		posts, err := s.postService.Feed(ctx)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if posts == nil {
			posts = []*postdomain.Post{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"posts": posts})
	case http.MethodPost:
		user, ok := s.requireUser(w, r)
		if !ok {
			return
		}
		var payload struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}
		created, err := s.postService.Create(ctx, user.ID, payload.Content)
		if err != nil {
			s.writePostError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"post": created})
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

// handlePostSubresource dispatches /posts/{id}/like and /posts/{id}/comments.
func (s *Server) handlePostSubresource(w http.ResponseWriter, r *http.Request) {
	remainder := strings.Trim(strings.TrimPrefix(r.URL.Path, "/posts/"), "/")
	segments := strings.Split(remainder, "/")
	if len(segments) != 2 || strings.TrimSpace(segments[0]) == "" {
		writeError(w, http.StatusNotFound, "resource not found")
		return
	}

	postID := strings.TrimSpace(segments[0])
	switch segments[1] {
	case "like":
		s.handleLike(w, r, postID)
	case "comments":
		s.handleComments(w, r, postID)
	default:
		writeError(w, http.StatusNotFound, "resource not found")
	}
}

func (s *Server) handleLike(w http.ResponseWriter, r *http.Request, postID string) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	liked, err := s.postService.ToggleLike(r.Context(), user.ID, postID)
	if err != nil {
		s.writePostError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"liked": liked})
}

func (s *Server) handleComments(w http.ResponseWriter, r *http.Request, postID string) {
	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		comments, err := s.postService.Comments(ctx, postID)
		if err != nil {
			s.writePostError(w, err)
			return
		}
		if comments == nil {
			comments = []*postdomain.Comment{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"comments": comments})
	case http.MethodPost:
		user, ok := s.requireUser(w, r)
		if !ok {
			return
		}
		var payload struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}
		comment, err := s.postService.AddComment(ctx, postID, user.ID, payload.Content)
		if err != nil {
			s.writePostError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"comment": comment})
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleUserProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/users/"), "/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "resource not found")
		return
	}

	profile, err := s.userService.Profile(r.Context(), id)
	if err != nil {
		if errors.Is(err, authdomain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": profile})
}

// requireUser authenticates the request via the bearer token. On failure it
// writes a 401 and returns false; the response shape does not reveal
// whether the token was missing, malformed, tampered, or expired beyond
// the absence of the header itself.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (*authdomain.User, bool) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		writeError(w, http.StatusUnauthorized, "authorization token required")
		return nil, false
	}

	user, err := s.authService.VerifyToken(r.Context(), token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid or expired token")
		return nil, false
	}
	return user, true
}

func (s *Server) writePostError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, postdomain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, postdomain.ErrEmptyContent):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
