package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/recipekeeper/internal/common"
	"github.com/dmitrijs2005/recipekeeper/internal/server/auth"
	"github.com/gorilla/mux"
)

// loginFailedMessage is deliberately identical for unknown-user and
// wrong-password failures.
const loginFailedMessage = "Invalid username or password."

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (s *Server) renderPage(w http.ResponseWriter, name string, data any) {
	if err := s.renderer.RenderTemplate(w, name, data); err != nil {
		s.logger.Error(context.Background(), "template render failed", "template", name, "error", err.Error())
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// index renders the login view, or forwards straight to the dashboard when
// the browser already holds a valid session. An unverifiable cookie is
// cleared on the spot.
func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(common.SessionCookieName); err == nil {
		if _, err := auth.GetIdentityFromToken(cookie.Value, s.jwtSecret); err == nil {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		s.clearSessionCookie(w)
	}
	s.renderPage(w, "login.html", nil)
}

func (s *Server) loginPage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, "login.html", nil)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	token, err := s.accounts.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.renderPage(w, "login.html", map[string]string{"Error": loginFailedMessage})
			return
		}
		s.logger.Error(r.Context(), "login failed", "error", err.Error())
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	s.setSessionCookie(w, token)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) registerPage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, "register.html", nil)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	_, err := s.accounts.Register(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			w.WriteHeader(http.StatusBadRequest)
			s.renderPage(w, "register.html", map[string]string{"Error": "Username already exists"})
			return
		}
		s.logger.Error(r.Context(), "registration failed", "error", err.Error())
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	s.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	ident := identityFromContext(r.Context())
	s.renderPage(w, "dashboard.html", map[string]any{"User": ident})
}

// searchRecipes relays the provider's search response verbatim.
func (s *Server) searchRecipes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	result, err := s.provider.Search(r.Context(), query)
	if err != nil {
		s.writeJSONError(w, http.StatusBadGateway, "upstream error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(result)
}

func (s *Server) createRecipe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}

	ident := identityFromContext(r.Context())

	_, err := s.recipes.Create(r.Context(), ident.AccountID,
		r.FormValue("title"), r.FormValue("ingredients"), r.FormValue("instructions"))
	if err != nil {
		s.logger.Error(r.Context(), "recipe creation failed", "error", err.Error())
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/my-recipes", http.StatusSeeOther)
}

func (s *Server) myRecipes(w http.ResponseWriter, r *http.Request) {
	ident := identityFromContext(r.Context())

	result, err := s.recipes.ListOwn(r.Context(), ident.AccountID)
	if err != nil {
		s.logger.Error(r.Context(), "recipe listing failed", "error", err.Error())
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	s.renderPage(w, "my-recipes.html", map[string]any{"User": ident, "Recipes": result})
}

// deleteRecipe removes the caller's recipe. The response does not disclose
// whether the id existed: deleting another owner's recipe, or a nonexistent
// one, succeeds identically.
func (s *Server) deleteRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "invalid recipe id")
		return
	}

	ident := identityFromContext(r.Context())

	if err := s.recipes.Delete(r.Context(), id, ident.AccountID); err != nil {
		s.logger.Error(r.Context(), "recipe deletion failed", "error", err.Error())
		s.writeJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "recipe deleted"})
}

func (s *Server) adminUsers(w http.ResponseWriter, r *http.Request) {
	ident := identityFromContext(r.Context())

	result, err := s.accounts.List(r.Context(), ident)
	if err != nil {
		if errors.Is(err, common.ErrorForbidden) {
			s.writeJSONError(w, http.StatusForbidden, "forbidden")
			return
		}
		s.logger.Error(r.Context(), "account listing failed", "error", err.Error())
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	type row struct {
		ID       int64
		Username string
		Role     string
	}
	rows := make([]row, 0, len(result))
	for _, a := range result {
		rows = append(rows, row{ID: a.ID, Username: a.Username, Role: a.Role})
	}

	s.renderPage(w, "admin-users.html", map[string]any{"User": ident, "Users": rows})
}

func (s *Server) recipeDetail(w http.ResponseWriter, r *http.Request) {
	ident := identityFromContext(r.Context())

	info, err := s.provider.Information(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Error fetching recipe details", http.StatusBadGateway)
		return
	}

	s.renderPage(w, "recipe-detail.html", map[string]any{"User": ident, "Recipe": info})
}
