package web

import (
	"encoding/json"
	"html/template"
	"net/http"
	"net/url"

	"github.com/AyoubMahfoud/SharingMezzi-sub000/api"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/users"
)

const contentTypeHTML = "text/html; charset=utf-8"

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="it">
<head><meta charset="utf-8"><title>{{.Title}} - {{.AppName}}</title></head>
<body>
<h1>{{.Title}}</h1>
{{if .User}}<p>Ciao, {{.User.FullName}} ({{.User.Email}}) — credito {{printf "%.2f" .User.Credit}} €, eco-punti {{.User.EcoPoints}}</p>
<p><a href="/Auth/Logout">Logout</a></p>{{end}}
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
</body>
</html>`))

var loginTmpl = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html lang="it">
<head><meta charset="utf-8"><title>Login - {{.AppName}}</title></head>
<body>
<h1>Accedi</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="/Auth/Login">
<input type="hidden" name="ReturnUrl" value="{{.ReturnURL}}">
<label>Email <input type="email" name="email" value="{{.Email}}" required></label>
<label>Password <input type="password" name="password" required></label>
<button type="submit">Login</button>
</form>
</body>
</html>`))

// PageData feeds the shared page template.
type PageData struct {
	Title   string
	AppName string
	User    *users.Profile
	Error   string
}

// LoginPageData feeds the login template.
type LoginPageData struct {
	AppName   string
	ReturnURL string
	Error     string
	Email     string // Preserve email on error
}

// IndexHandler renders the public landing page
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// "GET /" also matches unregistered paths; keep them 404s.
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		profile, _ := s.gateway.CurrentUser(w, r)
		s.renderPage(w, PageData{Title: s.config.GetAppName(), AppName: s.config.GetAppName(), User: profile})
	}
}

// LoginPageHandler displays the login page (GET /Login)
func (s *Server) LoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := LoginPageData{
			AppName:   s.config.GetAppName(),
			ReturnURL: localReturnURL(r.URL.Query().Get("ReturnUrl")),
			Error:     r.URL.Query().Get("error"),
			Email:     r.URL.Query().Get("email"),
		}
		w.Header().Set("Content-Type", contentTypeHTML)
		if err := loginTmpl.Execute(w, data); err != nil {
			s.log.Err(err).Msg("failed to render login template")
		}
	}
}

// LoginSubmissionHandler processes the login form (POST /Auth/Login)
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, RouteLogin+"?error="+url.QueryEscape("invalid form data"), http.StatusFound)
			return
		}

		email := r.FormValue("email")
		password := r.FormValue("password")
		returnURL := localReturnURL(r.FormValue("ReturnUrl"))

		result := s.gateway.Login(w, r, email, password)
		if !result.Success {
			target := RouteLogin + "?error=" + url.QueryEscape(result.Message) + "&email=" + url.QueryEscape(email)
			if returnURL != "" {
				target += "&ReturnUrl=" + url.QueryEscape(returnURL)
			}
			http.Redirect(w, r, target, http.StatusFound)
			return
		}

		if returnURL == "" {
			returnURL = RouteDashboard
		}
		http.Redirect(w, r, returnURL, http.StatusFound)
	}
}

// RegisterSubmissionHandler processes the signup form and logs the new
// user straight in (POST /Auth/Register)
func (s *Server) RegisterSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, RouteLogin+"?error="+url.QueryEscape("invalid form data"), http.StatusFound)
			return
		}

		result := s.gateway.Register(w, r, api.RegisterRequest{
			Email:     r.FormValue("email"),
			Password:  r.FormValue("password"),
			FirstName: r.FormValue("firstName"),
			LastName:  r.FormValue("lastName"),
		})
		if !result.Success {
			target := RouteLogin + "?error=" + url.QueryEscape(result.Message) + "&email=" + url.QueryEscape(r.FormValue("email"))
			http.Redirect(w, r, target, http.StatusFound)
			return
		}

		http.Redirect(w, r, RouteDashboard, http.StatusFound)
	}
}

// LogoutHandler clears both identity caches (GET /Auth/Logout)
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.gateway.Logout(w, r)
		http.Redirect(w, r, RouteLogin, http.StatusFound)
	}
}

// SetSessionHandler stores a token obtained out-of-band by browser-side
// scripts into the session (POST /Auth/SetSession)
func (s *Server) SetSessionHandler() http.HandlerFunc {
	type setSessionRequest struct {
		Token string `json:"token"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req setSessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
			http.Error(w, `{"success":false}`, http.StatusBadRequest)
			return
		}
		s.gateway.SetSessionToken(w, r, req.Token)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true}`))
	}
}

// DashboardHandler renders the landing page after login
func (s *Server) DashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, _ := s.gateway.CurrentUser(w, r)
		s.renderPage(w, PageData{Title: "Dashboard", AppName: s.config.GetAppName(), User: profile})
	}
}

// ProfilePageHandler renders the rider's profile page
func (s *Server) ProfilePageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, ok := s.gateway.CurrentUser(w, r)
		if !ok {
			s.renderPage(w, PageData{Title: "Profilo", AppName: s.config.GetAppName(), Error: "profilo non disponibile, riprova più tardi"})
			return
		}
		s.renderPage(w, PageData{Title: "Profilo", AppName: s.config.GetAppName(), User: profile})
	}
}

// PageHandler renders a titled page with the cached profile.
func (s *Server) PageHandler(title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, _ := s.gateway.CurrentUser(w, r)
		s.renderPage(w, PageData{Title: title, AppName: s.config.GetAppName(), User: profile})
	}
}

func (s *Server) renderPage(w http.ResponseWriter, data PageData) {
	w.Header().Set("Content-Type", contentTypeHTML)
	if err := pageTmpl.Execute(w, data); err != nil {
		s.log.Err(err).Str("page", data.Title).Msg("failed to render page template")
	}
}
