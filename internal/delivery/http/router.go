package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"hellomiami/internal/delivery/http/controllers"
	"hellomiami/internal/delivery/http/middleware"
	"hellomiami/internal/domain"
)

// Controllers bundles the route handlers the router wires up.
type Controllers struct {
	Auth     *controllers.AuthController
	Member   *controllers.MemberController
	Event    *controllers.EventController
	DemoSlot *controllers.DemoSlotController
	Project  *controllers.ProjectController
	Survey   *controllers.SurveyController
}

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)
	admin := func(next http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.RequireAdmin(next))
	}

	// Auth
	mux.HandleFunc("POST /auth/code", c.Auth.RequestLoginCode)
	mux.HandleFunc("POST /auth/verify", c.Auth.VerifyLoginCode)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	// Members
	mux.HandleFunc("GET /members", auth(c.Member.ListMembers))
	mux.HandleFunc("GET /members/me", auth(c.Member.GetMe))
	mux.HandleFunc("PATCH /members/me", auth(c.Member.UpdateMe))
	mux.HandleFunc("POST /members/me/avatar", auth(c.Member.NewAvatarUpload))
	mux.HandleFunc("GET /members/me/demo-slots", auth(c.DemoSlot.ListMySlots))
	mux.HandleFunc("GET /members/{memberID}", auth(c.Member.GetMember))
	mux.HandleFunc("GET /members/{memberID}/projects", c.Project.ListMemberProjects)

	// Events
	mux.HandleFunc("GET /events", c.Event.ListUpcomingEvents)
	mux.HandleFunc("POST /events", admin(c.Event.CreateEvent))
	mux.HandleFunc("GET /events/{eventID}", c.Event.GetEvent)

	// Demo slots
	mux.HandleFunc("POST /events/{eventID}/demo-slots", auth(c.DemoSlot.RequestSlot))
	mux.HandleFunc("GET /events/{eventID}/demo-slots", admin(c.DemoSlot.ListEventSlots))
	mux.HandleFunc("GET /demo-slots/{slotID}", auth(c.DemoSlot.GetSlot))
	mux.HandleFunc("PATCH /demo-slots/{slotID}/status", auth(c.DemoSlot.TransitionSlot))

	// Projects
	mux.HandleFunc("GET /projects", c.Project.ListProjects)
	mux.HandleFunc("POST /projects", auth(c.Project.CreateProject))
	mux.HandleFunc("GET /projects/{projectID}", c.Project.GetProject)
	mux.HandleFunc("PATCH /projects/{projectID}", auth(c.Project.UpdateProject))
	mux.HandleFunc("DELETE /projects/{projectID}", auth(c.Project.DeleteProject))
	mux.HandleFunc("POST /projects/{projectID}/screenshot", auth(c.Project.NewScreenshotUpload))

	// Surveys
	mux.HandleFunc("GET /surveys", auth(c.Survey.ListOpenSurveys))
	mux.HandleFunc("POST /surveys", admin(c.Survey.CreateSurvey))
	mux.HandleFunc("POST /surveys/{surveyID}/responses", auth(c.Survey.SubmitResponse))
	mux.HandleFunc("GET /surveys/{surveyID}/responses", admin(c.Survey.ListResponses))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
