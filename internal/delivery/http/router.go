package http

import (
	"log/slog"
	"net/http"

	"collegeevents/internal/delivery/http/controllers"
	"collegeevents/internal/delivery/http/middleware"
	"collegeevents/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Controllers groups the HTTP controllers mounted by NewRouter.
type Controllers struct {
	Auth         *controllers.AuthController
	User         *controllers.UserController
	Venue        *controllers.VenueController
	Event        *controllers.EventController
	Participant  *controllers.ParticipantController
	Registration *controllers.RegistrationController
	Reconcile    *controllers.ReconcileController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	auth := middleware.RequireAuth(verifier, logger)
	withRole := func(h http.HandlerFunc, roles ...string) http.HandlerFunc {
		return auth(middleware.RequireRole(roles...)(h))
	}
	const (
		admin     = domain.RoleAdmin
		organizer = domain.RoleOrganizer
		student   = domain.RoleStudent
	)

	// Auth
	mux.HandleFunc("POST /api/auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /api/auth/login", c.Auth.Login)

	// Users
	mux.HandleFunc("GET /api/users", withRole(c.User.ListUsers, admin))
	mux.HandleFunc("POST /api/users", withRole(c.User.CreateUser, admin))
	mux.HandleFunc("GET /api/users/{userID}", withRole(c.User.GetUser, admin))
	mux.HandleFunc("PUT /api/users/{userID}", withRole(c.User.UpdateUser, admin))
	mux.HandleFunc("DELETE /api/users/{userID}", withRole(c.User.DeleteUser, admin))

	// Venues
	mux.HandleFunc("GET /api/venues", auth(c.Venue.ListVenues))
	mux.HandleFunc("GET /api/venues/{venueID}", auth(c.Venue.GetVenue))
	mux.HandleFunc("POST /api/venues", withRole(c.Venue.CreateVenue, admin))
	mux.HandleFunc("PUT /api/venues/{venueID}", withRole(c.Venue.UpdateVenue, admin))
	mux.HandleFunc("DELETE /api/venues/{venueID}", withRole(c.Venue.DeleteVenue, admin))

	// Events
	mux.HandleFunc("GET /api/events", auth(c.Event.ListEvents))
	mux.HandleFunc("GET /api/events/{eventID}", auth(c.Event.GetEvent))
	mux.HandleFunc("POST /api/events", withRole(c.Event.CreateEvent, organizer))
	mux.HandleFunc("PUT /api/events/{eventID}", withRole(c.Event.UpdateEvent, organizer))
	mux.HandleFunc("DELETE /api/events/{eventID}", withRole(c.Event.DeleteEvent, organizer))
	mux.HandleFunc("GET /api/organizer/events", withRole(c.Event.ListMyEvents, organizer))

	// Registrations and sheet import
	mux.HandleFunc("GET /api/events/{eventID}/registrations", withRole(c.Registration.ListEventRegistrations, organizer))
	mux.HandleFunc("POST /api/events/{eventID}/registrations", withRole(c.Registration.RegisterParticipant, organizer))
	mux.HandleFunc("POST /api/events/{eventID}/reconcile", withRole(c.Reconcile.Reconcile, organizer))
	mux.HandleFunc("GET /api/registrations/{registrationID}", withRole(c.Registration.GetRegistration, organizer, admin))
	mux.HandleFunc("PUT /api/registrations/{registrationID}", withRole(c.Registration.UpdateRegistration, organizer))
	mux.HandleFunc("DELETE /api/registrations/{registrationID}", withRole(c.Registration.DeleteRegistration, organizer))

	// Participants
	mux.HandleFunc("GET /api/participants", withRole(c.Participant.ListParticipants, organizer, admin))
	mux.HandleFunc("GET /api/participants/{participantID}", withRole(c.Participant.GetParticipant, organizer, admin))
	mux.HandleFunc("PUT /api/participants/{participantID}", withRole(c.Participant.UpdateParticipant, organizer, admin))
	mux.HandleFunc("DELETE /api/participants/{participantID}", withRole(c.Participant.DeleteParticipant, organizer, admin))

	// Student
	mux.HandleFunc("GET /api/student/events", withRole(c.Event.ListEvents, student))
	mux.HandleFunc("GET /api/student/registered-events", withRole(c.Registration.ListRegisteredEvents, student))
	mux.HandleFunc("PUT /api/student/profile", withRole(c.User.UpdateProfile, student))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
