package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/vncsmyrnk/pulse/docs"
)

type Handlers struct {
	Auth       *AuthHandler
	User       *UserHandler
	Caregiver  *CaregiverHandler
	Form       *FormHandler
	Medication *MedicationHandler
	Health     *HealthHandler
}

func NewHandler(h Handlers, authn Authenticator, allowedOrigins []string, log logrus.FieldLogger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: log, NoColor: true}))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if h.Health != nil {
		r.Get("/health", h.Health.Health)
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	if h.Auth != nil {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.Refresh)
			r.Post("/logout", h.Auth.Logout)
		})
		r.Post("/oauth/callback", h.Auth.GoogleCallback)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(RequireAuth(authn))

		if h.User != nil {
			r.Get("/me", h.User.GetMe)
		}

		if h.Caregiver != nil {
			r.Route("/caregivers", func(r chi.Router) {
				r.Post("/generate", h.Caregiver.Generate)
				r.Post("/add/{token}", h.Caregiver.Add)
				r.Delete("/remove/{caregiverID}", h.Caregiver.Remove)
				r.Get("/list", h.Caregiver.List)
				r.Get("/patients", h.Caregiver.Patients)
			})
		}

		if h.Form != nil {
			r.Route("/forms", func(r chi.Router) {
				r.Post("/", h.Form.Create)
				r.Get("/", h.Form.List)
				r.Get("/all", h.Form.ListAll)
				r.Get("/symptoms", h.Form.Symptoms)
				r.Get("/history", h.Form.History)
				r.Get("/{formID}", h.Form.Get)
				r.Get("/{formID}/shared", h.Form.GetShared)
				r.Post("/{formID}/submit", h.Form.Submit)
				r.Put("/{formID}/questions/{questionID}", h.Form.EditQuestion)
			})
		}

		if h.Medication != nil {
			r.Route("/medications", func(r chi.Router) {
				r.Post("/", h.Medication.Add)
				r.Get("/", h.Medication.List)
				r.Get("/{medicationID}", h.Medication.Get)
				r.Put("/{medicationID}", h.Medication.Update)
				r.Delete("/{medicationID}", h.Medication.Delete)
			})
		}
	})

	return r
}
