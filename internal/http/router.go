package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bacembenhfayehd/manarja-sub001/internal/auth"
	"github.com/bacembenhfayehd/manarja-sub001/internal/http/importcsv"
	"github.com/bacembenhfayehd/manarja-sub001/internal/http/timeentry"
	"github.com/bacembenhfayehd/manarja-sub001/internal/http/timesheet"
)

func New(
	entriesV1 *timeentry.Handler,
	timesheetsV1 *timesheet.Handler,
	importV1 *importcsv.Handler,
	jwtSecret string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(jwtSecret))

		r.Route("/entries", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			entriesV1.Routes(r)
		})

		r.Route("/timesheets", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			timesheetsV1.Routes(r)
		})

		r.Route("/import", importV1.Routes)
	})

	return router
}
