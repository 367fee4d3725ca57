package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"campusbook/internal/api"
	"campusbook/internal/auth"
	"campusbook/internal/repository"
	"campusbook/internal/service"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	facilityRepo := repository.NewFacilityRepository(db)
	equipmentRepo := repository.NewEquipmentRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	jobRepo := repository.NewJobRepository(db)

	authSvc := service.NewAuthService(userRepo)
	facilitySvc := service.NewFacilityService(facilityRepo, equipmentRepo)
	senderSvc := service.NewSenderService()
	reservationSvc := service.NewReservationService(reservationRepo, facilityRepo, equipmentRepo, userRepo, senderSvc)
	jobSvc := service.NewJobService(jobRepo)

	authHandler := api.NewAuthHandler(authSvc)
	facilityHandler := api.NewFacilityHandler(facilitySvc)
	userReservationHandler := api.NewUserReservationHandler(reservationSvc)
	adminHandler := api.NewAdminHandler(reservationSvc, authSvc, userRepo)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/auth/signup", authHandler.SignUp).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/facilities", facilityHandler.ListFacilities).Methods("GET")
	r.HandleFunc("/api/facilities/{key}", facilityHandler.GetFacility).Methods("GET")
	r.HandleFunc("/api/facilities/{key}/subvenues", facilityHandler.ListSubVenues).Methods("GET")
	r.HandleFunc("/api/facilities/{key}/equipment", facilityHandler.ListEquipment).Methods("GET")

	// Authenticated endpoints (any role)
	authed := r.PathPrefix("/api").Subrouter()
	authed.Use(auth.RequireAuth)
	authed.HandleFunc("/availability", userReservationHandler.CheckAvailability).Methods("POST")
	authed.HandleFunc("/reservations", userReservationHandler.CreateReservation).Methods("POST")
	authed.HandleFunc("/reservations", userReservationHandler.ListMine).Methods("GET")
	authed.HandleFunc("/reservations/{code}", userReservationHandler.GetReservation).Methods("GET")
	authed.HandleFunc("/reservations/{code}", userReservationHandler.CancelReservation).Methods("DELETE")

	// Admin endpoints (staff may manage reservations, admin everything)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.RequireRole(service.RoleAdmin, service.RoleStaff))
	admin.HandleFunc("/reservations", adminHandler.ListReservations).Methods("GET")
	admin.HandleFunc("/reservations", adminHandler.CreateReservation).Methods("POST")
	admin.HandleFunc("/reservations/{code}", adminHandler.UpdateReservation).Methods("PUT")
	admin.HandleFunc("/reservations/{id:[0-9]+}", adminHandler.DeleteReservation).Methods("DELETE")
	admin.HandleFunc("/stats", adminHandler.Stats).Methods("GET")

	adminOnly := r.PathPrefix("/admin").Subrouter()
	adminOnly.Use(auth.RequireRole(service.RoleAdmin))
	adminOnly.HandleFunc("/facilities", facilityHandler.CreateFacility).Methods("POST")
	adminOnly.HandleFunc("/facilities/{key}", facilityHandler.UpdateFacility).Methods("PUT")
	adminOnly.HandleFunc("/facilities/{key}", facilityHandler.DeleteFacility).Methods("DELETE")
	adminOnly.HandleFunc("/facilities/{key}/subvenues", facilityHandler.CreateSubVenue).Methods("POST")
	adminOnly.HandleFunc("/facilities/{key}/subvenues/{subKey}", facilityHandler.DeleteSubVenue).Methods("DELETE")
	adminOnly.HandleFunc("/facilities/{key}/equipment", facilityHandler.AdminListEquipment).Methods("GET")
	adminOnly.HandleFunc("/facilities/{key}/equipment", facilityHandler.CreateEquipment).Methods("POST")
	adminOnly.HandleFunc("/equipment/{equipmentKey}", facilityHandler.UpdateEquipment).Methods("PUT")
	adminOnly.HandleFunc("/equipment/{equipmentKey}", facilityHandler.DeleteEquipment).Methods("DELETE")
	adminOnly.HandleFunc("/users", adminHandler.CreateUser).Methods("POST")
	adminOnly.HandleFunc("/users", adminHandler.ListUsers).Methods("GET")
	adminOnly.HandleFunc("/users/search", adminHandler.SearchUsers).Methods("GET")
	adminOnly.HandleFunc("/users/{displayID}", adminHandler.UpdateUser).Methods("PUT")
	adminOnly.HandleFunc("/users/{displayID}", adminHandler.DeleteUser).Methods("DELETE")

	c := cron.New()
	_, err = c.AddFunc("*/10 * * * *", func() {
		if err := jobSvc.UpdateFinishedReservations(); err != nil {
			log.Printf("Cron Job: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule reservation sweep: %v", err)
	}
	c.Start()
	defer c.Stop()

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, cors(r))))
}
