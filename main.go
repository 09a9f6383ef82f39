package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"staynest-bend/api/listing"
	"staynest-bend/api/staff"
	"staynest-bend/api/support"
	"staynest-bend/api/user"
	"staynest-bend/dao"
	"staynest-bend/models"
	"staynest-bend/utils"
	"staynest-bend/utils/notifications"
	"staynest-bend/utils/uploads"

	"github.com/dgrijalva/jwt-go"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	userDAO        *dao.UserDAO
	staffDAO       *dao.StaffDAO
	listingDAO     *dao.ListingDAO
	ticketDAO      *dao.TicketDAO
	factoryDAO     *dao.FactoryDAO
	userService    *user.Service
	staffService   *staff.Service
	listingService *listing.Service
	supportService *support.Service
	jwtSecret      string
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	jwtSecret = os.Getenv("SECRET")
	if jwtSecret == "" {
		log.Fatal("SECRET not set")
	}

	client, err := initDatabase()
	if err != nil {
		log.Fatalf("failed to initialize database, err: %v", err)
	}

	defer func() {
		if err = client.Disconnect(context.TODO()); err != nil {
			log.Fatal(err)
		}
	}()

	if err := initServices(client.Database(dbName())); err != nil {
		log.Fatalf("failed to initialize services, err: %v", err)
	}

	r := initRoutes()
	r.Use(func(next http.Handler) http.Handler {
		return handlers.LoggingHandler(os.Stdout, next)
	})

	port := os.Getenv("PORT")
	log.Println("Running server on port", port)

	header := handlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type", "Authorization"})
	methods := handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"})
	origins := handlers.AllowedOrigins([]string{"*"})

	h := handlers.CORS(header, methods, origins)
	if err := http.ListenAndServe(":"+port, h(r)); err != nil {
		log.Fatal(err)
	}
}

func dbName() string {
	name := os.Getenv("DB_NAME")
	if name == "" {
		name = "staynest"
	}
	return name
}

func initRoutes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok", "message": "staynest-bend"}`))
	})

	usersRouter := r.PathPrefix("/api/users").Subrouter()
	listingsRouter := r.PathPrefix("/api/listings").Subrouter()
	wantedRouter := r.PathPrefix("/api/wanted-listings").Subrouter()
	favoritesRouter := r.PathPrefix("/api/favorites").Subrouter()
	messagesRouter := r.PathPrefix("/api/messages").Subrouter()
	supportRouter := r.PathPrefix("/api/support").Subrouter()
	staffRouter := r.PathPrefix("/api/staff").Subrouter()

	// Users
	usersRouter.HandleFunc("/signup", userService.SignupUser).Methods("POST")
	usersRouter.HandleFunc("/login", userService.Signin).Methods("POST")
	usersRouter.HandleFunc("/confirm", userService.ConfirmAccount).Methods("POST")
	usersRouter.HandleFunc("/current-user", useAuth(userService.CurrentUser)).Methods("GET")
	usersRouter.HandleFunc("/fcm-token", useAuth(userService.UpdateFCMToken)).Methods("POST")
	usersRouter.HandleFunc("/profile", useAuth(userService.UpdateProfile)).Methods("PUT")
	usersRouter.HandleFunc("/notifications", useAuth(userService.ListNotifications)).Methods("GET")
	usersRouter.HandleFunc("/notifications/{id}", useAuth(userService.GetNotification)).Methods("GET")

	// Listings
	listingsRouter.HandleFunc("/create", useAuth(listingService.CreateListing)).Methods("POST")
	listingsRouter.HandleFunc("", listingService.ListListings).Methods("GET")
	listingsRouter.HandleFunc("/user/{userKey}", listingService.UserListings).Methods("GET")
	listingsRouter.HandleFunc("/stats/{userKey}", useAuth(listingService.UserListingStats)).Methods("GET")
	listingsRouter.HandleFunc("/{id}", listingService.GetListing).Methods("GET")
	listingsRouter.HandleFunc("/{id}", useAuth(listingService.UpdateListing)).Methods("PUT")
	listingsRouter.HandleFunc("/{id}", useAuth(listingService.DeleteListing)).Methods("DELETE")

	// Wanted listings
	wantedRouter.HandleFunc("/create", useAuth(listingService.CreateWantedListing)).Methods("POST")
	wantedRouter.HandleFunc("", listingService.ListWantedListings).Methods("GET")
	wantedRouter.HandleFunc("/user/{userKey}", listingService.UserWantedListings).Methods("GET")
	wantedRouter.HandleFunc("/{id}", listingService.GetWantedListing).Methods("GET")
	wantedRouter.HandleFunc("/{id}", useAuth(listingService.UpdateWantedListing)).Methods("PUT")
	wantedRouter.HandleFunc("/{id}", useAuth(listingService.DeleteWantedListing)).Methods("DELETE")

	// Favorites
	favoritesRouter.HandleFunc("", useAuth(listingService.AddFavorite)).Methods("POST")
	favoritesRouter.HandleFunc("/{listingId}", useAuth(listingService.RemoveFavorite)).Methods("DELETE")
	favoritesRouter.HandleFunc("/{userId}", listingService.GetFavorites).Methods("GET")

	// Messages
	messagesRouter.HandleFunc("", useAuth(listingService.SendMessage)).Methods("POST")
	messagesRouter.HandleFunc("/received/{userId}", useAuth(listingService.ReceivedMessages)).Methods("GET")
	messagesRouter.HandleFunc("/sent/{userId}", useAuth(listingService.SentMessages)).Methods("GET")
	messagesRouter.HandleFunc("/read/{messageId}", useAuth(listingService.MarkMessageRead)).Methods("POST")

	// Support tickets
	supportRouter.HandleFunc("", useAuth(supportService.CreateTicket)).Methods("POST")
	supportRouter.HandleFunc("/all", useStaffAuth(supportService.ListAllTickets)).Methods("GET")
	supportRouter.HandleFunc("/user/{userId}", useActorAuth(supportService.ListUserTickets)).Methods("GET")
	supportRouter.HandleFunc("/{id}/messages", useActorAuth(supportService.AddMessage)).Methods("POST")
	supportRouter.HandleFunc("/{id}/assign", useStaffAuth(supportService.AssignTicket)).Methods("PUT")
	supportRouter.HandleFunc("/{id}", useStaffAuth(supportService.UpdateTicket)).Methods("PUT")
	supportRouter.HandleFunc("/{id}", useActorAuth(supportService.GetTicket)).Methods("GET")
	supportRouter.HandleFunc("/{id}", useAuth(supportService.DeleteTicket)).Methods("DELETE")

	// Staff console
	staffRouter.HandleFunc("/register", staffService.Register).Methods("POST")
	staffRouter.HandleFunc("/login", staffService.Login).Methods("POST")
	staffRouter.HandleFunc("/staff", useStaffAuth(staffService.ListSupportStaff)).Methods("GET")
	staffRouter.HandleFunc("/all", useStaffAuth(staffService.ListAll)).Methods("GET")
	staffRouter.HandleFunc("/{id}/role", useStaffAuth(staffService.UpdateRole, models.RoleCustomerServiceLead)).Methods("PUT")
	staffRouter.HandleFunc("/dashboard", useStaffAuth(staffService.Dashboard)).Methods("GET")

	// Attachment files
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploads.Dir()))))

	return r
}

func initDatabase() (*mongo.Client, error) {
	dbURI := os.Getenv("MONGO_URI")
	if dbURI == "" {
		return nil, errors.New("MONGO_URI not set")
	}

	client, ctx, err := dao.Initialize(dbURI)
	if err != nil {
		return nil, err
	}

	db := client.Database(dbName())
	if err := dao.EnsureIndexes(db); err != nil {
		return nil, err
	}

	userDAO = dao.NewUserDAO(ctx, db)
	staffDAO = dao.NewStaffDAO(ctx, db)
	listingDAO = dao.NewListingDAO(ctx, db)
	ticketDAO = dao.NewTicketDAO(ctx, db)
	factoryDAO = dao.NewFactoryDAO(ctx, db)

	return client, nil
}

func initServices(db *mongo.Database) error {
	notifiable, err := notifications.NewNotifiable(factoryDAO)
	if err != nil {
		return err
	}

	userService = user.NewUserService(userDAO, factoryDAO, notifiable)
	staffService = staff.NewStaffService(staffDAO, factoryDAO)
	listingService = listing.NewListingService(listingDAO, factoryDAO, notifiable)
	supportService = support.NewSupportService(ticketDAO, staffDAO, notifiable)
	return nil
}

func parseToken(r *http.Request) (jwt.MapClaims, error) {
	authorizationHeader := r.Header.Get("Authorization")
	if authorizationHeader == "" {
		return nil, errors.New("missing authorization header")
	}
	token, err := jwt.Parse(authorizationHeader, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// useAuth validates a user token for protected routes
func useAuth(nextHandler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := parseToken(r)
		if err != nil {
			log.Printf("auth parse err: %v", err)
			utils.RespondWithError(w, http.StatusUnauthorized, "You are not authorized")
			return
		}

		id, ok := claims["user_id"].(string)
		if !ok {
			utils.RespondWithError(w, http.StatusUnauthorized, "You are not authorized")
			return
		}

		ctx := context.WithValue(r.Context(), models.CtxUserID, id)
		ctx = context.WithValue(ctx, models.CtxActorType, models.SenderUser)

		nextHandler.ServeHTTP(w, r.WithContext(ctx))
	}
}

// useStaffAuth validates a staff token. When roles are given, the token's
// role claim must match one of them.
func useStaffAuth(nextHandler http.HandlerFunc, roles ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := parseToken(r)
		if err != nil {
			log.Printf("staff auth parse err: %v", err)
			utils.RespondWithError(w, http.StatusUnauthorized, "You are not authorized")
			return
		}

		id, ok := claims["staff_id"].(string)
		role, ok2 := claims["role"].(string)
		if !ok || !ok2 {
			utils.RespondWithError(w, http.StatusUnauthorized, "You are not authorized")
			return
		}

		if len(roles) > 0 {
			allowed := false
			for _, want := range roles {
				if role == want {
					allowed = true
					break
				}
			}
			if !allowed {
				utils.RespondWithError(w, http.StatusForbidden, "You do not have permission to perform this action")
				return
			}
		}

		ctx := context.WithValue(r.Context(), models.CtxStaffID, id)
		ctx = context.WithValue(ctx, models.CtxRole, role)
		ctx = context.WithValue(ctx, models.CtxActorType, models.SenderStaff)

		nextHandler.ServeHTTP(w, r.WithContext(ctx))
	}
}

// useActorAuth accepts either a user or a staff token
func useActorAuth(nextHandler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := parseToken(r)
		if err != nil {
			log.Printf("actor auth parse err: %v", err)
			utils.RespondWithError(w, http.StatusUnauthorized, "You are not authorized")
			return
		}

		if id, ok := claims["staff_id"].(string); ok {
			role, _ := claims["role"].(string)
			ctx := context.WithValue(r.Context(), models.CtxStaffID, id)
			ctx = context.WithValue(ctx, models.CtxRole, role)
			ctx = context.WithValue(ctx, models.CtxActorType, models.SenderStaff)
			nextHandler.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		if id, ok := claims["user_id"].(string); ok {
			ctx := context.WithValue(r.Context(), models.CtxUserID, id)
			ctx = context.WithValue(ctx, models.CtxActorType, models.SenderUser)
			nextHandler.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		utils.RespondWithError(w, http.StatusUnauthorized, "You are not authorized")
	}
}
