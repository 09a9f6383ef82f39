package user

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"staynest-bend/dao"
	"staynest-bend/models"
	"staynest-bend/utils"
	"staynest-bend/utils/notifications"

	"github.com/dgrijalva/jwt-go"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service represents the User Service
type Service struct {
	dao        *dao.UserDAO
	factoryDAO *dao.FactoryDAO
	notifiable notifications.Notifiable
}

// NewUserService returns a user service object
func NewUserService(dao *dao.UserDAO, factoryDAO *dao.FactoryDAO, notifiable notifications.Notifiable) *Service {
	return &Service{
		dao:        dao,
		factoryDAO: factoryDAO,
		notifiable: notifiable,
	}
}

// SignupUser creates a new user account
func (s *Service) SignupUser(w http.ResponseWriter, r *http.Request) {
	var (
		user models.User
		req  models.CreateUserReq
	)
	if err := utils.DecodeReq(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request data sent")
		return
	}

	if req.Email == "" && req.Mobile == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email or mobile is required")
		return
	}
	if req.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Password is required")
		return
	}

	// verify user doesn't exist
	count, err := s.dao.Collection.CountDocuments(context.TODO(), bson.M{
		"$or": []bson.M{
			{"email": strings.ToLower(req.Email)},
			{"mobile": req.Mobile},
		},
	})
	if err != nil {
		log.Printf("failed to retrieve user (%s) err: %v", req.Email, err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request data sent")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "This user account already exists")
		return
	}

	now := time.Now().UTC()
	user.ID = primitive.NewObjectID()
	user.Name = req.Name
	user.Email = strings.ToLower(req.Email)
	user.Mobile = req.Mobile
	user.Location = req.Location
	user.UserType = req.UserType
	if user.UserType == "" {
		user.UserType = models.UserIndividual
	}
	user.Confirmed = false
	user.PassCode = utils.GenPasscode()
	user.CreatedAt = now
	user.UpdatedAt = now

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "An Error occurred while processing request")
		return
	}
	user.Password = hash

	if err := s.dao.Insert(user); err != nil {
		log.Printf("failed to insert new user (%s) err: %v", req.Email, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "An Error occurred while processing request")
		return
	}

	go s.notifiable.SendVerificationNotification(user)

	utils.RespondWithJSON(w, http.StatusCreated, utils.Response{
		Status: "success",
		Code:   http.StatusCreated,
		Data:   user,
	})
}

// ConfirmAccount verifies a signup passcode
func (s *Service) ConfirmAccount(w http.ResponseWriter, r *http.Request) {
	var req models.ConfirmAccountReq
	if err := utils.DecodeReq(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request data sent")
		return
	}

	user, err := s.dao.FindByEmail(strings.ToLower(req.Email))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User account not found")
		return
	}

	if user.Confirmed {
		utils.RespondWithOk(w, "Account already verified")
		return
	}
	if user.PassCode != req.Code {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid verification code")
		return
	}

	user.Confirmed = true
	user.UpdatedAt = time.Now().UTC()
	if err := s.dao.Update(user); err != nil {
		log.Printf("failed to confirm user (%s) err: %v", req.Email, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "An Error occurred while processing request")
		return
	}

	go s.notifiable.SendWelcomeNotification(user)

	utils.RespondWithOk(w, "Account verified successfully")
}

// Signin authenticates a user by email or mobile
func (s *Service) Signin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginReq
	if err := utils.DecodeReq(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request data sent")
		return
	}

	if req.Username == "" || req.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := s.dao.FindByEmailOrMobile(strings.ToLower(req.Username))
	if err != nil {
		log.Printf("failed to retrieve user object for %s, err: %v", req.Username, err)
		utils.RespondWithError(w, http.StatusNotFound, "User account not found")
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		utils.RespondWithError(w, http.StatusForbidden, "Invalid credentials")
		return
	}

	// generate jwt
	token := jwt.New(jwt.SigningMethodHS256)
	token.Claims = jwt.MapClaims{
		"exp":     time.Now().Add(time.Hour * 72).Unix(),
		"email":   user.Email,
		"user_id": user.ID.Hex(),
	}
	signedString, err := token.SignedString([]byte(os.Getenv("SECRET")))
	if err != nil {
		log.Println("error generating token", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "An Error occurred")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"token":  signedString,
		"user":   user,
	})
}

// CurrentUser returns the authenticated user's profile
func (s *Service) CurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(models.CtxUserID).(string)

	user, err := s.dao.FindByID(userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User account not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Response{
		Status: "success",
		Code:   http.StatusOK,
		Data:   user,
	})
}

// applyProfileUpdate merges the editable fields of a profile update into a
// user. Empty request fields keep their current value.
func applyProfileUpdate(user models.User, req models.UpdateProfileReq) (models.User, error) {
	if req.UserType != "" {
		if req.UserType != models.UserIndividual && req.UserType != models.UserPropertyAgent {
			return user, models.NewValidationError(req.UserType+" is not a valid user type", "user_type")
		}
		user.UserType = req.UserType
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.Location != "" {
		user.Location = req.Location
	}
	if req.Profession != "" {
		user.Profession = req.Profession
	}
	if req.Languages != "" {
		user.Languages = req.Languages
	}
	if req.Mobile != "" {
		user.Mobile = req.Mobile
	}
	user.UpdatedAt = time.Now().UTC()
	return user, nil
}

// UpdateProfile updates the authenticated user's editable profile fields
func (s *Service) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProfileReq
	if err := utils.DecodeReq(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request data sent")
		return
	}

	userID, _ := r.Context().Value(models.CtxUserID).(string)
	user, err := s.dao.FindByID(userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User account not found")
		return
	}

	user, err = applyProfileUpdate(user, req)
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}

	if err := s.dao.Update(user); err != nil {
		log.Printf("update_profile: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "An Error occurred while processing request")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Response{
		Status: "success",
		Code:   http.StatusOK,
		Data:   user,
	})
}

// ListNotifications returns the authenticated user's in-app notifications,
// newest first
func (s *Service) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(models.CtxUserID).(string)

	items, err := s.factoryDAO.QueryNotifications(bson.M{"user_id": userID})
	if err != nil {
		log.Printf("list_notifications: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "An Error occurred while processing request")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Response{
		Status: "success",
		Code:   http.StatusOK,
		Data:   items,
	})
}

// GetNotification fetches one of the authenticated user's notifications
func (s *Service) GetNotification(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(models.CtxUserID).(string)

	notification, err := s.factoryDAO.FindNotificationByID(mux.Vars(r)["id"])
	if err != nil || notification.UserID != userID {
		utils.RespondWithError(w, http.StatusNotFound, "Notification not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Response{
		Status: "success",
		Code:   http.StatusOK,
		Data:   notification,
	})
}

// UpdateFCMToken updates the fcm token attached to a user
func (s *Service) UpdateFCMToken(w http.ResponseWriter, r *http.Request) {
	var req models.FCMTokenReq
	if err := utils.DecodeReq(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request data sent")
		return
	}

	userID, _ := r.Context().Value(models.CtxUserID).(string)
	user, err := s.dao.FindByID(userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User account not found")
		return
	}

	user.FCMToken = req.Token
	user.UpdatedAt = time.Now().UTC()
	if err := s.dao.Update(user); err != nil {
		log.Printf("failed to update fcm token for %s: %v", userID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "An Error occurred while processing request")
		return
	}

	utils.RespondWithOk(w, "Token updated")
}
