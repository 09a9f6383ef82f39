package staff

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"staynest-bend/dao"
	"staynest-bend/models"
	"staynest-bend/utils"

	"github.com/dgrijalva/jwt-go"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Service represents the staff console service
type Service struct {
	dao        *dao.StaffDAO
	factoryDAO *dao.FactoryDAO
}

// NewStaffService returns a staff service object
func NewStaffService(dao *dao.StaffDAO, factoryDAO *dao.FactoryDAO) *Service {
	return &Service{dao: dao, factoryDAO: factoryDAO}
}

// Register creates a new staff account
func (s *Service) Register(w http.ResponseWriter, r *http.Request) {
	var req models.CreateStaffReq
	if err := utils.DecodeReq(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request data sent")
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}

	email := strings.ToLower(req.Email)
	if _, err := s.dao.FindByEmail(email); err == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Staff already exists")
		return
	} else if err != mongo.ErrNoDocuments {
		log.Printf("staff_register: lookup failed for %s: %v", email, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "An Error occurred while processing request")
		return
	}

	now := time.Now().UTC()
	member := models.Staff{
		ID:         primitive.NewObjectID(),
		Name:       req.Name,
		Email:      email,
		Password:   req.Password, // hashed by the DAO on write
		Role:       req.Role,
		Department: req.Department,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.dao.Insert(member); err != nil {
		log.Printf("staff_register: insert failed for %s: %v", email, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "An Error occurred while processing request")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.Response{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: "Staff registered successfully",
	})
}

// Login authenticates a staff member. The signed token carries the role
// claim used to gate triage actions.
func (s *Service) Login(w http.ResponseWriter, r *http.Request) {
	var req models.StaffLoginReq
	if err := utils.DecodeReq(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request data sent")
		return
	}

	member, err := s.dao.FindByEmail(strings.ToLower(req.Email))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Staff account not found")
		return
	}

	if !utils.CheckPasswordHash(req.Password, member.Password) {
		utils.RespondWithError(w, http.StatusForbidden, "Invalid credentials")
		return
	}

	token := jwt.New(jwt.SigningMethodHS256)
	token.Claims = jwt.MapClaims{
		"exp":      time.Now().Add(time.Hour * 12).Unix(),
		"staff_id": member.ID.Hex(),
		"role":     member.Role,
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
		"staff":  member,
	})
}

// ListSupportStaff lists assignable staff, the triage roles only
func (s *Service) ListSupportStaff(w http.ResponseWriter, r *http.Request) {
	members, err := s.dao.FindByRoles(models.TriageRoles)
	if err != nil {
		log.Printf("list_support_staff: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "An Error occurred while processing request")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Response{
		Status: "success",
		Code:   http.StatusOK,
		Data:   members,
	})
}

// ListAll lists every staff member
func (s *Service) ListAll(w http.ResponseWriter, r *http.Request) {
	members, err := s.dao.FindAll()
	if err != nil {
		log.Printf("list_all_staff: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "An Error occurred while processing request")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Response{
		Status: "success",
		Code:   http.StatusOK,
		Data:   members,
	})
}

// UpdateRole changes a staff member's role
func (s *Service) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateRoleReq
	if err := utils.DecodeReq(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request data sent")
		return
	}
	if req.Role == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Role is required")
		return
	}

	id := mux.Vars(r)["id"]
	if err := s.dao.UpdateRole(id, req.Role); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Staff member not found")
			return
		}
		log.Printf("update_role: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "An Error occurred while processing request")
		return
	}

	utils.RespondWithOk(w, "Role updated successfully")
}

// Dashboard aggregates listing, user and ticket counts for the staff
// console landing page
func (s *Service) Dashboard(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, -1, 0)

	counts := map[string]interface{}{}
	count := func(key, ckey string, filter bson.M) {
		n, err := s.factoryDAO.Count(ckey, filter)
		if err != nil {
			log.Printf("dashboard %s: %v", key, err)
			return
		}
		counts[key] = n
	}

	count("total_listings", "listing", bson.M{})
	count("total_users", "user", bson.M{})
	count("today_listings", "listing", bson.M{"created_at": bson.M{"$gte": today}})
	count("active_listings", "listing", bson.M{"status": models.ListingActive})
	count("weekly_listings", "listing", bson.M{"created_at": bson.M{"$gte": weekAgo}})
	count("monthly_listings", "listing", bson.M{"created_at": bson.M{"$gte": monthAgo}})
	count("weekly_users", "user", bson.M{"created_at": bson.M{"$gte": weekAgo}})
	count("monthly_users", "user", bson.M{"created_at": bson.M{"$gte": monthAgo}})
	count("open_tickets", "support_ticket", bson.M{"status": models.TicketOpen})
	count("in_progress_tickets", "support_ticket", bson.M{"status": models.TicketInProgress})
	count("resolved_tickets", "support_ticket", bson.M{"status": models.TicketResolved})
	count("closed_tickets", "support_ticket", bson.M{"status": models.TicketClosed})

	if byCity, err := s.factoryDAO.GroupCount("listing", "city", 10); err == nil {
		counts["listings_by_city"] = byCity
	} else {
		log.Printf("dashboard listings_by_city: %v", err)
	}
	if byLocation, err := s.factoryDAO.GroupCount("user", "location", 10); err == nil {
		counts["users_by_location"] = byLocation
	} else {
		log.Printf("dashboard users_by_location: %v", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Response{
		Status: "success",
		Code:   http.StatusOK,
		Data:   counts,
	})
}
