package listing

import (
	"log"
	"net/http"
	"time"

	"staynest-bend/models"
	"staynest-bend/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// newWantedListing validates a wanted-listing request and builds the
// document. Preference fields are restricted to their vocabularies;
// food choice defaults to no preference.
func newWantedListing(req models.WantedListingReq, owner string) (models.WantedListing, error) {
	var wanted models.WantedListing

	var missing []string
	if req.PreferredLocation == "" {
		missing = append(missing, "preferred_location")
	}
	if req.City == "" {
		missing = append(missing, "city")
	}
	if req.State == "" {
		missing = append(missing, "state")
	}
	if req.ContactName == "" {
		missing = append(missing, "contact_name")
	}
	if req.ContactEmail == "" {
		missing = append(missing, "contact_email")
	}
	if req.Budget <= 0 {
		missing = append(missing, "budget")
	}
	if len(missing) > 0 {
		return wanted, models.NewValidationError("Missing required fields", missing...)
	}

	if req.FoodChoice == "" {
		req.FoodChoice = "No Preference"
	}
	if !models.InList(req.PropertyType, models.WantedPropertyTypes) {
		return wanted, models.NewValidationError(req.PropertyType+" is not a valid property type", "property_type")
	}
	if !models.InList(req.RoomType, models.WantedRoomTypes) {
		return wanted, models.NewValidationError(req.RoomType+" is not a valid room type", "room_type")
	}
	if !models.InList(req.WashroomType, models.WantedWashroomTypes) {
		return wanted, models.NewValidationError(req.WashroomType+" is not a valid washroom type", "washroom_type")
	}
	if !models.InList(req.Furnished, models.WantedFurnished) {
		return wanted, models.NewValidationError(req.Furnished+" is not a valid furnished preference", "furnished")
	}
	if !models.InList(req.FoodChoice, models.WantedFoodChoices) {
		return wanted, models.NewValidationError(req.FoodChoice+" is not a valid food choice", "food_choice")
	}

	now := time.Now().UTC()
	wanted = models.WantedListing{
		ID:                primitive.NewObjectID(),
		UserKey:           owner,
		PreferredLocation: req.PreferredLocation,
		Locality:          req.Locality,
		City:              req.City,
		State:             req.State,
		Country:           req.Country,
		PinCode:           req.PinCode,
		Coordinates:       req.Coordinates,
		PropertyType:      req.PropertyType,
		RoomType:          req.RoomType,
		WashroomType:      req.WashroomType,
		Furnished:         req.Furnished,
		FoodChoice:        req.FoodChoice,
		Profession:        req.Profession,
		Budget:            req.Budget,
		MoveInDate:        req.MoveInDate,
		Description:       req.Description,
		ContactName:       req.ContactName,
		ContactPhone:      req.ContactPhone,
		ContactEmail:      req.ContactEmail,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	return wanted, nil
}

// CreateWantedListing creates a room-wanted ad owned by the
// authenticated user
func (s *Service) CreateWantedListing(w http.ResponseWriter, r *http.Request) {
	var req models.WantedListingReq
	if err := utils.DecodeReq(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request data sent")
		return
	}

	wanted, err := newWantedListing(req, userID(r))
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}

	if err := s.factoryDAO.Insert("wanted_listings", wanted); err != nil {
		log.Printf("create_wanted_listing: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "An Error occurred while processing request")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.Response{
		Status: "success",
		Code:   http.StatusCreated,
		Data:   wanted,
	})
}

// ListWantedListings lists all wanted listings, newest first
func (s *Service) ListWantedListings(w http.ResponseWriter, r *http.Request) {
	wanted, err := s.factoryDAO.Query("wanted_listings", bson.M{}, true)
	if err != nil {
		log.Printf("list_wanted_listings: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "An Error occurred while processing request")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Response{
		Status: "success",
		Code:   http.StatusOK,
		Data:   wanted,
	})
}

// GetWantedListing fetches one wanted listing
func (s *Service) GetWantedListing(w http.ResponseWriter, r *http.Request) {
	wanted, err := s.findWantedListing(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Wanted listing not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Response{
		Status: "success",
		Code:   http.StatusOK,
		Data:   wanted,
	})
}

// UserWantedListings lists a user's wanted listings, newest first
func (s *Service) UserWantedListings(w http.ResponseWriter, r *http.Request) {
	wanted, err := s.factoryDAO.Query("wanted_listings",
		bson.M{"user_key": mux.Vars(r)["userKey"]}, true)
	if err != nil {
		log.Printf("user_wanted_listings: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "An Error occurred while processing request")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Response{
		Status: "success",
		Code:   http.StatusOK,
		Data:   wanted,
	})
}

// UpdateWantedListing replaces a wanted listing the authenticated
// user owns
func (s *Service) UpdateWantedListing(w http.ResponseWriter, r *http.Request) {
	var req models.WantedListingReq
	if err := utils.DecodeReq(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request data sent")
		return
	}

	existing, err := s.findWantedListing(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Wanted listing not found")
		return
	}
	if existing.UserKey != userID(r) {
		utils.RespondWithError(w, http.StatusForbidden, "You can only update your own wanted listings")
		return
	}

	wanted, err := newWantedListing(req, existing.UserKey)
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	wanted.ID = existing.ID
	wanted.CreatedAt = existing.CreatedAt

	err = s.factoryDAO.UpdateOne("wanted_listings",
		bson.M{"_id": existing.ID}, bson.M{
			"preferred_location": wanted.PreferredLocation,
			"locality":           wanted.Locality,
			"city":               wanted.City,
			"state":              wanted.State,
			"country":            wanted.Country,
			"pin_code":           wanted.PinCode,
			"coordinates":        wanted.Coordinates,
			"property_type":      wanted.PropertyType,
			"room_type":          wanted.RoomType,
			"washroom_type":      wanted.WashroomType,
			"furnished":          wanted.Furnished,
			"food_choice":        wanted.FoodChoice,
			"profession":         wanted.Profession,
			"budget":             wanted.Budget,
			"move_in_date":       wanted.MoveInDate,
			"description":        wanted.Description,
			"contact_name":       wanted.ContactName,
			"contact_phone":      wanted.ContactPhone,
			"contact_email":      wanted.ContactEmail,
			"updated_at":         wanted.UpdatedAt,
		})
	if err != nil {
		log.Printf("update_wanted_listing: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "An Error occurred while processing request")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Response{
		Status: "success",
		Code:   http.StatusOK,
		Data:   wanted,
	})
}

// DeleteWantedListing removes a wanted listing the authenticated
// user owns
func (s *Service) DeleteWantedListing(w http.ResponseWriter, r *http.Request) {
	wanted, err := s.findWantedListing(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Wanted listing not found")
		return
	}
	if wanted.UserKey != userID(r) {
		utils.RespondWithError(w, http.StatusForbidden, "You can only delete your own wanted listings")
		return
	}

	if err := s.factoryDAO.Remove("wanted_listings", bson.M{"_id": wanted.ID}); err != nil {
		log.Printf("delete_wanted_listing: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "An Error occurred while processing request")
		return
	}

	utils.RespondWithOk(w, "Wanted listing deleted successfully")
}

func (s *Service) findWantedListing(id string) (models.WantedListing, error) {
	var wanted models.WantedListing
	docID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return wanted, err
	}
	err = s.factoryDAO.FindOne("wanted_listings", bson.M{"_id": docID}, &wanted)
	return wanted, err
}
