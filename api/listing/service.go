package listing

import (
	"log"
	"net/http"
	"time"

	"staynest-bend/dao"
	"staynest-bend/models"
	"staynest-bend/utils"
	"staynest-bend/utils/notifications"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Service represents the listing service, covering listings, wanted
// listings, favorites and direct messages between users
type Service struct {
	dao        *dao.ListingDAO
	factoryDAO *dao.FactoryDAO
	notifiable notifications.Notifiable
}

// NewListingService returns a listing service object
func NewListingService(dao *dao.ListingDAO, factoryDAO *dao.FactoryDAO, notifiable notifications.Notifiable) *Service {
	return &Service{dao: dao, factoryDAO: factoryDAO, notifiable: notifiable}
}

func userID(r *http.Request) string {
	id, _ := r.Context().Value(models.CtxUserID).(string)
	return id
}

// CreateListing creates a new listing owned by the authenticated user
func (s *Service) CreateListing(w http.ResponseWriter, r *http.Request) {
	var req models.ListingReq
	if err := utils.DecodeReq(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request data sent")
		return
	}

	if req.Title == "" || req.AccommodationType == "" || req.PropertyAddress == "" || req.Rent <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Title, accommodation type, address and rent are required")
		return
	}

	now := time.Now().UTC()
	listing := models.Listing{
		ID:                primitive.NewObjectID(),
		Title:             req.Title,
		AccommodationType: req.AccommodationType,
		Description:       req.Description,
		PropertyAddress:   req.PropertyAddress,
		Locality:          req.Locality,
		City:              req.City,
		State:             req.State,
		Country:           req.Country,
		PinCode:           req.PinCode,
		Coordinates:       req.Coordinates,
		PropertyStructure: req.PropertyStructure,
		RoomType:          req.RoomType,
		WashroomType:      req.WashroomType,
		ParkingType:       req.ParkingType,
		RoomSize:          req.RoomSize,
		Rent:              req.Rent,
		Deposit:           req.Deposit,
		AvailableFrom:     req.AvailableFrom,
		Images:            req.Images,
		Videos:            req.Videos,
		Amenities:         req.Amenities,
		UserKey:           userID(r),
		Status:            models.ListingActive,
		ViewsLog:          []models.ListingView{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.dao.Insert(listing); err != nil {
		log.Printf("create_listing: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "An Error occurred while processing request")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.Response{
		Status: "success",
		Code:   http.StatusCreated,
		Data:   listing,
	})
}

// ListListings lists listings, optionally filtered by city
func (s *Service) ListListings(w http.ResponseWriter, r *http.Request) {
	listings, err := s.dao.FindAll(r.URL.Query().Get("city"))
	if err != nil {
		log.Printf("list_listings: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "An Error occurred while processing request")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Response{
		Status: "success",
		Code:   http.StatusOK,
		Data:   listings,
	})
}

// GetListing fetches one listing and records the view
func (s *Service) GetListing(w http.ResponseWriter, r *http.Request) {
	listing, err := s.dao.FindByID(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Listing not found")
		return
	}

	viewer := r.URL.Query().Get("viewer")
	if viewer != listing.UserKey {
		if err := s.dao.RecordView(listing.ID, viewer); err != nil {
			log.Printf("record_view: %v", err)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Response{
		Status: "success",
		Code:   http.StatusOK,
		Data:   listing,
	})
}

// UserListings lists a user's own listings
func (s *Service) UserListings(w http.ResponseWriter, r *http.Request) {
	listings, err := s.dao.FindByOwner(mux.Vars(r)["userKey"])
	if err != nil {
		log.Printf("user_listings: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "An Error occurred while processing request")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Response{
		Status: "success",
		Code:   http.StatusOK,
		Data:   listings,
	})
}

// ListingStats is the per-listing view summary for an owner's dashboard
// charts
type ListingStats struct {
	ID                string               `json:"id"`
	PropertyAddress   string               `json:"property_address"`
	Locality          string               `json:"locality"`
	PropertyStructure string               `json:"property_structure"`
	ViewsCount        int64                `json:"views_count"`
	ViewsLog          []models.ListingView `json:"views_log"`
}

func listingStats(listings []models.Listing) []ListingStats {
	stats := make([]ListingStats, 0, len(listings))
	for _, l := range listings {
		viewsLog := l.ViewsLog
		if viewsLog == nil {
			viewsLog = []models.ListingView{}
		}
		stats = append(stats, ListingStats{
			ID:                l.ID.Hex(),
			PropertyAddress:   l.PropertyAddress,
			Locality:          l.Locality,
			PropertyStructure: l.PropertyStructure,
			ViewsCount:        l.ViewsCount,
			ViewsLog:          viewsLog,
		})
	}
	return stats
}

// UserListingStats returns the view summaries of a user's listings
func (s *Service) UserListingStats(w http.ResponseWriter, r *http.Request) {
	listings, err := s.dao.FindByOwner(mux.Vars(r)["userKey"])
	if err != nil {
		log.Printf("user_listing_stats: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "An Error occurred while processing request")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Response{
		Status: "success",
		Code:   http.StatusOK,
		Data:   listingStats(listings),
	})
}

// UpdateListing updates a listing the authenticated user owns
func (s *Service) UpdateListing(w http.ResponseWriter, r *http.Request) {
	var req models.ListingReq
	if err := utils.DecodeReq(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request data sent")
		return
	}

	listing, err := s.dao.FindByID(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Listing not found")
		return
	}
	if listing.UserKey != userID(r) {
		utils.RespondWithError(w, http.StatusForbidden, "You can only update your own listings")
		return
	}

	listing.Title = req.Title
	listing.AccommodationType = req.AccommodationType
	listing.Description = req.Description
	listing.PropertyAddress = req.PropertyAddress
	listing.Locality = req.Locality
	listing.City = req.City
	listing.State = req.State
	listing.Country = req.Country
	listing.PinCode = req.PinCode
	listing.Coordinates = req.Coordinates
	listing.PropertyStructure = req.PropertyStructure
	listing.RoomType = req.RoomType
	listing.WashroomType = req.WashroomType
	listing.ParkingType = req.ParkingType
	listing.RoomSize = req.RoomSize
	listing.Rent = req.Rent
	listing.Deposit = req.Deposit
	listing.AvailableFrom = req.AvailableFrom
	listing.Images = req.Images
	listing.Videos = req.Videos
	listing.Amenities = req.Amenities
	listing.UpdatedAt = time.Now().UTC()

	if err := s.dao.Update(listing); err != nil {
		log.Printf("update_listing: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "An Error occurred while processing request")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Response{
		Status: "success",
		Code:   http.StatusOK,
		Data:   listing,
	})
}

// DeleteListing removes a listing the authenticated user owns
func (s *Service) DeleteListing(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	listing, err := s.dao.FindByID(id)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Listing not found")
		return
	}
	if listing.UserKey != userID(r) {
		utils.RespondWithError(w, http.StatusForbidden, "You can only delete your own listings")
		return
	}

	if err := s.dao.Delete(id); err != nil {
		log.Printf("delete_listing: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "An Error occurred while processing request")
		return
	}

	utils.RespondWithOk(w, "Listing deleted successfully")
}

// AddFavorite saves a listing to the authenticated user's favorites
func (s *Service) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var req models.FavoriteReq
	if err := utils.DecodeReq(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request data sent")
		return
	}

	listing, err := s.dao.FindByID(req.ListingID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Listing not found")
		return
	}

	uid := userID(r)
	existing, err := s.factoryDAO.Query("favorites", bson.M{"user_id": uid, "listing_id": listing.ID})
	if err != nil {
		log.Printf("add_favorite: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "An Error occurred while processing request")
		return
	}
	if len(existing) > 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Already in favorites")
		return
	}

	favorite := models.Favorite{
		ID:        primitive.NewObjectID(),
		UserID:    uid,
		ListingID: listing.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.factoryDAO.Insert("favorites", favorite); err != nil {
		log.Printf("add_favorite: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "An Error occurred while processing request")
		return
	}

	if listing.UserKey != uid {
		go s.notifiable.SendListingFavoritedNotification(listing)
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.Response{
		Status: "success",
		Code:   http.StatusCreated,
		Data:   favorite,
	})
}

// RemoveFavorite removes a listing from the authenticated user's favorites
func (s *Service) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	listingID, err := primitive.ObjectIDFromHex(mux.Vars(r)["listingId"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid listing ID")
		return
	}

	err = s.factoryDAO.Remove("favorites", bson.M{"user_id": userID(r), "listing_id": listingID})
	if err != nil {
		log.Printf("remove_favorite: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "An Error occurred while processing request")
		return
	}

	utils.RespondWithOk(w, "Removed from favorites")
}

// GetFavorites lists a user's favorites with the listings hydrated
func (s *Service) GetFavorites(w http.ResponseWriter, r *http.Request) {
	var favorites []models.Favorite
	cursor, err := s.factoryDAO.Collections["favorites"].Find(r.Context(),
		bson.M{"user_id": mux.Vars(r)["userId"]})
	if err != nil {
		log.Printf("get_favorites: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "An Error occurred while processing request")
		return
	}
	if err := cursor.All(r.Context(), &favorites); err != nil {
		log.Printf("get_favorites: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "An Error occurred while processing request")
		return
	}

	type favoriteWithListing struct {
		models.Favorite
		Listing *models.Listing `json:"listing"`
	}
	hydrated := []favoriteWithListing{}
	for _, fav := range favorites {
		entry := favoriteWithListing{Favorite: fav}
		if listing, err := s.dao.FindByID(fav.ListingID.Hex()); err == nil {
			entry.Listing = &listing
		} else if err != mongo.ErrNoDocuments {
			log.Printf("get_favorites hydrate: %v", err)
		}
		hydrated = append(hydrated, entry)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Response{
		Status: "success",
		Code:   http.StatusOK,
		Data:   hydrated,
	})
}

// SendMessage sends a direct message from the authenticated user
func (s *Service) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req models.NewDirectMessageReq
	if err := utils.DecodeReq(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request data sent")
		return
	}

	if req.ReceiverID == "" || req.Content == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Receiver and content are required")
		return
	}

	message := models.DirectMessage{
		ID:             primitive.NewObjectID(),
		SenderID:       userID(r),
		ReceiverID:     req.ReceiverID,
		ListingAddress: req.ListingAddress,
		Content:        req.Content,
		ReplyToID:      req.ReplyToID,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.factoryDAO.Insert("direct_messages", message); err != nil {
		log.Printf("send_message: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "An Error occurred while processing request")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.Response{
		Status: "success",
		Code:   http.StatusCreated,
		Data:   message,
	})
}

// ReceivedMessages lists messages received by a user, newest first
func (s *Service) ReceivedMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := s.factoryDAO.Query("direct_messages",
		bson.M{"receiver_id": mux.Vars(r)["userId"]}, true)
	if err != nil {
		log.Printf("received_messages: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "An Error occurred while processing request")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Response{
		Status: "success",
		Code:   http.StatusOK,
		Data:   messages,
	})
}

// SentMessages lists messages sent by a user, newest first
func (s *Service) SentMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := s.factoryDAO.Query("direct_messages",
		bson.M{"sender_id": mux.Vars(r)["userId"]}, true)
	if err != nil {
		log.Printf("sent_messages: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "An Error occurred while processing request")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Response{
		Status: "success",
		Code:   http.StatusOK,
		Data:   messages,
	})
}

// MarkMessageRead flips the read flag on a received message
func (s *Service) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	docID, err := primitive.ObjectIDFromHex(mux.Vars(r)["messageId"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid message ID")
		return
	}

	err = s.factoryDAO.UpdateOne("direct_messages", bson.M{"_id": docID}, bson.M{"is_read": true})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Message not found")
			return
		}
		log.Printf("mark_message_read: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "An Error occurred while processing request")
		return
	}

	utils.RespondWithOk(w, "Message marked as read")
}
