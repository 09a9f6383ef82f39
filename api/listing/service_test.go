package listing

import (
	"testing"
	"time"

	"staynest-bend/models"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestListingStats(t *testing.T) {
	viewed := models.Listing{
		ID:                primitive.NewObjectID(),
		PropertyAddress:   "221B Baker Street",
		Locality:          "Marylebone",
		PropertyStructure: "Apartment",
		ViewsCount:        3,
		ViewsLog: []models.ListingView{
			{Viewer: "U2", CreatedAt: time.Now().UTC()},
		},
	}
	unviewed := models.Listing{
		ID:              primitive.NewObjectID(),
		PropertyAddress: "14 Elm Road",
	}

	stats := listingStats([]models.Listing{viewed, unviewed})
	require.Len(t, stats, 2)

	require.Equal(t, viewed.ID.Hex(), stats[0].ID)
	require.Equal(t, "221B Baker Street", stats[0].PropertyAddress)
	require.Equal(t, "Marylebone", stats[0].Locality)
	require.Equal(t, "Apartment", stats[0].PropertyStructure)
	require.EqualValues(t, 3, stats[0].ViewsCount)
	require.Len(t, stats[0].ViewsLog, 1)

	// a listing with no recorded views still serializes an empty log
	require.NotNil(t, stats[1].ViewsLog)
	require.Empty(t, stats[1].ViewsLog)

	require.Empty(t, listingStats(nil))
}
