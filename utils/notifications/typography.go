package notifications

var (
	ticketCreatedMsg    = "Your support ticket #%s has been received"
	ticketReplyMsg      = "Support has replied to your ticket #%s"
	ticketAssignedMsg   = "Ticket #%s has been assigned to you"
	ticketResolvedMsg   = "Your support ticket #%s has been resolved"
	welcomeMsg          = "Hi %s, your Staynest account is verified. Happy house hunting!"
	listingFavoritedMsg = "Someone saved your listing %q to their favorites"
)

var (
	ticketCreatedTitle    = "Support Ticket Received"
	ticketReplyTitle      = "New Reply on Your Ticket"
	ticketAssignedTitle   = "Ticket Assigned"
	ticketResolvedTitle   = "Ticket Resolved"
	verifyAccountTitle    = "Verify your Staynest account"
	welcomeTitle          = "Welcome to Staynest"
	listingFavoritedTitle = "Your Listing Was Favorited"
)
