package service

// BaseSetKingdomCards is the kingdom card list of the Dominion base game
// (second edition), used to seed an empty catalog.
var BaseSetKingdomCards = []string{
	"Artisan",
	"Bandit",
	"Bureaucrat",
	"Cellar",
	"Chapel",
	"Council Room",
	"Festival",
	"Gardens",
	"Harbinger",
	"Laboratory",
	"Library",
	"Market",
	"Merchant",
	"Militia",
	"Mine",
	"Moat",
	"Moneylender",
	"Poacher",
	"Remodel",
	"Sentry",
	"Smithy",
	"Throne Room",
	"Vassal",
	"Village",
	"Witch",
	"Workshop",
}
