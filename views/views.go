// ABOUTME: Per-screen projections computed from a store snapshot
// ABOUTME: Shared lookups; every projection is pure and takes the evaluation time
package views

import (
	"math"
	"time"

	"github.com/harperreed/revenueos/models"
)

// UnknownLead names a deal whose lead cannot be found.
const UnknownLead = "Unknown Lead"

// Unassigned names a lead whose owner cannot be found.
const Unassigned = "Unassigned"

func findUser(users []models.User, id int64) (models.User, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

func ownerName(users []models.User, id int64) string {
	if u, ok := findUser(users, id); ok {
		return u.Name
	}
	return Unassigned
}

func findLead(leads []models.Lead, id int64) (models.Lead, bool) {
	for _, l := range leads {
		if l.ID == id {
			return l, true
		}
	}
	return models.Lead{}, false
}

func findDeal(deals []models.Deal, id int64) (models.Deal, bool) {
	for _, d := range deals {
		if d.ID == id {
			return d, true
		}
	}
	return models.Deal{}, false
}

// leadNameForDeal looks the lead up through its dealId back-reference.
func leadNameForDeal(leads []models.Lead, dealID int64) string {
	for _, l := range leads {
		if l.DealID != nil && *l.DealID == dealID {
			return l.Name
		}
	}
	return UnknownLead
}

// wholeDays floors the elapsed time between from and to in days.
func wholeDays(from, to time.Time) int {
	return int(math.Floor(to.Sub(from).Hours() / 24))
}
