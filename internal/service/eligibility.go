package service

import (
	"math"

	"github.com/tictac1213/JobNotification/internal/model"
)

// IsEligible reports whether a user's profile satisfies an eligibility
// constraint set. All constraints must pass:
//
//   - CGPA at or above MinCGPA when one is set (NaN always fails)
//   - branch membership when the branch set is non-empty
//   - year membership when the year set is non-empty
//
// Empty branch/year sets and a nil MinCGPA mean no restriction. The caller
// is responsible for checking the user's account status; this predicate
// only compares profile fields. Pure, no side effects.
func IsEligible(user *model.User, elig model.Eligibility) bool {
	if elig.MinCGPA != nil {
		if math.IsNaN(user.CGPA) || user.CGPA < *elig.MinCGPA {
			return false
		}
	}
	if len(elig.Branches) > 0 && !elig.Branches.Contains(user.Branch) {
		return false
	}
	if len(elig.Years) > 0 && !elig.Years.Contains(user.Year) {
		return false
	}
	return true
}
