package handlers

import (
	"errors"
	"log"
	"net/http"

	"splitledger-backend/database"
	"splitledger-backend/ledger"
	"splitledger-backend/models"
	"splitledger-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GET /api/groups/:id/balances
func GetGroupBalances(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid group ID")
		return
	}

	if !isMember(groupID, userID) {
		utils.Unauthorized(c, "You are not a member of this group")
		return
	}

	var group models.Group
	database.DB.First(&group, groupID)

	balances, err := computeGroupBalances(groupID)
	if err != nil {
		reportBalanceError(c, groupID, err)
		return
	}

	suggestions, err := ledger.Simplify(balances)
	if err != nil {
		reportBalanceError(c, groupID, err)
		return
	}

	names := loadUserNames(balances)

	memberBalances := make([]models.MemberBalance, 0, len(balances))
	for uid, amount := range balances {
		memberBalances = append(memberBalances, models.MemberBalance{
			UserID: uid,
			Name:   names[uid],
			Amount: amount,
		})
	}

	suggested := make([]models.SuggestedSettlement, 0, len(suggestions))
	for _, s := range suggestions {
		suggested = append(suggested, models.SuggestedSettlement{
			From:     s.From,
			FromName: names[s.From],
			To:       s.To,
			ToName:   names[s.To],
			Amount:   s.Amount,
			Currency: group.Currency,
		})
	}

	var totalSpent int64
	database.DB.Model(&models.Expense{}).Where("group_id = ?", groupID).Select("COALESCE(SUM(amount), 0)").Scan(&totalSpent)

	summary := models.GroupBalanceSummary{
		GroupID:     groupID,
		GroupName:   group.Name,
		Currency:    group.Currency,
		Balances:    memberBalances,
		Suggestions: suggested,
		TotalSpent:  totalSpent,
	}

	utils.SuccessResponse(c, http.StatusOK, "", summary)
}

// GET /api/balances — overall balances across all groups for current user
func GetOverallBalances(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var me models.User
	database.DB.First(&me, userID)

	// Get all groups the user is part of
	var memberships []models.GroupMember
	database.DB.Where("user_id = ?", userID).Find(&memberships)

	// Aggregate per-friend positions across all groups. Amounts in different
	// currencies cannot be added, so only groups in the user's own currency
	// feed the overall view.
	friendBalances := make(map[uuid.UUID]int64)

	for _, m := range memberships {
		var group models.Group
		database.DB.First(&group, m.GroupID)
		if group.Currency != me.Currency {
			continue
		}

		balances, err := computeGroupBalances(m.GroupID)
		if err != nil {
			reportBalanceError(c, m.GroupID, err)
			return
		}

		suggestions, err := ledger.Simplify(balances)
		if err != nil {
			reportBalanceError(c, m.GroupID, err)
			return
		}

		for _, s := range suggestions {
			if s.From == userID {
				// I owe this person
				friendBalances[s.To] -= s.Amount
			} else if s.To == userID {
				// This person owes me
				friendBalances[s.From] += s.Amount
			}
		}
	}

	var totalOwed, totalOwing int64
	var friends []models.FriendBalance

	for friendID, amount := range friendBalances {
		if amount == 0 {
			continue
		}

		var user models.User
		database.DB.First(&user, friendID)

		friends = append(friends, models.FriendBalance{
			UserID:    friendID,
			Name:      user.Name,
			Email:     user.Email,
			AvatarURL: user.AvatarURL,
			Amount:    amount,
			Currency:  me.Currency,
		})

		if amount > 0 {
			totalOwed += amount
		} else {
			totalOwing += -amount
		}
	}

	summary := models.OverallBalanceSummary{
		TotalOwed:  totalOwed,
		TotalOwing: totalOwing,
		Friends:    friends,
	}

	utils.SuccessResponse(c, http.StatusOK, "", summary)
}

// computeGroupBalances loads the group's expense and settlement snapshot and
// runs the ledger aggregator over it.
func computeGroupBalances(groupID uuid.UUID) (map[uuid.UUID]int64, error) {
	var expenses []models.Expense
	database.DB.Where("group_id = ?", groupID).Preload("Splits").Find(&expenses)

	var settlements []models.Settlement
	database.DB.Where("group_id = ?", groupID).Find(&settlements)

	ledgerExpenses := make([]ledger.Expense, len(expenses))
	for i, e := range expenses {
		splits := make([]ledger.Split, len(e.Splits))
		for j, s := range e.Splits {
			splits[j] = ledger.Split{UserID: s.UserID, Amount: s.OwedAmount}
		}
		ledgerExpenses[i] = ledger.Expense{
			PaidBy: e.PaidBy,
			Amount: e.Amount,
			Splits: splits,
		}
	}

	ledgerSettlements := make([]ledger.Settlement, len(settlements))
	for i, s := range settlements {
		ledgerSettlements[i] = ledger.Settlement{
			From:   s.PaidBy,
			To:     s.PaidTo,
			Amount: s.Amount,
			Status: s.Status,
		}
	}

	return ledger.ComputeBalances(ledgerExpenses, ledgerSettlements)
}

// reportBalanceError maps ledger failures to HTTP responses. A conservation
// violation means the stored records are corrupt; it is a server-side fault
// and retrying the same computation cannot help.
func reportBalanceError(c *gin.Context, groupID uuid.UUID, err error) {
	var conservation *ledger.ConservationViolationError
	if errors.As(err, &conservation) {
		log.Printf("❌ Conservation violation in group %s: %v", groupID, err)
		utils.InternalError(c, "Group balances are inconsistent, contact support")
		return
	}
	utils.InternalError(c, "Failed to compute balances")
}

func loadUserNames(balances map[uuid.UUID]int64) map[uuid.UUID]string {
	ids := make([]uuid.UUID, 0, len(balances))
	for uid := range balances {
		ids = append(ids, uid)
	}

	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names
	}

	var users []models.User
	database.DB.Where("id IN ?", ids).Find(&users)
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names
}
