package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/devin-voegele/moneymap/budget"
	"github.com/devin-voegele/moneymap/db"
	"github.com/devin-voegele/moneymap/llm"
	"github.com/devin-voegele/moneymap/logger"
	"github.com/devin-voegele/moneymap/models"
)

type coachRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId"`
}

// Coach answers a budgeting question with the user's full financial picture
// as context. FREE users burn one quota unit per question; PRO users skip the
// counter entirely. When the model calls a tool, the handler executes it and
// asks for a second completion to phrase the confirmation.
func (h *Handler) Coach(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	userID := claims.Subject

	var req coachRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	user, err := h.store.GetUserByID(ctx, userID)
	if err == db.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		logger.Get().Error("failed to load user for coach", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get AI response. Please try again."})
		return
	}

	if user.Plan == models.PlanFree {
		limit := budget.FreeTierLimit(budget.ResourceAIQuestion)
		now := time.Now().UTC()
		_, err := h.store.ConsumeAIRequest(ctx, userID, limit, now, budget.NextResetDate(now))
		if err == db.ErrNotFound {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "FREE_TIER_LIMIT",
				"message": fmt.Sprintf("You've reached your limit of %d AI coach questions this month. Upgrade to Pro for unlimited questions!", limit),
				"limit":   limit,
				"used":    user.MonthlyAIRequests,
			})
			return
		}
		if err != nil {
			logger.Get().Error("failed to consume AI request", zap.Error(err), zap.String("user_id", userID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get AI response. Please try again."})
			return
		}
	}

	profile, err := h.store.GetProfileByUserID(ctx, userID)
	if err != nil {
		logger.Get().Error("failed to load coach context", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get AI response. Please try again."})
		return
	}
	incomes, err := h.store.ListIncomes(ctx, userID)
	if err != nil {
		logger.Get().Error("failed to load coach context", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get AI response. Please try again."})
		return
	}
	fixedCosts, err := h.store.ListFixedCosts(ctx, userID)
	if err != nil {
		logger.Get().Error("failed to load coach context", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get AI response. Please try again."})
		return
	}
	subscriptions, err := h.store.ListSubscriptions(ctx, userID)
	if err != nil {
		logger.Get().Error("failed to load coach context", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get AI response. Please try again."})
		return
	}
	goals, err := h.store.ListGoals(ctx, userID)
	if err != nil {
		logger.Get().Error("failed to load coach context", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get AI response. Please try again."})
		return
	}

	currency := "EUR"
	if profile != nil && profile.Currency != "" {
		currency = profile.Currency
	}
	contextPrompt := llm.BuildCoachContext(profile, incomes, fixedCosts, subscriptions, goals)

	reply, err := h.llm.Coach(ctx, contextPrompt, req.Message)
	if err != nil {
		logger.Get().Error("coach completion failed", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get AI response. Please try again."})
		return
	}

	if reply.ToolCall == nil {
		h.appendToConversation(ctx, userID, req.ConversationID, req.Message, reply.Content)
		c.JSON(http.StatusOK, gin.H{"response": reply.Content})
		return
	}

	result, execErr := h.executeCoachTool(ctx, userID, user.Plan, currency, reply.ToolCall)
	if execErr != nil {
		if quotaDenied(c, execErr) {
			return
		}
		logger.Get().Error("coach tool execution failed",
			zap.Error(execErr),
			zap.String("user_id", userID),
			zap.String("function", reply.ToolCall.Name))
		c.JSON(http.StatusOK, gin.H{
			"response": fmt.Sprintf("I tried to %s but encountered an error. Please try again.", strings.ReplaceAll(reply.ToolCall.Name, "_", " ")),
		})
		return
	}

	final, err := h.llm.ConfirmTool(ctx, contextPrompt, req.Message, reply, result)
	if err != nil {
		logger.Get().Warn("tool confirmation failed, using raw result", zap.Error(err), zap.String("user_id", userID))
		final = result
	}

	response := gin.H{
		"response":       final,
		"actionTaken":    true,
		"functionCalled": reply.ToolCall.Name,
	}
	if reply.ToolCall.Name == llm.ToolExportExcelReport {
		response["excelExport"] = true
	}
	h.appendToConversation(ctx, userID, req.ConversationID, req.Message, final)
	c.JSON(http.StatusOK, response)
}

// executeCoachTool runs the single tool call the model requested. Inserts go
// through the same quota checks as the REST endpoints.
func (h *Handler) executeCoachTool(ctx context.Context, userID string, plan models.Plan, currency string, call *llm.PendingToolCall) (string, error) {
	switch call.Name {
	case llm.ToolCreateGoal:
		var args llm.CreateGoalArgs
		if err := json.Unmarshal(call.Args, &args); err != nil {
			return "", fmt.Errorf("bad create_goal arguments: %w", err)
		}
		count, err := h.store.CountGoals(ctx, userID)
		if err != nil {
			return "", err
		}
		if err := budget.CheckQuota(plan, budget.ResourceGoal, count); err != nil {
			return "", err
		}
		goal := &models.Goal{
			UserID:        userID,
			Name:          args.Name,
			TargetAmount:  args.TargetAmount,
			CurrentAmount: args.CurrentAmount,
		}
		if args.Deadline != "" {
			if deadline, err := time.Parse("2006-01-02", args.Deadline); err == nil {
				goal.Deadline = &deadline
			}
		}
		if err := h.store.CreateGoal(ctx, goal); err != nil {
			return "", err
		}
		result := fmt.Sprintf("Goal %q created successfully with target of %s", goal.Name, budget.FormatCurrency(goal.TargetAmount, currency))
		if goal.Deadline != nil {
			result += fmt.Sprintf(" by %s", goal.Deadline.Format("1/2/2006"))
		}
		return result + ".", nil

	case llm.ToolCreateSubscription:
		var args llm.CreateSubscriptionArgs
		if err := json.Unmarshal(call.Args, &args); err != nil {
			return "", fmt.Errorf("bad create_subscription arguments: %w", err)
		}
		count, err := h.store.CountSubscriptions(ctx, userID)
		if err != nil {
			return "", err
		}
		if err := budget.CheckQuota(plan, budget.ResourceSubscription, count); err != nil {
			return "", err
		}
		subscription := &models.Subscription{
			UserID:    userID,
			Name:      args.Name,
			Amount:    args.Amount,
			Frequency: models.Frequency(args.Frequency),
		}
		if args.Category != "" {
			subscription.Category = &args.Category
		}
		if err := h.store.CreateSubscription(ctx, subscription); err != nil {
			return "", err
		}
		return fmt.Sprintf("Subscription %q added successfully (%s %s).",
			subscription.Name, budget.FormatCurrency(subscription.Amount, currency), strings.ToLower(args.Frequency)), nil

	case llm.ToolCreateIncome:
		var args llm.CreateIncomeArgs
		if err := json.Unmarshal(call.Args, &args); err != nil {
			return "", fmt.Errorf("bad create_income arguments: %w", err)
		}
		count, err := h.store.CountIncomes(ctx, userID)
		if err != nil {
			return "", err
		}
		if err := budget.CheckQuota(plan, budget.ResourceIncome, count); err != nil {
			return "", err
		}
		income := &models.Income{
			UserID:    userID,
			Name:      args.Name,
			Amount:    args.Amount,
			Frequency: models.Frequency(args.Frequency),
		}
		if err := h.store.CreateIncome(ctx, income); err != nil {
			return "", err
		}
		return fmt.Sprintf("Income source %q added successfully (%s %s).",
			income.Name, budget.FormatCurrency(income.Amount, currency), strings.ToLower(args.Frequency)), nil

	case llm.ToolCreateFixedCost:
		var args llm.CreateFixedCostArgs
		if err := json.Unmarshal(call.Args, &args); err != nil {
			return "", fmt.Errorf("bad create_fixed_cost arguments: %w", err)
		}
		cost := &models.FixedCost{
			UserID:    userID,
			Name:      args.Name,
			Amount:    args.Amount,
			Frequency: models.Frequency(args.Frequency),
			Category:  args.Category,
		}
		if err := h.store.CreateFixedCost(ctx, cost); err != nil {
			return "", err
		}
		return fmt.Sprintf("Fixed cost %q added successfully (%s %s).",
			cost.Name, budget.FormatCurrency(cost.Amount, currency), strings.ToLower(args.Frequency)), nil

	case llm.ToolExportExcelReport:
		return "EXCEL_EXPORT_REQUESTED", nil

	default:
		return "", fmt.Errorf("unrecognized function %q", call.Name)
	}
}

// appendToConversation persists the exchange when the client supplied a
// conversation. Failures are logged but never fail the coach response.
func (h *Handler) appendToConversation(ctx context.Context, userID, conversationID, question, answer string) {
	if conversationID == "" {
		return
	}

	conversation, err := h.store.GetConversation(ctx, userID, conversationID)
	if err != nil {
		logger.Get().Warn("failed to load conversation for append",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("conversation_id", conversationID))
		return
	}

	now := time.Now().UnixMilli()
	messages := append(conversation.Messages,
		models.ChatMessage{Role: "user", Content: question, Timestamp: now},
		models.ChatMessage{Role: "assistant", Content: answer, Timestamp: now},
	)
	if err := h.store.UpdateConversation(ctx, userID, conversationID, messages, ""); err != nil {
		logger.Get().Warn("failed to append to conversation",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("conversation_id", conversationID))
	}
}
