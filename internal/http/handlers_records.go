package http

import (
	"log/slog"
	"net/http"

	"finsight/internal/core"
	"finsight/internal/ledger"
)

type salaryRequest struct {
	Amount       any    `json:"amount"`
	ReceivedDate string `json:"received_date"`
	SalaryMonth  string `json:"salary_month"`
	IsBonus      bool   `json:"is_bonus"`
	Description  string `json:"description"`
}

func (s *Server) handleSalaries(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing "+userIDHeader+" header")
		return
	}

	switch r.Method {
	case http.MethodGet:
		rows, err := s.store.Salaries(r.Context(), uid)
		if err != nil {
			slog.ErrorContext(r.Context(), "List salaries failed", "user_id", uid, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to list salary records")
			return
		}
		writeJSON(w, http.StatusOK, rows)

	case http.MethodPost:
		var req salaryRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		date, err := parseDate(req.ReceivedDate)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid received_date (want YYYY-MM-DD)")
			return
		}

		rec := core.SalaryRecord{
			UserID:       uid,
			Amount:       core.ValidateAmount(req.Amount),
			ReceivedDate: date,
			SalaryMonth:  sanitizeInput(req.SalaryMonth),
			IsBonus:      req.IsBonus,
			Description:  sanitizeInput(req.Description),
		}
		if err := rec.Validate(); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		if err := s.store.CreateSalary(r.Context(), &rec); err != nil {
			slog.ErrorContext(r.Context(), "Create salary failed", "user_id", uid, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to save salary record")
			return
		}

		s.invalidateUser(uid)
		s.publishEntry(r.Context(), ledger.Entry{
			UserID:      uid,
			Kind:        ledger.KindSalary,
			Amount:      rec.Amount.String(),
			Date:        req.ReceivedDate,
			Description: rec.Description,
		})
		writeJSON(w, http.StatusCreated, rec)

	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

type legacyExpenseRequest struct {
	Amount      any    `json:"amount"`
	Category    string `json:"category"`
	ExpenseDate string `json:"expense_date"`
	Description string `json:"description"`
}

func (s *Server) handleLegacyExpenses(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing "+userIDHeader+" header")
		return
	}

	switch r.Method {
	case http.MethodGet:
		rows, err := s.store.LegacyExpenses(r.Context(), uid)
		if err != nil {
			slog.ErrorContext(r.Context(), "List legacy expenses failed", "user_id", uid, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to list expenses")
			return
		}
		writeJSON(w, http.StatusOK, rows)

	case http.MethodPost:
		var req legacyExpenseRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		date, err := parseDate(req.ExpenseDate)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid expense_date (want YYYY-MM-DD)")
			return
		}

		exp := core.LegacyExpense{
			UserID:      uid,
			Amount:      core.ValidateAmount(req.Amount),
			Category:    core.NormalizeCategory(sanitizeInput(req.Category)),
			ExpenseDate: date,
			Description: sanitizeInput(req.Description),
		}
		if err := exp.Validate(); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		if err := s.store.CreateLegacyExpense(r.Context(), &exp); err != nil {
			slog.ErrorContext(r.Context(), "Create legacy expense failed", "user_id", uid, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to save expense")
			return
		}

		s.invalidateUser(uid)
		s.publishEntry(r.Context(), ledger.Entry{
			UserID:      uid,
			Kind:        ledger.KindExpense,
			Amount:      exp.Amount.String(),
			Category:    exp.Category,
			Date:        req.ExpenseDate,
			Description: exp.Description,
		})
		writeJSON(w, http.StatusCreated, exp)

	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

type transactionRequest struct {
	Amount          any    `json:"amount"`
	Type            string `json:"type"`
	Category        string `json:"category"`
	TransactionDate string `json:"transaction_date"`
	Description     string `json:"description"`
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing "+userIDHeader+" header")
		return
	}

	switch r.Method {
	case http.MethodGet:
		rows, err := s.store.Transactions(r.Context(), uid)
		if err != nil {
			slog.ErrorContext(r.Context(), "List transactions failed", "user_id", uid, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to list transactions")
			return
		}
		writeJSON(w, http.StatusOK, rows)

	case http.MethodPost:
		var req transactionRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		date, err := parseDate(req.TransactionDate)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid transaction_date (want YYYY-MM-DD)")
			return
		}

		txn := core.Transaction{
			UserID:          uid,
			Amount:          core.ValidateAmount(req.Amount),
			Type:            core.TransactionType(req.Type),
			Category:        core.NormalizeCategory(sanitizeInput(req.Category)),
			TransactionDate: date,
			Description:     sanitizeInput(req.Description),
		}
		if err := txn.Validate(); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		if err := s.store.CreateTransaction(r.Context(), &txn); err != nil {
			slog.ErrorContext(r.Context(), "Create transaction failed", "user_id", uid, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to save transaction")
			return
		}

		s.invalidateUser(uid)
		s.publishEntry(r.Context(), ledger.Entry{
			UserID:      uid,
			Kind:        ledger.KindTransaction,
			Amount:      txn.Amount.String(),
			Category:    txn.Category,
			Date:        req.TransactionDate,
			Description: txn.Description,
		})
		writeJSON(w, http.StatusCreated, txn)

	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

type budgetRequest struct {
	Category     string `json:"category"`
	MonthlyLimit any    `json:"monthly_limit"`
	CurrentSpent any    `json:"current_spent"`
}

func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing "+userIDHeader+" header")
		return
	}

	switch r.Method {
	case http.MethodGet:
		rows, err := s.store.Budgets(r.Context(), uid)
		if err != nil {
			slog.ErrorContext(r.Context(), "List budgets failed", "user_id", uid, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to list budgets")
			return
		}
		writeJSON(w, http.StatusOK, rows)

	case http.MethodPost:
		var req budgetRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		budget := core.Budget{
			UserID:       uid,
			Category:     core.NormalizeCategory(sanitizeInput(req.Category)),
			MonthlyLimit: core.ValidateAmount(req.MonthlyLimit),
			CurrentSpent: core.ValidateAmount(req.CurrentSpent),
		}
		if err := budget.Validate(); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		if err := s.store.CreateBudget(r.Context(), &budget); err != nil {
			slog.ErrorContext(r.Context(), "Create budget failed", "user_id", uid, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to save budget")
			return
		}

		s.invalidateUser(uid)
		s.publishEntry(r.Context(), ledger.Entry{
			UserID:   uid,
			Kind:     ledger.KindBudget,
			Amount:   budget.MonthlyLimit.String(),
			Category: budget.Category,
		})
		writeJSON(w, http.StatusCreated, budget)

	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

type goalRequest struct {
	Title         string `json:"title"`
	TargetAmount  any    `json:"target_amount"`
	CurrentAmount any    `json:"current_amount"`
}

func (s *Server) handleGoals(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing "+userIDHeader+" header")
		return
	}

	switch r.Method {
	case http.MethodGet:
		rows, err := s.store.Goals(r.Context(), uid)
		if err != nil {
			slog.ErrorContext(r.Context(), "List goals failed", "user_id", uid, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to list goals")
			return
		}
		writeJSON(w, http.StatusOK, rows)

	case http.MethodPost:
		var req goalRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		goal := core.Goal{
			UserID:        uid,
			Title:         sanitizeInput(req.Title),
			TargetAmount:  core.ValidateAmount(req.TargetAmount),
			CurrentAmount: core.ValidateAmount(req.CurrentAmount),
		}
		if err := goal.Validate(); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		if err := s.store.CreateGoal(r.Context(), &goal); err != nil {
			slog.ErrorContext(r.Context(), "Create goal failed", "user_id", uid, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to save goal")
			return
		}

		s.invalidateUser(uid)
		s.publishEntry(r.Context(), ledger.Entry{
			UserID:      uid,
			Kind:        ledger.KindGoal,
			Amount:      goal.TargetAmount.String(),
			Description: goal.Title,
		})
		writeJSON(w, http.StatusCreated, goal)

	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
